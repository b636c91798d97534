package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/filemgr"
	"majdoorsathi/models"
	"majdoorsathi/rdx"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetMyProfile handles GET /api/profile
func GetMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, user, "ok", nil)
}

// UpdateMyProfile handles PUT /api/profile. Only a whitelisted set of
// fields can change; phone and role are fixed after registration.
func UpdateMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var in struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
		Bio     *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		set["name"] = name
	}
	if in.Email != nil {
		set["email"] = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		set["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Bio != nil {
		set["bio"] = strings.TrimSpace(*in.Bio)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.UsersCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	var user models.User
	db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	utils.SendResponse(w, http.StatusOK, user, "Profile updated", nil)
}

// UploadAvatar handles POST /api/profile/avatar (multipart form, field
// "avatar").
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}

	filename, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityUser, filemgr.PicAvatar, 128)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = db.UsersCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": filename, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save avatar")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"avatar": filename}, "Avatar updated", nil)
}

// GetPublicProfile handles GET /api/users/:userid — the public view of a
// profile, without phone-adjacent auth fields.
func GetPublicProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.UserProfileResponse
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID, "is_blocked": false}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, user, "ok", nil)
}

// DeleteMyAccount handles DELETE /api/profile. The user document and any
// role profiles go; jobs and chats keep their denormalized copies.
func DeleteMyAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.UsersCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	db.LaboursCollection.DeleteOne(ctx, bson.M{"userid": userID})
	db.ContractorsCollection.DeleteOne(ctx, bson.M{"userid": userID})
	db.NotificationsCollection.DeleteMany(ctx, bson.M{"userid": userID})
	rdx.RdxHdel("tokki", userID)

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "Account deleted", nil)
}
