package contractor

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/filemgr"
	"majdoorsathi/models"
	"majdoorsathi/mq"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contractorInput struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
	Location     string `json:"address"`
	TeamSize     int    `json:"team_size"`
	Bio          string `json:"bio"`
}

func (in *contractorInput) validate() string {
	in.Name = strings.TrimSpace(in.Name)
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Location = strings.TrimSpace(in.Location)
	switch {
	case in.Name == "":
		return "Name is required"
	case in.BusinessName == "":
		return "Business name is required"
	case in.Location == "":
		return "Address is required"
	case in.TeamSize < 0:
		return "Team size cannot be negative"
	}
	return ""
}

// CreateContractorProfile handles POST /api/contractor/profile. One profile
// per account.
func CreateContractorProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var in contractorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if msg := in.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.ContractorsCollection.CountDocuments(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Contractor profile already exists")
		return
	}

	var user models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Account not found")
		return
	}

	contractor := models.Contractor{
		ContractorID: "ct" + utils.GenerateRandomString(10),
		UserID:       userID,
		Name:         in.Name,
		Phone:        user.Phone,
		BusinessName: in.BusinessName,
		BusinessType: in.BusinessType,
		Location:     in.Location,
		TeamSize:     in.TeamSize,
		Bio:          in.Bio,
		CreatedAt:    time.Now(),
	}

	if _, err := db.ContractorsCollection.InsertOne(ctx, contractor); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create contractor profile")
		return
	}

	mq.Emit(ctx, "created", models.Index{EntityType: "contractor", EntityId: contractor.ContractorID, Title: contractor.BusinessName})

	utils.SendResponse(w, http.StatusCreated, contractor, "Contractor profile created", nil)
}

// GetMyContractorProfile handles GET /api/contractor/profile
func GetMyContractorProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	if err := db.ContractorsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&contractor); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Contractor profile not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, contractor, "ok", nil)
}

// UpdateContractorProfile handles PUT /api/contractor/profile
func UpdateContractorProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	for _, field := range []string{"name", "business_name", "business_type", "address", "bio"} {
		if v, ok := in[field]; ok {
			if s, ok := v.(string); ok {
				set[field] = strings.TrimSpace(s)
			}
		}
	}
	if v, ok := in["team_size"]; ok {
		if n, ok := v.(float64); ok && n >= 0 {
			set["team_size"] = int(n)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	err := db.ContractorsCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&contractor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Contractor profile not found")
		return
	}

	mq.Emit(ctx, "updated", models.Index{EntityType: "contractor", EntityId: contractor.ContractorID, Title: contractor.BusinessName})

	utils.SendResponse(w, http.StatusOK, contractor, "Contractor profile updated", nil)
}

// UploadContractorPhoto handles POST /api/contractor/profile/photo
func UploadContractorPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}

	filename, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityContractor, filemgr.PicPhoto, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ContractorsCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"photo": filename, "updated_at": time.Now()}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Contractor profile not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"photo": filename}, "Photo updated", nil)
}

// BrowseContractors handles GET /api/contractors — public listing.
func BrowseContractors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Category != "" {
		filter["business_type"] = opts.Category
	}
	if opts.Location != "" {
		filter["address"] = bson.M{"$regex": opts.Location, "$options": "i"}
	}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"business_name": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "verified", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(opts.Skip()).
		SetLimit(int64(opts.Limit))

	cursor, err := db.ContractorsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	contractors := []models.Contractor{}
	if err := cursor.All(ctx, &contractors); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, contractors, "ok", nil)
}

// GetContractorByID handles GET /api/contractors/:contractorid
func GetContractorByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	contractorID := ps.ByName("contractorid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	err := db.ContractorsCollection.FindOne(ctx, bson.M{"contractorid": contractorID}).Decode(&contractor)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Contractor not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}

	utils.SendResponse(w, http.StatusOK, contractor, "ok", nil)
}

// DeleteContractorProfile handles DELETE /api/contractor/profile
func DeleteContractorProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	err := db.ContractorsCollection.FindOneAndDelete(ctx, bson.M{"userid": userID}).Decode(&contractor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Contractor profile not found")
		return
	}

	mq.Emit(ctx, "deleted", models.Index{EntityType: "contractor", EntityId: contractor.ContractorID})

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "Contractor profile deleted", nil)
}
