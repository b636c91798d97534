package labour

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

type labourInput struct {
	Name         string `json:"name"`
	SkillType    string `json:"skill_type"`
	Category     string `json:"category"`
	Location     string `json:"address"`
	ExpectedWage string `json:"expected_wage"`
	Experience   string `json:"experience"`
	Languages    string `json:"languages"`
	Availability string `json:"availability"`
	Bio          string `json:"bio"`
}

func (in *labourInput) validate() string {
	in.Name = strings.TrimSpace(in.Name)
	in.SkillType = strings.TrimSpace(in.SkillType)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)
	switch {
	case in.Name == "":
		return "Name is required"
	case in.SkillType == "":
		return "Skill type is required"
	case in.Location == "":
		return "Address is required"
	}
	return ""
}

// CreateLabourProfile handles POST /api/labour/profile. One labour profile
// per account.
func CreateLabourProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var in labourInput
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

	count, err := db.LaboursCollection.CountDocuments(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Labour profile already exists")
		return
	}

	var user models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Account not found")
		return
	}

	labour := models.Labour{
		LabourID:     "l" + utils.GenerateRandomString(10),
		UserID:       userID,
		Name:         in.Name,
		Phone:        user.Phone,
		SkillType:    in.SkillType,
		Category:     in.Category,
		Location:     in.Location,
		ExpectedWage: in.ExpectedWage,
		Experience:   in.Experience,
		Languages:    in.Languages,
		Availability: in.Availability,
		Bio:          in.Bio,
		CreatedAt:    time.Now(),
	}

	if _, err := db.LaboursCollection.InsertOne(ctx, labour); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create labour profile")
		return
	}

	mq.Emit(ctx, "created", models.Index{EntityType: "labour", EntityId: labour.LabourID, Title: labour.Name + " " + labour.SkillType})

	utils.SendResponse(w, http.StatusCreated, labour, "Labour profile created", nil)
}

// GetMyLabourProfile handles GET /api/labour/profile
func GetMyLabourProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	if err := db.LaboursCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&labour); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, labour, "ok", nil)
}

// UpdateLabourProfile handles PUT /api/labour/profile
func UpdateLabourProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	allowed := []string{"name", "skill_type", "category", "address", "expected_wage", "experience", "languages", "availability", "bio"}
	set := bson.M{"updated_at": time.Now()}
	for _, field := range allowed {
		if v, ok := in[field]; ok {
			if s, ok := v.(string); ok {
				set[field] = strings.TrimSpace(s)
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	err := db.LaboursCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&labour)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}

	mq.Emit(ctx, "updated", models.Index{EntityType: "labour", EntityId: labour.LabourID, Title: labour.Name + " " + labour.SkillType})

	utils.SendResponse(w, http.StatusOK, labour, "Labour profile updated", nil)
}

// UploadLabourPhoto handles POST /api/labour/profile/photo (multipart,
// field "photo").
func UploadLabourPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	filename, err := filemgr.SaveImageWithThumb(file, header, filemgr.EntityLabour, filemgr.PicPhoto, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.LaboursCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"photo": filename, "updated_at": time.Now()}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"photo": filename}, "Photo updated", nil)
}

// BrowseLabours handles GET /api/labours — public listing with optional
// category, location and search filters.
func BrowseLabours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Location != "" {
		filter["address"] = bson.M{"$regex": opts.Location, "$options": "i"}
	}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"skill_type": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "verified", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(opts.Skip()).
		SetLimit(int64(opts.Limit))

	cursor, err := db.LaboursCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	labours := []models.Labour{}
	if err := cursor.All(ctx, &labours); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, labours, "ok", nil)
}

// GetLabourByID handles GET /api/labours/:labourid — the public card a
// hiring user sees.
func GetLabourByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	labourID := ps.ByName("labourid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	err := db.LaboursCollection.FindOne(ctx, bson.M{"labourid": labourID}).Decode(&labour)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Labour not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}

	// Aadhaar never leaves the server on the public route.
	if labour.Card != nil {
		labour.Card.Aadhaar = ""
	}

	utils.SendResponse(w, http.StatusOK, labour, "ok", nil)
}

// DeleteLabourProfile handles DELETE /api/labour/profile
func DeleteLabourProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	err := db.LaboursCollection.FindOneAndDelete(ctx, bson.M{"userid": userID}).Decode(&labour)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}

	db.VerificationsCollection.DeleteMany(ctx, bson.M{"labourid": labour.LabourID, "status": models.CardStatePending})
	mq.Emit(ctx, "deleted", models.Index{EntityType: "labour", EntityId: labour.LabourID})

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "Labour profile deleted", nil)
}
