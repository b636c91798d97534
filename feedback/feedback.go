package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// SubmitFeedback handles POST /api/feedback. Any authenticated role can
// submit; the admin dashboard reads it back.
func SubmitFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var in struct {
		Rating  int    `json:"rating"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	in.Message = strings.TrimSpace(in.Message)
	if in.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if in.Rating < 0 || in.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 0 and 5")
		return
	}

	fb := models.Feedback{
		UserID:    userID,
		Role:      role,
		Rating:    in.Rating,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.FeedbackCollection.InsertOne(ctx, fb); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	utils.SendResponse(w, http.StatusCreated, fb, "Thanks for the feedback", nil)
}

// ListFeedback handles GET /api/admin/feedback — newest first.
func ListFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.FeedbackCollection.Find(ctx, bson.M{}, db.OptionsFindLatest(200))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	items := []models.Feedback{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, items, "ok", nil)
}
