package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/notifications"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validAudiences = []string{
	models.AudienceAll,
	models.AudienceUser,
	models.AudienceLabour,
	models.AudienceContractor,
}

// SendBroadcast handles POST /api/admin/broadcasts — records the broadcast
// and fans it out to every matching user in one request.
func SendBroadcast(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	adminID := utils.GetAdminIDFromRequest(r)

	var in struct {
		Title          string `json:"title"`
		Body           string `json:"body"`
		TargetAudience string `json:"target_audience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.TargetAudience = strings.ToUpper(strings.TrimSpace(in.TargetAudience))
	if in.Title == "" || in.Body == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and body are required")
		return
	}
	if !utils.Contains(validAudiences, in.TargetAudience) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid target audience")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	b := models.Broadcast{
		Title:          in.Title,
		Body:           in.Body,
		TargetAudience: in.TargetAudience,
		SentBy:         adminID,
		CreatedAt:      time.Now(),
	}
	res, err := db.BroadcastsCollection.InsertOne(ctx, b)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record broadcast")
		return
	}
	b.ID = res.InsertedID.(primitive.ObjectID)

	count, err := notifications.FanOutBroadcast(ctx, b)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Broadcast fan-out failed")
		return
	}
	b.SentCount = count

	db.BroadcastsCollection.UpdateOne(ctx,
		bson.M{"_id": b.ID},
		bson.M{"$set": bson.M{"sent_count": count}},
	)

	utils.SendResponse(w, http.StatusCreated, b, "Broadcast sent", nil)
}

// ListBroadcasts handles GET /api/admin/broadcasts
func ListBroadcasts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.BroadcastsCollection.Find(ctx, bson.M{}, db.OptionsFindLatest(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	items := []models.Broadcast{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, items, "ok", nil)
}

// DeleteBroadcast handles DELETE /api/admin/broadcasts/:id — removes the
// record only; already delivered notifications stay.
func DeleteBroadcast(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid broadcast ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.BroadcastsCollection.DeleteOne(ctx, bson.M{"_id": bID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete broadcast")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Broadcast not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "Broadcast deleted", nil)
}
