package notifications

import (
	"context"
	"log"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notify inserts one notification document. Domain handlers call this after
// their own write has succeeded; a failed insert is logged and swallowed so
// the parent operation still succeeds.
func Notify(ctx context.Context, n models.Notification) {
	n.CreatedAt = time.Now()
	if _, err := db.NotificationsCollection.InsertOne(ctx, n); err != nil {
		log.Printf("notification insert for %s failed: %v", n.UserID, err)
	}
}

// FanOutBroadcast creates one notification per user matching the broadcast
// audience and returns how many were created.
func FanOutBroadcast(ctx context.Context, b models.Broadcast) (int, error) {
	filter := bson.M{}
	switch b.TargetAudience {
	case models.AudienceAll:
		// every account, every role
	case models.AudienceUser:
		filter["role"] = models.RoleUser
	case models.AudienceLabour:
		filter["role"] = models.RoleLabour
	case models.AudienceContractor:
		filter["role"] = models.RoleContractor
	default:
		return 0, nil
	}

	cursor, err := db.UsersCollection.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return 0, err
	}

	docs := BuildBroadcastDocs(b, users)
	if len(docs) == 0 {
		return 0, nil
	}
	if _, err := db.NotificationsCollection.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// BuildBroadcastDocs expands a broadcast into per-recipient notification
// documents. An ALL broadcast addresses each account once per role, so the
// fan-out is 3x the user count.
func BuildBroadcastDocs(b models.Broadcast, users []models.User) []interface{} {
	now := time.Now()
	roles := []string{b.TargetAudience}
	if b.TargetAudience == models.AudienceAll {
		roles = []string{models.AudienceUser, models.AudienceLabour, models.AudienceContractor}
	}

	var docs []interface{}
	for _, u := range users {
		for _, aud := range roles {
			docs = append(docs, models.Notification{
				UserID:    u.UserID,
				Role:      roleForAudience(aud),
				Kind:      models.NotifBroadcast,
				Title:     b.Title,
				Body:      b.Body,
				EntityID:  b.ID.Hex(),
				CreatedAt: now,
			})
		}
	}
	return docs
}

func roleForAudience(aud string) string {
	switch aud {
	case models.AudienceLabour:
		return models.RoleLabour
	case models.AudienceContractor:
		return models.RoleContractor
	default:
		return models.RoleUser
	}
}

// --- REST handlers ---

func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.NotificationsCollection.Find(ctx,
		bson.M{"userid": userID}, db.OptionsFindLatest(50))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	notifs := []models.Notification{}
	if err := cursor.All(ctx, &notifs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, notifs, "ok", nil)
}

func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"_id": notifID, "userid": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Marked read", nil)
}

func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"userid": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "All marked read", nil)
}

func DeleteNotification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.NotificationsCollection.DeleteOne(ctx,
		bson.M{"_id": notifID, "userid": userID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Notification deleted", nil)
}
