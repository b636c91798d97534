package hire

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/chats"
	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/notifications"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PendingFilter is the duplicate-pending query: one outstanding request per
// (requester, target) pair.
func PendingFilter(requesterID, targetID string) bson.M {
	return bson.M{
		"requester.id": requesterID,
		"targetid":     targetID,
		"status":       models.HirePending,
	}
}

// CreateHireRequest handles POST /api/labours/:labourid/hire — a user or
// contractor asks to hire a labour.
func CreateHireRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)
	labourID := ps.ByName("labourid")

	var in struct {
		Message string `json:"message"`
	}
	json.NewDecoder(r.Body).Decode(&in)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	if err := db.LaboursCollection.FindOne(ctx, bson.M{"labourid": labourID}).Decode(&labour); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour not found")
		return
	}
	if labour.UserID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot hire yourself")
		return
	}

	count, err := db.HireRequestsCollection.CountDocuments(ctx, PendingFilter(userID, labour.UserID))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "A pending request already exists")
		return
	}

	var requesterName string
	var user models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
		requesterName = user.Name
	}

	req := models.HireRequest{
		Requester: models.Requester{ID: userID, Role: role, Name: requesterName},
		LabourID:  labourID,
		TargetID:  labour.UserID,
		Message:   strings.TrimSpace(in.Message),
		Status:    models.HirePending,
		CreatedAt: time.Now(),
	}

	res, err := db.HireRequestsCollection.InsertOne(ctx, req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}
	req.ID = res.InsertedID.(primitive.ObjectID)

	notifications.Notify(ctx, models.Notification{
		UserID:   labour.UserID,
		Role:     models.RoleLabour,
		Kind:     models.NotifHireRequest,
		Title:    "New hire request",
		Body:     requesterName + " wants to hire you.",
		EntityID: req.ID.Hex(),
	})

	utils.SendResponse(w, http.StatusCreated, req, "Hire request sent", nil)
}

// GetIncomingHireRequests handles GET /api/hire/incoming — requests
// targeting the caller.
func GetIncomingHireRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listHireRequests(w, r, bson.M{"targetid": utils.GetUserIDFromRequest(r)}, db.HireRequestsCollection)
}

// GetOutgoingHireRequests handles GET /api/hire/outgoing — requests the
// caller sent.
func GetOutgoingHireRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listHireRequests(w, r, bson.M{"requester.id": utils.GetUserIDFromRequest(r)}, db.HireRequestsCollection)
}

func listHireRequests(w http.ResponseWriter, r *http.Request, filter bson.M, coll *mongo.Collection) {
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, db.OptionsFindLatest(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	reqs := []models.HireRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, reqs, "ok", nil)
}

// AcceptHireRequest handles POST /api/hire/requests/:id/accept — target only.
func AcceptHireRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideHireRequest(w, r, ps, models.HireAccepted)
}

// DeclineHireRequest handles POST /api/hire/requests/:id/decline — target only.
func DeclineHireRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideHireRequest(w, r, ps, models.HireDeclined)
}

// decideHireRequest writes the terminal status, then bridges the chat on
// accept. Nothing arbitrates two concurrent decisions beyond the document
// write itself: last write wins.
func decideHireRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params, decision string) {
	userID := utils.GetUserIDFromRequest(r)

	reqID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req models.HireRequest
	if err := db.HireRequestsCollection.FindOne(ctx, bson.M{"_id": reqID}).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		return
	}
	if req.TargetID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your request")
		return
	}
	if models.IsTerminal(req.Status) && req.Status != decision {
		utils.RespondWithError(w, http.StatusBadRequest, "Request already "+req.Status)
		return
	}

	_, err = db.HireRequestsCollection.UpdateOne(ctx,
		bson.M{"_id": reqID},
		bson.M{"$set": bson.M{"status": decision, "decided_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update request")
		return
	}

	chatID := req.ChatID
	if decision == models.HireAccepted {
		chat, err := chats.CreateChatFromRequest(ctx, req.Requester.ID, req.TargetID,
			models.RequestTypeHireRequest, reqID.Hex())
		if err != nil {
			log.Printf("chat bridge for hire request %s failed: %v", reqID.Hex(), err)
		} else {
			chatID = chat.ID.Hex()
			db.HireRequestsCollection.UpdateOne(ctx,
				bson.M{"_id": reqID},
				bson.M{"$set": bson.M{"chatid": chatID}},
			)
		}
	}

	notifyDecision(ctx, req.Requester, decision, reqID.Hex())

	utils.SendResponse(w, http.StatusOK, utils.M{
		"requestid": reqID.Hex(),
		"status":    decision,
		"chatid":    chatID,
	}, "Request "+decision, nil)
}

func notifyDecision(ctx context.Context, requester models.Requester, decision, entityID string) {
	kind := models.NotifHireAccepted
	body := "Your hire request was accepted. You can start chatting now."
	if decision == models.HireDeclined {
		kind = models.NotifHireDeclined
		body = "Your hire request was declined."
	}
	notifications.Notify(ctx, models.Notification{
		UserID:   requester.ID,
		Role:     requester.Role,
		Kind:     kind,
		Title:    "Hire request " + decision,
		Body:     body,
		EntityID: entityID,
	})
}
