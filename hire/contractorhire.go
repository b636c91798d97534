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
)

// CreateContractorHireRequest handles POST /api/contractors/:contractorid/hire
// — a user asks a contractor to take on work.
func CreateContractorHireRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)
	contractorID := ps.ByName("contractorid")

	var in struct {
		Message string `json:"message"`
	}
	json.NewDecoder(r.Body).Decode(&in)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	if err := db.ContractorsCollection.FindOne(ctx, bson.M{"contractorid": contractorID}).Decode(&contractor); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Contractor not found")
		return
	}
	if contractor.UserID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot hire yourself")
		return
	}

	count, err := db.ContractorHireRequestsCollection.CountDocuments(ctx, PendingFilter(userID, contractor.UserID))
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

	req := models.ContractorHireRequest{
		Requester:    models.Requester{ID: userID, Role: role, Name: requesterName},
		ContractorID: contractorID,
		TargetID:     contractor.UserID,
		Message:      strings.TrimSpace(in.Message),
		Status:       models.HirePending,
		CreatedAt:    time.Now(),
	}

	res, err := db.ContractorHireRequestsCollection.InsertOne(ctx, req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}
	req.ID = res.InsertedID.(primitive.ObjectID)

	notifications.Notify(ctx, models.Notification{
		UserID:   contractor.UserID,
		Role:     models.RoleContractor,
		Kind:     models.NotifHireRequest,
		Title:    "New hire request",
		Body:     requesterName + " wants to work with you.",
		EntityID: req.ID.Hex(),
	})

	utils.SendResponse(w, http.StatusCreated, req, "Hire request sent", nil)
}

// GetIncomingContractorHires handles GET /api/contractor/hire/incoming
func GetIncomingContractorHires(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listContractorHires(w, r, bson.M{"targetid": utils.GetUserIDFromRequest(r)})
}

// GetOutgoingContractorHires handles GET /api/contractor/hire/outgoing
func GetOutgoingContractorHires(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listContractorHires(w, r, bson.M{"requester.id": utils.GetUserIDFromRequest(r)})
}

func listContractorHires(w http.ResponseWriter, r *http.Request, filter bson.M) {
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.ContractorHireRequestsCollection.Find(ctx, filter, db.OptionsFindLatest(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	reqs := []models.ContractorHireRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, reqs, "ok", nil)
}

// AcceptContractorHire handles POST /api/contractor/hire/requests/:id/accept
func AcceptContractorHire(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideContractorHire(w, r, ps, models.HireAccepted)
}

// DeclineContractorHire handles POST /api/contractor/hire/requests/:id/decline
func DeclineContractorHire(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideContractorHire(w, r, ps, models.HireDeclined)
}

func decideContractorHire(w http.ResponseWriter, r *http.Request, ps httprouter.Params, decision string) {
	userID := utils.GetUserIDFromRequest(r)

	reqID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req models.ContractorHireRequest
	if err := db.ContractorHireRequestsCollection.FindOne(ctx, bson.M{"_id": reqID}).Decode(&req); err != nil {
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

	_, err = db.ContractorHireRequestsCollection.UpdateOne(ctx,
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
			models.RequestTypeContractorHire, reqID.Hex())
		if err != nil {
			log.Printf("chat bridge for contractor hire %s failed: %v", reqID.Hex(), err)
		} else {
			chatID = chat.ID.Hex()
			db.ContractorHireRequestsCollection.UpdateOne(ctx,
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
