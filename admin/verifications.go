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

// ListVerifications handles GET /api/admin/verifications?status=pending
func ListVerifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.VerificationsCollection.Find(ctx, filter, db.OptionsFindLatest(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	items := []models.VerificationRequest{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, items, "ok", nil)
}

// ApproveVerification handles POST /api/admin/verifications/:id/approve.
// Approval stamps the card, marks the labour verified and notifies them.
func ApproveVerification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideVerification(w, r, ps, models.CardStateApproved)
}

// RejectVerification handles POST /api/admin/verifications/:id/reject
func RejectVerification(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideVerification(w, r, ps, models.CardStateRejected)
}

func decideVerification(w http.ResponseWriter, r *http.Request, ps httprouter.Params, decision string) {
	adminID := utils.GetAdminIDFromRequest(r)

	vrID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid verification ID")
		return
	}

	var in struct {
		Remark string `json:"remark"`
	}
	json.NewDecoder(r.Body).Decode(&in)
	in.Remark = strings.TrimSpace(in.Remark)
	if decision == models.CardStateRejected && in.Remark == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "A remark is required when rejecting")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var vr models.VerificationRequest
	if err := db.VerificationsCollection.FindOne(ctx, bson.M{"_id": vrID}).Decode(&vr); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Verification request not found")
		return
	}
	if vr.Status != models.CardStatePending {
		utils.RespondWithError(w, http.StatusBadRequest, "Request already "+vr.Status)
		return
	}

	now := time.Now()
	_, err = db.VerificationsCollection.UpdateOne(ctx,
		bson.M{"_id": vrID},
		bson.M{"$set": bson.M{
			"status":      decision,
			"remark":      in.Remark,
			"reviewed_by": adminID,
			"reviewed_at": now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update verification")
		return
	}

	cardSet := bson.M{
		"card.state": decision,
		"updated_at": now,
	}
	if decision == models.CardStateApproved {
		cardSet["card.issued_at"] = now
		cardSet["verified"] = true
	}
	_, err = db.LaboursCollection.UpdateOne(ctx,
		bson.M{"labourid": vr.LabourID, "card.cardid": vr.CardID},
		bson.M{"$set": cardSet},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update labour card")
		return
	}

	title := "Labour card approved"
	body := "Your labour card has been approved. You can now print it."
	if decision == models.CardStateRejected {
		title = "Labour card rejected"
		body = "Your card was rejected: " + in.Remark
	}
	notifications.Notify(ctx, models.Notification{
		UserID:   vr.UserID,
		Role:     models.RoleLabour,
		Kind:     models.NotifVerification,
		Title:    title,
		Body:     body,
		EntityID: vr.CardID,
	})

	utils.SendResponse(w, http.StatusOK, utils.M{
		"verificationid": vrID.Hex(),
		"status":         decision,
	}, "Verification "+decision, nil)
}
