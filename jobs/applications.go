package jobs

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

// FindApplication returns the embedded application with the given ID, or nil.
func FindApplication(apps []models.Application, applicationID string) *models.Application {
	for i := range apps {
		if apps[i].ApplicationID == applicationID {
			return &apps[i]
		}
	}
	return nil
}

// HasApplied reports whether applicantID already has an application on the
// job, whatever its status.
func HasApplied(apps []models.Application, applicantID string) bool {
	for _, a := range apps {
		if a.ApplicantID == applicantID {
			return true
		}
	}
	return false
}

// ApplyToJob handles POST /api/jobs/:id/apply
func ApplyToJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var in struct {
		Message string `json:"message"`
		Name    string `json:"name,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	if job.Status != models.JobOpen {
		utils.RespondWithError(w, http.StatusBadRequest, "Job is not open for applications")
		return
	}
	if job.OwnerID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot apply to your own job")
		return
	}
	if HasApplied(job.Applications, userID) {
		utils.RespondWithError(w, http.StatusBadRequest, "Already applied to this job")
		return
	}

	app := models.Application{
		ApplicationID: "a" + utils.GenerateRandomString(10),
		ApplicantID:   userID,
		ApplicantName: strings.TrimSpace(in.Name),
		Message:       strings.TrimSpace(in.Message),
		Status:        models.ApplicationPending,
		AppliedAt:     time.Now(),
	}

	// guard against the job closing between read and write
	res, err := db.JobsCollection.UpdateOne(ctx,
		bson.M{"_id": jobID, "status": models.JobOpen},
		bson.M{"$push": bson.M{"applications": app}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to apply")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Job is not open for applications")
		return
	}

	utils.SendResponse(w, http.StatusCreated, app, "Application submitted", nil)
}

// CanDecide reports whether an application in the current status may take
// the given decision. Repeating the same decision is allowed (idempotent);
// flipping a decided application is not.
func CanDecide(current, decision string) bool {
	return current == models.ApplicationPending || current == decision
}

// AcceptApplication handles POST /api/jobs/:id/applications/:appid/accept.
// The status write and the chat creation are two separate writes: if the
// chat bridge fails the accept still stands, chatid stays empty, and the
// failure is only logged.
func AcceptApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideApplication(w, r, ps, db.JobsCollection, models.RequestTypeJobApplication, models.ApplicationAccepted)
}

// RejectApplication handles POST /api/jobs/:id/applications/:appid/reject.
func RejectApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideApplication(w, r, ps, db.JobsCollection, models.RequestTypeJobApplication, models.ApplicationRejected)
}

func decideApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params,
	coll *mongo.Collection, requestType, decision string) {

	userID := utils.GetUserIDFromRequest(r)
	appID := ps.ByName("appid")

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var job models.Job
	if err := coll.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your job")
		return
	}

	app := FindApplication(job.Applications, appID)
	if app == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Application not found")
		return
	}
	if !CanDecide(app.Status, decision) {
		utils.RespondWithError(w, http.StatusBadRequest, "Application already decided")
		return
	}

	_, err = coll.UpdateOne(ctx,
		bson.M{"_id": jobID, "applications.applicationid": appID},
		bson.M{"$set": bson.M{
			"applications.$.status":     decision,
			"applications.$.decided_at": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update application")
		return
	}

	chatID := app.ChatID
	if decision == models.ApplicationAccepted {
		chat, err := chats.CreateChatFromRequest(ctx, job.OwnerID, app.ApplicantID, requestType, appID)
		if err != nil {
			// accepted but chat-less; a later accept or hire retries the
			// bridge
			log.Printf("chat bridge for application %s failed: %v", appID, err)
		} else {
			chatID = chat.ID.Hex()
			coll.UpdateOne(ctx,
				bson.M{"_id": jobID, "applications.applicationid": appID},
				bson.M{"$set": bson.M{"applications.$.chatid": chatID}},
			)
		}

		notifications.Notify(ctx, models.Notification{
			UserID:   app.ApplicantID,
			Kind:     models.NotifApplicationAccepted,
			Title:    "Application accepted",
			Body:     "Your application for \"" + job.Title + "\" was accepted.",
			EntityID: jobID.Hex(),
		})
	} else {
		notifications.Notify(ctx, models.Notification{
			UserID:   app.ApplicantID,
			Kind:     models.NotifApplicationRejected,
			Title:    "Application update",
			Body:     "Your application for \"" + job.Title + "\" was not selected.",
			EntityID: jobID.Hex(),
		})
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"applicationid": appID,
		"status":        decision,
		"chatid":        chatID,
	}, "Application "+strings.ToLower(decision), nil)
}

// WithdrawApplication handles DELETE /api/jobs/:id/apply — the applicant
// pulls their own pending application.
func WithdrawApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.JobsCollection.UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$pull": bson.M{"applications": bson.M{
			"applicantid": userID,
			"status":      models.ApplicationPending,
		}}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to withdraw")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No pending application found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Application withdrawn", nil)
}
