package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/mq"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contractor jobs share the Job application lifecycle but are posted by
// contractors and browsed by labour.

// CreateContractorJob handles POST /api/contractorjobs
func CreateContractorJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var in jobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := in.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contractor models.Contractor
	if err := db.ContractorsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&contractor); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Contractor profile required")
		return
	}

	job := models.ContractorJob{
		ContractorID: contractor.ContractorID,
		OwnerID:      userID,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Location:     in.Location,
		Wage:         in.Wage,
		WorkHours:    in.WorkHours,
		Requirements: in.Requirements,
		WorkersCount: in.WorkersCount,
		Status:       models.JobOpen,
		Applications: []models.Application{},
		CreatedAt:    time.Now(),
	}

	res, err := db.ContractorJobsCollection.InsertOne(ctx, job)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save job")
		return
	}
	job.ID = res.InsertedID.(primitive.ObjectID)

	mq.Emit(ctx, "created", models.Index{
		EntityType: "jobs", EntityId: job.ID.Hex(), Title: job.Title,
	})

	utils.SendResponse(w, http.StatusCreated, job, "Job posted", nil)
}

// GetContractorJobs handles GET /api/contractorjobs — open contractor jobs.
func GetContractorJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"status": models.JobOpen}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Location != "" {
		filter["location"] = bson.M{"$regex": opts.Location, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.ContractorJobsCollection.Find(ctx, filter,
		db.OptionsFindLatest(int64(opts.Limit)).SetSkip(opts.Skip()))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	jobs := []models.ContractorJob{}
	if err := cursor.All(ctx, &jobs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Parse error")
		return
	}

	utils.SendResponse(w, http.StatusOK, jobs, "ok", nil)
}

// GetMyContractorJobs handles GET /api/mycontractorjobs
func GetMyContractorJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.ContractorJobsCollection.Find(ctx, bson.M{"ownerid": userID},
		db.OptionsFindLatest(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	jobs := []models.ContractorJob{}
	if err := cursor.All(ctx, &jobs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Parse error")
		return
	}

	utils.SendResponse(w, http.StatusOK, jobs, "ok", nil)
}

// GetContractorJobByID handles GET /api/contractorjobs/:id
func GetContractorJobByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var job models.ContractorJob
	if err := db.ContractorJobsCollection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, job, "ok", nil)
}

// UpdateContractorJob handles PUT /api/contractorjobs/:id — owner only.
func UpdateContractorJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var in struct {
		jobInput
		Status string `json:"status,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if in.Title != "" {
		set["title"] = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		set["description"] = strings.TrimSpace(in.Description)
	}
	if in.Category != "" {
		set["category"] = strings.TrimSpace(in.Category)
	}
	if in.Location != "" {
		set["location"] = strings.TrimSpace(in.Location)
	}
	if in.Wage != "" {
		set["wage"] = strings.TrimSpace(in.Wage)
	}
	if in.WorkHours != "" {
		set["work_hours"] = in.WorkHours
	}
	if in.Requirements != "" {
		set["requirements"] = in.Requirements
	}
	if in.WorkersCount > 0 {
		set["workers_count"] = in.WorkersCount
	}
	if in.Status != "" {
		if in.Status != models.JobOpen && in.Status != models.JobClosed && in.Status != models.JobFilled {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		set["status"] = in.Status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ContractorJobsCollection.UpdateOne(ctx,
		bson.M{"_id": jobID, "ownerid": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusForbidden, "Not your job")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Job updated", nil)
}

// DeleteContractorJob handles DELETE /api/contractorjobs/:id — owner only.
func DeleteContractorJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ContractorJobsCollection.DeleteOne(ctx, bson.M{"_id": jobID, "ownerid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusForbidden, "Not your job")
		return
	}

	mq.Emit(ctx, "deleted", models.Index{EntityType: "jobs", EntityId: jobID.Hex()})

	utils.SendResponse(w, http.StatusOK, nil, "Job deleted", nil)
}

// WithdrawContractorApplication handles DELETE /api/contractorjobs/:id/apply
func WithdrawContractorApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ContractorJobsCollection.UpdateOne(ctx,
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

// ApplyToContractorJob handles POST /api/contractorjobs/:id/apply
func ApplyToContractorJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var job models.ContractorJob
	if err := db.ContractorJobsCollection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
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
		ApplicantName: in.Name,
		Message:       in.Message,
		Status:        models.ApplicationPending,
		AppliedAt:     time.Now(),
	}

	res, err := db.ContractorJobsCollection.UpdateOne(ctx,
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

// AcceptContractorApplication handles
// POST /api/contractorjobs/:id/applications/:appid/accept
func AcceptContractorApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideApplication(w, r, ps, db.ContractorJobsCollection, models.RequestTypeContractorJobApply, models.ApplicationAccepted)
}

// RejectContractorApplication handles
// POST /api/contractorjobs/:id/applications/:appid/reject
func RejectContractorApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideApplication(w, r, ps, db.ContractorJobsCollection, models.RequestTypeContractorJobApply, models.ApplicationRejected)
}
