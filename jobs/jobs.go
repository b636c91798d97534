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

type jobInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Wage         string `json:"wage"`
	WorkHours    string `json:"workHours,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	WorkersCount int    `json:"workersCount,omitempty"`
}

func (in *jobInput) validate() string {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)
	in.Wage = strings.TrimSpace(in.Wage)
	if in.Title == "" || in.Description == "" || in.Category == "" ||
		in.Location == "" || in.Wage == "" {
		return "Missing required fields"
	}
	return ""
}

// CreateJob handles POST /api/jobs
func CreateJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	job := models.Job{
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.JobsCollection.InsertOne(ctx, job)
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

// GetJobs handles GET /api/jobs — open jobs, optionally filtered.
func GetJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	cursor, err := db.JobsCollection.Find(ctx, filter,
		db.OptionsFindLatest(int64(opts.Limit)).SetSkip(opts.Skip()))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Parse error")
		return
	}

	utils.SendResponse(w, http.StatusOK, jobs, "ok", nil)
}

// GetMyJobs handles GET /api/myjobs — the caller's own postings,
// applications included.
func GetMyJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.JobsCollection.Find(ctx, bson.M{"ownerid": userID},
		db.OptionsFindLatest(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Parse error")
		return
	}

	utils.SendResponse(w, http.StatusOK, jobs, "ok", nil)
}

// GetJobByID handles GET /api/jobs/:id
func GetJobByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, job, "ok", nil)
}

// UpdateJob handles PUT /api/jobs/:id — owner only.
func UpdateJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
	if in.Status != "" {
		if in.Status != models.JobOpen && in.Status != models.JobClosed && in.Status != models.JobFilled {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		set["status"] = in.Status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.JobsCollection.UpdateOne(ctx,
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

// DeleteJob handles DELETE /api/jobs/:id — owner only.
func DeleteJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	jobID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.JobsCollection.DeleteOne(ctx, bson.M{"_id": jobID, "ownerid": userID})
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
