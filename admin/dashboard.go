package admin

import (
	"context"
	"net/http"
	"sort"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type interaction struct {
	Kind      string    `json:"kind"`
	Who       string    `json:"who"`
	What      string    `json:"what"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard handles GET /api/admin/dashboard. Counts run as independent
// queries, so the totals may be momentarily inconsistent with each other
// under concurrent writes.
func Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	count := func(coll *mongo.Collection, filter bson.M) int64 {
		n, err := coll.CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	counts := utils.M{
		"users":                 count(db.UsersCollection, bson.M{}),
		"labours":               count(db.LaboursCollection, bson.M{}),
		"verified_labours":      count(db.LaboursCollection, bson.M{"verified": true}),
		"contractors":           count(db.ContractorsCollection, bson.M{}),
		"jobs":                  count(db.JobsCollection, bson.M{}),
		"open_jobs":             count(db.JobsCollection, bson.M{"status": models.JobOpen}),
		"contractor_jobs":       count(db.ContractorJobsCollection, bson.M{}),
		"hire_requests":         count(db.HireRequestsCollection, bson.M{}),
		"pending_verifications": count(db.VerificationsCollection, bson.M{"status": models.CardStatePending}),
		"chats":                 count(db.ChatsCollection, bson.M{"active": true}),
		"feedback":              count(db.FeedbackCollection, bson.M{}),
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"counts":              counts,
		"recent_interactions": recentInteractions(ctx),
	}, "ok", nil)
}

// recentInteractions merges the latest hire requests and job applications
// into one feed, newest first. Failures in one source leave the others in
// the feed.
func recentInteractions(ctx context.Context) []interaction {
	items := []interaction{}

	var hires []models.HireRequest
	if cursor, err := db.HireRequestsCollection.Find(ctx, bson.M{}, db.OptionsFindLatest(10)); err == nil {
		cursor.All(ctx, &hires)
		cursor.Close(ctx)
	}
	for _, h := range hires {
		items = append(items, interaction{
			Kind:      "hire_request",
			Who:       h.Requester.Name,
			What:      h.LabourID,
			Status:    h.Status,
			CreatedAt: h.CreatedAt,
		})
	}

	var chires []models.ContractorHireRequest
	if cursor, err := db.ContractorHireRequestsCollection.Find(ctx, bson.M{}, db.OptionsFindLatest(10)); err == nil {
		cursor.All(ctx, &chires)
		cursor.Close(ctx)
	}
	for _, h := range chires {
		items = append(items, interaction{
			Kind:      "contractor_hire_request",
			Who:       h.Requester.Name,
			What:      h.ContractorID,
			Status:    h.Status,
			CreatedAt: h.CreatedAt,
		})
	}

	var jobs []models.Job
	if cursor, err := db.JobsCollection.Find(ctx, bson.M{"applications.0": bson.M{"$exists": true}}, db.OptionsFindLatest(10)); err == nil {
		cursor.All(ctx, &jobs)
		cursor.Close(ctx)
	}
	for _, j := range jobs {
		for _, a := range j.Applications {
			items = append(items, interaction{
				Kind:      "job_application",
				Who:       a.ApplicantName,
				What:      j.Title,
				Status:    a.Status,
				CreatedAt: a.AppliedAt,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > 20 {
		items = items[:20]
	}
	return items
}
