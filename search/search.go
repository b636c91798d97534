package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"majdoorsathi/db"
	"majdoorsathi/globals"
	"majdoorsathi/models"
	"majdoorsathi/mq"
	"majdoorsathi/rdx"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

// autocomplete terms live in one sorted set per entity type
func acKey(entityType string) string { return "ac:" + entityType }

// IndexDatainRedis adds or removes an autocomplete term for an entity.
func IndexDatainRedis(ctx context.Context, event models.Index) error {
	title := strings.ToLower(strings.TrimSpace(event.Title))
	if title == "" {
		return nil
	}

	switch event.Method {
	case "deleted":
		return rdx.Conn.ZRem(ctx, acKey(event.EntityType), title).Err()
	default:
		return rdx.Conn.ZAdd(ctx, acKey(event.EntityType), redis.Z{Score: 0, Member: title}).Err()
	}
}

// StartIndexingWorker consumes mq events and maintains the autocomplete
// index. Run in a goroutine from main.
func StartIndexingWorker() {
	sub := rdx.Conn.Subscribe(globals.Ctx, mq.Channel)
	ch := sub.Channel()

	log.Println("[search] indexing worker listening")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[search] bad event payload: %v", err)
			continue
		}
		if err := IndexDatainRedis(globals.Ctx, event); err != nil {
			log.Printf("[search] index error: %v", err)
		}
	}
}

// Autocompleter handles GET /api/ac?entity=jobs&q=plum
func Autocompleter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	entity := r.URL.Query().Get("entity")
	if entity == "" {
		entity = "jobs"
	}
	if q == "" {
		utils.SendResponse(w, http.StatusOK, []string{}, "ok", nil)
		return
	}

	matches, err := rdx.Conn.ZRangeByLex(r.Context(), acKey(entity), &redis.ZRangeBy{
		Min:    "[" + q,
		Max:    "[" + q + "\xff",
		Offset: 0,
		Count:  10,
	}).Result()
	if err != nil {
		matches = []string{}
	}
	utils.SendResponse(w, http.StatusOK, matches, "ok", nil)
}

// SearchHandler handles GET /api/search/:entityType?search=
func SearchHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	opts := utils.ParseQueryOptions(r)
	if opts.Search == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "search query required")
		return
	}
	regex := bson.M{"$regex": opts.Search, "$options": "i"}

	switch ps.ByName("entityType") {
	case "jobs":
		cursor, err := db.JobsCollection.Find(r.Context(), bson.M{
			"status": models.JobOpen,
			"$or":    []bson.M{{"title": regex}, {"description": regex}, {"category": regex}},
		}, db.OptionsFindLatest(int64(opts.Limit)))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
			return
		}
		defer cursor.Close(r.Context())
		jobs := []models.Job{}
		if err := cursor.All(r.Context(), &jobs); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Parse error")
			return
		}
		utils.SendResponse(w, http.StatusOK, jobs, "ok", nil)
	case "labours":
		cursor, err := db.LaboursCollection.Find(r.Context(), bson.M{
			"$or": []bson.M{{"name": regex}, {"skill_type": regex}, {"category": regex}, {"address": regex}},
		}, db.OptionsFindLatest(int64(opts.Limit)))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
			return
		}
		defer cursor.Close(r.Context())
		labours := []models.Labour{}
		if err := cursor.All(r.Context(), &labours); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Parse error")
			return
		}
		utils.SendResponse(w, http.StatusOK, labours, "ok", nil)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "unknown entity type")
	}
}
