package admin

import (
	"context"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/rdx"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsers handles GET /api/admin/users with optional search and role
// filters.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"phone": bson.M{"$regex": opts.Search}},
		}
	}

	listCollection(w, r, db.UsersCollection, filter, opts, func(ctx context.Context, cursor *mongo.Cursor) (any, error) {
		users := []models.User{}
		err := cursor.All(ctx, &users)
		return users, err
	})
}

// ListLabours handles GET /api/admin/labours
func ListLabours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if v := r.URL.Query().Get("verified"); v == "true" {
		filter["verified"] = true
	} else if v == "false" {
		filter["verified"] = false
	}

	listCollection(w, r, db.LaboursCollection, filter, opts, func(ctx context.Context, cursor *mongo.Cursor) (any, error) {
		labours := []models.Labour{}
		err := cursor.All(ctx, &labours)
		return labours, err
	})
}

// ListContractors handles GET /api/admin/contractors
func ListContractors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	listCollection(w, r, db.ContractorsCollection, bson.M{}, opts, func(ctx context.Context, cursor *mongo.Cursor) (any, error) {
		contractors := []models.Contractor{}
		err := cursor.All(ctx, &contractors)
		return contractors, err
	})
}

func listCollection(w http.ResponseWriter, r *http.Request, coll *mongo.Collection, filter bson.M, opts utils.QueryOptions, decode func(context.Context, *mongo.Cursor) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(opts.Skip()).
		SetLimit(int64(opts.Limit))

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	items, err := decode(ctx, cursor)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"items": items,
		"total": total,
		"page":  opts.Page,
		"limit": opts.Limit,
	}, "ok", nil)
}

// GetUser handles GET /api/admin/users/:userid — the account plus whichever
// role profiles it carries.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	out := utils.M{"user": user}

	var labour models.Labour
	if err := db.LaboursCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&labour); err == nil {
		out["labour"] = labour
	}
	var contractor models.Contractor
	if err := db.ContractorsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&contractor); err == nil {
		out["contractor"] = contractor
	}

	utils.SendResponse(w, http.StatusOK, out, "ok", nil)
}

// BlockUser handles POST /api/admin/users/:userid/block. A blocked user
// cannot log in; existing refresh tokens are revoked.
func BlockUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setBlocked(w, r, ps.ByName("userid"), true)
}

// UnblockUser handles POST /api/admin/users/:userid/unblock
func UnblockUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setBlocked(w, r, ps.ByName("userid"), false)
}

func setBlocked(w http.ResponseWriter, r *http.Request, userID string, blocked bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_blocked": blocked, "updated_at": time.Now()}}
	if blocked {
		update["$unset"] = bson.M{"refreshtoken": "", "refreshexp": ""}
	}

	res, err := db.UsersCollection.UpdateOne(ctx, bson.M{"userid": userID}, update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if blocked {
		rdx.RdxHdel("tokki", userID)
	}

	msg := "User unblocked"
	if blocked {
		msg = "User blocked"
	}
	utils.SendResponse(w, http.StatusOK, utils.M{"userid": userID, "is_blocked": blocked}, msg, nil)
}

// DeleteUser handles DELETE /api/admin/users/:userid — removes the account
// and its role profiles.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.UsersCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	db.LaboursCollection.DeleteOne(ctx, bson.M{"userid": userID})
	db.ContractorsCollection.DeleteOne(ctx, bson.M{"userid": userID})
	db.NotificationsCollection.DeleteMany(ctx, bson.M{"userid": userID})
	rdx.RdxHdel("tokki", userID)

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "User deleted", nil)
}
