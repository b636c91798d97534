package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var slugRe = strings.NewReplacer(" ", "-", "_", "-")

func slugify(s string) string {
	return slugRe.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// UpsertContent handles PUT /api/admin/cms/:key — creates or replaces a
// CMS page.
func UpsertContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	adminID := utils.GetAdminIDFromRequest(r)
	key := ps.ByName("key")

	var in struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and body are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	var content models.CMSContent
	err := db.CMSCollection.FindOneAndUpdate(ctx,
		bson.M{"key": key},
		bson.M{
			"$set": bson.M{
				"title":      in.Title,
				"body":       in.Body,
				"updated_by": adminID,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"key": key, "created_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&content)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}

	utils.SendResponse(w, http.StatusOK, content, "Content saved", nil)
}

// ListContent handles GET /api/admin/cms
func ListContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.CMSCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	items := []models.CMSContent{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, items, "ok", nil)
}

// DeleteContent handles DELETE /api/admin/cms/:key
func DeleteContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.CMSCollection.DeleteOne(ctx, bson.M{"key": ps.ByName("key")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "Content deleted", nil)
}

// CreateCategory handles POST /api/admin/categories
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slug := slugify(in.Name)
	count, err := db.CategoriesCollection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Category already exists")
		return
	}

	cat := models.LabourCategory{
		Name:      in.Name,
		Slug:      slug,
		Icon:      in.Icon,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	res, err := db.CategoriesCollection.InsertOne(ctx, cat)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	cat.ID = res.InsertedID.(primitive.ObjectID)

	utils.SendResponse(w, http.StatusCreated, cat, "Category created", nil)
}

// UpdateCategory handles PUT /api/admin/categories/:id — rename, change
// icon or toggle active.
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	catID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var in struct {
		Name     *string `json:"name"`
		Icon     *string `json:"icon"`
		IsActive *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		set["name"] = strings.TrimSpace(*in.Name)
		set["slug"] = slugify(*in.Name)
	}
	if in.Icon != nil {
		set["icon"] = *in.Icon
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cat models.LabourCategory
	err = db.CategoriesCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": catID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cat)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, cat, "Category updated", nil)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	catID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.CategoriesCollection.DeleteOne(ctx, bson.M{"_id": catID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": true}, "Category deleted", nil)
}
