package categories

import (
	"context"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCategories handles GET /api/categories — active labour categories,
// alphabetical. This is the list the registration and browse screens show.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.CategoriesCollection.Find(ctx,
		bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB error")
		return
	}
	defer cursor.Close(ctx)

	cats := []models.LabourCategory{}
	if err := cursor.All(ctx, &cats); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}

	utils.SendResponse(w, http.StatusOK, cats, "ok", nil)
}
