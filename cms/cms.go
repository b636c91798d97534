package cms

import (
	"context"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetContent handles GET /api/cms/:key — public pages like about-us,
// terms, privacy-policy.
func GetContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("key")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var content models.CMSContent
	if err := db.CMSCollection.FindOne(ctx, bson.M{"key": key}).Decode(&content); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, content, "ok", nil)
}
