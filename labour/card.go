package labour

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/filemgr"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func cardSecret() []byte {
	if s := os.Getenv("CARD_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-card-secret")
}

// CardQRPayload returns cardid|labourid|issued-unix|signature. The signature
// covers everything before it.
func CardQRPayload(cardID, labourID string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", cardID, labourID, issuedAt.Unix())
	h := hmac.New(sha256.New, cardSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyCardPayload checks the HMAC on a scanned QR payload and returns the
// embedded card and labour IDs.
func VerifyCardPayload(payload string) (cardID, labourID string, ok bool) {
	idx := strings.LastIndex(payload, "|")
	if idx < 0 {
		return "", "", false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, cardSecret())
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", "", false
	}

	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// SubmitCard handles POST /api/labour/card (multipart form). Re-submission
// is allowed after a rejection; a pending or approved card blocks it.
func SubmitCard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	if fullName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Full name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var labour models.Labour
	if err := db.LaboursCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&labour); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}
	if labour.Card != nil {
		switch labour.Card.State {
		case models.CardStatePending:
			utils.RespondWithError(w, http.StatusConflict, "Card verification already pending")
			return
		case models.CardStateApproved:
			utils.RespondWithError(w, http.StatusConflict, "Card already approved")
			return
		}
	}

	var photo string
	if file, header, err := r.FormFile("photo"); err == nil {
		photo, err = filemgr.SaveImage(file, header, filemgr.EntityCard, filemgr.PicPhoto)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	card := models.LabourCard{
		CardID:      "c" + utils.GenerateRandomString(10),
		FullName:    fullName,
		FatherName:  strings.TrimSpace(r.FormValue("father_name")),
		DateOfBirth: strings.TrimSpace(r.FormValue("dob")),
		Aadhaar:     strings.TrimSpace(r.FormValue("aadhaar")),
		Photo:       photo,
		State:       models.CardStatePending,
	}

	_, err := db.LaboursCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"card": card, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save card")
		return
	}

	vr := models.VerificationRequest{
		LabourID:  labour.LabourID,
		UserID:    userID,
		CardID:    card.CardID,
		Status:    models.CardStatePending,
		CreatedAt: time.Now(),
	}
	if _, err := db.VerificationsCollection.InsertOne(ctx, vr); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to file verification request")
		return
	}

	utils.SendResponse(w, http.StatusCreated, card, "Card submitted for verification", nil)
}

// GetMyCard handles GET /api/labour/card
func GetMyCard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	if err := db.LaboursCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&labour); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}
	if labour.Card == nil {
		utils.SendResponse(w, http.StatusOK, utils.M{"state": models.CardStateNone}, "No card submitted", nil)
		return
	}

	utils.SendResponse(w, http.StatusOK, labour.Card, "ok", nil)
}

// VerifyCard handles GET /api/card/verify?payload=... — the endpoint a
// scanned QR resolves to. Public by design; it only confirms authenticity.
func VerifyCard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload := r.URL.Query().Get("payload")
	if payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload is required")
		return
	}

	cardID, labourID, ok := VerifyCardPayload(payload)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or tampered card payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var labour models.Labour
	err := db.LaboursCollection.FindOne(ctx, bson.M{
		"labourid":    labourID,
		"card.cardid": cardID,
		"card.state":  models.CardStateApproved,
	}).Decode(&labour)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Card not found or not approved")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"valid":      true,
		"cardid":     cardID,
		"labourid":   labourID,
		"full_name":  labour.Card.FullName,
		"skill_type": labour.SkillType,
		"issued_at":  labour.Card.IssuedAt,
	}, "Card is genuine", nil)
}
