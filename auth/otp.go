package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/otp"
	"majdoorsathi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The bypass number always receives this fixed code and never hits the
// gateway, so app-store reviewers and test devices can log in.
const (
	bypassNumber = "9575500329"
	bypassCode   = "123456"
)

func sendOTPHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Phone string `json:"mobileNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !utils.IsValidMobile(input.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	sendLoginCode(w, input.Phone)
}

func verifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Phone string `json:"mobileNumber"`
		OTP   string `json:"otp"`
		Role  string `json:"userType,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !utils.IsValidMobile(input.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid mobile number")
		return
	}

	if err := codes.Verify(input.Phone, input.OTP); err != nil {
		switch {
		case errors.Is(err, otp.ErrNotFound):
			utils.RespondWithError(w, http.StatusBadRequest, "OTP not found or expired")
		case errors.Is(err, otp.ErrTooManyTries):
			utils.RespondWithError(w, http.StatusBadRequest, "Too many incorrect attempts")
		case errors.Is(err, otp.ErrMismatch):
			utils.RespondWithError(w, http.StatusBadRequest, "Incorrect OTP")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "OTP verification failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		// first OTP login creates a stub account
		role := input.Role
		if role == "" {
			role = models.RoleUser
		}
		if role != models.RoleUser && role != models.RoleLabour && role != models.RoleContractor {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid user type")
			return
		}
		user = models.User{
			UserID:    "u" + utils.GenerateRandomString(10),
			Phone:     input.Phone,
			Role:      role,
			CreatedAt: time.Now(),
		}
		if _, err := db.UsersCollection.InsertOne(ctx, user); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user.IsBlocked {
		utils.RespondWithError(w, http.StatusForbidden, "Account is blocked")
		return
	}

	issueTokens(w, ctx, user)
}
