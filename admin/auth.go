package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/globals"
	"majdoorsathi/middleware"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 8 * time.Hour

// SeedSuperAdmin creates the super admin from SUPER_ADMIN_EMAIL and
// SUPER_ADMIN_PASSWORD if no admin with that email exists. Call at startup.
func SeedSuperAdmin(ctx context.Context) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SUPER_ADMIN_EMAIL")))
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	err := db.AdminsCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("super admin seed lookup: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("super admin seed hash: %v", err)
		return
	}

	_, err = db.AdminsCollection.InsertOne(ctx, models.Admin{
		AdminID:      "adm" + utils.GenerateRandomString(10),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Super Admin",
		IsSuper:      true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		log.Printf("super admin seed insert: %v", err)
		return
	}
	log.Printf("seeded super admin %s", email)
}

// Login handles POST /api/admin/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var adm models.Admin
	if err := db.AdminsCollection.FindOne(ctx, bson.M{"email": in.Email}).Decode(&adm); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(in.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	claims := middleware.AdminClaims{
		AdminID: adm.AdminID,
		Email:   adm.Email,
		IsSuper: adm.IsSuper,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.AdminJwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	db.AdminsCollection.UpdateOne(ctx, bson.M{"adminid": adm.AdminID},
		bson.M{"$set": bson.M{"last_login": time.Now()}})

	utils.SendResponse(w, http.StatusOK, utils.M{
		"token":    token,
		"adminid":  adm.AdminID,
		"email":    adm.Email,
		"name":     adm.Name,
		"is_super": adm.IsSuper,
	}, "Login successful", nil)
}

// CreateAdmin handles POST /api/admin/admins — only a super admin may add
// staff accounts.
func CreateAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	adminID := utils.GetAdminIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var caller models.Admin
	if err := db.AdminsCollection.FindOne(ctx, bson.M{"adminid": adminID}).Decode(&caller); err != nil || !caller.IsSuper {
		utils.RespondWithError(w, http.StatusForbidden, "Super admin only")
		return
	}

	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || len(in.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	adm := models.Admin{
		AdminID:      "adm" + utils.GenerateRandomString(10),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		CreatedAt:    time.Now(),
	}
	if _, err := db.AdminsCollection.InsertOne(ctx, adm); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Admin with that email already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	utils.SendResponse(w, http.StatusCreated, adm, "Admin created", nil)
}
