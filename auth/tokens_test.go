package auth

import (
	"testing"

	"majdoorsathi/middleware"
	"majdoorsathi/models"
)

func TestGenerateAccessTokenCarriesIdentity(t *testing.T) {
	user := models.User{UserID: "u123", Phone: "9876543210", Role: models.RoleContractor}

	token, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u123" || claims.Phone != "9876543210" || claims.Role != models.RoleContractor {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestGenerateRefreshTokenIsUnique(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a == b {
		t.Fatal("two refresh tokens collided")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashTokenIsDeterministic(t *testing.T) {
	if hashToken("abc") != hashToken("abc") {
		t.Fatal("same input hashed differently")
	}
	if hashToken("abc") == hashToken("abd") {
		t.Fatal("different inputs collided")
	}
	if len(hashToken("abc")) != 64 {
		t.Fatalf("expected sha256 hex length 64, got %d", len(hashToken("abc")))
	}
}
