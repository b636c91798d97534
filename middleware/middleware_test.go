package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"majdoorsathi/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signTestToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signTestToken(t, Claims{
		Phone:  "9876543210",
		UserID: "u123",
		Role:   "labour",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u123" || claims.Role != "labour" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateRejectsUpgradeHeadersWithoutToken(t *testing.T) {
	called := false
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	// Upgrade headers alone must not substitute for a token.
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if called {
		t.Fatal("handler ran on upgrade headers without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticateSetsContext(t *testing.T) {
	token := signTestToken(t, Claims{
		UserID: "u123",
		Role:   "labour",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var gotUserID, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if gotUserID != "u123" || gotRole != "labour" {
		t.Fatalf("context userID=%q role=%q", gotUserID, gotRole)
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token := signTestToken(t, Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestValidateJWTBadHeader(t *testing.T) {
	for _, h := range []string{"", "Bearer", "Basic abc", "nonsense"} {
		if _, err := ValidateJWT(h); err == nil {
			t.Fatalf("expected %q to be rejected", h)
		}
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	claims := Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expected token signed with the wrong secret to fail")
	}
}
