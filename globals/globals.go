package globals

import (
	"context"
	"os"
)

var (
	JwtSecret      = []byte(getenv("JWT_SECRET", "dev_jwt_secret"))
	AdminJwtSecret = []byte(getenv("ADMIN_JWT_SECRET", "dev_admin_jwt_secret"))
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"
const AdminIDKey ContextKey = "adminId"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
