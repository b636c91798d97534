package utils

import (
	"majdoorsathi/globals"
	"net/http"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) string {
	role, ok := r.Context().Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}

func GetAdminIDFromRequest(r *http.Request) string {
	adminID, ok := r.Context().Value(globals.AdminIDKey).(string)
	if !ok {
		return ""
	}
	return adminID
}
