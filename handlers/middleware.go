package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const UserIDKey contextKey = "userID"

// GetUserID extracts the resolved user id from the request context.
func GetUserID(r *http.Request) string {
	if val, ok := r.Context().Value(UserIDKey).(string); ok {
		return val
	}
	return ""
}

// UserScopeMiddleware reads the caller's user id from the X-User-Id header
// and stores it in the request context. Identity resolution itself lives
// outside this app; whatever fronts it (gateway, session layer) is expected
// to set the header.
func UserScopeMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID := e.Request.Header.Get("X-User-Id")
		if userID != "" {
			ctx := context.WithValue(e.Request.Context(), UserIDKey, userID)
			e.Request = e.Request.WithContext(ctx)
		}
		return e.Next()
	}
}

// requireUserID resolves the caller's user id or writes a 401. Returns
// false when the request has already been answered.
func requireUserID(e *core.RequestEvent) (string, bool) {
	userID := GetUserID(e.Request)
	if userID == "" {
		e.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing X-User-Id header"})
		return "", false
	}
	return userID, true
}
