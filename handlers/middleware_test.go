package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"contractorhub/testhelpers"
)

func TestGetUserID_FromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, "user42")
	req = req.WithContext(ctx)

	if got := GetUserID(req); got != "user42" {
		t.Errorf("GetUserID() = %q, want %q", got, "user42")
	}
}

func TestGetUserID_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(req); got != "" {
		t.Errorf("GetUserID() = %q, want empty", got)
	}
}

func TestUserScopeMiddleware_SetsContext(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	middleware := UserScopeMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", "user42")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	// e.Next() with no handler set is a no-op in PocketBase.
	_ = middleware(e)

	if got := GetUserID(e.Request); got != "user42" {
		t.Errorf("user id after middleware = %q, want %q", got, "user42")
	}
}

func TestUserScopeMiddleware_NoHeader(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	middleware := UserScopeMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	_ = middleware(e)

	if got := GetUserID(e.Request); got != "" {
		t.Errorf("user id without header = %q, want empty", got)
	}
}

func TestRequireUserID_Unauthorized(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	userID, ok := requireUserID(e)
	if ok || userID != "" {
		t.Errorf("requireUserID() = (%q, %v), want denial", userID, ok)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 written, got %d", rec.Code)
	}
}
