package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"workdesk/internal/domain/auth"
)

type staticPerms struct {
	granted map[string]bool
	err     error
}

func (s staticPerms) HasPermission(_ context.Context, roleID, permission string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.granted[roleID+":"+permission], nil
}

func permRequest(t *testing.T, store PermissionStore, user *auth.UserContext) *httptest.ResponseRecorder {
	t.Helper()
	var reached bool
	handler := RequirePermission("reports.run", store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("POST", "/reports/performance", nil)
	if user != nil {
		r = r.WithContext(WithUser(r.Context(), *user))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code == http.StatusOK && !reached {
		t.Fatal("200 without reaching the handler")
	}
	if rec.Code != http.StatusOK && reached {
		t.Fatalf("handler reached despite %d", rec.Code)
	}
	return rec
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	rec := permRequest(t, staticPerms{}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestRequirePermissionDenied(t *testing.T) {
	user := auth.UserContext{UserID: "u1", RoleID: "role-employee", Role: auth.RoleEmployee}
	rec := permRequest(t, staticPerms{granted: map[string]bool{}}, &user)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestRequirePermissionGranted(t *testing.T) {
	user := auth.UserContext{UserID: "u1", RoleID: "role-admin", Role: auth.RoleAdmin}
	store := staticPerms{granted: map[string]bool{"role-admin:reports.run": true}}
	rec := permRequest(t, store, &user)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestRequirePermissionLookupFailureFailsClosed(t *testing.T) {
	user := auth.UserContext{UserID: "u1", RoleID: "role-admin", Role: auth.RoleAdmin}
	rec := permRequest(t, staticPerms{err: errors.New("pool exhausted")}, &user)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
}
