// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etuitionbd/server/internal/core"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "missing header", header: "", want: ""},
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
		{name: "padded token", header: "Bearer  abc123 ", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

type staticVerifier struct {
	claims *IdentityClaims
	err    error
}

func (v *staticVerifier) VerifyToken(
	_ context.Context,
	_ string,
) (*IdentityClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func TestAuthenticatorInjectsEmail(t *testing.T) {
	verifier := &staticVerifier{
		claims: &IdentityClaims{Email: "user@example.com"},
	}

	var seenEmail string
	handler := Authenticator(verifier)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			seenEmail = GetUserEmail(r.Context())
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seenEmail != "user@example.com" {
		t.Errorf("email in context = %q, want %q",
			seenEmail, "user@example.com")
	}
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	handler := Authenticator(&staticVerifier{})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler reached without token")
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticatorRejectsExpiredToken(t *testing.T) {
	verifier := &staticVerifier{err: core.ErrTokenExpired}
	handler := Authenticator(verifier)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler reached with expired token")
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

type staticResolver struct {
	roles map[string]string
}

func (r *staticResolver) ResolveRole(
	_ context.Context,
	email string,
) (string, error) {
	if role, ok := r.roles[email]; ok {
		return role, nil
	}
	return "student", nil
}

func TestRequireAdmin(t *testing.T) {
	resolver := &staticResolver{roles: map[string]string{
		"admin@example.com": "admin",
		"tutor@example.com": "tutor",
	}}

	tests := []struct {
		name       string
		email      string
		wantStatus int
	}{
		{name: "admin passes", email: "admin@example.com", wantStatus: 200},
		{name: "tutor forbidden", email: "tutor@example.com", wantStatus: 403},
		{name: "default student forbidden", email: "x@example.com", wantStatus: 403},
		{name: "unauthenticated", email: "", wantStatus: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAdmin(resolver)(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.email != "" {
				ctx := context.WithValue(r.Context(), UserEmailKey, tt.email)
				r = r.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
