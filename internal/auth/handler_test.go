// AngelaMos | 2026
// handler_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestGetTokenIssuesVerifiableToken(t *testing.T) {
	manager := testManager(t, time.Hour)
	handler := NewHandler(manager)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	body := strings.NewReader(`{"email":"user@example.com","name":"User"}`)
	r := httptest.NewRequest(http.MethodPost, "/getToken", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp TokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	claims, err := manager.VerifyToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@example.com")
	}
}

func TestGetTokenRejectsBadRequests(t *testing.T) {
	manager := testManager(t, time.Hour)
	handler := NewHandler(manager)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"email":`},
		{name: "missing email", body: `{"name":"User"}`},
		{name: "invalid email", body: `{"email":"not-an-email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(
				http.MethodPost,
				"/getToken",
				strings.NewReader(tt.body),
			)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
