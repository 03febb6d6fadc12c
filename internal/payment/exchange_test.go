// AngelaMos | 2026
// exchange_test.go

package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etuitionbd/server/internal/core"
)

func TestExchangeClientRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/BDT" {
				t.Errorf("path = %q, want /BDT", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			_, _ = w.Write([]byte(`{"rates":{"USD":0.0085,"EUR":0.0079}}`))
		}))
	defer srv.Close()

	client := NewExchangeClient(srv.URL, 5*time.Second)

	rate, err := client.Rate(context.Background(), "BDT", "USD")
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if rate != 0.0085 {
		t.Errorf("Rate() = %v, want 0.0085", rate)
	}
}

func TestExchangeClientUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				//nolint:errcheck // test server
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "missing currency",
			handler: func(w http.ResponseWriter, r *http.Request) {
				//nolint:errcheck // test server
				_, _ = w.Write([]byte(`{"rates":{"EUR":0.0079}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewExchangeClient(srv.URL, 5*time.Second)

			_, err := client.Rate(context.Background(), "BDT", "USD")
			if !errors.Is(err, core.ErrUpstream) {
				t.Errorf("Rate() error = %v, want ErrUpstream", err)
			}
		})
	}
}

func TestExchangeClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
	defer srv.Close()

	client := NewExchangeClient(srv.URL, 10*time.Millisecond)

	_, err := client.Rate(context.Background(), "BDT", "USD")
	if !errors.Is(err, core.ErrUpstream) {
		t.Errorf("Rate() error = %v, want ErrUpstream", err)
	}
}
