package rounds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openfairway/one-and-done/internal/platform/logging"
	"github.com/openfairway/one-and-done/internal/usecase"
)

func TestVerifyAccessToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"u1","email":"alice@example.com"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", logging.NewNop())

	principal, err := client.VerifyAccessToken(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "u1" || principal.Email != "alice@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, "http://localhost:8081", "/v1/auth/introspect", logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_Denied(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "bad-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":false}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "expired-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for inactive token, got %v", err)
	}
}

func TestVerifyAccessToken_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "token-123")
	if err == nil {
		t.Fatalf("expected error on upstream failure")
	}
	if errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("upstream failure must not read as unauthorized, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base string
		path string
		want string
	}{
		{"http://localhost:8081/", "/v1/auth/introspect", "http://localhost:8081/v1/auth/introspect"},
		{"http://localhost:8081", "v1/auth/introspect", "http://localhost:8081/v1/auth/introspect"},
		{"http://localhost:8081", "", "http://localhost:8081"},
		{"http://localhost:8081", "https://auth.example.com/introspect", "https://auth.example.com/introspect"},
	}
	for _, tc := range cases {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
