package datagolf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openfairway/one-and-done/internal/platform/resilience"
	"github.com/openfairway/one-and-done/internal/usecase"
)

func TestClient_ListField(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/field-updates" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret-key" {
			t.Errorf("missing api key in query")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"event_name": "Desert Classic",
			"field": [
				{"player_name": "Scheffler, Scottie", "country": "USA", "am": 0},
				{"player_name": "Dunlap, Nick", "country": "USA", "am": 1},
				{"player_name": "", "country": "", "am": 0}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Key:     "secret-key",
	})

	got, err := client.ListField(context.Background())
	if err != nil {
		t.Fatalf("ListField error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	want := usecase.FieldPlayer{Name: "Scottie Scheffler", Country: "USA"}
	if got[0] != want {
		t.Fatalf("unexpected first player: %+v", got[0])
	}
	if !got[1].Amateur {
		t.Fatalf("expected amateur flag on second player")
	}
}

func TestClient_ListField_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Key:        "secret-key",
		MaxRetries: 3,
	})

	if _, err := client.ListField(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
	if calls != 1 {
		t.Fatalf("expected no retries on 403, got %d calls", calls)
	}
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Key:            "secret-key",
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	})

	for i := 0; i < 5; i++ {
		if _, err := client.ListField(context.Background()); err == nil {
			t.Fatal("expected error from failing feed")
		}
	}

	_, err := client.ListField(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected circuit rejection, got %v", err)
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://feeds.datagolf.com/field-updates?file_format=json&key=secret&tour=pga")
	if strings.Contains(got, "secret") {
		t.Fatalf("key leaked in %q", got)
	}
	if !strings.Contains(got, "key=REDACTED") {
		t.Fatalf("expected redaction marker in %q", got)
	}
}

func TestNormalizePlayerName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Scheffler, Scottie": "Scottie Scheffler",
		"Scottie Scheffler":  "Scottie Scheffler",
		"  ":                 "",
	}
	for raw, want := range cases {
		if got := normalizePlayerName(raw); got != want {
			t.Fatalf("normalizePlayerName(%q) = %q, want %q", raw, got, want)
		}
	}
}
