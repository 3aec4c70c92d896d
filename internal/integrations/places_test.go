package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shootdeck/backend/config"
)

func TestNewPlacesClientDisabled(t *testing.T) {
	if cl := NewPlacesClient(config.GoogleConfig{}); cl != nil {
		t.Error("expected nil client without API key")
	}
}

func TestPlacesAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/autocomplete/json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("input"); got != "shibuya crossing" {
			t.Errorf("input = %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "k" {
			t.Errorf("key = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"predictions": []map[string]string{
				{"place_id": "p1", "description": "Shibuya Crossing, Tokyo"},
			},
		})
	}))
	defer srv.Close()

	cl := NewPlacesClient(config.GoogleConfig{APIKey: "k", PlacesAPIBaseURL: srv.URL})
	got, err := cl.Autocomplete(context.Background(), "shibuya crossing")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(got) != 1 || got[0].PlaceID != "p1" || got[0].Description != "Shibuya Crossing, Tokyo" {
		t.Errorf("got %v", got)
	}
}

func TestPlacesAutocompleteZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ZERO_RESULTS"})
	}))
	defer srv.Close()

	cl := NewPlacesClient(config.GoogleConfig{APIKey: "k", PlacesAPIBaseURL: srv.URL})
	got, err := cl.Autocomplete(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestPlacesAutocompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "REQUEST_DENIED"})
	}))
	defer srv.Close()

	cl := NewPlacesClient(config.GoogleConfig{APIKey: "k", PlacesAPIBaseURL: srv.URL})
	if _, err := cl.Autocomplete(context.Background(), "x"); err == nil {
		t.Error("expected error for REQUEST_DENIED")
	}
}
