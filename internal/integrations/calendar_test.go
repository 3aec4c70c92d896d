package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shootdeck/backend/config"
	"github.com/shootdeck/backend/internal/models"
)

func TestNewCalendarClientDisabled(t *testing.T) {
	if cl := NewCalendarClient(config.GoogleConfig{}); cl != nil {
		t.Error("expected nil client without API key")
	}
}

func TestCreateEventTimed(t *testing.T) {
	var received calendarEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendars/primary/events" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(calendarEventCreated{ID: "ev1", HTMLLink: "https://cal/ev1"})
	}))
	defer srv.Close()

	cl := NewCalendarClient(config.GoogleConfig{
		APIKey:             "k",
		CalendarID:         "primary",
		CalendarAPIBaseURL: srv.URL,
	})
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	minutes := 90
	shoot := &models.Shoot{
		Title:           "Sakura shoot",
		Date:            &date,
		StartTime:       "14:30",
		DurationMinutes: &minutes,
		LocationName:    "Yoyogi Park",
	}

	id, link, err := cl.CreateEvent(context.Background(), shoot)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if id != "ev1" || link != "https://cal/ev1" {
		t.Errorf("id=%q link=%q", id, link)
	}
	if received.Summary != "Sakura shoot" || received.Location != "Yoyogi Park" {
		t.Errorf("event = %+v", received)
	}
	if received.Start.DateTime == "" || received.End.DateTime == "" {
		t.Errorf("expected timed event, got %+v", received)
	}
	start, _ := time.Parse(time.RFC3339, received.Start.DateTime)
	end, _ := time.Parse(time.RFC3339, received.End.DateTime)
	if end.Sub(start) != 90*time.Minute {
		t.Errorf("duration = %v, want 90m", end.Sub(start))
	}
}

func TestCreateEventAllDay(t *testing.T) {
	var received calendarEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(calendarEventCreated{ID: "ev2"})
	}))
	defer srv.Close()

	cl := NewCalendarClient(config.GoogleConfig{APIKey: "k", CalendarID: "primary", CalendarAPIBaseURL: srv.URL})
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	if _, _, err := cl.CreateEvent(context.Background(), &models.Shoot{Title: "t", Date: &date}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if received.Start.Date != "2026-09-12" || received.End.Date != "2026-09-12" {
		t.Errorf("expected all-day event on 2026-09-12, got %+v", received)
	}
	if received.Start.DateTime != "" {
		t.Errorf("all-day event carries dateTime: %+v", received)
	}
}

func TestCreateEventAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cl := NewCalendarClient(config.GoogleConfig{APIKey: "k", CalendarID: "primary", CalendarAPIBaseURL: srv.URL})
	if _, _, err := cl.CreateEvent(context.Background(), &models.Shoot{Title: "t"}); err == nil {
		t.Error("expected error for 403")
	}
}
