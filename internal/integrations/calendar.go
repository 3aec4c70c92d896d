package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shootdeck/backend/config"
	"github.com/shootdeck/backend/internal/models"
)

// CalendarClient creates events on a Google Calendar through the REST API.
// A nil client means the integration is not configured.
type CalendarClient struct {
	baseURL    string
	apiKey     string
	calendarID string
	http       *http.Client
}

// NewCalendarClient returns nil when no API key is configured.
func NewCalendarClient(cfg config.GoogleConfig) *CalendarClient {
	if cfg.APIKey == "" {
		return nil
	}
	return &CalendarClient{
		baseURL:    cfg.CalendarAPIBaseURL,
		apiKey:     cfg.APIKey,
		calendarID: cfg.CalendarID,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

type calendarEventTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
}

type calendarEvent struct {
	Summary     string            `json:"summary"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Start       calendarEventTime `json:"start"`
	End         calendarEventTime `json:"end"`
}

type calendarEventCreated struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
}

// CreateEvent creates a calendar event for a shoot and returns the event id
// and a link to it. A shoot without a date becomes an all-day event today.
func (cl *CalendarClient) CreateEvent(ctx context.Context, shoot *models.Shoot) (string, string, error) {
	ev := calendarEvent{
		Summary:     shoot.Title,
		Description: shoot.Description,
		Location:    shoot.LocationName,
	}
	start := time.Now()
	if shoot.Date != nil {
		start = *shoot.Date
	}
	if shoot.StartTime != "" {
		if t, err := time.Parse("15:04", shoot.StartTime); err == nil {
			start = time.Date(start.Year(), start.Month(), start.Day(), t.Hour(), t.Minute(), 0, 0, start.Location())
		}
	}
	if shoot.StartTime != "" {
		minutes := 60
		if shoot.DurationMinutes != nil && *shoot.DurationMinutes > 0 {
			minutes = *shoot.DurationMinutes
		}
		ev.Start = calendarEventTime{DateTime: start.Format(time.RFC3339)}
		ev.End = calendarEventTime{DateTime: start.Add(time.Duration(minutes) * time.Minute).Format(time.RFC3339)}
	} else {
		day := start.Format("2006-01-02")
		ev.Start = calendarEventTime{Date: day}
		ev.End = calendarEventTime{Date: day}
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return "", "", err
	}
	endpoint := fmt.Sprintf("%s/calendars/%s/events?key=%s",
		cl.baseURL, url.PathEscape(cl.calendarID), url.QueryEscape(cl.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", fmt.Errorf("calendar API returned %d", resp.StatusCode)
	}
	var created calendarEventCreated
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", "", err
	}
	return created.ID, created.HTMLLink, nil
}
