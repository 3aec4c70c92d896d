package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shootdeck/backend/config"
)

// PlacesClient answers location autocomplete queries against the Google
// Places API. A nil client means the integration is not configured.
type PlacesClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewPlacesClient returns nil when no API key is configured.
func NewPlacesClient(cfg config.GoogleConfig) *PlacesClient {
	if cfg.APIKey == "" {
		return nil
	}
	return &PlacesClient{
		baseURL: cfg.PlacesAPIBaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// PlaceSuggestion is one autocomplete result.
type PlaceSuggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Autocomplete returns place suggestions for a free-text query.
func (cl *PlacesClient) Autocomplete(ctx context.Context, input string) ([]PlaceSuggestion, error) {
	endpoint := fmt.Sprintf("%s/autocomplete/json?input=%s&key=%s",
		cl.baseURL, url.QueryEscape(input), url.QueryEscape(cl.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := cl.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned %d", resp.StatusCode)
	}
	var out struct {
		Status      string `json:"status"`
		Predictions []struct {
			PlaceID     string `json:"place_id"`
			Description string `json:"description"`
		} `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Status != "OK" && out.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API status %s", out.Status)
	}
	suggestions := make([]PlaceSuggestion, 0, len(out.Predictions))
	for _, p := range out.Predictions {
		suggestions = append(suggestions, PlaceSuggestion{PlaceID: p.PlaceID, Description: p.Description})
	}
	return suggestions, nil
}
