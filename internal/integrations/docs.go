package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shootdeck/backend/config"
	"github.com/shootdeck/backend/internal/models"
)

// DocsClient exports shoot plans to Google Docs through the REST API.
// A nil client means the integration is not configured.
type DocsClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewDocsClient returns nil when no API key is configured.
func NewDocsClient(cfg config.GoogleConfig) *DocsClient {
	if cfg.APIKey == "" {
		return nil
	}
	return &DocsClient{
		baseURL: cfg.DocsAPIBaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ExportShoot creates a document titled after the shoot and fills it with a
// plain-text plan. Returns the document id and a link to it.
func (cl *DocsClient) ExportShoot(ctx context.Context, shoot *models.Shoot, participants []models.ShootParticipant) (string, string, error) {
	docID, err := cl.createDocument(ctx, "Shoot Plan: "+shoot.Title)
	if err != nil {
		return "", "", err
	}
	if err := cl.insertText(ctx, docID, planText(shoot, participants)); err != nil {
		return "", "", err
	}
	return docID, "https://docs.google.com/document/d/" + docID + "/edit", nil
}

func planText(shoot *models.Shoot, participants []models.ShootParticipant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nStatus: %s\n", shoot.Title, shoot.Status)
	if shoot.Date != nil {
		fmt.Fprintf(&b, "Date: %s\n", shoot.Date.Format("2006-01-02"))
	}
	if shoot.StartTime != "" {
		fmt.Fprintf(&b, "Start: %s\n", shoot.StartTime)
	}
	if shoot.DurationMinutes != nil {
		fmt.Fprintf(&b, "Duration: %d minutes\n", *shoot.DurationMinutes)
	}
	if shoot.LocationName != "" {
		fmt.Fprintf(&b, "Location: %s\n", shoot.LocationName)
	}
	if shoot.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", shoot.Description)
	}
	if len(participants) > 0 {
		b.WriteString("\nParticipants:\n")
		for _, p := range participants {
			if p.Role != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Role)
			} else {
				fmt.Fprintf(&b, "- %s\n", p.Name)
			}
		}
	}
	return b.String()
}

func (cl *DocsClient) createDocument(ctx context.Context, title string) (string, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/documents?key=%s", cl.baseURL, url.QueryEscape(cl.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("docs API returned %d", resp.StatusCode)
	}
	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.DocumentID, nil
}

func (cl *DocsClient) insertText(ctx context.Context, docID, text string) error {
	payload := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"insertText": map[string]interface{}{
					"location": map[string]int{"index": 1},
					"text":     text,
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/documents/%s:batchUpdate?key=%s",
		cl.baseURL, url.PathEscape(docID), url.QueryEscape(cl.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("docs API returned %d", resp.StatusCode)
	}
	return nil
}
