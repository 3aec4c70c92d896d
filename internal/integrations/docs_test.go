package integrations

import (
	"strings"
	"testing"
	"time"

	"github.com/shootdeck/backend/internal/models"
)

func TestPlanText(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	minutes := 120
	shoot := &models.Shoot{
		Title:           "Arcane group shoot",
		Status:          models.ShootStatusScheduled,
		Date:            &date,
		StartTime:       "10:00",
		DurationMinutes: &minutes,
		LocationName:    "Old factory",
		Description:     "Bring smoke bombs.",
	}
	participants := []models.ShootParticipant{
		{Name: "Rin", Role: "Jinx"},
		{Name: "Mei"},
	}

	text := planText(shoot, participants)
	for _, want := range []string{
		"Arcane group shoot",
		"Status: scheduled",
		"Date: 2026-09-12",
		"Start: 10:00",
		"Duration: 120 minutes",
		"Location: Old factory",
		"Bring smoke bombs.",
		"- Rin (Jinx)",
		"- Mei\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plan text missing %q:\n%s", want, text)
		}
	}
}

func TestPlanTextMinimalShoot(t *testing.T) {
	text := planText(&models.Shoot{Title: "Quick idea", Status: models.ShootStatusIdea}, nil)
	if !strings.Contains(text, "Quick idea") || !strings.Contains(text, "Status: idea") {
		t.Errorf("unexpected plan text:\n%s", text)
	}
	if strings.Contains(text, "Participants:") {
		t.Error("participants section rendered with no participants")
	}
}
