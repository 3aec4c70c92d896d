package models

import (
	"time"

	"github.com/google/uuid"
)

// Shoot status values.
const (
	ShootStatusIdea      = "idea"
	ShootStatusPlanning  = "planning"
	ShootStatusScheduled = "scheduled"
	ShootStatusCompleted = "completed"
)

// ValidShootStatus reports whether s is a known shoot status.
func ValidShootStatus(s string) bool {
	switch s {
	case ShootStatusIdea, ShootStatusPlanning, ShootStatusScheduled, ShootStatusCompleted:
		return true
	}
	return false
}

// Shoot is the central planning entity for one photography session.
// UserID records the creator but does not gate access; team role does.
type Shoot struct {
	ID              uuid.UUID  `json:"id"`
	TeamID          uuid.UUID  `json:"team_id"`
	UserID          uuid.UUID  `json:"user_id"`
	Title           string     `json:"title"`
	Status          string     `json:"status"`
	Date            *time.Time `json:"date,omitempty"`
	StartTime       string     `json:"start_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	LocationID      *uuid.UUID `json:"location_id,omitempty"`
	LocationName    string     `json:"location_name,omitempty"`
	Description     string     `json:"description,omitempty"`
	Color           string     `json:"color,omitempty"`
	InstagramLinks  []string   `json:"instagram_links"`
	CalendarEventID string     `json:"calendar_event_id,omitempty"`
	CalendarURL     string     `json:"calendar_url,omitempty"`
	DocsID          string     `json:"docs_id,omitempty"`
	DocsURL         string     `json:"docs_url,omitempty"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ShootReference is an image or link attached to a shoot.
type ShootReference struct {
	ID        uuid.UUID `json:"id"`
	ShootID   uuid.UUID `json:"shoot_id"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShootParticipant is a person attached to a shoot. Either personnel-linked
// (PersonnelID set) or manual (PersonnelID nil, free-text name/role/email).
type ShootParticipant struct {
	ID          uuid.UUID  `json:"id"`
	ShootID     uuid.UUID  `json:"shoot_id"`
	PersonnelID *uuid.UUID `json:"personnel_id,omitempty"`
	Name        string     `json:"name"`
	Role        string     `json:"role,omitempty"`
	Email       string     `json:"email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
