package models

import (
	"time"

	"github.com/google/uuid"
)

// Personnel is a reusable person entry (photographer, cosplayer, assistant)
// in the team catalog.
type Personnel struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Instagram string    `json:"instagram,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Available bool      `json:"available"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Equipment is a camera, lens, light or other gear entry.
type Equipment struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Location is a shoot location entry.
type Location struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	PlaceID     string    `json:"place_id,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Prop is a prop catalog entry.
type Prop struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CostumeProgress tracks a costume build: which character, how far along,
// and the remaining todo items.
type CostumeProgress struct {
	ID                   uuid.UUID `json:"id"`
	TeamID               uuid.UUID `json:"team_id"`
	CharacterName        string    `json:"character_name"`
	Series               string    `json:"series,omitempty"`
	CompletionPercentage int       `json:"completion_percentage"`
	Todos                []string  `json:"todos"`
	ImageURL             string    `json:"image_url,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
