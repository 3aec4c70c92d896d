package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog delivery status.
const (
	EmailLogStatusSent   = "sent"
	EmailLogStatusFailed = "failed"
)

// EmailLog records reminder emails sent for a shoot.
type EmailLog struct {
	ID             uuid.UUID `json:"id"`
	ShootID        uuid.UUID `json:"shoot_id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Status         string    `json:"status"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
