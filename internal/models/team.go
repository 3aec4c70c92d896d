package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is the tenant boundary: every catalog resource and shoot belongs to
// exactly one team.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team member roles. owner > admin > member.
const (
	TeamRoleOwner  = "owner"
	TeamRoleAdmin  = "admin"
	TeamRoleMember = "member"
)

// ValidTeamRole reports whether s is a known team role.
func ValidTeamRole(s string) bool {
	return s == TeamRoleOwner || s == TeamRoleAdmin || s == TeamRoleMember
}

// TeamMember links a user to a team with a role. Exactly one row per
// (team, user) pair.
type TeamMember struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamInvite is the single active invite code for a team.
type TeamInvite struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Code      string    `json:"code"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
