package teams

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shootdeck/backend/internal/models"
)

// memberStore is the slice of the repository the resolver needs.
type memberStore interface {
	GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error)
	FirstMembership(ctx context.Context, userID uuid.UUID) (*models.TeamMember, error)
	SetActiveTeam(ctx context.Context, userID, teamID uuid.UUID) error
	CreateTeam(ctx context.Context, name string) (*models.Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID, role string) (*models.TeamMember, error)
}

// Resolver maps a user id to exactly one active team, provisioning a
// personal team on first use. Idempotent: repeated calls converge on the
// same team once one exists.
type Resolver struct {
	repo memberStore
}

// NewResolver creates a team resolver.
func NewResolver(repo *Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ActiveTeam resolves the user's active team id and their role in it.
//
//  1. If the profile's active_team_id is set and a membership row exists,
//     that team wins.
//  2. Otherwise the oldest membership becomes the active team.
//  3. Otherwise a personal team is created with the user as owner.
//
// Only a missing row moves resolution to the next step; query failures
// propagate so a transient error never provisions an extra team.
func (r *Resolver) ActiveTeam(ctx context.Context, userID uuid.UUID) (uuid.UUID, string, error) {
	profile, err := r.repo.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return uuid.Nil, "", err
	}

	if profile.ActiveTeamID != nil {
		m, err := r.repo.GetMember(ctx, *profile.ActiveTeamID, userID)
		if err == nil {
			return m.TeamID, m.Role, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, "", err
		}
	}

	m, err := r.repo.FirstMembership(ctx, userID)
	if err == nil {
		if err := r.repo.SetActiveTeam(ctx, userID, m.TeamID); err != nil {
			return uuid.Nil, "", err
		}
		return m.TeamID, m.Role, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, "", err
	}

	team, err := r.repo.CreateTeam(ctx, PersonalTeamName(profile.DisplayName))
	if err != nil {
		return uuid.Nil, "", err
	}
	if _, err := r.repo.AddMember(ctx, team.ID, userID, models.TeamRoleOwner); err != nil {
		return uuid.Nil, "", err
	}
	if err := r.repo.SetActiveTeam(ctx, userID, team.ID); err != nil {
		return uuid.Nil, "", err
	}
	return team.ID, models.TeamRoleOwner, nil
}

// NextActiveTeam decides whether deleting a team must repoint the profile at
// a remaining owned team, and at which one. Deleting a team that was not the
// active one leaves the active context untouched.
func NextActiveTeam(active *uuid.UUID, deleted uuid.UUID, owned []uuid.UUID) (uuid.UUID, bool) {
	if active == nil || *active != deleted {
		return uuid.Nil, false
	}
	for _, id := range owned {
		if id != deleted {
			return id, true
		}
	}
	return uuid.Nil, false
}

// PersonalTeamName derives the auto-provisioned team name from the user's
// display name: "{firstName}'s Team", or "My Team" when no name is known.
func PersonalTeamName(displayName string) string {
	first := strings.TrimSpace(displayName)
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	if first == "" {
		return "My Team"
	}
	return first + "'s Team"
}
