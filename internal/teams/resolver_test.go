package teams

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shootdeck/backend/internal/models"
)

// fakeMemberStore scripts the repository calls ActiveTeam makes. Unset
// errors default to pgx.ErrNoRows so each step reads as "row absent".
type fakeMemberStore struct {
	profile *models.UserProfile

	memberErr error
	member    *models.TeamMember

	firstErr error
	first    *models.TeamMember

	createdTeams int
	activeSets   []uuid.UUID
}

func (f *fakeMemberStore) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeMemberStore) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	if f.member != nil {
		return f.member, nil
	}
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberStore) FirstMembership(ctx context.Context, userID uuid.UUID) (*models.TeamMember, error) {
	if f.first != nil {
		return f.first, nil
	}
	if f.firstErr != nil {
		return nil, f.firstErr
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberStore) SetActiveTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	f.activeSets = append(f.activeSets, teamID)
	return nil
}

func (f *fakeMemberStore) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	f.createdTeams++
	return &models.Team{ID: uuid.New(), Name: name}, nil
}

func (f *fakeMemberStore) AddMember(ctx context.Context, teamID, userID uuid.UUID, role string) (*models.TeamMember, error) {
	return &models.TeamMember{TeamID: teamID, UserID: userID, Role: role}, nil
}

func TestActiveTeamUsesProfileMembership(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	store := &fakeMemberStore{
		profile: &models.UserProfile{UserID: userID, ActiveTeamID: &teamID},
		member:  &models.TeamMember{TeamID: teamID, UserID: userID, Role: models.TeamRoleAdmin},
	}
	r := &Resolver{repo: store}

	got, role, err := r.ActiveTeam(context.Background(), userID)
	if err != nil {
		t.Fatalf("ActiveTeam: %v", err)
	}
	if got != teamID || role != models.TeamRoleAdmin {
		t.Errorf("got (%v, %q), want (%v, %q)", got, role, teamID, models.TeamRoleAdmin)
	}
	if store.createdTeams != 0 {
		t.Errorf("created %d teams, want 0", store.createdTeams)
	}
}

func TestActiveTeamMembershipQueryFailurePropagates(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	transient := errors.New("connection reset")
	store := &fakeMemberStore{
		profile:   &models.UserProfile{UserID: userID, ActiveTeamID: &teamID},
		memberErr: transient,
	}
	r := &Resolver{repo: store}

	if _, _, err := r.ActiveTeam(context.Background(), userID); !errors.Is(err, transient) {
		t.Fatalf("err = %v, want %v", err, transient)
	}
	if store.createdTeams != 0 {
		t.Errorf("transient failure provisioned %d teams", store.createdTeams)
	}
}

func TestActiveTeamFirstMembershipFailurePropagates(t *testing.T) {
	userID := uuid.New()
	transient := errors.New("context canceled")
	store := &fakeMemberStore{
		profile:  &models.UserProfile{UserID: userID},
		firstErr: transient,
	}
	r := &Resolver{repo: store}

	if _, _, err := r.ActiveTeam(context.Background(), userID); !errors.Is(err, transient) {
		t.Fatalf("err = %v, want %v", err, transient)
	}
	if store.createdTeams != 0 {
		t.Errorf("transient failure provisioned %d teams", store.createdTeams)
	}
}

func TestActiveTeamProvisionsPersonalTeamOnce(t *testing.T) {
	userID := uuid.New()
	store := &fakeMemberStore{
		profile: &models.UserProfile{UserID: userID, DisplayName: "Sakura Tanaka"},
	}
	r := &Resolver{repo: store}

	got, role, err := r.ActiveTeam(context.Background(), userID)
	if err != nil {
		t.Fatalf("ActiveTeam: %v", err)
	}
	if role != models.TeamRoleOwner {
		t.Errorf("role = %q, want owner", role)
	}
	if store.createdTeams != 1 {
		t.Fatalf("created %d teams, want 1", store.createdTeams)
	}
	if len(store.activeSets) != 1 || store.activeSets[0] != got {
		t.Errorf("active team sets = %v, want [%v]", store.activeSets, got)
	}
}

func TestNextActiveTeam(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// Deleting a non-active team leaves the active context alone.
	if _, reassign := NextActiveTeam(&b, c, []uuid.UUID{a, b}); reassign {
		t.Error("deleting a background team must not reassign the active team")
	}
	// Deleting the active team repoints at a remaining owned team.
	if next, reassign := NextActiveTeam(&b, b, []uuid.UUID{a, c}); !reassign || next != a {
		t.Errorf("got (%v, %v), want (%v, true)", next, reassign, a)
	}
	// The deleted team never comes back as the replacement.
	if next, reassign := NextActiveTeam(&b, b, []uuid.UUID{b, c}); !reassign || next != c {
		t.Errorf("got (%v, %v), want (%v, true)", next, reassign, c)
	}
	if _, reassign := NextActiveTeam(nil, b, []uuid.UUID{a}); reassign {
		t.Error("no active team recorded, nothing to reassign")
	}
	if _, reassign := NextActiveTeam(&b, b, nil); reassign {
		t.Error("no owned teams left, nothing to reassign")
	}
}

func TestPersonalTeamName(t *testing.T) {
	cases := []struct {
		display, want string
	}{
		{"Sakura Tanaka", "Sakura's Team"},
		{"Sakura", "Sakura's Team"},
		{"  Mei Ling Wu ", "Mei's Team"},
		{"", "My Team"},
		{"   ", "My Team"},
	}
	for _, tc := range cases {
		if got := PersonalTeamName(tc.display); got != tc.want {
			t.Errorf("PersonalTeamName(%q) = %q, want %q", tc.display, got, tc.want)
		}
	}
}

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := NewInviteCode()
		if err != nil {
			t.Fatalf("NewInviteCode: %v", err)
		}
		if len(code) != InviteCodeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), InviteCodeLength)
		}
		if code != strings.ToUpper(code) {
			t.Errorf("code %q is not upper-case", code)
		}
		if strings.ContainsAny(code, "=+/") {
			t.Errorf("code %q contains padding or non-base32 characters", code)
		}
		if seen[code] {
			t.Errorf("duplicate code %q across 50 generations", code)
		}
		seen[code] = true
	}
}
