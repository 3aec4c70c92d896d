package teams

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles team, membership, invite and profile persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a teams repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateTeam creates a team.
func (r *Repository) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	const q = `INSERT INTO teams (id, name) VALUES (gen_random_uuid(), $1)
		RETURNING id, name, created_at, updated_at`
	var t models.Team
	err := r.pool.QueryRow(ctx, q, name).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTeam returns a team by ID.
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	const q = `SELECT id, name, created_at, updated_at FROM teams WHERE id = $1`
	var t models.Team
	err := r.pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTeamName renames a team.
func (r *Repository) UpdateTeamName(ctx context.Context, id uuid.UUID, name string) (*models.Team, error) {
	const q = `UPDATE teams SET name = $1, updated_at = NOW() WHERE id = $2
		RETURNING id, name, created_at, updated_at`
	var t models.Team
	err := r.pool.QueryRow(ctx, q, name, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTeam removes a team. Cascades to all team-scoped rows.
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}

// AddMember inserts a membership row. Fails on the (team, user) unique
// constraint when the user is already a member.
func (r *Repository) AddMember(ctx context.Context, teamID, userID uuid.UUID, role string) (*models.TeamMember, error) {
	const q = `INSERT INTO team_members (id, team_id, user_id, role)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, team_id, user_id, role, created_at, updated_at`
	var m models.TeamMember
	err := r.pool.QueryRow(ctx, q, teamID, userID, role).
		Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMember returns the membership row for (team, user), or an error when
// the user is not a member.
func (r *Repository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	const q = `SELECT id, team_id, user_id, role, created_at, updated_at
		FROM team_members WHERE team_id = $1 AND user_id = $2`
	var m models.TeamMember
	err := r.pool.QueryRow(ctx, q, teamID, userID).
		Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FirstMembership returns the user's oldest membership row, if any.
func (r *Repository) FirstMembership(ctx context.Context, userID uuid.UUID) (*models.TeamMember, error) {
	const q = `SELECT id, team_id, user_id, role, created_at, updated_at
		FROM team_members WHERE user_id = $1 ORDER BY created_at ASC LIMIT 1`
	var m models.TeamMember
	err := r.pool.QueryRow(ctx, q, userID).
		Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMemberRole sets the role for (team, user). Returns false when no
// membership row matched.
func (r *Repository) UpdateMemberRole(ctx context.Context, teamID, userID uuid.UUID, role string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE team_members SET role = $1, updated_at = NOW() WHERE team_id = $2 AND user_id = $3`,
		role, teamID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveMember deletes the membership row for (team, user).
func (r *Repository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountOwnedTeams returns how many teams the user owns.
func (r *Repository) CountOwnedTeams(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_members WHERE user_id = $1 AND role = 'owner'`, userID).Scan(&n)
	return n, err
}

// CountOwners returns how many owners a team has.
func (r *Repository) CountOwners(ctx context.Context, teamID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND role = 'owner'`, teamID).Scan(&n)
	return n, err
}

// ListTeamsForUser returns teams the user is a member of, with the user's role.
type TeamWithRole struct {
	models.Team
	Role string `json:"role"`
}

func (r *Repository) ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]TeamWithRole, error) {
	const q = `SELECT t.id, t.name, t.created_at, t.updated_at, tm.role
		FROM teams t
		INNER JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY tm.created_at ASC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []TeamWithRole
	for rows.Next() {
		var t TeamWithRole
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.Role); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// OwnedTeamIDs returns ids of teams the user owns, oldest first.
func (r *Repository) OwnedTeamIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT team_id FROM team_members WHERE user_id = $1 AND role = 'owner' ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Member is a team member with user details (for GET /api/team/:id/members).
type Member struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	AddedAt  time.Time `json:"added_at"`
}

// ListMembers returns members of a team (join team_members + users).
func (r *Repository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	const q = `SELECT tm.id, tm.user_id, u.email, u.full_name, tm.role, tm.created_at
		FROM team_members tm
		INNER JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.created_at ASC`
	rows, err := r.pool.Query(ctx, q, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Email, &m.FullName, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpsertInvite replaces the team's invite code. One active invite per team.
func (r *Repository) UpsertInvite(ctx context.Context, teamID uuid.UUID, code string, createdBy uuid.UUID) (*models.TeamInvite, error) {
	const q = `INSERT INTO team_invites (id, team_id, code, created_by)
		VALUES (gen_random_uuid(), $1, $2, $3)
		ON CONFLICT (team_id) DO UPDATE SET code = EXCLUDED.code, created_by = EXCLUDED.created_by, created_at = NOW()
		RETURNING id, team_id, code, created_by, created_at`
	var inv models.TeamInvite
	err := r.pool.QueryRow(ctx, q, teamID, code, createdBy).
		Scan(&inv.ID, &inv.TeamID, &inv.Code, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInviteByTeam returns the team's active invite, if any.
func (r *Repository) GetInviteByTeam(ctx context.Context, teamID uuid.UUID) (*models.TeamInvite, error) {
	const q = `SELECT id, team_id, code, created_by, created_at FROM team_invites WHERE team_id = $1`
	var inv models.TeamInvite
	err := r.pool.QueryRow(ctx, q, teamID).
		Scan(&inv.ID, &inv.TeamID, &inv.Code, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInviteByCode returns an invite by its code.
func (r *Repository) GetInviteByCode(ctx context.Context, code string) (*models.TeamInvite, error) {
	const q = `SELECT id, team_id, code, created_by, created_at FROM team_invites WHERE code = $1`
	var inv models.TeamInvite
	err := r.pool.QueryRow(ctx, q, code).
		Scan(&inv.ID, &inv.TeamID, &inv.Code, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetOrCreateProfile loads the user's profile, creating it on first use with
// the display name seeded from the users table.
func (r *Repository) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	const ins = `INSERT INTO user_profiles (id, user_id, display_name)
		SELECT gen_random_uuid(), u.id, u.full_name FROM users u WHERE u.id = $1
		ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.pool.Exec(ctx, ins, userID); err != nil {
		return nil, err
	}
	const q = `SELECT id, user_id, display_name, COALESCE(avatar_url, ''), active_team_id, created_at, updated_at
		FROM user_profiles WHERE user_id = $1`
	var p models.UserProfile
	err := r.pool.QueryRow(ctx, q, userID).
		Scan(&p.ID, &p.UserID, &p.DisplayName, &p.AvatarURL, &p.ActiveTeamID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetActiveTeam points the user's profile at a team. Pass uuid.Nil to clear.
func (r *Repository) SetActiveTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	var val interface{}
	if teamID != uuid.Nil {
		val = teamID
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET active_team_id = $1, updated_at = NOW() WHERE user_id = $2`,
		val, userID)
	return err
}
