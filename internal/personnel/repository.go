package personnel

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles personnel persistence. Every predicate is
// (id, team_id) so one team can never touch another team's rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a personnel repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, team_id, name, COALESCE(role,''), COALESCE(email,''), COALESCE(phone,''),
	COALESCE(instagram,''), COALESCE(avatar_url,''), available, COALESCE(notes,''), created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }, p *models.Personnel) error {
	return row.Scan(&p.ID, &p.TeamID, &p.Name, &p.Role, &p.Email, &p.Phone,
		&p.Instagram, &p.AvatarURL, &p.Available, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
}

// Get returns a personnel entry scoped to the team.
func (r *Repository) Get(ctx context.Context, id, teamID uuid.UUID) (*models.Personnel, error) {
	var p models.Personnel
	err := scan(r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM personnel WHERE id = $1 AND team_id = $2`, id, teamID), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByTeam returns the team's personnel, newest first.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Personnel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM personnel WHERE team_id = $1 ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Personnel
	for rows.Next() {
		var p models.Personnel
		if err := scan(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create inserts a personnel entry.
func (r *Repository) Create(ctx context.Context, p *models.Personnel) error {
	const q = `INSERT INTO personnel (id, team_id, name, role, email, phone, instagram, avatar_url, available, notes)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), $8, NULLIF($9,''))
		RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q,
		p.TeamID, p.Name, p.Role, p.Email, p.Phone, p.Instagram, p.AvatarURL, p.Available, p.Notes), p)
}

// UpdateParams holds optional fields for a partial update. The team is never
// updatable; any client-sent team id is dropped before this point.
type UpdateParams struct {
	Name      *string
	Role      *string
	Email     *string
	Phone     *string
	Instagram *string
	AvatarURL *string
	Available *bool
	Notes     *string
}

// Update applies a partial update scoped to the team. Returns the updated
// row, or an error when no row matched (id, team_id).
func (r *Repository) Update(ctx context.Context, id, teamID uuid.UUID, u UpdateParams) (*models.Personnel, error) {
	const q = `UPDATE personnel SET
		name = COALESCE($3, name),
		role = COALESCE($4, role),
		email = COALESCE($5, email),
		phone = COALESCE($6, phone),
		instagram = COALESCE($7, instagram),
		avatar_url = COALESCE($8, avatar_url),
		available = COALESCE($9, available),
		notes = COALESCE($10, notes),
		updated_at = NOW()
		WHERE id = $1 AND team_id = $2
		RETURNING ` + columns
	var p models.Personnel
	err := scan(r.pool.QueryRow(ctx, q, id, teamID,
		u.Name, u.Role, u.Email, u.Phone, u.Instagram, u.AvatarURL, u.Available, u.Notes), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a personnel entry. Returns true iff a row matched both id
// and team id.
func (r *Repository) Delete(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personnel WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
