package equipment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles equipment persistence, scoped by (id, team_id).
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an equipment repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, team_id, name, COALESCE(category,''), COALESCE(description,''),
	COALESCE(image_url,''), available, COALESCE(notes,''), created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }, e *models.Equipment) error {
	return row.Scan(&e.ID, &e.TeamID, &e.Name, &e.Category, &e.Description,
		&e.ImageURL, &e.Available, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
}

// Get returns an equipment entry scoped to the team.
func (r *Repository) Get(ctx context.Context, id, teamID uuid.UUID) (*models.Equipment, error) {
	var e models.Equipment
	err := scan(r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM equipment WHERE id = $1 AND team_id = $2`, id, teamID), &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByTeam returns the team's equipment, newest first.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Equipment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM equipment WHERE team_id = $1 ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := scan(rows, &e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create inserts an equipment entry.
func (r *Repository) Create(ctx context.Context, e *models.Equipment) error {
	const q = `INSERT INTO equipment (id, team_id, name, category, description, image_url, available, notes)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), $6, NULLIF($7,''))
		RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q,
		e.TeamID, e.Name, e.Category, e.Description, e.ImageURL, e.Available, e.Notes), e)
}

// UpdateParams holds optional fields for a partial update.
type UpdateParams struct {
	Name        *string
	Category    *string
	Description *string
	ImageURL    *string
	Available   *bool
	Notes       *string
}

// Update applies a partial update scoped to the team.
func (r *Repository) Update(ctx context.Context, id, teamID uuid.UUID, u UpdateParams) (*models.Equipment, error) {
	const q = `UPDATE equipment SET
		name = COALESCE($3, name),
		category = COALESCE($4, category),
		description = COALESCE($5, description),
		image_url = COALESCE($6, image_url),
		available = COALESCE($7, available),
		notes = COALESCE($8, notes),
		updated_at = NOW()
		WHERE id = $1 AND team_id = $2
		RETURNING ` + columns
	var e models.Equipment
	err := scan(r.pool.QueryRow(ctx, q, id, teamID,
		u.Name, u.Category, u.Description, u.ImageURL, u.Available, u.Notes), &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an equipment entry. Returns true iff a row matched both id
// and team id.
func (r *Repository) Delete(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM equipment WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
