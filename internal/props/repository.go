package props

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles prop persistence, scoped by (id, team_id).
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a props repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, team_id, name, COALESCE(category,''), COALESCE(description,''),
	COALESCE(image_url,''), available, created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }, p *models.Prop) error {
	return row.Scan(&p.ID, &p.TeamID, &p.Name, &p.Category, &p.Description,
		&p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt)
}

// Get returns a prop scoped to the team.
func (r *Repository) Get(ctx context.Context, id, teamID uuid.UUID) (*models.Prop, error) {
	var p models.Prop
	err := scan(r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM props WHERE id = $1 AND team_id = $2`, id, teamID), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByTeam returns the team's props, newest first.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Prop, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM props WHERE team_id = $1 ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Prop
	for rows.Next() {
		var p models.Prop
		if err := scan(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create inserts a prop.
func (r *Repository) Create(ctx context.Context, p *models.Prop) error {
	const q = `INSERT INTO props (id, team_id, name, category, description, image_url, available)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), $6)
		RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q,
		p.TeamID, p.Name, p.Category, p.Description, p.ImageURL, p.Available), p)
}

// UpdateParams holds optional fields for a partial update.
type UpdateParams struct {
	Name        *string
	Category    *string
	Description *string
	ImageURL    *string
	Available   *bool
}

// Update applies a partial update scoped to the team.
func (r *Repository) Update(ctx context.Context, id, teamID uuid.UUID, u UpdateParams) (*models.Prop, error) {
	const q = `UPDATE props SET
		name = COALESCE($3, name),
		category = COALESCE($4, category),
		description = COALESCE($5, description),
		image_url = COALESCE($6, image_url),
		available = COALESCE($7, available),
		updated_at = NOW()
		WHERE id = $1 AND team_id = $2
		RETURNING ` + columns
	var p models.Prop
	err := scan(r.pool.QueryRow(ctx, q, id, teamID,
		u.Name, u.Category, u.Description, u.ImageURL, u.Available), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a prop. Returns true iff a row matched both id and team id.
func (r *Repository) Delete(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM props WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
