package costumes

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles costume progress persistence, scoped by (id, team_id).
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a costumes repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, team_id, character_name, COALESCE(series,''), completion_percentage,
	todos, COALESCE(image_url,''), COALESCE(notes,''), created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }, cp *models.CostumeProgress) error {
	return row.Scan(&cp.ID, &cp.TeamID, &cp.CharacterName, &cp.Series, &cp.CompletionPercentage,
		&cp.Todos, &cp.ImageURL, &cp.Notes, &cp.CreatedAt, &cp.UpdatedAt)
}

// Get returns a costume entry scoped to the team.
func (r *Repository) Get(ctx context.Context, id, teamID uuid.UUID) (*models.CostumeProgress, error) {
	var cp models.CostumeProgress
	err := scan(r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM costume_progress WHERE id = $1 AND team_id = $2`, id, teamID), &cp)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// ListByTeam returns the team's costumes, newest first.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.CostumeProgress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM costume_progress WHERE team_id = $1 ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.CostumeProgress
	for rows.Next() {
		var cp models.CostumeProgress
		if err := scan(rows, &cp); err != nil {
			return nil, err
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}

// Create inserts a costume entry. Todos round-trip through jsonb.
func (r *Repository) Create(ctx context.Context, cp *models.CostumeProgress) error {
	if cp.Todos == nil {
		cp.Todos = []string{}
	}
	const q = `INSERT INTO costume_progress (id, team_id, character_name, series, completion_percentage, todos, image_url, notes)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), $4, $5, NULLIF($6,''), NULLIF($7,''))
		RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q,
		cp.TeamID, cp.CharacterName, cp.Series, cp.CompletionPercentage, cp.Todos, cp.ImageURL, cp.Notes), cp)
}

// UpdateParams holds optional fields for a partial update.
type UpdateParams struct {
	CharacterName        *string
	Series               *string
	CompletionPercentage *int
	Todos                []string // nil = leave unchanged
	ImageURL             *string
	Notes                *string
}

// Update applies a partial update scoped to the team.
func (r *Repository) Update(ctx context.Context, id, teamID uuid.UUID, u UpdateParams) (*models.CostumeProgress, error) {
	const q = `UPDATE costume_progress SET
		character_name = COALESCE($3, character_name),
		series = COALESCE($4, series),
		completion_percentage = COALESCE($5, completion_percentage),
		todos = COALESCE($6, todos),
		image_url = COALESCE($7, image_url),
		notes = COALESCE($8, notes),
		updated_at = NOW()
		WHERE id = $1 AND team_id = $2
		RETURNING ` + columns
	var cp models.CostumeProgress
	err := scan(r.pool.QueryRow(ctx, q, id, teamID,
		u.CharacterName, u.Series, u.CompletionPercentage, u.Todos, u.ImageURL, u.Notes), &cp)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Delete removes a costume entry. Returns true iff a row matched both id and
// team id.
func (r *Repository) Delete(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM costume_progress WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
