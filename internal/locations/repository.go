package locations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles location persistence, scoped by (id, team_id).
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a locations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const columns = `id, team_id, name, COALESCE(address,''), COALESCE(place_id,''),
	COALESCE(description,''), COALESCE(image_url,''), COALESCE(notes,''), created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }, l *models.Location) error {
	return row.Scan(&l.ID, &l.TeamID, &l.Name, &l.Address, &l.PlaceID,
		&l.Description, &l.ImageURL, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
}

// Get returns a location scoped to the team.
func (r *Repository) Get(ctx context.Context, id, teamID uuid.UUID) (*models.Location, error) {
	var l models.Location
	err := scan(r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM locations WHERE id = $1 AND team_id = $2`, id, teamID), &l)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByTeam returns the team's locations, newest first.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM locations WHERE team_id = $1 ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Location
	for rows.Next() {
		var l models.Location
		if err := scan(rows, &l); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Create inserts a location.
func (r *Repository) Create(ctx context.Context, l *models.Location) error {
	const q = `INSERT INTO locations (id, team_id, name, address, place_id, description, image_url, notes)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''))
		RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q,
		l.TeamID, l.Name, l.Address, l.PlaceID, l.Description, l.ImageURL, l.Notes), l)
}

// UpdateParams holds optional fields for a partial update.
type UpdateParams struct {
	Name        *string
	Address     *string
	PlaceID     *string
	Description *string
	ImageURL    *string
	Notes       *string
}

// Update applies a partial update scoped to the team.
func (r *Repository) Update(ctx context.Context, id, teamID uuid.UUID, u UpdateParams) (*models.Location, error) {
	const q = `UPDATE locations SET
		name = COALESCE($3, name),
		address = COALESCE($4, address),
		place_id = COALESCE($5, place_id),
		description = COALESCE($6, description),
		image_url = COALESCE($7, image_url),
		notes = COALESCE($8, notes),
		updated_at = NOW()
		WHERE id = $1 AND team_id = $2
		RETURNING ` + columns
	var l models.Location
	err := scan(r.pool.QueryRow(ctx, q, id, teamID,
		u.Name, u.Address, u.PlaceID, u.Description, u.ImageURL, u.Notes), &l)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete removes a location. Returns true iff a row matched both id and
// team id. Shoots pointing at the location keep a NULL location afterwards.
func (r *Repository) Delete(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
