package shoots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository handles shoot persistence and the shoot's association rows.
// Shoot predicates are (id, team_id); association rows are reached only
// through their shoot, so the same scoping applies transitively.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a shoots repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const shootColumns = `s.id, s.team_id, s.user_id, s.title, s.status, s.date, COALESCE(s.start_time,''),
	s.duration_minutes, s.location_id, COALESCE(l.name,''), COALESCE(s.description,''), COALESCE(s.color,''),
	s.instagram_links, COALESCE(s.calendar_event_id,''), COALESCE(s.calendar_url,''),
	COALESCE(s.docs_id,''), COALESCE(s.docs_url,''), s.is_public, s.created_at, s.updated_at`

func scanShoot(row interface{ Scan(...interface{}) error }, s *models.Shoot) error {
	return row.Scan(&s.ID, &s.TeamID, &s.UserID, &s.Title, &s.Status, &s.Date, &s.StartTime,
		&s.DurationMinutes, &s.LocationID, &s.LocationName, &s.Description, &s.Color,
		&s.InstagramLinks, &s.CalendarEventID, &s.CalendarURL,
		&s.DocsID, &s.DocsURL, &s.IsPublic, &s.CreatedAt, &s.UpdatedAt)
}

// Get returns a shoot scoped to the team, with the location name joined in.
func (r *Repository) Get(ctx context.Context, id, teamID uuid.UUID) (*models.Shoot, error) {
	const q = `SELECT ` + shootColumns + ` FROM shoots s
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.id = $1 AND s.team_id = $2`
	var s models.Shoot
	if err := scanShoot(r.pool.QueryRow(ctx, q, id, teamID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPublic returns a shoot by id only when it is shared publicly.
func (r *Repository) GetPublic(ctx context.Context, id uuid.UUID) (*models.Shoot, error) {
	const q = `SELECT ` + shootColumns + ` FROM shoots s
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.id = $1 AND s.is_public = TRUE`
	var s models.Shoot
	if err := scanShoot(r.pool.QueryRow(ctx, q, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByTeam returns the team's shoots, newest first.
func (r *Repository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Shoot, error) {
	const q = `SELECT ` + shootColumns + ` FROM shoots s
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.team_id = $1 ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(ctx, q, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Shoot
	for rows.Next() {
		var s models.Shoot
		if err := scanShoot(rows, &s); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create inserts a shoot.
func (r *Repository) Create(ctx context.Context, s *models.Shoot) error {
	if s.InstagramLinks == nil {
		s.InstagramLinks = []string{}
	}
	const q = `WITH ins AS (
		INSERT INTO shoots (id, team_id, user_id, title, status, date, start_time, duration_minutes,
			location_id, description, color, instagram_links, is_public)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NULLIF($6,''), $7, $8, NULLIF($9,''), NULLIF($10,''), $11, $12)
		RETURNING *
	)
	SELECT ` + shootColumns + ` FROM ins s LEFT JOIN locations l ON l.id = s.location_id`
	return scanShoot(r.pool.QueryRow(ctx, q,
		s.TeamID, s.UserID, s.Title, s.Status, s.Date, s.StartTime, s.DurationMinutes,
		s.LocationID, s.Description, s.Color, s.InstagramLinks, s.IsPublic), s)
}

// UpdateParams holds optional fields for a partial shoot update. Nullable
// columns use a double pointer so "set to null" and "leave unchanged" stay
// distinguishable.
type UpdateParams struct {
	Title           *string
	Status          *string
	Date            **time.Time
	StartTime       *string
	DurationMinutes **int
	LocationID      **uuid.UUID
	Description     *string
	Color           *string
	InstagramLinks  []string // nil = leave unchanged
	CalendarEventID *string
	CalendarURL     *string
	DocsID          *string
	DocsURL         *string
	IsPublic        *bool
}

// Update applies a partial update scoped to the team and returns the
// updated shoot.
func (r *Repository) Update(ctx context.Context, id, teamID uuid.UUID, u UpdateParams) (*models.Shoot, error) {
	cur, err := r.Get(ctx, id, teamID)
	if err != nil {
		return nil, err
	}
	if u.Title != nil {
		cur.Title = *u.Title
	}
	if u.Status != nil {
		cur.Status = *u.Status
	}
	if u.Date != nil {
		cur.Date = *u.Date
	}
	if u.StartTime != nil {
		cur.StartTime = *u.StartTime
	}
	if u.DurationMinutes != nil {
		cur.DurationMinutes = *u.DurationMinutes
	}
	if u.LocationID != nil {
		cur.LocationID = *u.LocationID
	}
	if u.Description != nil {
		cur.Description = *u.Description
	}
	if u.Color != nil {
		cur.Color = *u.Color
	}
	if u.InstagramLinks != nil {
		cur.InstagramLinks = u.InstagramLinks
	}
	if u.CalendarEventID != nil {
		cur.CalendarEventID = *u.CalendarEventID
	}
	if u.CalendarURL != nil {
		cur.CalendarURL = *u.CalendarURL
	}
	if u.DocsID != nil {
		cur.DocsID = *u.DocsID
	}
	if u.DocsURL != nil {
		cur.DocsURL = *u.DocsURL
	}
	if u.IsPublic != nil {
		cur.IsPublic = *u.IsPublic
	}
	const q = `UPDATE shoots SET
		title = $3, status = $4, date = $5, start_time = NULLIF($6,''), duration_minutes = $7,
		location_id = $8, description = NULLIF($9,''), color = NULLIF($10,''), instagram_links = $11,
		calendar_event_id = NULLIF($12,''), calendar_url = NULLIF($13,''),
		docs_id = NULLIF($14,''), docs_url = NULLIF($15,''), is_public = $16,
		updated_at = NOW()
		WHERE id = $1 AND team_id = $2`
	_, err = r.pool.Exec(ctx, q, id, teamID,
		cur.Title, cur.Status, cur.Date, cur.StartTime, cur.DurationMinutes,
		cur.LocationID, cur.Description, cur.Color, cur.InstagramLinks,
		cur.CalendarEventID, cur.CalendarURL, cur.DocsID, cur.DocsURL, cur.IsPublic)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id, teamID)
}

// Delete removes a shoot. Cascades to references, participants and join rows.
// Returns true iff a row matched both id and team id.
func (r *Repository) Delete(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shoots WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// EquipmentItem is a shoot equipment join row hydrated with catalog fields.
type EquipmentItem struct {
	ID          uuid.UUID `json:"id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	Quantity    int       `json:"quantity"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
}

// ListEquipment returns the shoot's equipment join rows with catalog fields.
func (r *Repository) ListEquipment(ctx context.Context, shootID uuid.UUID) ([]EquipmentItem, error) {
	const q = `SELECT se.id, se.equipment_id, se.quantity, e.name, COALESCE(e.category,''), COALESCE(e.image_url,'')
		FROM shoot_equipment se
		INNER JOIN equipment e ON e.id = se.equipment_id
		WHERE se.shoot_id = $1
		ORDER BY se.created_at ASC`
	rows, err := r.pool.Query(ctx, q, shootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []EquipmentItem
	for rows.Next() {
		var it EquipmentItem
		if err := rows.Scan(&it.ID, &it.EquipmentID, &it.Quantity, &it.Name, &it.Category, &it.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// AddEquipment appends one equipment join row outside the bulk reconciler.
// Returns false when the equipment id does not exist in the team.
func (r *Repository) AddEquipment(ctx context.Context, shootID, equipmentID, teamID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		quantity = 1
	}
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO shoot_equipment (id, shoot_id, equipment_id, quantity)
		SELECT gen_random_uuid(), $1, e.id, $3 FROM equipment e WHERE e.id = $2 AND e.team_id = $4`,
		shootID, equipmentID, quantity, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PropItem is a shoot prop join row hydrated with catalog fields.
type PropItem struct {
	ID       uuid.UUID `json:"id"`
	PropID   uuid.UUID `json:"prop_id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
}

// ListProps returns the shoot's prop join rows with catalog fields.
func (r *Repository) ListProps(ctx context.Context, shootID uuid.UUID) ([]PropItem, error) {
	const q = `SELECT sp.id, sp.prop_id, p.name, COALESCE(p.category,''), COALESCE(p.image_url,'')
		FROM shoot_props sp
		INNER JOIN props p ON p.id = sp.prop_id
		WHERE sp.shoot_id = $1
		ORDER BY sp.created_at ASC`
	rows, err := r.pool.Query(ctx, q, shootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []PropItem
	for rows.Next() {
		var it PropItem
		if err := rows.Scan(&it.ID, &it.PropID, &it.Name, &it.Category, &it.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// AddProp appends one prop join row. Returns false when the prop id does
// not exist in the team.
func (r *Repository) AddProp(ctx context.Context, shootID, propID, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO shoot_props (id, shoot_id, prop_id)
		SELECT gen_random_uuid(), $1, p.id FROM props p WHERE p.id = $2 AND p.team_id = $3`,
		shootID, propID, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CostumeItem is a shoot costume join row hydrated with catalog fields.
type CostumeItem struct {
	ID                   uuid.UUID `json:"id"`
	CostumeID            uuid.UUID `json:"costume_id"`
	CharacterName        string    `json:"character_name"`
	Series               string    `json:"series,omitempty"`
	CompletionPercentage int       `json:"completion_percentage"`
}

// ListCostumes returns the shoot's costume join rows with catalog fields.
func (r *Repository) ListCostumes(ctx context.Context, shootID uuid.UUID) ([]CostumeItem, error) {
	const q = `SELECT sc.id, sc.costume_id, cp.character_name, COALESCE(cp.series,''), cp.completion_percentage
		FROM shoot_costumes sc
		INNER JOIN costume_progress cp ON cp.id = sc.costume_id
		WHERE sc.shoot_id = $1
		ORDER BY sc.created_at ASC`
	rows, err := r.pool.Query(ctx, q, shootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []CostumeItem
	for rows.Next() {
		var it CostumeItem
		if err := rows.Scan(&it.ID, &it.CostumeID, &it.CharacterName, &it.Series, &it.CompletionPercentage); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// AddCostume appends one costume join row. Returns false when the costume
// id does not exist in the team.
func (r *Repository) AddCostume(ctx context.Context, shootID, costumeID, teamID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO shoot_costumes (id, shoot_id, costume_id)
		SELECT gen_random_uuid(), $1, cp.id FROM costume_progress cp WHERE cp.id = $2 AND cp.team_id = $3`,
		shootID, costumeID, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PersonnelName resolves a personnel id inside the team. Used when a
// participant is appended by personnel link without an explicit name.
func (r *Repository) PersonnelName(ctx context.Context, id, teamID uuid.UUID) (string, bool, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM personnel WHERE id = $1 AND team_id = $2`, id, teamID).
		Scan(&name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return name, true, nil
}

// ListParticipants returns the shoot's participants, oldest first.
func (r *Repository) ListParticipants(ctx context.Context, shootID uuid.UUID) ([]models.ShootParticipant, error) {
	const q = `SELECT id, shoot_id, personnel_id, name, COALESCE(role,''), COALESCE(email,''), created_at
		FROM shoot_participants WHERE shoot_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, shootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ShootParticipant
	for rows.Next() {
		var p models.ShootParticipant
		if err := rows.Scan(&p.ID, &p.ShootID, &p.PersonnelID, &p.Name, &p.Role, &p.Email, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// AddParticipant appends one participant row (personnel-linked or manual).
func (r *Repository) AddParticipant(ctx context.Context, p *models.ShootParticipant) error {
	const q = `INSERT INTO shoot_participants (id, shoot_id, personnel_id, name, role, email)
		VALUES (gen_random_uuid(), $1, $2, $3, NULLIF($4,''), NULLIF($5,''))
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, p.ShootID, p.PersonnelID, p.Name, p.Role, p.Email).
		Scan(&p.ID, &p.CreatedAt)
}

// DeleteParticipant removes one participant row. The join against shoots
// keeps the delete team-scoped even though participants have their own ids.
func (r *Repository) DeleteParticipant(ctx context.Context, id, teamID uuid.UUID) (bool, error) {
	const q = `DELETE FROM shoot_participants sp
		USING shoots s
		WHERE sp.id = $1 AND s.id = sp.shoot_id AND s.team_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, teamID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListReferences returns the shoot's references, oldest first.
func (r *Repository) ListReferences(ctx context.Context, shootID uuid.UUID) ([]models.ShootReference, error) {
	const q = `SELECT id, shoot_id, type, url, COALESCE(notes,''), created_at
		FROM shoot_references WHERE shoot_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, shootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ShootReference
	for rows.Next() {
		var ref models.ShootReference
		if err := rows.Scan(&ref.ID, &ref.ShootID, &ref.Type, &ref.URL, &ref.Notes, &ref.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ref)
	}
	return list, rows.Err()
}

// AddReference appends one reference row.
func (r *Repository) AddReference(ctx context.Context, ref *models.ShootReference) error {
	const q = `INSERT INTO shoot_references (id, shoot_id, type, url, notes)
		VALUES (gen_random_uuid(), $1, $2, $3, NULLIF($4,''))
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, ref.ShootID, ref.Type, ref.URL, ref.Notes).
		Scan(&ref.ID, &ref.CreatedAt)
}

// DeleteReference removes one reference row, team-scoped via its shoot.
// Returns the deleted row's type and URL so the caller can clean up any
// stored object behind it.
func (r *Repository) DeleteReference(ctx context.Context, id, teamID uuid.UUID) (string, string, bool, error) {
	const q = `DELETE FROM shoot_references sr
		USING shoots s
		WHERE sr.id = $1 AND s.id = sr.shoot_id AND s.team_id = $2
		RETURNING sr.type, sr.url`
	var refType, url string
	err := r.pool.QueryRow(ctx, q, id, teamID).Scan(&refType, &url)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", "", false, nil
		}
		return "", "", false, err
	}
	return refType, url, true, nil
}
