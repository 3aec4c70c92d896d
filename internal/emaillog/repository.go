package emaillog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/models"
)

// Repository persists the delivery log for shoot reminder emails.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts one delivery record.
func (r *Repository) Create(ctx context.Context, log *models.EmailLog) error {
	const q = `INSERT INTO email_logs (id, shoot_id, recipient_email, subject, status, error_message)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5,''))
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q,
		log.ShootID, log.RecipientEmail, log.Subject, log.Status, log.ErrorMessage).
		Scan(&log.ID, &log.CreatedAt)
}

// ListByShoot returns the delivery log for a shoot, newest first. The join
// against shoots keeps the read team-scoped.
func (r *Repository) ListByShoot(ctx context.Context, shootID, teamID uuid.UUID) ([]models.EmailLog, error) {
	const q = `SELECT el.id, el.shoot_id, el.recipient_email, el.subject, el.status,
		COALESCE(el.error_message,''), el.created_at
		FROM email_logs el
		INNER JOIN shoots s ON s.id = el.shoot_id
		WHERE el.shoot_id = $1 AND s.team_id = $2
		ORDER BY el.created_at DESC`
	rows, err := r.pool.Query(ctx, q, shootID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.ShootID, &l.RecipientEmail, &l.Subject, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
