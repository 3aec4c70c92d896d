package shoots

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReconcileInput is the desired end state for a shoot's associations. Every
// list is a full replacement; duplicates in the id lists are honored, one
// join row per occurrence.
type ReconcileInput struct {
	EquipmentIDs []uuid.UUID
	PropIDs      []uuid.UUID
	CostumeIDs   []uuid.UUID
	PersonnelIDs []uuid.UUID
	Participants []ParticipantInput
}

// ParticipantInput is one participant row as submitted by the client.
type ParticipantInput struct {
	PersonnelID *uuid.UUID
	Name        string
	Role        string
	Email       string
}

// Reconciler replaces a shoot's association rows with a submitted end state.
// The whole delete-and-recreate sequence runs in one transaction, so a
// failure partway through leaves the previous associations intact.
type Reconciler struct {
	pool *pgxpool.Pool
}

// NewReconciler creates a reconciler.
func NewReconciler(pool *pgxpool.Pool) *Reconciler {
	return &Reconciler{pool: pool}
}

// Reconcile rewrites the shoot's equipment, prop, costume and participant
// rows to match in. Ids that do not resolve to a catalog row in the team are
// skipped without error. Personnel named in in.PersonnelIDs but absent from
// in.Participants get a supplementary participant row with role
// "Participant" and the personnel entry's name.
func (r *Reconciler) Reconcile(ctx context.Context, shootID, teamID uuid.UUID, in ReconcileInput) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"shoot_equipment", "shoot_props", "shoot_costumes", "shoot_participants"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE shoot_id = $1`, shootID); err != nil {
			return err
		}
	}

	for _, id := range in.EquipmentIDs {
		// The EXISTS guard drops ids from other teams or deleted rows.
		_, err := tx.Exec(ctx, `INSERT INTO shoot_equipment (id, shoot_id, equipment_id, quantity)
			SELECT gen_random_uuid(), $1, e.id, 1 FROM equipment e WHERE e.id = $2 AND e.team_id = $3`,
			shootID, id, teamID)
		if err != nil {
			return err
		}
	}
	for _, id := range in.PropIDs {
		_, err := tx.Exec(ctx, `INSERT INTO shoot_props (id, shoot_id, prop_id)
			SELECT gen_random_uuid(), $1, p.id FROM props p WHERE p.id = $2 AND p.team_id = $3`,
			shootID, id, teamID)
		if err != nil {
			return err
		}
	}
	for _, id := range in.CostumeIDs {
		_, err := tx.Exec(ctx, `INSERT INTO shoot_costumes (id, shoot_id, costume_id)
			SELECT gen_random_uuid(), $1, cp.id FROM costume_progress cp WHERE cp.id = $2 AND cp.team_id = $3`,
			shootID, id, teamID)
		if err != nil {
			return err
		}
	}

	for _, p := range in.Participants {
		if err := insertParticipant(ctx, tx, shootID, teamID, p); err != nil {
			return err
		}
	}

	for _, pid := range MissingPersonnelIDs(in.Participants, in.PersonnelIDs) {
		var name string
		err := tx.QueryRow(ctx, `SELECT name FROM personnel WHERE id = $1 AND team_id = $2`, pid, teamID).
			Scan(&name)
		if err == pgx.ErrNoRows {
			continue
		}
		if err != nil {
			return err
		}
		id := pid
		err = insertParticipant(ctx, tx, shootID, teamID, ParticipantInput{
			PersonnelID: &id,
			Name:        name,
			Role:        "Participant",
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertParticipant(ctx context.Context, tx pgx.Tx, shootID, teamID uuid.UUID, p ParticipantInput) error {
	// A personnel link pointing outside the team is stored as a manual
	// participant rather than rejected.
	var personnelID *uuid.UUID
	if p.PersonnelID != nil {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM personnel WHERE id = $1 AND team_id = $2)`,
			*p.PersonnelID, teamID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			personnelID = p.PersonnelID
		}
	}
	_, err := tx.Exec(ctx, `INSERT INTO shoot_participants (id, shoot_id, personnel_id, name, role, email)
		VALUES (gen_random_uuid(), $1, $2, $3, NULLIF($4,''), NULLIF($5,''))`,
		shootID, personnelID, p.Name, p.Role, p.Email)
	return err
}

// MissingPersonnelIDs returns the ids from personnelIDs that no submitted
// participant row already links to, in submission order. Each occurrence
// counts, so a duplicated id yields a row per occurrence.
func MissingPersonnelIDs(participants []ParticipantInput, personnelIDs []uuid.UUID) []uuid.UUID {
	linked := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		if p.PersonnelID != nil {
			linked[*p.PersonnelID] = true
		}
	}
	var missing []uuid.UUID
	for _, id := range personnelIDs {
		if !linked[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
