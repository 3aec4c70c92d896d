package analytics

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles GET /api/team/stats.
type Handler struct {
	pool *pgxpool.Pool
}

// NewHandler creates an analytics handler.
func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// StatsResponse is the JSON shape for team stats (matches frontend
// TeamStats).
type StatsResponse struct {
	TotalShoots    int            `json:"total_shoots"`
	ShootsByStatus map[string]int `json:"shoots_by_status"`
	UpcomingShoots int            `json:"upcoming_shoots"`
	TotalPersonnel int            `json:"total_personnel"`
	TotalEquipment int            `json:"total_equipment"`
	TotalLocations int            `json:"total_locations"`
	TotalProps     int            `json:"total_props"`
	TotalCostumes  int            `json:"total_costumes"`
}

// GetTeamStats handles GET /api/team/stats.
func (h *Handler) GetTeamStats(c *gin.Context) {
	teamID := teams.TeamID(c)
	ctx := c.Request.Context()

	out := StatsResponse{ShootsByStatus: map[string]int{}}

	rows, err := h.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM shoots WHERE team_id = $1 GROUP BY status`, teamID)
	if err != nil {
		response.Internal(c, "failed to load team stats")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			response.Internal(c, "failed to load team stats")
			return
		}
		out.ShootsByStatus[status] = count
		out.TotalShoots += count
	}
	if err := rows.Err(); err != nil {
		response.Internal(c, "failed to load team stats")
		return
	}

	// Upcoming: dated shoots from today onward that are not completed.
	const upcomingQ = `SELECT COUNT(*) FROM shoots
		WHERE team_id = $1 AND date >= CURRENT_DATE AND status <> 'completed'`
	if err := h.pool.QueryRow(ctx, upcomingQ, teamID).Scan(&out.UpcomingShoots); err != nil {
		response.Internal(c, "failed to load team stats")
		return
	}

	const countsQ = `SELECT
		(SELECT COUNT(*) FROM personnel WHERE team_id = $1),
		(SELECT COUNT(*) FROM equipment WHERE team_id = $1),
		(SELECT COUNT(*) FROM locations WHERE team_id = $1),
		(SELECT COUNT(*) FROM props WHERE team_id = $1),
		(SELECT COUNT(*) FROM costume_progress WHERE team_id = $1)`
	err = h.pool.QueryRow(ctx, countsQ, teamID).Scan(
		&out.TotalPersonnel, &out.TotalEquipment, &out.TotalLocations, &out.TotalProps, &out.TotalCostumes)
	if err != nil {
		response.Internal(c, "failed to load team stats")
		return
	}

	response.OK(c, out)
}
