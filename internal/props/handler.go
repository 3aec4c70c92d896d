package props

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles prop HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a props handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/props.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"available"`
}

// UpdateRequest is the body for PATCH /api/props/:id.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Available   *bool   `json:"available"`
}

// List handles GET /api/props.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByTeam(c.Request.Context(), teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to load props")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/props/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid prop id")
		return
	}
	p, err := h.repo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "prop not found")
		return
	}
	response.OK(c, p)
}

// Create handles POST /api/props (admin or owner).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	p := &models.Prop{
		TeamID:      teams.TeamID(c),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   available,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		response.Internal(c, "failed to create prop")
		return
	}
	response.Created(c, p)
}

// Update handles PATCH /api/props/:id (admin or owner).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid prop id")
		return
	}
	var req UpdateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	p, err := h.repo.Update(c.Request.Context(), id, teams.TeamID(c), UpdateParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	})
	if err != nil {
		response.NotFound(c, "prop not found")
		return
	}
	response.OK(c, p)
}

// Delete handles DELETE /api/props/:id (admin or owner).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid prop id")
		return
	}
	ok, err := h.repo.Delete(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to delete prop")
		return
	}
	if !ok {
		response.NotFound(c, "prop not found")
		return
	}
	response.NoContent(c)
}
