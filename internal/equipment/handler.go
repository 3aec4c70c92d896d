package equipment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles equipment HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an equipment handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/equipment.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"available"`
	Notes       string `json:"notes"`
}

// UpdateRequest is the body for PATCH /api/equipment/:id.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Available   *bool   `json:"available"`
	Notes       *string `json:"notes"`
}

// List handles GET /api/equipment.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByTeam(c.Request.Context(), teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to load equipment")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/equipment/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid equipment id")
		return
	}
	e, err := h.repo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "equipment not found")
		return
	}
	response.OK(c, e)
}

// Create handles POST /api/equipment (admin or owner).
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
	e := &models.Equipment{
		TeamID:      teams.TeamID(c),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   available,
		Notes:       req.Notes,
	}
	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		response.Internal(c, "failed to create equipment")
		return
	}
	response.Created(c, e)
}

// Update handles PATCH /api/equipment/:id (admin or owner).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid equipment id")
		return
	}
	var req UpdateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	e, err := h.repo.Update(c.Request.Context(), id, teams.TeamID(c), UpdateParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
		Notes:       req.Notes,
	})
	if err != nil {
		response.NotFound(c, "equipment not found")
		return
	}
	response.OK(c, e)
}

// Delete handles DELETE /api/equipment/:id (admin or owner).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid equipment id")
		return
	}
	ok, err := h.repo.Delete(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to delete equipment")
		return
	}
	if !ok {
		response.NotFound(c, "equipment not found")
		return
	}
	response.NoContent(c)
}
