package locations

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles location HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a locations handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/locations.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Notes       string `json:"notes"`
}

// UpdateRequest is the body for PATCH /api/locations/:id.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	PlaceID     *string `json:"place_id"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Notes       *string `json:"notes"`
}

// List handles GET /api/locations.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByTeam(c.Request.Context(), teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to load locations")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/locations/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}
	l, err := h.repo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "location not found")
		return
	}
	response.OK(c, l)
}

// Create handles POST /api/locations (admin or owner).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	l := &models.Location{
		TeamID:      teams.TeamID(c),
		Name:        req.Name,
		Address:     req.Address,
		PlaceID:     req.PlaceID,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Notes:       req.Notes,
	}
	if err := h.repo.Create(c.Request.Context(), l); err != nil {
		response.Internal(c, "failed to create location")
		return
	}
	response.Created(c, l)
}

// Update handles PATCH /api/locations/:id (admin or owner).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}
	var req UpdateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	l, err := h.repo.Update(c.Request.Context(), id, teams.TeamID(c), UpdateParams{
		Name:        req.Name,
		Address:     req.Address,
		PlaceID:     req.PlaceID,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Notes:       req.Notes,
	})
	if err != nil {
		response.NotFound(c, "location not found")
		return
	}
	response.OK(c, l)
}

// Delete handles DELETE /api/locations/:id (admin or owner).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}
	ok, err := h.repo.Delete(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to delete location")
		return
	}
	if !ok {
		response.NotFound(c, "location not found")
		return
	}
	response.NoContent(c)
}
