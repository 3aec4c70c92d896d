package costumes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles costume progress HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a costumes handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/costumes.
type CreateRequest struct {
	CharacterName        string   `json:"character_name" binding:"required"`
	Series               string   `json:"series"`
	CompletionPercentage int      `json:"completion_percentage" binding:"min=0,max=100"`
	Todos                []string `json:"todos"`
	ImageURL             string   `json:"image_url"`
	Notes                string   `json:"notes"`
}

// UpdateRequest is the body for PATCH /api/costumes/:id.
type UpdateRequest struct {
	CharacterName        *string  `json:"character_name"`
	Series               *string  `json:"series"`
	CompletionPercentage *int     `json:"completion_percentage" binding:"omitempty,min=0,max=100"`
	Todos                []string `json:"todos"`
	ImageURL             *string  `json:"image_url"`
	Notes                *string  `json:"notes"`
}

// List handles GET /api/costumes.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByTeam(c.Request.Context(), teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to load costumes")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/costumes/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid costume id")
		return
	}
	cp, err := h.repo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "costume not found")
		return
	}
	response.OK(c, cp)
}

// Create handles POST /api/costumes (admin or owner).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	cp := &models.CostumeProgress{
		TeamID:               teams.TeamID(c),
		CharacterName:        req.CharacterName,
		Series:               req.Series,
		CompletionPercentage: req.CompletionPercentage,
		Todos:                req.Todos,
		ImageURL:             req.ImageURL,
		Notes:                req.Notes,
	}
	if err := h.repo.Create(c.Request.Context(), cp); err != nil {
		response.Internal(c, "failed to create costume")
		return
	}
	response.Created(c, cp)
}

// Update handles PATCH /api/costumes/:id (admin or owner).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid costume id")
		return
	}
	var req UpdateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	cp, err := h.repo.Update(c.Request.Context(), id, teams.TeamID(c), UpdateParams{
		CharacterName:        req.CharacterName,
		Series:               req.Series,
		CompletionPercentage: req.CompletionPercentage,
		Todos:                req.Todos,
		ImageURL:             req.ImageURL,
		Notes:                req.Notes,
	})
	if err != nil {
		response.NotFound(c, "costume not found")
		return
	}
	response.OK(c, cp)
}

// Delete handles DELETE /api/costumes/:id (admin or owner).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid costume id")
		return
	}
	ok, err := h.repo.Delete(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to delete costume")
		return
	}
	if !ok {
		response.NotFound(c, "costume not found")
		return
	}
	response.NoContent(c)
}
