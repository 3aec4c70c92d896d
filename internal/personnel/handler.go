package personnel

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles personnel HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a personnel handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the body for POST /api/personnel.
type CreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
	AvatarURL string `json:"avatar_url"`
	Available *bool  `json:"available"`
	Notes     string `json:"notes"`
}

// UpdateRequest is the body for PATCH /api/personnel/:id.
type UpdateRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Instagram *string `json:"instagram"`
	AvatarURL *string `json:"avatar_url"`
	Available *bool   `json:"available"`
	Notes     *string `json:"notes"`
}

// List handles GET /api/personnel.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByTeam(c.Request.Context(), teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to load personnel")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/personnel/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid personnel id")
		return
	}
	p, err := h.repo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "personnel not found")
		return
	}
	response.OK(c, p)
}

// Create handles POST /api/personnel (admin or owner).
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
	p := &models.Personnel{
		TeamID:    teams.TeamID(c),
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
		Instagram: req.Instagram,
		AvatarURL: req.AvatarURL,
		Available: available,
		Notes:     req.Notes,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		response.Internal(c, "failed to create personnel")
		return
	}
	response.Created(c, p)
}

// Update handles PATCH /api/personnel/:id (admin or owner).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid personnel id")
		return
	}
	var req UpdateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	p, err := h.repo.Update(c.Request.Context(), id, teams.TeamID(c), UpdateParams{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
		Instagram: req.Instagram,
		AvatarURL: req.AvatarURL,
		Available: req.Available,
		Notes:     req.Notes,
	})
	if err != nil {
		response.NotFound(c, "personnel not found")
		return
	}
	response.OK(c, p)
}

// Delete handles DELETE /api/personnel/:id (admin or owner).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid personnel id")
		return
	}
	ok, err := h.repo.Delete(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to delete personnel")
		return
	}
	if !ok {
		response.NotFound(c, "personnel not found")
		return
	}
	response.NoContent(c)
}
