package shoots

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shootdeck/backend/internal/middleware"
	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
	"github.com/shootdeck/backend/pkg/storage"
)

// Handler handles shoot HTTP endpoints, including the bulk association
// reconciler and the per-association accessors.
type Handler struct {
	repo       *Repository
	reconciler *Reconciler
	s3         *storage.S3
	logger     *zap.Logger
}

// NewHandler creates a shoots handler. s3 may be nil when uploads are not
// configured; deleted image references then skip object cleanup.
func NewHandler(repo *Repository, reconciler *Reconciler, s3 *storage.S3, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, reconciler: reconciler, s3: s3, logger: logger}
}

// Detail is a shoot with all of its association rows hydrated.
type Detail struct {
	models.Shoot
	Equipment    []EquipmentItem           `json:"equipment"`
	Props        []PropItem                `json:"props"`
	Costumes     []CostumeItem             `json:"costumes"`
	Participants []models.ShootParticipant `json:"participants"`
	References   []models.ShootReference   `json:"references"`
}

func (h *Handler) detail(ctx context.Context, s *models.Shoot) (*Detail, error) {
	d := &Detail{Shoot: *s}
	var err error
	if d.Equipment, err = h.repo.ListEquipment(ctx, s.ID); err != nil {
		return nil, err
	}
	if d.Props, err = h.repo.ListProps(ctx, s.ID); err != nil {
		return nil, err
	}
	if d.Costumes, err = h.repo.ListCostumes(ctx, s.ID); err != nil {
		return nil, err
	}
	if d.Participants, err = h.repo.ListParticipants(ctx, s.ID); err != nil {
		return nil, err
	}
	if d.References, err = h.repo.ListReferences(ctx, s.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func parseDate(s string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, &time.ParseError{Layout: "2006-01-02", Value: s}
}

// shootOf resolves the :id param to a shoot in the caller's team. Writes the
// error response itself and returns nil on failure.
func (h *Handler) shootOf(c *gin.Context) *models.Shoot {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid shoot id")
		return nil
	}
	s, err := h.repo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "shoot not found")
		return nil
	}
	return s
}

// List handles GET /api/shoots.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByTeam(c.Request.Context(), teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to load shoots")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/shoots/:id. Returns the shoot with associations.
func (h *Handler) Get(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	d, err := h.detail(c.Request.Context(), s)
	if err != nil {
		response.Internal(c, "failed to load shoot")
		return
	}
	response.OK(c, d)
}

// GetPublic handles GET /api/public/shoots/:id. No auth; only shoots marked
// public resolve, everything else is a 404.
func (h *Handler) GetPublic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid shoot id")
		return
	}
	s, err := h.repo.GetPublic(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "shoot not found")
		return
	}
	d, err := h.detail(c.Request.Context(), s)
	if err != nil {
		response.Internal(c, "failed to load shoot")
		return
	}
	response.OK(c, d)
}

// CreateRequest is the body for POST /api/shoots.
type CreateRequest struct {
	Title           string   `json:"title" binding:"required"`
	Status          string   `json:"status"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	DurationMinutes *int     `json:"duration_minutes"`
	LocationID      string   `json:"location_id"`
	Description     string   `json:"description"`
	Color           string   `json:"color"`
	InstagramLinks  []string `json:"instagram_links"`
	IsPublic        bool     `json:"is_public"`
}

// Create handles POST /api/shoots (admin or owner).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	if req.Status == "" {
		req.Status = models.ShootStatusIdea
	}
	if !models.ValidShootStatus(req.Status) {
		response.BadRequest(c, "invalid shoot status")
		return
	}
	s := &models.Shoot{
		TeamID:          teams.TeamID(c),
		UserID:          c.MustGet(middleware.ContextUserID).(uuid.UUID),
		Title:           req.Title,
		Status:          req.Status,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Color:           req.Color,
		InstagramLinks:  req.InstagramLinks,
		IsPublic:        req.IsPublic,
	}
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			response.BadRequest(c, "invalid date")
			return
		}
		s.Date = d
	}
	if req.LocationID != "" {
		lid, err := uuid.Parse(req.LocationID)
		if err != nil {
			response.BadRequest(c, "invalid location id")
			return
		}
		s.LocationID = &lid
	}
	if err := h.repo.Create(c.Request.Context(), s); err != nil {
		h.logger.Error("create shoot", zap.Error(err))
		response.Internal(c, "failed to create shoot")
		return
	}
	response.Created(c, s)
}

// Update handles PATCH /api/shoots/:id (admin or owner). The body is read
// as a key-presence map so nullable fields can be cleared with an explicit
// null without colliding with "field omitted".
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid shoot id")
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	norm, err := payload.NormalizeKeys(raw)
	if err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(norm, &body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	var u UpdateParams
	if raw, ok := body["title"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			response.BadRequest(c, "invalid title")
			return
		}
		u.Title = &s
	}
	if raw, ok := body["status"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !models.ValidShootStatus(s) {
			response.BadRequest(c, "invalid shoot status")
			return
		}
		u.Status = &s
	}
	if raw, ok := body["date"]; ok {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			response.BadRequest(c, "invalid date")
			return
		}
		var t *time.Time
		if s != nil && *s != "" {
			if t, err = parseDate(*s); err != nil {
				response.BadRequest(c, "invalid date")
				return
			}
		}
		u.Date = &t
	}
	if raw, ok := body["start_time"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			response.BadRequest(c, "invalid start time")
			return
		}
		u.StartTime = &s
	}
	if raw, ok := body["duration_minutes"]; ok {
		var n *int
		if err := json.Unmarshal(raw, &n); err != nil || (n != nil && *n < 0) {
			response.BadRequest(c, "invalid duration")
			return
		}
		u.DurationMinutes = &n
	}
	if raw, ok := body["location_id"]; ok {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			response.BadRequest(c, "invalid location id")
			return
		}
		var lid *uuid.UUID
		if s != nil && *s != "" {
			parsed, err := uuid.Parse(*s)
			if err != nil {
				response.BadRequest(c, "invalid location id")
				return
			}
			lid = &parsed
		}
		u.LocationID = &lid
	}
	if raw, ok := body["description"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			response.BadRequest(c, "invalid description")
			return
		}
		u.Description = &s
	}
	if raw, ok := body["color"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			response.BadRequest(c, "invalid color")
			return
		}
		u.Color = &s
	}
	if raw, ok := body["instagram_links"]; ok {
		var links []string
		if err := json.Unmarshal(raw, &links); err != nil {
			response.BadRequest(c, "invalid instagram links")
			return
		}
		if links == nil {
			links = []string{}
		}
		u.InstagramLinks = links
	}
	if raw, ok := body["is_public"]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			response.BadRequest(c, "invalid is_public")
			return
		}
		u.IsPublic = &b
	}

	s, err := h.repo.Update(c.Request.Context(), id, teams.TeamID(c), u)
	if err != nil {
		response.NotFound(c, "shoot not found")
		return
	}
	response.OK(c, s)
}

// Delete handles DELETE /api/shoots/:id (admin or owner).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid shoot id")
		return
	}
	ok, err := h.repo.Delete(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to delete shoot")
		return
	}
	if !ok {
		response.NotFound(c, "shoot not found")
		return
	}
	response.NoContent(c)
}

// resourcesRequest is the body for PATCH /api/shoots/:id/resources. The id
// lists accept plain strings, bare join rows or full resource objects;
// payload.ResourceIDs flattens all three.
type resourcesRequest struct {
	EquipmentIDs []interface{}     `json:"equipment_ids"`
	PropIDs      []interface{}     `json:"prop_ids"`
	CostumeIDs   []interface{}     `json:"costume_ids"`
	PersonnelIDs []interface{}     `json:"personnel_ids"`
	Participants []participantBody `json:"participants"`
}

type participantBody struct {
	PersonnelID string `json:"personnel_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Email       string `json:"email"`
}

// Resources handles PATCH /api/shoots/:id/resources (admin or owner). The
// submitted lists fully replace the shoot's associations.
func (h *Handler) Resources(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	var req resourcesRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	in := ReconcileInput{
		EquipmentIDs: payload.ResourceIDs(req.EquipmentIDs, "equipment_id"),
		PropIDs:      payload.ResourceIDs(req.PropIDs, "prop_id"),
		CostumeIDs:   payload.ResourceIDs(req.CostumeIDs, "costume_id"),
		PersonnelIDs: payload.ResourceIDs(req.PersonnelIDs, "personnel_id"),
	}
	for _, p := range req.Participants {
		pi := ParticipantInput{Name: p.Name, Role: p.Role, Email: p.Email}
		if p.PersonnelID != "" {
			if pid, err := uuid.Parse(p.PersonnelID); err == nil {
				pi.PersonnelID = &pid
			}
		}
		in.Participants = append(in.Participants, pi)
	}

	if err := h.reconciler.Reconcile(c.Request.Context(), s.ID, s.TeamID, in); err != nil {
		h.logger.Error("reconcile shoot resources", zap.String("shoot_id", s.ID.String()), zap.Error(err))
		response.Internal(c, "failed to update shoot resources")
		return
	}
	d, err := h.detail(c.Request.Context(), s)
	if err != nil {
		response.Internal(c, "failed to load shoot")
		return
	}
	response.OK(c, d)
}

// ListEquipment handles GET /api/shoots/:id/equipment.
func (h *Handler) ListEquipment(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	list, err := h.repo.ListEquipment(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load shoot equipment")
		return
	}
	response.OK(c, list)
}

// AddEquipment handles POST /api/shoots/:id/equipment (admin or owner).
func (h *Handler) AddEquipment(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	var req struct {
		EquipmentID string `json:"equipment_id" binding:"required"`
		Quantity    int    `json:"quantity"`
	}
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	eid, err := uuid.Parse(req.EquipmentID)
	if err != nil {
		response.BadRequest(c, "invalid equipment id")
		return
	}
	ok, err := h.repo.AddEquipment(c.Request.Context(), s.ID, eid, s.TeamID, req.Quantity)
	if err != nil {
		response.Internal(c, "failed to add equipment")
		return
	}
	if !ok {
		response.NotFound(c, "equipment not found")
		return
	}
	list, err := h.repo.ListEquipment(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load shoot equipment")
		return
	}
	response.Created(c, list)
}

// ListProps handles GET /api/shoots/:id/props.
func (h *Handler) ListProps(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	list, err := h.repo.ListProps(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load shoot props")
		return
	}
	response.OK(c, list)
}

// AddProp handles POST /api/shoots/:id/props (admin or owner).
func (h *Handler) AddProp(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	var req struct {
		PropID string `json:"prop_id" binding:"required"`
	}
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	pid, err := uuid.Parse(req.PropID)
	if err != nil {
		response.BadRequest(c, "invalid prop id")
		return
	}
	ok, err := h.repo.AddProp(c.Request.Context(), s.ID, pid, s.TeamID)
	if err != nil {
		response.Internal(c, "failed to add prop")
		return
	}
	if !ok {
		response.NotFound(c, "prop not found")
		return
	}
	list, err := h.repo.ListProps(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load shoot props")
		return
	}
	response.Created(c, list)
}

// ListCostumes handles GET /api/shoots/:id/costumes.
func (h *Handler) ListCostumes(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	list, err := h.repo.ListCostumes(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load shoot costumes")
		return
	}
	response.OK(c, list)
}

// AddCostume handles POST /api/shoots/:id/costumes (admin or owner).
func (h *Handler) AddCostume(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	var req struct {
		CostumeID string `json:"costume_id" binding:"required"`
	}
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	cid, err := uuid.Parse(req.CostumeID)
	if err != nil {
		response.BadRequest(c, "invalid costume id")
		return
	}
	ok, err := h.repo.AddCostume(c.Request.Context(), s.ID, cid, s.TeamID)
	if err != nil {
		response.Internal(c, "failed to add costume")
		return
	}
	if !ok {
		response.NotFound(c, "costume not found")
		return
	}
	list, err := h.repo.ListCostumes(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load shoot costumes")
		return
	}
	response.Created(c, list)
}

// ListParticipants handles GET /api/shoots/:id/participants.
func (h *Handler) ListParticipants(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	list, err := h.repo.ListParticipants(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load participants")
		return
	}
	response.OK(c, list)
}

// AddParticipant handles POST /api/shoots/:id/participants (admin or
// owner). Accepts a personnel link, a manual entry, or both; a personnel
// link with no explicit name inherits the personnel entry's name.
func (h *Handler) AddParticipant(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	var req participantBody
	if err := payload.BindJSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	p := &models.ShootParticipant{
		ShootID: s.ID,
		Name:    req.Name,
		Role:    req.Role,
		Email:   req.Email,
	}
	if req.PersonnelID != "" {
		pid, err := uuid.Parse(req.PersonnelID)
		if err != nil {
			response.BadRequest(c, "invalid personnel id")
			return
		}
		name, found, err := h.repo.PersonnelName(c.Request.Context(), pid, s.TeamID)
		if err != nil {
			response.Internal(c, "failed to add participant")
			return
		}
		if !found {
			response.NotFound(c, "personnel not found")
			return
		}
		p.PersonnelID = &pid
		if p.Name == "" {
			p.Name = name
		}
	}
	if p.Name == "" {
		response.BadRequest(c, "participant name is required")
		return
	}
	if err := h.repo.AddParticipant(c.Request.Context(), p); err != nil {
		response.Internal(c, "failed to add participant")
		return
	}
	response.Created(c, p)
}

// DeleteParticipant handles DELETE /api/participants/:id (admin or owner).
func (h *Handler) DeleteParticipant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid participant id")
		return
	}
	ok, err := h.repo.DeleteParticipant(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to remove participant")
		return
	}
	if !ok {
		response.NotFound(c, "participant not found")
		return
	}
	response.NoContent(c)
}

// ListReferences handles GET /api/shoots/:id/references.
func (h *Handler) ListReferences(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	list, err := h.repo.ListReferences(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load references")
		return
	}
	response.OK(c, list)
}

// AddReference handles POST /api/shoots/:id/references (admin or owner).
func (h *Handler) AddReference(c *gin.Context) {
	s := h.shootOf(c)
	if s == nil {
		return
	}
	var req struct {
		Type  string `json:"type" binding:"required,oneof=link image"`
		URL   string `json:"url" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	ref := &models.ShootReference{
		ShootID: s.ID,
		Type:    req.Type,
		URL:     req.URL,
		Notes:   req.Notes,
	}
	if err := h.repo.AddReference(c.Request.Context(), ref); err != nil {
		response.Internal(c, "failed to add reference")
		return
	}
	response.Created(c, ref)
}

// DeleteReference handles DELETE /api/references/:id (admin or owner).
// Image references uploaded to the bucket get their object removed as well;
// cleanup failures are logged, the row is already gone.
func (h *Handler) DeleteReference(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reference id")
		return
	}
	refType, url, ok, err := h.repo.DeleteReference(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.Internal(c, "failed to remove reference")
		return
	}
	if !ok {
		response.NotFound(c, "reference not found")
		return
	}
	if refType == "image" && h.s3 != nil {
		if key, owned := h.s3.KeyFromObjectURL(url); owned {
			if err := h.s3.DeleteObject(c.Request.Context(), key); err != nil {
				h.logger.Warn("delete reference object", zap.String("key", key), zap.Error(err))
			}
		}
	}
	response.NoContent(c)
}
