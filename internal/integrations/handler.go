package integrations

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shootdeck/backend/internal/emaillog"
	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/internal/shoots"
	"github.com/shootdeck/backend/internal/teams"
	"github.com/shootdeck/backend/pkg/payload"
	redispkg "github.com/shootdeck/backend/pkg/redis"
	"github.com/shootdeck/backend/pkg/response"
	"github.com/shootdeck/backend/pkg/storage"
)

const placesCacheTTL = 24 * time.Hour

// Handler handles the third-party integration endpoints. Each client may be
// nil when its integration is not configured; the matching endpoint then
// answers 503 so the frontend can offer a fallback.
type Handler struct {
	calendar  *CalendarClient
	docs      *DocsClient
	places    *PlacesClient
	mailer    *Mailer
	s3        *storage.S3
	shootRepo *shoots.Repository
	emailLog  *emaillog.Repository
	cache     *redispkg.Client
	logger    *zap.Logger
}

// NewHandler creates an integrations handler.
func NewHandler(
	calendar *CalendarClient,
	docs *DocsClient,
	places *PlacesClient,
	mailer *Mailer,
	s3 *storage.S3,
	shootRepo *shoots.Repository,
	emailLog *emaillog.Repository,
	cache *redispkg.Client,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		calendar:  calendar,
		docs:      docs,
		places:    places,
		mailer:    mailer,
		s3:        s3,
		shootRepo: shootRepo,
		emailLog:  emailLog,
		cache:     cache,
		logger:    logger,
	}
}

type shootIDRequest struct {
	ShootID string `json:"shoot_id" binding:"required,uuid"`
}

func (h *Handler) loadShoot(c *gin.Context, shootID string) *models.Shoot {
	id, err := uuid.Parse(shootID)
	if err != nil {
		response.BadRequest(c, "invalid shoot id")
		return nil
	}
	s, err := h.shootRepo.Get(c.Request.Context(), id, teams.TeamID(c))
	if err != nil {
		response.NotFound(c, "shoot not found")
		return nil
	}
	return s
}

// CreateCalendarEvent handles POST /api/integrations/calendar/events
// (admin or owner). Creates the event and stores its id and link on the
// shoot.
func (h *Handler) CreateCalendarEvent(c *gin.Context) {
	if h.calendar == nil {
		response.ServiceUnavailable(c, "calendar integration is not configured")
		return
	}
	var req shootIDRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	s := h.loadShoot(c, req.ShootID)
	if s == nil {
		return
	}
	eventID, link, err := h.calendar.CreateEvent(c.Request.Context(), s)
	if err != nil {
		h.logger.Error("create calendar event", zap.String("shoot_id", s.ID.String()), zap.Error(err))
		response.Internal(c, "calendar event creation failed, add the shoot to your calendar manually")
		return
	}
	updated, err := h.shootRepo.Update(c.Request.Context(), s.ID, s.TeamID, shoots.UpdateParams{
		CalendarEventID: &eventID,
		CalendarURL:     &link,
	})
	if err != nil {
		response.Internal(c, "failed to save calendar event")
		return
	}
	response.Created(c, updated)
}

// ExportDocs handles POST /api/integrations/docs/export (admin or owner).
// Exports the shoot plan to a new document and stores its id and link.
func (h *Handler) ExportDocs(c *gin.Context) {
	if h.docs == nil {
		response.ServiceUnavailable(c, "docs integration is not configured")
		return
	}
	var req shootIDRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	s := h.loadShoot(c, req.ShootID)
	if s == nil {
		return
	}
	participants, err := h.shootRepo.ListParticipants(c.Request.Context(), s.ID)
	if err != nil {
		response.Internal(c, "failed to load participants")
		return
	}
	docID, link, err := h.docs.ExportShoot(c.Request.Context(), s, participants)
	if err != nil {
		h.logger.Error("export docs", zap.String("shoot_id", s.ID.String()), zap.Error(err))
		response.Internal(c, "document export failed, copy the shoot details manually")
		return
	}
	updated, err := h.shootRepo.Update(c.Request.Context(), s.ID, s.TeamID, shoots.UpdateParams{
		DocsID:  &docID,
		DocsURL: &link,
	})
	if err != nil {
		response.Internal(c, "failed to save document link")
		return
	}
	response.Created(c, updated)
}

// ReminderRequest is the body for POST /api/integrations/email/reminder.
// Recipients defaults to every participant with an email address.
type ReminderRequest struct {
	ShootID    string   `json:"shoot_id" binding:"required,uuid"`
	Recipients []string `json:"recipients" binding:"omitempty,dive,email"`
}

// ReminderResult summarizes a reminder send.
type ReminderResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendReminder handles POST /api/integrations/email/reminder (admin or
// owner). Every attempt is recorded in the email log, failures included.
func (h *Handler) SendReminder(c *gin.Context) {
	if h.mailer == nil {
		response.ServiceUnavailable(c, "email integration is not configured")
		return
	}
	var req ReminderRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	s := h.loadShoot(c, req.ShootID)
	if s == nil {
		return
	}
	recipients := req.Recipients
	if len(recipients) == 0 {
		participants, err := h.shootRepo.ListParticipants(c.Request.Context(), s.ID)
		if err != nil {
			response.Internal(c, "failed to load participants")
			return
		}
		for _, p := range participants {
			if p.Email != "" {
				recipients = append(recipients, p.Email)
			}
		}
	}
	if len(recipients) == 0 {
		response.BadRequest(c, "no recipients: no participant has an email address")
		return
	}

	subject := ReminderSubject(s)
	var result ReminderResult
	for _, to := range recipients {
		log := &models.EmailLog{
			ShootID:        s.ID,
			RecipientEmail: to,
			Subject:        subject,
			Status:         models.EmailLogStatusSent,
		}
		if err := h.mailer.SendShootReminder(to, s); err != nil {
			h.logger.Warn("send reminder", zap.String("shoot_id", s.ID.String()), zap.Error(err))
			log.Status = models.EmailLogStatusFailed
			log.ErrorMessage = err.Error()
			result.Failed++
		} else {
			result.Sent++
		}
		if err := h.emailLog.Create(c.Request.Context(), log); err != nil {
			h.logger.Error("record email log", zap.Error(err))
		}
	}
	response.OK(c, result)
}

// ListEmailLogs handles GET /api/shoots/:id/email-logs. Returns the shoot's
// reminder delivery log, newest first.
func (h *Handler) ListEmailLogs(c *gin.Context) {
	s := h.loadShoot(c, c.Param("id"))
	if s == nil {
		return
	}
	list, err := h.emailLog.ListByShoot(c.Request.Context(), s.ID, s.TeamID)
	if err != nil {
		response.Internal(c, "failed to load email log")
		return
	}
	response.OK(c, list)
}

// PlacesAutocomplete handles GET /api/integrations/places/autocomplete.
// Results are cached in Redis per query so repeated keystrokes do not burn
// API quota.
func (h *Handler) PlacesAutocomplete(c *gin.Context) {
	if h.places == nil {
		response.ServiceUnavailable(c, "places integration is not configured")
		return
	}
	input := c.Query("input")
	if input == "" {
		response.BadRequest(c, "input query parameter is required")
		return
	}
	ctx := c.Request.Context()
	cacheKey := "places:autocomplete:" + input

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, cacheKey).Result(); err == nil {
			var suggestions []PlaceSuggestion
			if json.Unmarshal([]byte(cached), &suggestions) == nil {
				response.OK(c, suggestions)
				return
			}
		}
	}

	suggestions, err := h.places.Autocomplete(ctx, input)
	if err != nil {
		h.logger.Error("places autocomplete", zap.Error(err))
		response.Internal(c, "place lookup failed, enter the address manually")
		return
	}
	if h.cache != nil {
		if raw, err := json.Marshal(suggestions); err == nil {
			h.cacheSet(ctx, cacheKey, raw)
		}
	}
	response.OK(c, suggestions)
}

func (h *Handler) cacheSet(ctx context.Context, key string, raw []byte) {
	if err := h.cache.Set(ctx, key, raw, placesCacheTTL).Err(); err != nil {
		h.logger.Warn("cache places result", zap.Error(err))
	}
}

// SignUploadRequest is the body for POST /api/integrations/uploads/sign.
// Kind selects the key layout: "reference" keys live under the shoot,
// "catalog" keys under the team.
type SignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	Kind        string `json:"kind" binding:"required,oneof=reference catalog"`
	ShootID     string `json:"shoot_id" binding:"omitempty,uuid"`
}

// SignUpload handles POST /api/integrations/uploads/sign (admin or owner).
// Returns a pre-signed PUT URL and the object URL to store after upload.
func (h *Handler) SignUpload(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "uploads are not configured")
		return
	}
	var req SignUploadRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	if !storage.ValidateImageType(req.ContentType, req.Filename) {
		response.BadRequest(c, "unsupported image type")
		return
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(req.Filename)
	}

	var key string
	switch req.Kind {
	case "reference":
		if req.ShootID == "" {
			response.BadRequest(c, "shoot_id is required for reference uploads")
			return
		}
		s := h.loadShoot(c, req.ShootID)
		if s == nil {
			return
		}
		key = storage.ReferenceKey(s.ID.String(), req.Filename)
	case "catalog":
		key = storage.CatalogKey(teams.TeamID(c).String(), req.Filename)
	}

	expires := h.s3.PresignExpire()
	uploadURL, err := h.s3.GeneratePresignedUploadURL(c.Request.Context(), key, contentType, expires)
	if err != nil {
		h.logger.Error("presign upload", zap.Error(err))
		response.Internal(c, "failed to sign upload")
		return
	}
	response.OK(c, gin.H{
		"upload_url":   uploadURL,
		"object_url":   h.s3.PublicObjectURL(key),
		"key":          key,
		"content_type": contentType,
		"expires_in":   int(expires.Seconds()),
	})
}
