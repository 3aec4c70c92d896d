package teams

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shootdeck/backend/internal/middleware"
	"github.com/shootdeck/backend/internal/models"
	"github.com/shootdeck/backend/pkg/payload"
	"github.com/shootdeck/backend/pkg/response"
)

// Handler handles team HTTP endpoints.
type Handler struct {
	repo     *Repository
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates a teams handler.
func NewHandler(repo *Repository, resolver *Resolver, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, resolver: resolver, logger: logger}
}

// CreateTeamRequest is the body for POST /api/team.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// UpdateTeamRequest is the body for PATCH /api/team/:id.
type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// UpdateMemberRoleRequest is the body for PATCH /api/team/:id/members/:userId.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// JoinTeamRequest is the body for POST /api/team/join.
type JoinTeamRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// SwitchTeamRequest is the body for POST /api/team/switch.
type SwitchTeamRequest struct {
	TeamID string `json:"team_id" binding:"required,uuid"`
}

// CurrentTeamResponse is the response for GET /api/team.
type CurrentTeamResponse struct {
	Team  *models.Team   `json:"team"`
	Role  string         `json:"role"`
	Teams []TeamWithRole `json:"teams"`
}

// membershipOf loads the caller's membership in the :id team. Cross-team ids
// are reported as not-found so existence is never confirmed to outsiders.
func (h *Handler) membershipOf(c *gin.Context) (*models.TeamMember, bool) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team id")
		return nil, false
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	m, err := h.repo.GetMember(c.Request.Context(), teamID, userID)
	if err != nil {
		response.NotFound(c, "team not found")
		return nil, false
	}
	return m, true
}

// GetCurrent handles GET /api/team. Returns the active team, the caller's
// role in it, and all teams the caller belongs to.
func (h *Handler) GetCurrent(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	teamID, role, err := h.resolver.ActiveTeam(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("resolve active team", zap.Error(err))
		response.Internal(c, "failed to resolve team")
		return
	}
	team, err := h.repo.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		response.Internal(c, "failed to load team")
		return
	}
	list, err := h.repo.ListTeamsForUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load teams")
		return
	}
	response.OK(c, CurrentTeamResponse{Team: team, Role: role, Teams: list})
}

// Create handles POST /api/team. Creates a team with the caller as owner and
// makes it the active team.
func (h *Handler) Create(c *gin.Context) {
	var req CreateTeamRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	team, err := h.repo.CreateTeam(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		response.Internal(c, "failed to create team")
		return
	}
	if _, err := h.repo.AddMember(c.Request.Context(), team.ID, userID, models.TeamRoleOwner); err != nil {
		response.Internal(c, "failed to add you as owner")
		return
	}
	if err := h.repo.SetActiveTeam(c.Request.Context(), userID, team.ID); err != nil {
		response.Internal(c, "failed to activate team")
		return
	}
	response.Created(c, team)
}

// Update handles PATCH /api/team/:id. Admin or owner only.
func (h *Handler) Update(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	if !RoleAtLeast(m.Role, models.TeamRoleAdmin) {
		response.Forbidden(c, "only admins can rename the team")
		return
	}
	var req UpdateTeamRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	team, err := h.repo.UpdateTeamName(c.Request.Context(), m.TeamID, strings.TrimSpace(req.Name))
	if err != nil {
		response.Internal(c, "failed to update team")
		return
	}
	response.OK(c, team)
}

// Delete handles DELETE /api/team/:id. Owner only, and refused when it would
// leave the caller without any owned team. When the deleted team was active,
// the profile is pointed at another owned team.
func (h *Handler) Delete(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	if m.Role != models.TeamRoleOwner {
		response.Forbidden(c, "only the owner can delete the team")
		return
	}
	userID := m.UserID
	owned, err := h.repo.CountOwnedTeams(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to check owned teams")
		return
	}
	if owned < 2 {
		response.BadRequest(c, "you must own at least one team; create another team before deleting this one")
		return
	}
	profile, err := h.repo.GetOrCreateProfile(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load profile")
		return
	}
	if err := h.repo.DeleteTeam(c.Request.Context(), m.TeamID); err != nil {
		response.Internal(c, "failed to delete team")
		return
	}
	// The FK on user_profiles nulls active_team_id when the active team is
	// deleted. Repoint only in that case; deleting a background team must
	// not switch the caller's context.
	if ids, err := h.repo.OwnedTeamIDs(c.Request.Context(), userID); err == nil {
		if next, reassign := NextActiveTeam(profile.ActiveTeamID, m.TeamID, ids); reassign {
			_ = h.repo.SetActiveTeam(c.Request.Context(), userID, next)
		}
	}
	response.NoContent(c)
}

// ListMembers handles GET /api/team/:id/members.
func (h *Handler) ListMembers(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	members, err := h.repo.ListMembers(c.Request.Context(), m.TeamID)
	if err != nil {
		response.Internal(c, "failed to load members")
		return
	}
	response.OK(c, members)
}

// UpdateMemberRole handles PATCH /api/team/:id/members/:userId.
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req UpdateMemberRoleRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	if !models.ValidTeamRole(req.Role) {
		response.BadRequest(c, "role must be owner, admin or member")
		return
	}
	target, err := h.repo.GetMember(c.Request.Context(), m.TeamID, targetUserID)
	if err != nil {
		response.NotFound(c, "member not found")
		return
	}
	if !CanActOnMember(m.Role, target.Role) || !CanGrantRole(m.Role, req.Role) {
		response.Forbidden(c, "you cannot change this member's role")
		return
	}
	if target.Role == models.TeamRoleOwner && req.Role != models.TeamRoleOwner {
		owners, err := h.repo.CountOwners(c.Request.Context(), m.TeamID)
		if err != nil || owners < 2 {
			response.BadRequest(c, "a team must keep at least one owner")
			return
		}
	}
	if _, err := h.repo.UpdateMemberRole(c.Request.Context(), m.TeamID, targetUserID, req.Role); err != nil {
		response.Internal(c, "failed to update role")
		return
	}
	updated, _ := h.repo.GetMember(c.Request.Context(), m.TeamID, targetUserID)
	response.OK(c, updated)
}

// RemoveMember handles DELETE /api/team/:id/members/:userId.
func (h *Handler) RemoveMember(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if targetUserID == m.UserID {
		response.BadRequest(c, "use /api/team/leave to leave the team")
		return
	}
	target, err := h.repo.GetMember(c.Request.Context(), m.TeamID, targetUserID)
	if err != nil {
		response.NotFound(c, "member not found")
		return
	}
	if !CanActOnMember(m.Role, target.Role) {
		response.Forbidden(c, "you cannot remove this member")
		return
	}
	if target.Role == models.TeamRoleOwner {
		owners, err := h.repo.CountOwners(c.Request.Context(), m.TeamID)
		if err != nil || owners < 2 {
			response.BadRequest(c, "a team must keep at least one owner")
			return
		}
	}
	if _, err := h.repo.RemoveMember(c.Request.Context(), m.TeamID, targetUserID); err != nil {
		response.Internal(c, "failed to remove member")
		return
	}
	response.NoContent(c)
}

// CreateInvite handles POST /api/team/:id/invite. Replaces the previous
// invite code; a team has at most one active invite.
func (h *Handler) CreateInvite(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	if !RoleAtLeast(m.Role, models.TeamRoleAdmin) {
		response.Forbidden(c, "only admins can create invites")
		return
	}
	code, err := NewInviteCode()
	if err != nil {
		response.Internal(c, "failed to generate invite code")
		return
	}
	inv, err := h.repo.UpsertInvite(c.Request.Context(), m.TeamID, code, m.UserID)
	if err != nil {
		response.Internal(c, "failed to create invite")
		return
	}
	response.Created(c, inv)
}

// GetInvite handles GET /api/team/:id/invite.
func (h *Handler) GetInvite(c *gin.Context) {
	m, ok := h.membershipOf(c)
	if !ok {
		return
	}
	inv, err := h.repo.GetInviteByTeam(c.Request.Context(), m.TeamID)
	if err != nil {
		response.NotFound(c, "no active invite for this team")
		return
	}
	response.OK(c, inv)
}

// Join handles POST /api/team/join. Adds the caller as a member via invite
// code and switches their active team. Joining a team twice fails.
func (h *Handler) Join(c *gin.Context) {
	var req JoinTeamRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	inv, err := h.repo.GetInviteByCode(c.Request.Context(), strings.TrimSpace(req.InviteCode))
	if err != nil {
		response.NotFound(c, "invalid invite code")
		return
	}
	if _, err := h.repo.GetMember(c.Request.Context(), inv.TeamID, userID); err == nil {
		response.Conflict(c, "you are already a member of this team")
		return
	}
	if _, err := h.repo.AddMember(c.Request.Context(), inv.TeamID, userID, models.TeamRoleMember); err != nil {
		response.Internal(c, "failed to join team")
		return
	}
	if err := h.repo.SetActiveTeam(c.Request.Context(), userID, inv.TeamID); err != nil {
		response.Internal(c, "failed to activate team")
		return
	}
	team, _ := h.repo.GetTeam(c.Request.Context(), inv.TeamID)
	response.OK(c, team)
}

// Leave handles DELETE /api/team/leave. Removes the caller from their active
// team; refused for the last owner. The next request re-derives an active
// team (or provisions a fresh personal one).
func (h *Handler) Leave(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	teamID, role, err := h.resolver.ActiveTeam(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to resolve team")
		return
	}
	if role == models.TeamRoleOwner {
		owners, err := h.repo.CountOwners(c.Request.Context(), teamID)
		if err != nil || owners < 2 {
			response.BadRequest(c, "the last owner cannot leave; transfer ownership or delete the team")
			return
		}
	}
	if _, err := h.repo.RemoveMember(c.Request.Context(), teamID, userID); err != nil {
		response.Internal(c, "failed to leave team")
		return
	}
	_ = h.repo.SetActiveTeam(c.Request.Context(), userID, uuid.Nil)
	response.NoContent(c)
}

// Switch handles POST /api/team/switch. Sets the active team to another team
// the caller belongs to.
func (h *Handler) Switch(c *gin.Context) {
	var req SwitchTeamRequest
	if err := payload.BindJSON(c, &req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		response.BadRequest(c, "invalid team id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	m, err := h.repo.GetMember(c.Request.Context(), teamID, userID)
	if err != nil {
		response.NotFound(c, "team not found")
		return
	}
	if err := h.repo.SetActiveTeam(c.Request.Context(), userID, m.TeamID); err != nil {
		response.Internal(c, "failed to switch team")
		return
	}
	team, _ := h.repo.GetTeam(c.Request.Context(), m.TeamID)
	response.OK(c, team)
}
