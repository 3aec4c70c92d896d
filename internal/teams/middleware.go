package teams

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/middleware"
	"github.com/shootdeck/backend/pkg/response"
)

const (
	// ContextTeamID is the gin context key for the resolved active team.
	ContextTeamID = "team_id"
	// ContextTeamRole is the gin context key for the caller's role in it.
	ContextTeamRole = "team_role"
)

// Context returns a middleware that resolves the caller's active team and
// role into the gin context. Call after middleware.JWT. Every team-scoped
// route goes through this, so the active team is never taken from the client.
func Context(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
		teamID, role, err := resolver.ActiveTeam(c.Request.Context(), userID)
		if err != nil {
			response.Internal(c, "failed to resolve team")
			c.Abort()
			return
		}
		c.Set(ContextTeamID, teamID)
		c.Set(ContextTeamRole, role)
		c.Next()
	}
}

// RequireRole returns a middleware that allows only callers whose team role
// meets the minimum. Call after Context.
func RequireRole(min string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, ok := c.Get(ContextTeamRole)
		if !ok {
			response.Unauthorized(c, "missing team context")
			c.Abort()
			return
		}
		role, _ := roleVal.(string)
		if !RoleAtLeast(role, min) {
			response.Forbidden(c, "insufficient team role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// TeamID returns the resolved active team id from the gin context.
func TeamID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextTeamID).(uuid.UUID)
}

// Role returns the caller's role in the active team from the gin context.
func Role(c *gin.Context) string {
	return c.MustGet(ContextTeamRole).(string)
}
