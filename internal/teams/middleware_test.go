package teams

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shootdeck/backend/internal/models"
)

// roleRouter mounts RequireRole behind a stub that seeds the team role the
// way Context does.
func roleRouter(role string, min string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	seed := func(c *gin.Context) {
		if role != "" {
			c.Set(ContextTeamRole, role)
		}
		c.Next()
	}
	router.POST("/guarded", seed, RequireRole(min), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": Role(c)})
	})
	return router
}

func TestRequireRoleAllowsSufficientRole(t *testing.T) {
	for _, role := range []string{models.TeamRoleAdmin, models.TeamRoleOwner} {
		router := roleRouter(role, models.TeamRoleAdmin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
		if w.Code != http.StatusOK {
			t.Errorf("role %q: status = %d, want 200", role, w.Code)
		}
	}
}

func TestRequireRoleRejectsInsufficientRole(t *testing.T) {
	router := roleRouter(models.TeamRoleMember, models.TeamRoleAdmin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireRoleRejectsMissingTeamContext(t *testing.T) {
	router := roleRouter("", models.TeamRoleAdmin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
