package integrations

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestListEmailLogsInvalidShootID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/shoots/not-a-uuid/email-logs", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	(&Handler{}).ListEmailLogs(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
