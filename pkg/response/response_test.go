package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func performJSON(t *testing.T, register func(*gin.Engine)) (*httptest.ResponseRecorder, Body) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	router.ServeHTTP(w, req)

	var body Body
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
	}
	return w, body
}

func TestOKEnvelope(t *testing.T) {
	w, body := performJSON(t, func(r *gin.Engine) {
		r.GET("/t", func(c *gin.Context) { OK(c, gin.H{"name": "tripod"}) })
	})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if !body.Success {
		t.Error("success = false")
	}
	data, ok := body.Data.(map[string]interface{})
	if !ok || data["name"] != "tripod" {
		t.Errorf("data = %v", body.Data)
	}
}

func TestErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		send func(*gin.Context)
		code int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "nope") }, http.StatusBadRequest},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "nope") }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "nope") }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "nope") }, http.StatusNotFound},
		{"conflict", func(c *gin.Context) { Conflict(c, "nope") }, http.StatusConflict},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "nope") }, http.StatusServiceUnavailable},
		{"internal", func(c *gin.Context) { Internal(c, "nope") }, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w, body := performJSON(t, func(r *gin.Engine) {
			r.GET("/t", tc.send)
		})
		if w.Code != tc.code {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.code)
		}
		if body.Success {
			t.Errorf("%s: success = true", tc.name)
		}
		if body.Error != "nope" {
			t.Errorf("%s: error = %q", tc.name, body.Error)
		}
	}
}

func TestNoContent(t *testing.T) {
	w, _ := performJSON(t, func(r *gin.Engine) {
		r.GET("/t", func(c *gin.Context) { NoContent(c) })
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestValidationFailedFieldList(t *testing.T) {
	type createReq struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/t", func(c *gin.Context) {
		var req createReq
		if err := c.ShouldBindJSON(&req); err != nil {
			ValidationFailed(c, err)
			return
		}
		OK(c, nil)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/t", strings.NewReader(`{"email": "not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body Body
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Fields) != 2 {
		t.Fatalf("fields = %v, want 2 entries", body.Fields)
	}
	byField := map[string]string{}
	for _, f := range body.Fields {
		byField[f.Field] = f.Message
	}
	if byField["name"] != "is required" {
		t.Errorf("name message = %q", byField["name"])
	}
	if byField["email"] != "must be a valid email address" {
		t.Errorf("email message = %q", byField["email"])
	}
}
