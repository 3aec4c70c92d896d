package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shootdeck/backend/internal/auth"
)

func jwtRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWT(svc), func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uuid.UUID)
		email := c.MustGet(ContextUserEmail).(string)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "email": email})
	})
	return router
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	router := jwtRouter(auth.NewJWTService("secret", 1))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	router := jwtRouter(auth.NewJWTService("secret", 1))
	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	router := jwtRouter(auth.NewJWTService("secret", 1))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	userID := uuid.New()
	token, err := svc.Generate(userID, "rin@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	router := jwtRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); !strings.Contains(got, userID.String()) || !strings.Contains(got, "rin@example.com") {
		t.Errorf("claims not propagated: %s", got)
	}
}
