package payload

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindJSONAcceptsCamelCaseKeys(t *testing.T) {
	var req struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}
	c := bindContext(t, `{"inviteCode": "ABC123DEF456"}`)
	if err := BindJSON(c, &req); err != nil {
		t.Fatalf("BindJSON: %v", err)
	}
	if req.InviteCode != "ABC123DEF456" {
		t.Errorf("InviteCode = %q", req.InviteCode)
	}
}

func TestBindJSONCatalogBody(t *testing.T) {
	var req struct {
		CharacterName string `json:"character_name" binding:"required"`
		ImageURL      string `json:"image_url"`
	}
	c := bindContext(t, `{"characterName": "Jinx", "imageUrl": "https://img/jinx.png"}`)
	if err := BindJSON(c, &req); err != nil {
		t.Fatalf("BindJSON: %v", err)
	}
	if req.CharacterName != "Jinx" || req.ImageURL != "https://img/jinx.png" {
		t.Errorf("bound %+v", req)
	}
}

func TestBindJSONSnakeCaseUnchanged(t *testing.T) {
	var req struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}
	c := bindContext(t, `{"invite_code": "ABC123DEF456"}`)
	if err := BindJSON(c, &req); err != nil {
		t.Fatalf("BindJSON: %v", err)
	}
	if req.InviteCode != "ABC123DEF456" {
		t.Errorf("InviteCode = %q", req.InviteCode)
	}
}

func TestBindJSONValidationStillApplies(t *testing.T) {
	var req struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}
	if err := BindJSON(bindContext(t, `{}`), &req); err == nil {
		t.Error("missing required field bound without error")
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	var req struct {
		Name string `json:"name"`
	}
	if err := BindJSON(bindContext(t, `{"name":`), &req); err == nil {
		t.Error("malformed body bound without error")
	}
}
