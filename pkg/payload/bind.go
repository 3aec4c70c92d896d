package payload

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindJSON reads the request body, normalizes its keys to snake_case and
// unmarshals into dst. Struct validation tags still apply. Every handler
// that accepts a JSON body binds through here, so camelCase and snake_case
// clients behave identically on every route.
func BindJSON(c *gin.Context, dst interface{}) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	norm, err := NormalizeKeys(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(norm, dst); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(dst)
}
