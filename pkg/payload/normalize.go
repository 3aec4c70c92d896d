// Package payload normalizes inbound JSON bodies before they reach binding
// and validation. Clients send both snake_case and camelCase keys; the rest
// of the codebase only ever sees snake_case.
package payload

import (
	"encoding/json"
	"strings"
	"unicode"
)

// NormalizeKeys recursively converts every object key in raw JSON to
// snake_case and returns the re-encoded document. Arrays and scalar values
// pass through untouched. Applied once at the request-parsing boundary,
// never per field.
func NormalizeKeys(raw []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeValue(v))
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[ToSnake(k)] = normalizeValue(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalizeValue(val)
		}
		return t
	}
	return v
}

// ToSnake converts a camelCase key to snake_case. Keys already in
// snake_case come back unchanged. Runs of capitals collapse into one
// segment ("imageURL" -> "image_url").
func ToSnake(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && runes[i-1] != '_' && (prevLower || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
