package payload

import (
	"encoding/json"
	"testing"
)

func TestToSnake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"equipmentIds", "equipment_ids"},
		{"personnelId", "personnel_id"},
		{"imageURL", "image_url"},
		{"URL", "url"},
		{"isPublic", "is_public"},
		{"already_snake", "already_snake"},
		{"name", "name"},
		{"HTMLBody", "html_body"},
		{"durationMinutes", "duration_minutes"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToSnake(tc.in); got != tc.want {
			t.Errorf("ToSnake(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKeysNested(t *testing.T) {
	in := []byte(`{
		"equipmentIds": ["a"],
		"participants": [
			{"personnelId": "p1", "name": "Rin", "imageURL": "x"}
		],
		"isPublic": true
	}`)
	out, err := NormalizeKeys(in)
	if err != nil {
		t.Fatalf("NormalizeKeys: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal normalized: %v", err)
	}
	if _, ok := m["equipment_ids"]; !ok {
		t.Error("expected equipment_ids key")
	}
	if _, ok := m["is_public"]; !ok {
		t.Error("expected is_public key")
	}
	parts, ok := m["participants"].([]interface{})
	if !ok || len(parts) != 1 {
		t.Fatalf("participants = %v", m["participants"])
	}
	p := parts[0].(map[string]interface{})
	if p["personnel_id"] != "p1" {
		t.Errorf("personnel_id = %v", p["personnel_id"])
	}
	if p["image_url"] != "x" {
		t.Errorf("image_url = %v", p["image_url"])
	}
	if _, ok := p["personnelId"]; ok {
		t.Error("camelCase key survived normalization")
	}
}

func TestNormalizeKeysScalarsUntouched(t *testing.T) {
	in := []byte(`{"note": "keepCamelInValues", "n": 3}`)
	out, err := NormalizeKeys(in)
	if err != nil {
		t.Fatalf("NormalizeKeys: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["note"] != "keepCamelInValues" {
		t.Errorf("value changed: %v", m["note"])
	}
}

func TestNormalizeKeysInvalidJSON(t *testing.T) {
	if _, err := NormalizeKeys([]byte(`{`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
