package payload

import (
	"testing"

	"github.com/google/uuid"
)

func TestResourceIDShapes(t *testing.T) {
	id := uuid.New()
	other := uuid.New()

	// Plain string.
	got, ok := ResourceID(id.String(), "equipment_id")
	if !ok || got != id {
		t.Errorf("string shape: got %v %v", got, ok)
	}

	// Bare join row.
	got, ok = ResourceID(map[string]interface{}{"equipment_id": id.String()}, "equipment_id")
	if !ok || got != id {
		t.Errorf("join row shape: got %v %v", got, ok)
	}

	// Full resource object falls back to "id".
	got, ok = ResourceID(map[string]interface{}{"id": id.String()}, "equipment_id")
	if !ok || got != id {
		t.Errorf("object shape: got %v %v", got, ok)
	}

	// Named keys win over "id".
	got, ok = ResourceID(map[string]interface{}{
		"equipment_id": id.String(),
		"id":           other.String(),
	}, "equipment_id")
	if !ok || got != id {
		t.Errorf("key priority: got %v, want %v", got, id)
	}
}

func TestResourceIDUnusable(t *testing.T) {
	for _, v := range []interface{}{
		"not-a-uuid",
		map[string]interface{}{"name": "tripod"},
		map[string]interface{}{"id": 42},
		7,
		nil,
	} {
		if _, ok := ResourceID(v, "equipment_id"); ok {
			t.Errorf("ResourceID(%v) unexpectedly ok", v)
		}
	}
}

func TestResourceIDsPreservesDuplicates(t *testing.T) {
	id := uuid.New()
	list := []interface{}{id.String(), id.String(), "garbage", map[string]interface{}{"prop_id": id.String()}}
	got := ResourceIDs(list, "prop_id")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, g := range got {
		if g != id {
			t.Errorf("got[%d] = %v, want %v", i, g, id)
		}
	}
}
