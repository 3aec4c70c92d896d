package payload

import (
	"github.com/google/uuid"
)

// Association endpoints historically accept either bare join rows
// ({"equipment_id": "..."}), full resource objects ({"id": "..."}), or plain
// id strings. ResourceID is the single place that probes those shapes, in a
// fixed priority order, so handlers never inspect maps inline.

// ResourceID extracts a resource id from one element of an association
// payload. keys are tried in order against object shapes before falling
// back to the generic "id" key. Returns uuid.Nil and false when no key
// yields a parseable id.
func ResourceID(v interface{}, keys ...string) (uuid.UUID, bool) {
	switch t := v.(type) {
	case string:
		return parseID(t)
	case map[string]interface{}:
		for _, k := range append(keys, "id") {
			if raw, ok := t[k]; ok {
				if s, ok := raw.(string); ok {
					if id, ok := parseID(s); ok {
						return id, true
					}
				}
			}
		}
	}
	return uuid.Nil, false
}

// ResourceIDs maps ResourceID over a list, dropping elements that carry no
// usable id. Duplicates are preserved; callers that need set semantics must
// handle that themselves.
func ResourceIDs(list []interface{}, keys ...string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(list))
	for _, v := range list {
		if id, ok := ResourceID(v, keys...); ok {
			out = append(out, id)
		}
	}
	return out
}

func parseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
