package shoots

import (
	"testing"

	"github.com/google/uuid"
)

func TestMissingPersonnelIDs(t *testing.T) {
	linked := uuid.New()
	missing1 := uuid.New()
	missing2 := uuid.New()

	participants := []ParticipantInput{
		{PersonnelID: &linked, Name: "Rin", Role: "Model"},
		{Name: "Manual Entry", Role: "Assistant"},
	}

	got := MissingPersonnelIDs(participants, []uuid.UUID{linked, missing1, missing2})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != missing1 || got[1] != missing2 {
		t.Errorf("got %v, want [%v %v]", got, missing1, missing2)
	}
}

func TestMissingPersonnelIDsAllLinked(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	participants := []ParticipantInput{
		{PersonnelID: &a, Name: "A"},
		{PersonnelID: &b, Name: "B"},
	}
	if got := MissingPersonnelIDs(participants, []uuid.UUID{a, b}); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestMissingPersonnelIDsEmptyParticipants(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := MissingPersonnelIDs(nil, []uuid.UUID{a, b})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("got %v, want [%v %v]", got, a, b)
	}
}

func TestMissingPersonnelIDsManualOnlyDoesNotMask(t *testing.T) {
	// Manual participants carry no personnel link, so they never satisfy a
	// personnelIds entry.
	a := uuid.New()
	participants := []ParticipantInput{{Name: "Someone", Role: "Photographer"}}
	got := MissingPersonnelIDs(participants, []uuid.UUID{a})
	if len(got) != 1 || got[0] != a {
		t.Errorf("got %v, want [%v]", got, a)
	}
}
