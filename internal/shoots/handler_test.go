package shoots

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-09-12")
	if err != nil {
		t.Fatalf("parseDate date-only: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.September || got.Day() != 12 {
		t.Errorf("got %v", got)
	}

	got, err = parseDate("2026-09-12T14:30:00Z")
	if err != nil {
		t.Fatalf("parseDate RFC3339: %v", err)
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("got %v", got)
	}

	if _, err := parseDate("12/09/2026"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
