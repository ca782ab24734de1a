package shared

import (
	"testing"
	"time"
)

func TestParseDateISO(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDateEmptyIsZero(t *testing.T) {
	got, err := ParseDate("")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero time, got %v", got)
	}
}

func TestParseDateRejectsTimestamps(t *testing.T) {
	// Day-granular fields must not accept a time component.
	if _, err := ParseDate("2024-03-01T10:30:00Z"); err == nil {
		t.Fatal("expected error for timestamp input")
	}
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	for _, raw := range []string{"03/01/2024", "2024-2-1", "20240301", "2024-02-30"} {
		if _, err := ParseDate(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
