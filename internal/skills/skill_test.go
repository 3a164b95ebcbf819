package skills

import (
	"testing"
)

func TestGet_Exists(t *testing.T) {
	s, err := Get("chronology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Description != "Sequencing and timelines" {
		t.Errorf("got description %q", s.Description)
	}
}

func TestGet_NotFound(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Fatal("expected error for nonexistent skill, got nil")
	}
}

func TestAll_Count(t *testing.T) {
	if got := len(All()); got != 7 {
		t.Errorf("got %d skills, want 7", got)
	}
	if got := len(IDs()); got != 7 {
		t.Errorf("got %d ids, want 7", got)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].ID = "mutated"
	if All()[0].ID == "mutated" {
		t.Error("All() exposes the catalog slice")
	}
}

func TestIDs_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, id := range IDs() {
		if seen[id] {
			t.Errorf("duplicate skill id %q", id)
		}
		seen[id] = true
	}
	if !seen[Fallback] {
		t.Errorf("catalog is missing the fallback skill %q", Fallback)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"chronology", "chronology"},
		{"  Critical_Thinking ", "critical_thinking"},
		{"", Fallback},
		{"algebra", Fallback},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
