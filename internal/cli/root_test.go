package cli

import (
	"testing"

	"github.com/sgreene/habitat/internal/models"
)

func TestParseDaysMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []bool
		wantErr  bool
	}{
		{
			name:     "empty yields nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace yields nil",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "short names",
			input:    "mon,wed,fri",
			expected: []bool{false, true, false, true, false, true, false},
		},
		{
			name:     "full names with mixed case",
			input:    "Sunday,SATURDAY",
			expected: []bool{true, false, false, false, false, false, true},
		},
		{
			name:     "numeric form",
			input:    "0,6",
			expected: []bool{true, false, false, false, false, false, true},
		},
		{
			name:     "spaces around entries",
			input:    " mon , tue ",
			expected: []bool{false, true, true, false, false, false, false},
		},
		{
			name:    "unknown day",
			input:   "mon,funday",
			wantErr: true,
		},
		{
			name:    "numeric out of range",
			input:   "7",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDaysMask(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("mask length = %d, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("mask[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestFormatDaysMask(t *testing.T) {
	tests := []struct {
		name     string
		mask     []bool
		expected string
	}{
		{"nil mask", nil, "every day"},
		{"full mask", []bool{true, true, true, true, true, true, true}, "every day"},
		{"empty mask", make([]bool, 7), "never"},
		{"weekend", []bool{true, false, false, false, false, false, true}, "Sun,Sat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDaysMask(tt.mask); got != tt.expected {
				t.Errorf("FormatDaysMask = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	if _, err := ResolveDate("2025-03-15"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if _, err := ResolveDate("03/15/2025"); err == nil {
		t.Error("invalid date accepted")
	}
	got, err := ResolveDate("")
	if err != nil || len(got) != len("2025-03-15") {
		t.Errorf("empty date: got %q, %v", got, err)
	}
}

func TestFindHabitByName(t *testing.T) {
	s := models.NewSnapshot()
	s.Habits = []models.Habit{{ID: "h1", Name: "Morning Run"}}

	h, err := FindHabitByName(s, "morning run")
	if err != nil || h.ID != "h1" {
		t.Errorf("case-insensitive lookup failed: %v, %v", h, err)
	}
	if _, err := FindHabitByName(s, "nope"); err == nil {
		t.Error("missing habit lookup succeeded")
	}
}

func TestFindIdentityByName(t *testing.T) {
	s := models.NewSnapshot()
	s.Identities = append(s.Identities, models.Identity{ID: "id-health", Name: "Health"})

	byName, err := FindIdentityByName(s, "health")
	if err != nil || byName.ID != "id-health" {
		t.Errorf("lookup by name failed: %v, %v", byName, err)
	}
	byID, err := FindIdentityByName(s, "id-health")
	if err != nil || byID.Name != "Health" {
		t.Errorf("lookup by ID failed: %v, %v", byID, err)
	}
}
