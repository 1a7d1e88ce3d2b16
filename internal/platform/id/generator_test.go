package id

import (
	"strings"
	"testing"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(first) != 36 || !Valid(first, 64) {
		t.Fatalf("unexpected id shape: %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "abc-123_DEF", want: true},
		{in: "", want: false},
		{in: "has space", want: false},
		{in: "new\nline", want: false},
		{in: strings.Repeat("a", 65), want: false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in, 64); got != tt.want {
			t.Fatalf("Valid(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
