package match

import (
	"testing"
	"time"
)

func TestInputFrom_Variants(t *testing.T) {
	t.Parallel()

	var nilMatch *NormalizedMatch
	tests := []struct {
		name       string
		in         any
		structured bool
	}{
		{name: "raw record", in: RawRecord{KeyTeamA: "A"}, structured: true},
		{name: "string map", in: map[string]string{"home": "A"}, structured: true},
		{name: "any map", in: map[string]any{"home": "A"}, structured: true},
		{name: "normalized match", in: NormalizedMatch{HomeName: "A"}, structured: true},
		{name: "normalized pointer", in: &NormalizedMatch{HomeName: "A"}, structured: true},
		{name: "nil normalized pointer", in: nilMatch},
		{name: "string", in: "A B"},
		{name: "number", in: 42},
		{name: "nil", in: nil},
		{name: "already wrapped", in: StructuredInput{Fields: map[string]any{}}, structured: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, structured := InputFrom(tt.in).(StructuredInput)
			if structured != tt.structured {
				t.Fatalf("structured=%v want=%v", structured, tt.structured)
			}
		})
	}
}

func TestSplitOpaqueText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		wantHome string
		wantAway string
	}{
		{in: "Alpha Beta", wantHome: "Alpha", wantAway: "Beta"},
		{in: "Alpha Beta Gamma", wantHome: "Alpha", wantAway: "Beta"},
		{in: "Solo", wantHome: "Solo", wantAway: ""},
		{in: "", wantHome: "", wantAway: ""},
		{in: "Alpha  Beta", wantHome: "Alpha", wantAway: ""},
	}

	for _, tt := range tests {
		home, away := splitOpaqueText(tt.in)
		if home != tt.wantHome || away != tt.wantAway {
			t.Fatalf("splitOpaqueText(%q)=%q,%q want=%q,%q", tt.in, home, away, tt.wantHome, tt.wantAway)
		}
	}
}

func TestInputFrom_NilHasNoText(t *testing.T) {
	t.Parallel()

	var nilMatch *NormalizedMatch
	for _, in := range []any{nil, nilMatch} {
		opaque, ok := InputFrom(in).(OpaqueInput)
		if !ok {
			t.Fatalf("expected OpaqueInput for %#v", in)
		}
		if opaque.Text != "" {
			t.Fatalf("expected empty text for %#v, got %q", in, opaque.Text)
		}
	}

	got := NormalizeAt(InputFrom(nil), "06/15/2024", time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), DefaultThresholds(), time.UTC)
	if got.HomeName != "" || got.AwayName != "" {
		t.Fatalf("nil record must not produce team names, got %q/%q", got.HomeName, got.AwayName)
	}
	if got.LeagueName != UnknownLeague {
		t.Fatalf("expected %q league, got %q", UnknownLeague, got.LeagueName)
	}
}
