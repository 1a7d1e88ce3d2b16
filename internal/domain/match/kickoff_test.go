package match

import (
	"testing"
	"time"
)

func TestResolveKickoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		date      string
		kickoff   string
		want      time.Time
		wantKnown bool
	}{
		{name: "valid", date: "06/15/2024", kickoff: "15:00", want: time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC), wantKnown: true},
		{name: "padded components", date: "6/5/2024", kickoff: " 9:05", want: time.Date(2024, 6, 5, 9, 5, 0, 0, time.UTC), wantKnown: true},
		{name: "leap day", date: "02/29/2024", kickoff: "00:00", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), wantKnown: true},
		{name: "arabic-indic kickoff", date: "06/15/2024", kickoff: "١٥:٠٠", want: time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC), wantKnown: true},
		{name: "arabic-indic date", date: "٠٦/١٥/٢٠٢٤", kickoff: "20:30", want: time.Date(2024, 6, 15, 20, 30, 0, 0, time.UTC), wantKnown: true},
		{name: "extended arabic-indic kickoff", date: "06/15/2024", kickoff: "۰۹:۴۵", want: time.Date(2024, 6, 15, 9, 45, 0, 0, time.UTC), wantKnown: true},
		{name: "empty kickoff", date: "06/15/2024", kickoff: ""},
		{name: "empty date", date: "", kickoff: "15:00"},
		{name: "sentinel kickoff", date: "06/15/2024", kickoff: NotAvailable},
		{name: "dash delimited date", date: "2024-06-15", kickoff: "15:00"},
		{name: "two date parts", date: "06/2024", kickoff: "15:00"},
		{name: "seconds in kickoff", date: "06/15/2024", kickoff: "15:00:00"},
		{name: "non numeric hour", date: "06/15/2024", kickoff: "ab:00"},
		{name: "month out of range", date: "13/01/2024", kickoff: "15:00"},
		{name: "day out of range", date: "04/31/2024", kickoff: "15:00"},
		{name: "non leap year", date: "02/29/2023", kickoff: "15:00"},
		{name: "hour out of range", date: "06/15/2024", kickoff: "24:00"},
		{name: "minute out of range", date: "06/15/2024", kickoff: "10:60"},
		{name: "arabic-indic hour out of range", date: "06/15/2024", kickoff: "٢٥:٠٠"},
		{name: "year zero", date: "06/15/0", kickoff: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := ResolveKickoff(tt.date, tt.kickoff, time.UTC)
			if known != tt.wantKnown {
				t.Fatalf("known=%v want=%v", known, tt.wantKnown)
			}
			if known && !got.Equal(tt.want) {
				t.Fatalf("kickoff=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestResolveKickoff_UsesLocation(t *testing.T) {
	t.Parallel()

	cairo := time.FixedZone("EET", 2*60*60)
	got, known := ResolveKickoff("06/15/2024", "20:00", cairo)
	if !known {
		t.Fatalf("expected kickoff to resolve")
	}
	if want := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("kickoff=%s want=%s", got.UTC(), want)
	}
}

func TestAsciiDigit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   rune
		want rune
	}{
		{in: '7', want: '7'},
		{in: '٠', want: '0'},
		{in: '٩', want: '9'},
		{in: '۴', want: '4'},
		{in: '५', want: '5'},
		{in: '８', want: '8'},
		{in: '𝟗', want: '9'},
		{in: ':', want: ':'},
		{in: 'a', want: 'a'},
		{in: '²', want: '²'},
	}

	for _, tt := range tests {
		if got := asciiDigit(tt.in); got != tt.want {
			t.Fatalf("asciiDigit(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}
