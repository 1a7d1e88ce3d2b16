package match

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ResolveKickoff combines a MM/DD/YYYY request date with an HH:MM kickoff
// time. The second return value is false when either part cannot be read or
// names an impossible calendar value.
func ResolveKickoff(requestDate, kickoffTime string, loc *time.Location) (time.Time, bool) {
	if kickoffTime == "" || requestDate == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	dateParts := strings.Split(requestDate, "/")
	if len(dateParts) != 3 {
		return time.Time{}, false
	}
	month, ok := atoi(dateParts[0])
	if !ok {
		return time.Time{}, false
	}
	day, ok := atoi(dateParts[1])
	if !ok {
		return time.Time{}, false
	}
	year, ok := atoi(dateParts[2])
	if !ok {
		return time.Time{}, false
	}

	timeParts := strings.Split(kickoffTime, ":")
	if len(timeParts) != 2 {
		return time.Time{}, false
	}
	hour, ok := atoi(timeParts[0])
	if !ok {
		return time.Time{}, false
	}
	minute, ok := atoi(timeParts[1])
	if !ok {
		return time.Time{}, false
	}

	if year < 1 || year > 9999 || month < 1 || month > 12 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), true
}

// atoi reads a decimal integer written in any Unicode decimal digits, so
// "١٥" reads as 15.
func atoi(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.Map(asciiDigit, strings.TrimSpace(raw)))
	if err != nil {
		return 0, false
	}
	return value, true
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// asciiDigit maps a Unicode decimal digit to its ASCII form. Decimal digits
// are encoded in runs of ten starting at zero, so the offset inside a range
// of unicode.Nd gives the value. Other runes pass through.
func asciiDigit(r rune) rune {
	if r < 0x80 || !unicode.IsDigit(r) {
		return r
	}
	for _, rng := range unicode.Nd.R16 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); rng.Stride == 1 && r >= lo && r <= hi {
			return '0' + (r-lo)%10
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); rng.Stride == 1 && r >= lo && r <= hi {
			return '0' + (r-lo)%10
		}
	}
	return r
}
