package match

import (
	"regexp"
	"strings"
	"time"
)

// Spacing around the hyphen may be any Unicode space, NBSP included.
var combinedScoreRegex = regexp.MustCompile(`^(\p{Nd}+)[\s\p{Z}\x{85}]*-[\s\p{Z}\x{85}]*(\p{Nd}+)`)

// Normalizer reconciles heterogeneous records into NormalizedMatch values.
type Normalizer struct {
	now        func() time.Time
	thresholds Thresholds
	location   *time.Location
}

type NormalizerConfig struct {
	// Clock defaults to time.Now.
	Clock      func() time.Time
	Thresholds Thresholds
	// Location is the zone kickoff times are read in. Defaults to time.Local.
	Location *time.Location
}

func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{
		now:        clock,
		thresholds: cfg.Thresholds.normalized(),
		location:   loc,
	}
}

// Normalize reconciles one input against the current clock.
func (n *Normalizer) Normalize(in Input, requestDate string) NormalizedMatch {
	return NormalizeAt(in, requestDate, n.now(), n.thresholds, n.location)
}

// NormalizeAll reconciles a batch. The clock is read once so every record in
// the batch is classified against the same instant. Order is preserved and no
// input is dropped.
func (n *Normalizer) NormalizeAll(inputs []Input, requestDate string) []NormalizedMatch {
	now := n.now()
	out := make([]NormalizedMatch, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, NormalizeAt(in, requestDate, now, n.thresholds, n.location))
	}
	return out
}

// NormalizeAt is the pure form of Normalize with an explicit clock reading.
func NormalizeAt(in Input, requestDate string, now time.Time, thresholds Thresholds, loc *time.Location) NormalizedMatch {
	m := reconcile(in)
	m.HomeScore, m.AwayScore, _ = SplitScore(m.HomeScore, m.AwayScore)

	kickoff, known := ResolveKickoff(requestDate, m.KickoffTime, loc)

	status := Classify(Signals{
		IsLive:       m.IsLive,
		Status:       m.Status,
		HasScore:     m.HasScore(),
		Kickoff:      kickoff,
		KickoffKnown: known,
	}, now, thresholds)

	m.StatusDisplay = status
	m.StatusClass = status.Class()
	m.ScoreClass = status.ScoreClass()
	return m
}

// SplitScore separates a combined "2 - 1" score that arrived in the home slot
// while the away slot is empty. When the home value does not look like a
// combined score both values are returned unchanged and ok is false.
func SplitScore(home, away string) (string, string, bool) {
	if home == "" || away != "" {
		return home, away, false
	}
	groups := combinedScoreRegex.FindStringSubmatch(home)
	if groups == nil {
		return home, away, false
	}
	return groups[1], groups[2], true
}

func reconcile(in Input) NormalizedMatch {
	switch v := in.(type) {
	case StructuredInput:
		return fromFields(v.Fields)
	case OpaqueInput:
		home, away := splitOpaqueText(v.Text)
		return NormalizedMatch{
			LeagueName: UnknownLeague,
			HomeName:   home,
			AwayName:   away,
			Channel:    NotAvailable,
		}
	default:
		return NormalizedMatch{
			LeagueName: UnknownLeague,
			Channel:    NotAvailable,
		}
	}
}

func fromFields(fields map[string]any) NormalizedMatch {
	resolved := resolveFields(fields)
	return NormalizedMatch{
		LeagueName:  resolved["league_name"],
		IsLive:      truthy(fields["is_live"]) || strings.ToLower(resolved["status"]) == "live",
		Status:      resolved["status"],
		KickoffTime: resolved["kickoff_time"],
		HomeName:    resolved["home_name"],
		HomeScore:   resolved["home_score"],
		HomeLogoURL: resolved["home_logo_url"],
		AwayName:    resolved["away_name"],
		AwayScore:   resolved["away_score"],
		AwayLogoURL: resolved["away_logo_url"],
		Minute:      resolved["minute"],
		Period:      resolved["period"],
		Venue:       resolved["venue"],
		Channel:     resolved["channel"],
	}
}
