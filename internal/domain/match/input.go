package match

import (
	"fmt"
	"strings"
)

// Input is what the normalizer accepts: either a keyed record of any shape
// or an opaque value that only has a text form.
type Input interface {
	isInput()
}

// StructuredInput is a keyed record. Keys may follow the listing extractor's
// naming, the canonical naming, or any synonym in the field table.
type StructuredInput struct {
	Fields map[string]any
}

// OpaqueInput is a value that is not a keyed record. Its text is read as a
// space separated "home away" pair.
type OpaqueInput struct {
	Text string
}

func (StructuredInput) isInput() {}
func (OpaqueInput) isInput()     {}

// InputFrom wraps an arbitrary upstream value. A nil value becomes an empty
// OpaqueInput, which normalizes to a match with no team names.
func InputFrom(v any) Input {
	switch t := v.(type) {
	case nil:
		return OpaqueInput{}
	case Input:
		return t
	case RawRecord:
		return StructuredInput{Fields: stringFields(t)}
	case map[string]string:
		return StructuredInput{Fields: stringFields(t)}
	case map[string]any:
		return StructuredInput{Fields: t}
	case NormalizedMatch:
		return StructuredInput{Fields: t.fields()}
	case *NormalizedMatch:
		if t == nil {
			return OpaqueInput{}
		}
		return StructuredInput{Fields: t.fields()}
	default:
		return OpaqueInput{Text: fmt.Sprint(v)}
	}
}

// InputsFromRecords wraps extractor output.
func InputsFromRecords(records []RawRecord) []Input {
	out := make([]Input, 0, len(records))
	for _, record := range records {
		out = append(out, InputFrom(record))
	}
	return out
}

func stringFields(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func (m NormalizedMatch) fields() map[string]any {
	return map[string]any{
		"league_name":   m.LeagueName,
		"is_live":       m.IsLive,
		"status":        m.Status,
		"kickoff_time":  m.KickoffTime,
		"home_name":     m.HomeName,
		"home_score":    m.HomeScore,
		"home_logo_url": m.HomeLogoURL,
		"away_name":     m.AwayName,
		"away_score":    m.AwayScore,
		"away_logo_url": m.AwayLogoURL,
		"minute":        m.Minute,
		"period":        m.Period,
		"venue":         m.Venue,
		"channel":       m.Channel,
	}
}

func splitOpaqueText(text string) (string, string) {
	parts := strings.Split(text, " ")
	home := strings.TrimSpace(parts[0])
	away := ""
	if len(parts) > 1 {
		away = strings.TrimSpace(parts[1])
	}
	return home, away
}
