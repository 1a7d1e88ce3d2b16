package match

import (
	"fmt"
	"strings"
)

type fieldRule struct {
	name       string
	candidates []string
	fallback   string
	// present takes the value as soon as the key exists, even when it is falsy.
	present bool
	trim    bool
}

// fieldTable lists, per canonical field, the upstream keys tried in order.
var fieldTable = []fieldRule{
	{name: "league_name", candidates: []string{"league_name", KeyChampionship, "league"}, fallback: UnknownLeague},
	{name: "status", candidates: []string{"status"}, present: true},
	{name: "kickoff_time", candidates: []string{"kickoff_time", KeyMatchTime, "time"}},
	{name: "home_name", candidates: []string{"home_name", KeyTeamA, "home", "title"}},
	{name: "home_score", candidates: []string{"home_score", "score_home", KeyScore}, trim: true},
	{name: "home_logo_url", candidates: []string{"home_logo_url", KeyTeamALogo, "logo_A"}},
	{name: "away_name", candidates: []string{"away_name", KeyTeamB, "away"}},
	{name: "away_score", candidates: []string{"away_score", "score_away"}, trim: true},
	{name: "away_logo_url", candidates: []string{"away_logo_url", KeyTeamBLogo, "logo_B"}},
	{name: "minute", candidates: []string{"minute"}, present: true},
	{name: "period", candidates: []string{"period"}, present: true},
	{name: "venue", candidates: []string{"venue"}, present: true},
	{name: "channel", candidates: []string{KeyChannel, "tv", "broadcast"}, fallback: NotAvailable},
}

func (r fieldRule) resolve(fields map[string]any) string {
	for _, key := range r.candidates {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		if !r.present && !truthy(value) {
			continue
		}
		out := stringify(value)
		if r.trim {
			out = strings.TrimSpace(out)
		}
		return out
	}
	return r.fallback
}

func resolveFields(fields map[string]any) map[string]string {
	out := make(map[string]string, len(fieldTable))
	for _, rule := range fieldTable {
		out[rule.name] = rule.resolve(fields)
	}
	return out
}

// truthy mirrors loose "is set" checks on untyped payloads: empty strings,
// zero numbers, false and empty collections count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
