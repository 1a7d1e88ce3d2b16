package match

import "strings"

// NotAvailable marks a field the listing page did not provide.
const NotAvailable = "N/A"

// UnknownLeague is used when a record carries no league name.
const UnknownLeague = "Unknown"

// Raw record keys produced by the listing extractor.
const (
	KeyChampionship = "championship"
	KeyCompetition  = "competition"
	KeyTeamA        = "team_A"
	KeyTeamALogo    = "team_A_logo"
	KeyTeamB        = "team_B"
	KeyTeamBLogo    = "team_B_logo"
	KeyScore        = "score"
	KeyMatchTime    = "match_time"
	KeyChannel      = "channel"
)

// RawRecord is one match card as read from the listing page.
type RawRecord map[string]string

type StatusDisplay string

const (
	StatusLive     StatusDisplay = "Live"
	StatusFullTime StatusDisplay = "Full Time"
	StatusUpcoming StatusDisplay = "Upcoming"
)

// Class returns the presentation tag for the status, e.g. "status-live".
func (s StatusDisplay) Class() string {
	switch s {
	case StatusLive:
		return "status-live"
	case StatusFullTime:
		return "status-finished"
	default:
		return "status-upcoming"
	}
}

// ScoreClass mirrors Class for score labels.
func (s StatusDisplay) ScoreClass() string {
	return strings.Replace(s.Class(), "status-", "score-", 1)
}

// NormalizedMatch is the canonical shape every record is reconciled into.
type NormalizedMatch struct {
	LeagueName    string        `json:"league_name"`
	IsLive        bool          `json:"is_live"`
	Status        string        `json:"status"`
	KickoffTime   string        `json:"kickoff_time"`
	HomeName      string        `json:"home_name"`
	HomeScore     string        `json:"home_score"`
	HomeLogoURL   string        `json:"home_logo_url"`
	AwayName      string        `json:"away_name"`
	AwayScore     string        `json:"away_score"`
	AwayLogoURL   string        `json:"away_logo_url"`
	Minute        string        `json:"minute"`
	Period        string        `json:"period"`
	Venue         string        `json:"venue"`
	Channel       string        `json:"channel"`
	StatusDisplay StatusDisplay `json:"status_display"`
	StatusClass   string        `json:"status_class"`
	ScoreClass    string        `json:"score_class"`
}

// HasScore reports whether both sides carry a usable score.
// A single blank space is treated as missing; the listing page has been seen
// emitting it as a placeholder.
func (m NormalizedMatch) HasScore() bool {
	return hasScore(m.HomeScore, m.AwayScore)
}

func hasScore(home, away string) bool {
	return home != "" && away != "" && home != " " && away != " "
}
