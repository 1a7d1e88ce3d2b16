package match

import (
	"strings"
	"time"
)

// DefaultFinishedAfter is how long after kickoff a scored match counts as finished.
const DefaultFinishedAfter = 90 * time.Minute

// Thresholds tunes the time based status heuristics.
type Thresholds struct {
	FinishedAfter time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{FinishedAfter: DefaultFinishedAfter}
}

func (t Thresholds) normalized() Thresholds {
	if t.FinishedAfter <= 0 {
		t.FinishedAfter = DefaultFinishedAfter
	}
	return t
}

// Signals are the facts the status decision is made from.
type Signals struct {
	IsLive       bool
	Status       string
	HasScore     bool
	Kickoff      time.Time
	KickoffKnown bool
}

// Classify derives the display status. The first matching rule wins:
// explicit live, explicit finished or long past with a score, future kickoff,
// past kickoff with a score, then Upcoming.
func Classify(s Signals, now time.Time, thresholds Thresholds) StatusDisplay {
	thresholds = thresholds.normalized()
	status := strings.ToLower(s.Status)

	switch {
	case s.IsLive || status == "live":
		return StatusLive
	case status == "ft" || status == "finished",
		s.HasScore && s.KickoffKnown && s.Kickoff.Before(now.Add(-thresholds.FinishedAfter)):
		return StatusFullTime
	case s.KickoffKnown && s.Kickoff.After(now):
		return StatusUpcoming
	case s.HasScore && s.KickoffKnown:
		return StatusLive
	default:
		return StatusUpcoming
	}
}
