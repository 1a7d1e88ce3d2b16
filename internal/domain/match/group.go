package match

// Grouped maps league names to their matches. Leagues keeps first-seen order
// so callers can render deterministically; order within a league follows the
// order matches were added.
type Grouped struct {
	Leagues  []string                     `json:"leagues"`
	ByLeague map[string][]NormalizedMatch `json:"matches_by_league"`
}

func NewGrouped() Grouped {
	return Grouped{ByLeague: make(map[string][]NormalizedMatch)}
}

// Group buckets matches by league without filtering any of them.
func Group(matches []NormalizedMatch) Grouped {
	g := NewGrouped()
	for _, m := range matches {
		g.Add(m)
	}
	return g
}

func (g *Grouped) Add(m NormalizedMatch) {
	if g.ByLeague == nil {
		g.ByLeague = make(map[string][]NormalizedMatch)
	}
	league := leagueKey(m.LeagueName)
	if _, seen := g.ByLeague[league]; !seen {
		g.Leagues = append(g.Leagues, league)
	}
	g.ByLeague[league] = append(g.ByLeague[league], m)
}

func (g Grouped) Matches(league string) []NormalizedMatch {
	return g.ByLeague[league]
}

// Len returns the total number of matches across leagues.
func (g Grouped) Len() int {
	total := 0
	for _, items := range g.ByLeague {
		total += len(items)
	}
	return total
}

func leagueKey(name string) string {
	if name == "" {
		return UnknownLeague
	}
	return name
}
