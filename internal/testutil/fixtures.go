package testutil

import (
	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// SampleMatch returns a minimal scheduled match fixture with the provided id.
func SampleMatch(id string) matches.Match {
	return matches.Match{
		ID:          id,
		HomeTeam:    "Home FC",
		AwayTeam:    "Away United",
		Date:        "2024-05-01",
		Time:        "19:30",
		Venue:       "Central Stadium",
		Competition: "League",
		Status:      matches.StatusScheduled,
	}
}

// SampleMatches builds one SampleMatch per id, in order.
func SampleMatches(ids ...string) []matches.Match {
	out := make([]matches.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, SampleMatch(id))
	}
	return out
}
