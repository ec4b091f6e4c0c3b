package matches

// Status mirrors the shared contract for match lifecycle states.
// Transitions are caller-driven; nothing here enforces an order.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
)

// Score captures home and away goals once a match has a result.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Match is the canonical match record exchanged with the API and local storage.
type Match struct {
	ID          string `json:"id"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Competition string `json:"competition"`
	Status      Status `json:"status"`
	Score       *Score `json:"score,omitempty"`
}

// Clone returns a deep copy so the score pointer is never shared between collections.
func (m Match) Clone() Match {
	if m.Score != nil {
		s := *m.Score
		m.Score = &s
	}
	return m
}

// CloneAll deep-copies a collection. A nil input yields an empty, non-nil slice.
func CloneAll(list []Match) []Match {
	out := make([]Match, len(list))
	for i, m := range list {
		out[i] = m.Clone()
	}
	return out
}

// IndexOf returns the position of the match with the given id, or -1.
func IndexOf(list []Match, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
