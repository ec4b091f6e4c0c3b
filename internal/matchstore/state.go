package matchstore

import "github.com/preston-bernstein/matches-service/internal/domain/matches"

// AdvisoryMessage is shown while the store serves saved data because the API is unavailable.
const AdvisoryMessage = "Используются сохраненные данные. API недоступен."

// OpReplace names the local-only replace operation in logs and metrics.
const OpReplace = "replace"

// State is a point-in-time copy of everything the store publishes.
type State struct {
	Matches        []matches.Match `json:"matches"`
	IsLoading      bool            `json:"isLoading"`
	Error          string          `json:"error"`
	IsAPIAvailable bool            `json:"isApiAvailable"`
}

func (s State) clone() State {
	s.Matches = matches.CloneAll(s.Matches)
	return s
}
