package matchapi

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// envelope covers APIs that wrap payloads in {"data": ...}.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func unwrap(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return trimmed
}

// decodeList accepts a bare array or {"data": [...]}. An empty body or null is an empty list.
func decodeList(raw json.RawMessage) ([]matches.Match, error) {
	payload := unwrap(raw)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return []matches.Match{}, nil
	}
	var list []matches.Match
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []matches.Match{}
	}
	return list, nil
}

func decodeOne(raw json.RawMessage) (matches.Match, error) {
	payload := unwrap(raw)
	if len(payload) == 0 {
		return matches.Match{}, errors.New("matchapi: empty response body")
	}
	var m matches.Match
	if err := json.Unmarshal(payload, &m); err != nil {
		return matches.Match{}, err
	}
	return m, nil
}
