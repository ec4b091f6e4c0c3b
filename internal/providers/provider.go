package providers

import (
	"context"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// MatchProvider is the remote source of truth for matches.
// Each call is a single attempt; callers decide what a failure means.
type MatchProvider interface {
	FetchMatches(ctx context.Context) ([]matches.Match, error)
	AddMatch(ctx context.Context, m matches.Match) (matches.Match, error)
	UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error)
	DeleteMatch(ctx context.Context, id string) error
}

// Operation names used for logs and metrics.
const (
	OpFetch  = "fetch"
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)
