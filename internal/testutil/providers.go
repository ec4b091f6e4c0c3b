package testutil

import (
	"context"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

// GoodProvider serves Matches and echoes mutations.
type GoodProvider struct {
	Matches []matches.Match
}

func (p GoodProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	return matches.CloneAll(p.Matches), nil
}

func (p GoodProvider) AddMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	return m, nil
}

func (p GoodProvider) UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	return m, nil
}

func (p GoodProvider) DeleteMatch(ctx context.Context, id string) error {
	return nil
}

// ErrProvider fails every call with Err.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	return nil, p.Err
}

func (p ErrProvider) AddMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	return matches.Match{}, p.Err
}

func (p ErrProvider) UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	return matches.Match{}, p.Err
}

func (p ErrProvider) DeleteMatch(ctx context.Context, id string) error {
	return p.Err
}

// UnavailableProvider fails every call with ErrProviderUnavailable.
func UnavailableProvider() ErrProvider {
	return ErrProvider{Err: providers.ErrProviderUnavailable}
}

var (
	_ providers.MatchProvider = GoodProvider{}
	_ providers.MatchProvider = ErrProvider{}
)
