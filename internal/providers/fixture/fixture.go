package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/providers"
)

// Provider is an in-process stand-in for the matches API, useful for local
// testing and bootstrapping. It starts from a deterministic seed list.
type Provider struct {
	mu    sync.Mutex
	list  []matches.Match
	now   func() time.Time
	newID func() string
}

// New creates a fixture provider seeded relative to the current day.
func New() *Provider {
	p := &Provider{
		now:   time.Now,
		newID: uuid.NewString,
	}
	p.list = seed(p.now())
	return p
}

func seed(now time.Time) []matches.Match {
	day := now.UTC().Truncate(24 * time.Hour)
	return []matches.Match{
		{
			ID:          "fixture-1",
			HomeTeam:    "Spartak",
			AwayTeam:    "Zenit",
			Date:        day.Format("2006-01-02"),
			Time:        "19:00",
			Venue:       "Lukoil Arena",
			Competition: "Premier League",
			Status:      matches.StatusScheduled,
		},
		{
			ID:          "fixture-2",
			HomeTeam:    "CSKA",
			AwayTeam:    "Lokomotiv",
			Date:        day.Format("2006-01-02"),
			Time:        "16:30",
			Venue:       "VEB Arena",
			Competition: "Premier League",
			Status:      matches.StatusLive,
			Score:       &matches.Score{Home: 1, Away: 0},
		},
		{
			ID:          "fixture-3",
			HomeTeam:    "Dynamo",
			AwayTeam:    "Rostov",
			Date:        day.AddDate(0, 0, -1).Format("2006-01-02"),
			Time:        "20:00",
			Venue:       "VTB Arena",
			Competition: "Cup",
			Status:      matches.StatusFinished,
			Score:       &matches.Score{Home: 2, Away: 2},
		},
	}
}

// FetchMatches returns the current list.
func (p *Provider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return matches.CloneAll(p.list), nil
}

// AddMatch stores m, assigning an id when none was supplied.
func (p *Provider) AddMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	if err := ctx.Err(); err != nil {
		return matches.Match{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if m.ID == "" {
		m.ID = p.newID()
	} else if matches.IndexOf(p.list, m.ID) >= 0 {
		return matches.Match{}, fmt.Errorf("fixture: add %s: %w", m.ID, providers.ErrMatchExists)
	}
	created := m.Clone()
	p.list = append(p.list, created)
	return created.Clone(), nil
}

// UpdateMatch replaces the stored record with the same id.
func (p *Provider) UpdateMatch(ctx context.Context, m matches.Match) (matches.Match, error) {
	if err := ctx.Err(); err != nil {
		return matches.Match{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := matches.IndexOf(p.list, m.ID)
	if idx < 0 {
		return matches.Match{}, fmt.Errorf("fixture: update %s: %w", m.ID, providers.ErrMatchNotFound)
	}
	p.list[idx] = m.Clone()
	return m.Clone(), nil
}

// DeleteMatch removes the record with the given id.
func (p *Provider) DeleteMatch(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := matches.IndexOf(p.list, id)
	if idx < 0 {
		return fmt.Errorf("fixture: delete %s: %w", id, providers.ErrMatchNotFound)
	}
	p.list = append(p.list[:idx], p.list[idx+1:]...)
	return nil
}
