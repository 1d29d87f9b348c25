package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clubstats/matchboard/internal/domain/match"
)

// StoredMatch is one seeded relational row.
type StoredMatch struct {
	TeamID string
	Record match.Record
}

// MatchRepository is a filterable in-memory match store for tests and
// embedding hosts that run without postgres.
type MatchRepository struct {
	mu   sync.RWMutex
	rows []StoredMatch
}

func NewMatchRepository(seed []StoredMatch) *MatchRepository {
	return &MatchRepository{rows: append([]StoredMatch(nil), seed...)}
}

func (r *MatchRepository) Add(item StoredMatch) {
	r.mu.Lock()
	r.rows = append(r.rows, item)
	r.mu.Unlock()
}

func (r *MatchRepository) ListByFilter(_ context.Context, filter match.Filter) ([]match.Record, error) {
	teams := filter.TeamSet()

	r.mu.RLock()
	out := make([]match.Record, 0, len(r.rows))
	for _, row := range r.rows {
		if len(teams) > 0 && !containsTeam(teams, row.TeamID) {
			continue
		}
		if !filter.InDateRange(row.Record.Date) {
			continue
		}
		out = append(out, cloneRecord(row.Record))
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	return out, nil
}

func containsTeam(teams []string, teamID string) bool {
	for _, id := range teams {
		if id == teamID {
			return true
		}
	}
	return false
}

func cloneRecord(rec match.Record) match.Record {
	if len(rec.Stats) == 0 {
		return rec
	}
	stats := make(map[string]any, len(rec.Stats))
	for key, value := range rec.Stats {
		stats[key] = value
	}
	rec.Stats = stats
	return rec
}
