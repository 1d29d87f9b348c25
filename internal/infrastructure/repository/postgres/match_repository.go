package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubstats/matchboard/internal/domain/match"
	qb "github.com/clubstats/matchboard/internal/platform/querybuilder"
)

// MatchRepository reads the matches table and adapts rows to the
// canonical record shape.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByFilter(ctx context.Context, filter match.Filter) ([]match.Record, error) {
	builder := qb.Select(matchColumns...).
		From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_date DESC", "id")

	if teams := filter.TeamSet(); len(teams) > 0 {
		values := make([]any, 0, len(teams))
		for _, teamID := range teams {
			values = append(values, teamID)
		}
		builder = builder.Where(qb.In("team_id", values))
	}
	if filter.StartDate != "" {
		builder = builder.Where(qb.Gte("match_date", filter.StartDate))
	}
	if filter.EndDate != "" {
		builder = builder.Where(qb.Lte("match_date", filter.EndDate))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}

	return out, nil
}
