package postgres

import (
	"database/sql"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/clubstats/matchboard/internal/domain/match"
)

type matchTableModel struct {
	ID            int64           `db:"id"`
	TeamID        sql.NullString  `db:"team_id"`
	Opponent      string          `db:"opponent"`
	MatchDate     time.Time       `db:"match_date"`
	Stats         sql.NullString  `db:"stats"`
	GoalsFor      sql.NullInt64   `db:"goals_for"`
	GoalsAgainst  sql.NullInt64   `db:"goals_against"`
	PossessionPct sql.NullFloat64 `db:"possession_pct"`
	Result        sql.NullString  `db:"result"`
}

var matchColumns = []string{
	"id",
	"team_id",
	"opponent",
	"match_date",
	"stats",
	"goals_for",
	"goals_against",
	"possession_pct",
	"result",
}

// toRecord adapts one matches-table row to the canonical record shape.
// The stats blob is decoded leniently: malformed JSON costs the row its
// stats map, not its place in the result. Computed columns overwrite
// blob values under their display keys, since the table is authoritative
// for computed statistics.
func (m matchTableModel) toRecord() match.Record {
	stats := decodeStatsBlob(m.Stats.String)

	if m.GoalsFor.Valid {
		stats["Goals For"] = m.GoalsFor.Int64
	}
	if m.GoalsAgainst.Valid {
		stats["Goals Against"] = m.GoalsAgainst.Int64
	}
	if m.GoalsFor.Valid && m.GoalsAgainst.Valid {
		stats["Goal Difference"] = m.GoalsFor.Int64 - m.GoalsAgainst.Int64
	}
	if m.PossessionPct.Valid {
		stats["Possession %"] = m.PossessionPct.Float64
	}
	if m.Result.Valid && strings.TrimSpace(m.Result.String) != "" {
		stats["Result"] = strings.TrimSpace(m.Result.String)
	}

	return match.Record{
		Date:     match.NormalizeDate(m.MatchDate),
		Opponent: strings.TrimSpace(m.Opponent),
		ID:       match.ResolveID(m.ID, stats),
		Stats:    stats,
		Origin:   match.OriginRelational,
	}
}

func decodeStatsBlob(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}
	}
	out := make(map[string]any)
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]any{}
	}
	return out
}
