package sheet

import "testing"

func TestRow_HeaderSpellings(t *testing.T) {
	t.Parallel()

	row := Row{
		"date":          "2025-01-20",
		"Opponent Name": " Titans FC ",
		"match_id":      "M10050",
		"Shots":         float64(14),
	}

	if got, ok := row.RawDate(); !ok || got != "2025-01-20" {
		t.Fatalf("unexpected date: %q ok=%v", got, ok)
	}
	if got, ok := row.Opponent(); !ok || got != "Titans FC" {
		t.Fatalf("unexpected opponent: %q ok=%v", got, ok)
	}
	if got, ok := row.MatchID(); !ok || got != "M10050" {
		t.Fatalf("unexpected match id: %q ok=%v", got, ok)
	}
}

func TestRow_StatsExcludesIdentityColumns(t *testing.T) {
	t.Parallel()

	row := Row{
		"Date":     "2025-01-20",
		"Opponent": "Titans",
		"Match ID": "M1",
		"Shots":    float64(14),
		"Result":   "W",
	}

	stats := row.Stats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 stat cells, got %v", stats)
	}
	if stats["Shots"] != float64(14) || stats["Result"] != "W" {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if _, ok := stats["Match ID"]; ok {
		t.Fatalf("match code must not leak into stats")
	}
}

func TestRow_MissingColumns(t *testing.T) {
	t.Parallel()

	row := Row{"Shots": float64(3), "Opponent": "   "}
	if _, ok := row.RawDate(); ok {
		t.Fatalf("expected no date")
	}
	if _, ok := row.Opponent(); ok {
		t.Fatalf("expected blank opponent to be treated as missing")
	}
	if _, ok := row.MatchID(); ok {
		t.Fatalf("expected no match id")
	}
}
