package match

import (
	"testing"
	"time"
)

func TestNormalizeDate_DiscardsTimeAndZone(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+12", 12*60*60)
	late := time.Date(2025, 1, 20, 23, 45, 0, 0, loc)

	if got := NormalizeDate(late); got != "2025-01-20" {
		t.Fatalf("expected wall-clock date kept, got %q", got)
	}
	if got := NormalizeDate("2025-01-20T18:30:00Z"); got != "2025-01-20" {
		t.Fatalf("expected leading date segment, got %q", got)
	}
	if got := NormalizeDate("  2025-03-15  "); got != "2025-03-15" {
		t.Fatalf("expected trimmed date, got %q", got)
	}
	if got := NormalizeDate(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
	if got := NormalizeDate("not a date"); got != "" {
		t.Fatalf("expected empty for garbage, got %q", got)
	}
}

func TestResolveID_BlobCodeOverridesPrimaryKey(t *testing.T) {
	t.Parallel()

	id := ResolveID(42, map[string]any{"Match ID": "M10050"})
	code, ok := id.Code()
	if !ok || code != "M10050" {
		t.Fatalf("expected code M10050, got %+v", id)
	}
	if _, ok := id.Numeric(); ok {
		t.Fatalf("id must never carry both shapes: %+v", id)
	}

	id = ResolveID(42, map[string]any{"Goals For": 2})
	numeric, ok := id.Numeric()
	if !ok || numeric != 42 {
		t.Fatalf("expected primary key 42, got %+v", id)
	}

	if id := ResolveID(0, nil); !id.IsZero() {
		t.Fatalf("expected zero id, got %+v", id)
	}
}

func TestResolveID_AlternateSpellings(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"MatchID", "match_id", "Match Id"} {
		id := ResolveID(7, map[string]any{key: "X1"})
		if code, ok := id.Code(); !ok || code != "X1" {
			t.Fatalf("key %q: expected code X1, got %+v", key, id)
		}
	}

	// Blank codes do not override.
	id := ResolveID(7, map[string]any{"Match ID": "   "})
	if numeric, ok := id.Numeric(); !ok || numeric != 7 {
		t.Fatalf("expected fallback to primary key, got %+v", id)
	}
}

func TestMergeStats_PrecedenceWinsCollisions(t *testing.T) {
	t.Parallel()

	relational := map[string]any{"Goals For": 3, "Result": "W"}
	sheet := map[string]any{"Goals For": 1, "Attendance": 850}

	merged := MergeStats(relational, sheet)
	if merged["Goals For"] != 3 {
		t.Fatalf("expected relational value to win, got %v", merged["Goals For"])
	}
	if merged["Result"] != "W" || merged["Attendance"] != 850 {
		t.Fatalf("expected union of both sides, got %v", merged)
	}
	if len(relational) != 2 || len(sheet) != 2 {
		t.Fatalf("inputs must not be mutated")
	}
}

func TestFilter_InDateRange(t *testing.T) {
	t.Parallel()

	f := Filter{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	if !f.InDateRange("2025-01-20") {
		t.Fatalf("expected in-range date to match")
	}
	if f.InDateRange("2025-02-01") || f.InDateRange("2024-12-31") {
		t.Fatalf("expected out-of-range dates to be rejected")
	}
	if f.InDateRange("") {
		t.Fatalf("expected empty date to fail a bounded filter")
	}
	if !(Filter{}).InDateRange("") {
		t.Fatalf("expected unbounded filter to accept anything")
	}
}
