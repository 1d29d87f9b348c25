package postgres

import (
	"database/sql"
	"testing"
	"time"
)

func TestMatchTableModel_ToRecord(t *testing.T) {
	t.Parallel()

	row := matchTableModel{
		ID:           42,
		Opponent:     "  Titans FC ",
		MatchDate:    time.Date(2025, 1, 20, 19, 30, 0, 0, time.FixedZone("UTC+7", 7*3600)),
		Stats:        sql.NullString{String: `{"Shots": 14, "Corners": 5}`, Valid: true},
		GoalsFor:     sql.NullInt64{Int64: 2, Valid: true},
		GoalsAgainst: sql.NullInt64{Int64: 1, Valid: true},
		Result:       sql.NullString{String: "W", Valid: true},
	}

	rec := row.toRecord()
	if rec.Date != "2025-01-20" {
		t.Fatalf("unexpected date %q", rec.Date)
	}
	if rec.Opponent != "Titans FC" {
		t.Fatalf("unexpected opponent %q", rec.Opponent)
	}
	if numeric, ok := rec.ID.Numeric(); !ok || numeric != 42 {
		t.Fatalf("unexpected id %+v", rec.ID)
	}
	if rec.Stats["Shots"] != float64(14) {
		t.Fatalf("blob stat missing: %v", rec.Stats)
	}
	if rec.Stats["Goals For"] != int64(2) || rec.Stats["Goal Difference"] != int64(1) {
		t.Fatalf("computed columns missing: %v", rec.Stats)
	}
	if rec.Stats["Result"] != "W" {
		t.Fatalf("result column missing: %v", rec.Stats)
	}
}

func TestMatchTableModel_BlobMatchIDOverridesPrimaryKey(t *testing.T) {
	t.Parallel()

	row := matchTableModel{
		ID:        42,
		Opponent:  "Titans",
		MatchDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		Stats:     sql.NullString{String: `{"Match ID": "M10050"}`, Valid: true},
	}

	rec := row.toRecord()
	code, ok := rec.ID.Code()
	if !ok || code != "M10050" {
		t.Fatalf("expected blob code to win, got %+v", rec.ID)
	}
}

func TestMatchTableModel_MalformedBlobKeepsRow(t *testing.T) {
	t.Parallel()

	row := matchTableModel{
		ID:        7,
		Opponent:  "Titans",
		MatchDate: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		Stats:     sql.NullString{String: `{"Shots": `, Valid: true},
		GoalsFor:  sql.NullInt64{Int64: 3, Valid: true},
	}

	rec := row.toRecord()
	if rec.Date != "2025-02-05" || rec.Opponent != "Titans" {
		t.Fatalf("row identity must survive a bad blob: %+v", rec)
	}
	if numeric, ok := rec.ID.Numeric(); !ok || numeric != 7 {
		t.Fatalf("unexpected id %+v", rec.ID)
	}
	// Blob contributes nothing; computed columns still apply.
	if rec.Stats["Goals For"] != int64(3) {
		t.Fatalf("computed column lost: %v", rec.Stats)
	}
	if _, ok := rec.Stats["Shots"]; ok {
		t.Fatalf("malformed blob must yield no blob stats: %v", rec.Stats)
	}
}

func TestDecodeStatsBlob(t *testing.T) {
	t.Parallel()

	if got := decodeStatsBlob(""); len(got) != 0 {
		t.Fatalf("empty blob: %v", got)
	}
	if got := decodeStatsBlob("not json"); len(got) != 0 {
		t.Fatalf("malformed blob: %v", got)
	}
	got := decodeStatsBlob(`{"a": 1}`)
	if got["a"] != float64(1) {
		t.Fatalf("unexpected decode: %v", got)
	}
}
