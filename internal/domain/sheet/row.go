package sheet

import "strings"

// Row is one spreadsheet row keyed by header name. Values are loosely
// typed: numeric cells arrive as float64, everything else as string.
type Row map[string]any

// Header spellings observed across exported sheets. All column-name
// guessing for the tabular source is confined to this file.
var (
	dateKeys     = []string{"Date", "date", "Match Date", "match_date"}
	opponentKeys = []string{"Opponent", "opponent", "Opponent Name", "opponent_name"}
	matchIDKeys  = []string{"Match ID", "MatchID", "match_id", "Match Id"}
)

// RawDate returns the row's date cell as the source carried it.
func (r Row) RawDate() (string, bool) {
	return r.lookupString(dateKeys)
}

// Opponent returns the trimmed opponent name.
func (r Row) Opponent() (string, bool) {
	return r.lookupString(opponentKeys)
}

// MatchID returns the row's own match code column, when present.
func (r Row) MatchID() (string, bool) {
	return r.lookupString(matchIDKeys)
}

// Stats returns every cell that is not the date, opponent, or match-code
// column. The match code is deliberately kept out: it is an identifier,
// not a statistic, and re-emitting it would re-trigger the override rule
// downstream.
func (r Row) Stats() map[string]any {
	out := make(map[string]any, len(r))
	for key, value := range r {
		if containsKey(dateKeys, key) || containsKey(opponentKeys, key) || containsKey(matchIDKeys, key) {
			continue
		}
		out[key] = value
	}
	return out
}

func (r Row) lookupString(keys []string) (string, bool) {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value, true
		}
	}
	return "", false
}

func containsKey(keys []string, key string) bool {
	for _, candidate := range keys {
		if candidate == key {
			return true
		}
	}
	return false
}
