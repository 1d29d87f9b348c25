package match

import (
	"strconv"
	"strings"
)

// statsIDKeys are the spellings under which sources carry a cross-source
// match code inside the stats payload. All header-name guessing lives here;
// nothing outside this file probes alternate spellings.
var statsIDKeys = []string{"Match ID", "MatchID", "match_id", "Match Id"}

// StatsMatchID extracts the string match code from a stats payload, if one
// is present and non-empty.
func StatsMatchID(stats map[string]any) (string, bool) {
	if len(stats) == 0 {
		return "", false
	}
	for _, key := range statsIDKeys {
		raw, ok := stats[key]
		if !ok {
			continue
		}
		if code := stringifyStat(raw); code != "" {
			return code, true
		}
	}
	return "", false
}

// ResolveID applies the identifier precedence rule: a stats-carried match
// code overrides the numeric primary key whenever present; otherwise the
// primary key wins. The override policy mirrors upstream behavior and is
// intentionally concentrated here.
func ResolveID(primaryKey int64, stats map[string]any) ID {
	if code, ok := StatsMatchID(stats); ok {
		return CodeID(code)
	}
	if primaryKey != 0 {
		return NumericID(primaryKey)
	}
	return ID{}
}

func stringifyStat(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// MergeStats unions two stats maps, with values from precedence winning key
// collisions. Inputs are not mutated.
func MergeStats(precedence, fallback map[string]any) map[string]any {
	if len(precedence) == 0 && len(fallback) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(precedence)+len(fallback))
	for key, value := range fallback {
		out[key] = value
	}
	for key, value := range precedence {
		out[key] = value
	}
	return out
}
