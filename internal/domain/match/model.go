package match

import (
	"strconv"
	"strings"
	"time"
)

// SourceOrigin records which stores contributed to a merged record.
type SourceOrigin string

const (
	OriginRelational SourceOrigin = "relational"
	OriginSheet      SourceOrigin = "sheet"
	OriginBoth       SourceOrigin = "both"
)

// DateLayout is the canonical calendar-date form used for comparison and
// sorting. Lexicographic order on this layout is chronological order.
const DateLayout = "2006-01-02"

// ID identifies a match by exactly one of two shapes: the matches-table
// numeric primary key, or a string code carried inside spreadsheet data.
type ID struct {
	numeric int64
	code    string
}

func NumericID(value int64) ID {
	return ID{numeric: value}
}

func CodeID(value string) ID {
	return ID{code: strings.TrimSpace(value)}
}

func (id ID) Numeric() (int64, bool) {
	if id.code != "" {
		return 0, false
	}
	return id.numeric, id.numeric != 0
}

func (id ID) Code() (string, bool) {
	return id.code, id.code != ""
}

func (id ID) IsZero() bool {
	return id.numeric == 0 && id.code == ""
}

func (id ID) String() string {
	if id.code != "" {
		return id.code
	}
	if id.numeric == 0 {
		return ""
	}
	return strconv.FormatInt(id.numeric, 10)
}

// Record is the canonical shape both sources are adapted into before any
// pairing or merging happens. Stats keys are open; both sources may
// contribute overlapping keys for the same logical match.
type Record struct {
	Date     string
	Opponent string
	ID       ID
	Stats    map[string]any
	Origin   SourceOrigin
}

// Filter narrows a fetch from a match store.
type Filter struct {
	TeamID    string
	TeamIDs   []string
	StartDate string
	EndDate   string
}

func (f Filter) TeamSet() []string {
	if f.TeamID == "" {
		return f.TeamIDs
	}
	out := make([]string, 0, len(f.TeamIDs)+1)
	out = append(out, f.TeamID)
	for _, id := range f.TeamIDs {
		if id != f.TeamID {
			out = append(out, id)
		}
	}
	return out
}

// InDateRange reports whether a normalized date falls inside the filter's
// optional bounds. Empty dates never match a bounded filter.
func (f Filter) InDateRange(date string) bool {
	if f.StartDate == "" && f.EndDate == "" {
		return true
	}
	if date == "" {
		return false
	}
	if f.StartDate != "" && date < f.StartDate {
		return false
	}
	if f.EndDate != "" && date > f.EndDate {
		return false
	}
	return true
}

// NormalizeDate reduces a source date value to its YYYY-MM-DD portion.
// Time-of-day and zone information is discarded, never converted: a
// time.Time contributes the wall-clock date it already carries, and a
// string contributes its leading date segment when one parses.
func NormalizeDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case string:
		return normalizeDateString(v)
	case nil:
		return ""
	default:
		return ""
	}
}

func normalizeDateString(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) >= len(DateLayout) {
		head := trimmed[:len(DateLayout)]
		if _, err := time.Parse(DateLayout, head); err == nil {
			return head
		}
	}

	// Spreadsheet exports frequently carry D/M/YYYY or M/D/YYYY. The day
	// position is taken as-is; ambiguity between the two belongs to the
	// source, not this adapter.
	for _, layout := range []string{"2/1/2006", "1/2/2006", "2006/01/02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format(DateLayout)
		}
	}

	return ""
}
