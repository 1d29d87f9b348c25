package sheet

import "context"

// Source is the tabular feed contributing match rows independent of the
// relational store. The first spreadsheet row is treated as headers; the
// returned rows are keyed by them.
type Source interface {
	FetchRows(ctx context.Context, rangeSelector string) ([]Row, error)
}
