package match

import "context"

// Store exposes read access to the relational matches table. Rows are
// returned already adapted to the canonical Record shape, with the stats
// blob decoded and the identifier precedence rule applied.
type Store interface {
	ListByFilter(ctx context.Context, filter Filter) ([]Record, error)
}
