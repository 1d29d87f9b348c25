package usecase

import crerr "github.com/cockroachdb/errors"

// Sentinel errors returned by the usecase layer. Callers branch on these
// with errors.Is; the wrapped message carries the detail.
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)
