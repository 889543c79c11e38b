package models

import (
	"errors"
	"fmt"
)

// Sentinel errors. Handlers map these to distinct HTTP statuses so the
// presentation layer can choose recovery (re-prompt vs retry).
var (
	// ErrValidation marks a query that cannot be served as given.
	ErrValidation = errors.New("validation error")

	// ErrMissingSize is returned by recommend when the query has no size.
	ErrMissingSize = fmt.Errorf("%w: tire size is required", ErrValidation)

	// ErrDataSource is returned only when the catalog fetch failed and no
	// cached generation exists to fall back on.
	ErrDataSource = errors.New("catalog data source unavailable")
)
