package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrCatalogEmpty is returned when the catalog tables hold no categories.
	ErrCatalogEmpty = errors.New("catalog tables are empty")
)
