package catalog

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCatalog is returned when a catalog document fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrInvalidFilter is returned for an unknown resource category or difficulty.
	ErrInvalidFilter = errors.New("invalid filter")
)
