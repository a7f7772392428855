package rubric

import "errors"

// Sentinel kinds for catalog errors. These allow errors.Is/As from callers.
var (
	ErrNotFound       = errors.New("module not found in catalog")
	ErrInvalidRating  = errors.New("rating outside 0-4")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
