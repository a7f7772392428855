package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrInvalidRecord = errors.New("record references a module not in the catalog")
)
