package matchup

import "errors"

// Sentinel kinds for vector assembly.
var (
	ErrSchemaMismatch = errors.New("attributes do not match schema")
)
