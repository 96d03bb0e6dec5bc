package fighter

import "errors"

// Sentinel kinds for record normalization.
var (
	ErrMalformedRecord = errors.New("malformed fighter record")
)
