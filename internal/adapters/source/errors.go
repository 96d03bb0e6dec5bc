package source

import "errors"

// Sentinel kinds for roster sources.
var (
	ErrNoData    = errors.New("no fighter data available")
	ErrMalformed = errors.New("malformed fighter file")
)
