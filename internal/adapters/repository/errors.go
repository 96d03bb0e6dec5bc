package repository

import "errors"

// Sentinel kinds for roster store errors.
var (
	ErrNoSnapshot = errors.New("no roster snapshot loaded")
	ErrClosed     = errors.New("roster store closed")
)
