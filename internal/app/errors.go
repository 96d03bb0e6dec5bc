package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotReady     = errors.New("roster not loaded")
	ErrNoStore      = errors.New("no roster store configured")
	ErrEmptyQuery   = errors.New("empty fighter name")
	ErrEmptyCard    = errors.New("card has no bouts")
	ErrCardTooLarge = errors.New("card has too many bouts")
)
