package prediction

import "errors"

// Sentinel kinds for prediction errors.
var (
	ErrFighterNotFound  = errors.New("fighter not found")
	ErrDuplicateFighter = errors.New("both names resolve to the same fighter")
	ErrClassifier       = errors.New("classifier failed")
)
