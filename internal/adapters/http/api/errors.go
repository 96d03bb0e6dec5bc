package api

import (
	"errors"
	"net/http"

	"github.com/okian/cageside/internal/adapters/repository"
	service "github.com/okian/cageside/internal/app"
	"github.com/okian/cageside/internal/domain/matchup"
	"github.com/okian/cageside/internal/domain/prediction"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNoMatch    = errors.New("no fighter matches")
)

// statusFor maps an upstream error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, prediction.ErrFighterNotFound), errors.Is(err, ErrNoMatch):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, prediction.ErrDuplicateFighter):
		return http.StatusBadRequest, "duplicate_fighter"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrEmptyCard),
		errors.Is(err, service.ErrCardTooLarge):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, prediction.ErrClassifier):
		return http.StatusServiceUnavailable, "classifier_unavailable"
	case errors.Is(err, service.ErrNotReady), errors.Is(err, service.ErrNoStore), errors.Is(err, repository.ErrClosed):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, matchup.ErrSchemaMismatch):
		return http.StatusInternalServerError, "schema_mismatch"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
