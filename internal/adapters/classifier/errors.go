// Package classifier provides the outcome classifiers the service can run:
// a logistic model loaded from a JSON export and an HTTP sidecar client.
package classifier

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for classifier errors.
var (
	ErrInvalidModel  = errors.New("invalid model")
	ErrFeatureLength = errors.New("feature row length mismatch")
	ErrBadResponse   = errors.New("bad classifier response")
)

// APIError is a non-2xx response from the remote classifier.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("classifier API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether the request may succeed on retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}
