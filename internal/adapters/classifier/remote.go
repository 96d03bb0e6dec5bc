package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/okian/cageside/internal/domain/prediction"
	"github.com/okian/cageside/pkg/logger"
)

const (
	defaultTimeout      = 2 * time.Second
	defaultMaxRetries   = 2
	defaultRetryBackoff = 100 * time.Millisecond

	predictPath = "/predict"
)

type predictRequest struct {
	Features []string  `json:"features,omitempty"`
	Row      []float64 `json:"row"`
}

// predictResponse is the sidecar's answer. Probabilities is optional.
type predictResponse struct {
	Prediction    *int      `json:"prediction"`
	Probabilities []float64 `json:"probabilities,omitempty"`
}

// Remote calls a classifier sidecar over HTTP. One call to /predict serves
// both Predict and PredictProba; the last answer is reused for the same row.
type Remote struct {
	baseURL      string
	httpClient   *http.Client
	features     []string
	maxRetries   int
	retryBackoff time.Duration
	logger       logger.Logger

	cache lastAnswer
}

var _ prediction.ProbabilityClassifier = (*Remote)(nil)

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		if d > 0 {
			r.httpClient.Timeout = d
		}
	}
}

// WithRetries sets the retry count and initial backoff.
func WithRetries(maxRetries int, backoff time.Duration) RemoteOption {
	return func(r *Remote) {
		if maxRetries >= 0 {
			r.maxRetries = maxRetries
		}
		if backoff > 0 {
			r.retryBackoff = backoff
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) {
		if c != nil {
			r.httpClient = c
		}
	}
}

// WithFeatureNames sends the column names alongside each row.
func WithFeatureNames(names []string) RemoteOption {
	return func(r *Remote) {
		r.features = names
	}
}

// WithLogger sets the client's logger.
func WithLogger(l logger.Logger) RemoteOption {
	return func(r *Remote) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRemote creates a client for the sidecar at baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Predict returns the sidecar's decision for row.
func (r *Remote) Predict(ctx context.Context, row []float64) (int, error) {
	resp, err := r.answer(ctx, row)
	if err != nil {
		return 0, err
	}
	return *resp.Prediction, nil
}

// PredictProba returns the sidecar's probabilities for row. A sidecar that
// does not report probabilities yields ErrBadResponse.
func (r *Remote) PredictProba(ctx context.Context, row []float64) ([]float64, error) {
	resp, err := r.answer(ctx, row)
	if err != nil {
		return nil, err
	}
	if len(resp.Probabilities) == 0 {
		return nil, fmt.Errorf("%w: no probabilities", ErrBadResponse)
	}
	return resp.Probabilities, nil
}

func (r *Remote) answer(ctx context.Context, row []float64) (predictResponse, error) {
	if resp, ok := r.cache.get(row); ok {
		return resp, nil
	}
	body, err := json.Marshal(predictRequest{Features: r.features, Row: row})
	if err != nil {
		return predictResponse{}, fmt.Errorf("marshal request: %w", err)
	}
	raw, err := r.doWithRetry(ctx, body)
	if err != nil {
		return predictResponse{}, err
	}
	var resp predictResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return predictResponse{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if resp.Prediction == nil {
		return predictResponse{}, fmt.Errorf("%w: missing prediction", ErrBadResponse)
	}
	r.cache.put(row, resp)
	return resp, nil
}

func (r *Remote) doRequest(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       raw,
		}
	}
	return raw, nil
}

// doWithRetry retries retryable API errors with jittered exponential backoff.
func (r *Remote) doWithRetry(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	backoff := r.retryBackoff

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			// backoff * (0.5 to 1.5)
			wait := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			r.logger.Debug(ctx, "retrying classifier request",
				logger.Int("attempt", attempt),
				logger.Duration("backoff", wait),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			backoff *= 2
		}

		raw, err := r.doRequest(ctx, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return nil, err
		}
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
