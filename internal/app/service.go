// Package service provides the prediction service behind the HTTP API
// and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/cageside/internal/adapters/repository"
	"github.com/okian/cageside/internal/domain/matchup"
	"github.com/okian/cageside/internal/domain/prediction"
	"github.com/okian/cageside/internal/domain/resolve"
	"github.com/okian/cageside/internal/domain/roster"
	"github.com/okian/cageside/pkg/logger"
	"github.com/okian/cageside/pkg/metrics"
)

const maxSearchLimit = 50

// Store is the roster store the service reads snapshots from.
type Store interface {
	repository.Store
	Stats() repository.Stats
}

// Service implements the API dependencies for fight predictions.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      Store
	classifier prediction.Classifier
	backend    string
	predictor  *prediction.Predictor

	// Configuration
	resolveLimit    int
	minMatchScore   float64
	minConfidence   float64
	maxCardBouts    int
	cardConcurrency int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the roster store.
func WithStore(store Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithClassifier sets the classifier and the backend name used in metrics.
func WithClassifier(clf prediction.Classifier, backend string) Option {
	return func(s *Service) {
		s.classifier = clf
		if backend != "" {
			s.backend = backend
		}
	}
}

// WithResolveLimit caps the candidates returned by Search.
func WithResolveLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.resolveLimit = n
		}
	}
}

// WithMinMatchScore drops fuzzy candidates scoring below score.
func WithMinMatchScore(score float64) Option {
	return func(s *Service) {
		if score >= 0 {
			s.minMatchScore = score
		}
	}
}

// WithMinConfidence rejects predictions whose best name match scores below c.
func WithMinConfidence(c float64) Option {
	return func(s *Service) {
		if c >= 0 {
			s.minConfidence = c
		}
	}
}

// WithMaxCardBouts caps the bouts accepted by PredictCard.
func WithMaxCardBouts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCardBouts = n
		}
	}
}

// WithCardConcurrency bounds the bouts predicted at once.
func WithCardConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cardConcurrency = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backend:         "none",
		resolveLimit:    resolve.DefaultLimit,
		minMatchScore:   resolve.DefaultMinScore,
		maxCardBouts:    20,
		cardConcurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	s.predictor = prediction.New(
		prediction.WithResolver(resolve.New(
			resolve.WithLimit(s.resolveLimit),
			resolve.WithMinScore(s.minMatchScore),
		)),
		prediction.WithMinConfidence(s.minConfidence),
	)
	return s
}

// Start loads the first roster snapshot. A failed load is fatal only when
// no snapshot is available at all.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting prediction service...")

	if _, err := s.store.Refresh(ctx); err != nil {
		if s.store.Current() == nil {
			return fmt.Errorf("initial roster load: %w", err)
		}
		s.logger.Warn(ctx, "initial roster refresh failed; serving existing snapshot", logger.Error(err))
	}
	if s.classifier == nil {
		s.logger.Warn(ctx, "no classifier configured; predictions will fail")
	}

	s.started = true
	st := s.store.Stats()
	s.logger.Info(ctx, "prediction service started",
		logger.String("source", st.Source),
		logger.Int("fighters", st.Fighters),
		logger.String("classifier", s.backend),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping prediction service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

// Ready reports whether a snapshot is available.
func (s *Service) Ready() bool {
	return s.store != nil && s.store.Current() != nil
}

// PredictFight predicts blue against red on the current snapshot.
func (s *Service) PredictFight(ctx context.Context, blue, red string) (prediction.Outcome, error) {
	if s.store == nil {
		return prediction.Outcome{}, ErrNoStore
	}
	snap := s.store.Current()
	if snap == nil {
		return prediction.Outcome{}, ErrNotReady
	}
	return s.predictOn(ctx, snap, blue, red)
}

func (s *Service) predictOn(ctx context.Context, snap *roster.Snapshot, blue, red string) (prediction.Outcome, error) {
	start := time.Now()
	out, err := s.predictor.PredictFight(ctx, blue, red, snap, s.classifier)
	metrics.RecordPredictionLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordPrediction(resultLabel(err))

	switch {
	case err == nil:
		metrics.RecordResolverMatch(out.Blue.MatchKind)
		metrics.RecordResolverMatch(out.Red.MatchKind)
		s.logger.Debug(ctx, "fight predicted",
			logger.String("blue", out.Blue.Name),
			logger.String("red", out.Red.Name),
			logger.String("winner", out.Winner),
			logger.String("confidence", out.Confidence.String()),
		)
	case errors.Is(err, prediction.ErrFighterNotFound):
		metrics.RecordResolverMiss()
	case errors.Is(err, prediction.ErrClassifier):
		metrics.RecordClassifierError(s.backend)
		metrics.RecordErrorByComponent("classifier", s.backend)
		s.logger.Error(ctx, "classifier failed", logger.String("backend", s.backend), logger.Error(err))
	case errors.Is(err, matchup.ErrSchemaMismatch):
		metrics.RecordErrorByComponent("matchup", "schema_mismatch")
		s.logger.Error(ctx, "matchup schema mismatch", logger.Error(err))
	}
	return out, err
}

// Search returns up to limit ranked candidates for query. A non-positive
// limit uses the configured default.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]resolve.Candidate, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if s.store == nil {
		return nil, ErrNoStore
	}
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	if limit <= 0 {
		limit = s.predictor.Resolver().Limit()
	}
	limit = min(limit, maxSearchLimit)

	out := s.predictor.Resolver().ResolveN(query, snap, limit)
	if len(out) == 0 {
		metrics.RecordResolverMiss()
	} else {
		metrics.RecordResolverMatch(string(out[0].Kind))
	}
	return out, nil
}

// Fighters returns the sorted distinct names in the current snapshot.
func (s *Service) Fighters(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap.Names(), nil
}

// Refresh reloads the roster and returns the resulting store stats.
func (s *Service) Refresh(ctx context.Context) (repository.Stats, error) {
	if s.store == nil {
		return repository.Stats{}, ErrNoStore
	}
	if _, err := s.store.Refresh(ctx); err != nil {
		return s.store.Stats(), err
	}
	return s.store.Stats(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"classifier":      s.backend,
		"resolveLimit":    s.resolveLimit,
		"minMatchScore":   s.minMatchScore,
		"minConfidence":   s.minConfidence,
		"maxCardBouts":    s.maxCardBouts,
		"cardConcurrency": s.cardConcurrency,
	}
	if s.store != nil {
		st := s.store.Stats()
		stats["snapshot"] = st
		metrics.UpdateSnapshotRecords(st.Fighters)
	}
	return stats
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, prediction.ErrFighterNotFound):
		return "not_found"
	case errors.Is(err, prediction.ErrDuplicateFighter):
		return "duplicate"
	case errors.Is(err, prediction.ErrClassifier):
		return "classifier_error"
	case errors.Is(err, matchup.ErrSchemaMismatch):
		return "schema_mismatch"
	default:
		return "error"
	}
}
