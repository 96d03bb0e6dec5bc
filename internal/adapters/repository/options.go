package repository

import (
	"time"

	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/pkg/logger"
)

// Option applies a configuration option to the RosterStore.
type Option func(*RosterStore)

// WithRefreshInterval sets how often the source is polled. Zero disables polling.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *RosterStore) {
		if interval >= 0 {
			s.refreshInterval = interval
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *RosterStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNormalizerOptions sets the options snapshots build their normalizer with.
func WithNormalizerOptions(opts ...fighter.Option) Option {
	return func(s *RosterStore) {
		s.normOpts = append(s.normOpts, opts...)
	}
}

// WithClock overrides time.Now for load timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *RosterStore) {
		if now != nil {
			s.now = now
		}
	}
}
