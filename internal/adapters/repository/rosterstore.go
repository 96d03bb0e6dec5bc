package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/cageside/internal/adapters/source"
	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/roster"
	"github.com/okian/cageside/pkg/logger"
	"github.com/okian/cageside/pkg/metrics"
)

const refreshKey = "refresh"

// Stats describes the store's current state.
type Stats struct {
	SnapshotID string    `json:"snapshot_id"`
	Source     string    `json:"source"`
	LoadedAt   time.Time `json:"loaded_at"`
	Fighters   int       `json:"fighters"`
	Rejected   int       `json:"rejected"`
	Reloads    int64     `json:"reloads"`
	Failures   int64     `json:"failures"`
	LastError  string    `json:"last_error,omitempty"`
}

// RosterStore publishes immutable roster snapshots through an atomic
// pointer. Readers never block; concurrent Refresh calls share one load.
type RosterStore struct {
	loader          source.Loader
	refreshInterval time.Duration
	normOpts        []fighter.Option
	logger          logger.Logger
	now             func() time.Time

	snapshot atomic.Pointer[roster.Snapshot]
	modTime  atomic.Int64
	reloads  atomic.Int64
	failures atomic.Int64
	lastErr  atomic.Pointer[string]
	group    singleflight.Group

	// Periodic refresh management
	wg       sync.WaitGroup
	stopChan chan struct{}
	closed   atomic.Bool
}

// NewRosterStore constructs a store over loader and starts periodic refresh
// when an interval is configured. It does not load; call Refresh first.
func NewRosterStore(ctx context.Context, loader source.Loader, opts ...Option) *RosterStore {
	s := &RosterStore{
		loader:          loader,
		refreshInterval: 5 * time.Minute,
		logger:          logger.Nop(),
		now:             time.Now,
		stopChan:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.refreshInterval > 0 {
		s.startPeriodicRefresh(ctx)
	}
	return s
}

// NewStaticStore returns a store that always serves snap. Refresh is a no-op.
func NewStaticStore(snap *roster.Snapshot) *RosterStore {
	s := &RosterStore{logger: logger.Nop(), now: time.Now, stopChan: make(chan struct{})}
	s.snapshot.Store(snap)
	return s
}

func (s *RosterStore) startPeriodicRefresh(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx); err != nil {
					s.logger.Warn(ctx, "periodic roster refresh failed", logger.Error(err))
				}
			}
		}
	}()
}

// Current returns the published snapshot.
func (s *RosterStore) Current() *roster.Snapshot {
	return s.snapshot.Load()
}

// Refresh loads from the source and publishes a new snapshot when the
// source changed. Concurrent callers share the same load.
func (s *RosterStore) Refresh(ctx context.Context) (*roster.Snapshot, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if s.loader == nil {
		if snap := s.Current(); snap != nil {
			return snap, nil
		}
		return nil, ErrNoSnapshot
	}
	v, err, _ := s.group.Do(refreshKey, func() (any, error) {
		return s.reload(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*roster.Snapshot), nil
}

func (s *RosterStore) reload(ctx context.Context) (*roster.Snapshot, error) {
	start := time.Now()
	batch, err := s.loader.Load(ctx)
	if err != nil {
		return nil, s.fail(ctx, fmt.Errorf("load roster: %w", err))
	}

	cur := s.Current()
	if cur != nil && cur.Source() == batch.Source && s.modTime.Load() == batch.ModTime.UnixNano() {
		s.logger.Debug(ctx, "roster source unchanged", logger.String("source", batch.Source))
		return cur, nil
	}

	snap := roster.NewSnapshot(batch.Source, s.now(), batch.Records, s.normOpts...)
	if snap.Len() == 0 {
		return nil, s.fail(ctx, fmt.Errorf("%s: %w", batch.Source, roster.ErrEmptyRoster))
	}

	s.snapshot.Store(snap)
	s.modTime.Store(batch.ModTime.UnixNano())
	s.reloads.Add(1)
	s.lastErr.Store(nil)

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordSnapshotReloadDuration(ms)
	metrics.UpdateSnapshotLastUnix(float64(snap.LoadedAt().Unix()))
	metrics.IncrementSnapshotCount()
	metrics.UpdateSnapshotRecords(snap.Len())
	if n := len(snap.Rejected()); n > 0 {
		metrics.RecordSnapshotRejected(n)
		s.logger.Warn(ctx, "dropped roster rows without a name",
			logger.Int("rows", n),
			logger.Error(errors.Join(snap.Rejected()...)),
		)
	}

	s.logger.Info(ctx, "roster snapshot published",
		logger.String("snapshot_id", snap.ID()),
		logger.String("source", snap.Source()),
		logger.Int("fighters", snap.Len()),
		logger.Float64("took_ms", ms),
	)
	return snap, nil
}

func (s *RosterStore) fail(ctx context.Context, err error) error {
	s.failures.Add(1)
	msg := err.Error()
	s.lastErr.Store(&msg)
	metrics.RecordSnapshotReloadError()
	metrics.RecordErrorByComponent("repository", "reload")
	if s.Current() != nil {
		s.logger.Warn(ctx, "roster reload failed; keeping previous snapshot", logger.Error(err))
	}
	return err
}

// Stats reports the current snapshot and reload counters.
func (s *RosterStore) Stats() Stats {
	st := Stats{Reloads: s.reloads.Load(), Failures: s.failures.Load()}
	if msg := s.lastErr.Load(); msg != nil {
		st.LastError = *msg
	}
	if snap := s.Current(); snap != nil {
		st.SnapshotID = snap.ID()
		st.Source = snap.Source()
		st.LoadedAt = snap.LoadedAt()
		st.Fighters = snap.Len()
		st.Rejected = len(snap.Rejected())
	}
	return st
}

// Close stops periodic refresh and waits for it to exit.
func (s *RosterStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(s.stopChan)
	s.wg.Wait()
	return nil
}
