package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/cageside/internal/adapters/source"
	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeLoader struct {
	mu    sync.Mutex
	batch source.Batch
	err   error
	gate  chan struct{}
	calls atomic.Int32
}

func (f *fakeLoader) Load(ctx context.Context) (source.Batch, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return source.Batch{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batch, f.err
}

func (f *fakeLoader) set(batch source.Batch, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batch, f.err = batch, err
}

func batchOf(name string, mod time.Time, names ...string) source.Batch {
	recs := make([]fighter.RawRecord, 0, len(names))
	for _, n := range names {
		recs = append(recs, fighter.RawRecord{"name": n})
	}
	return source.Batch{Source: name, ModTime: mod, Records: recs}
}

func TestRosterStoreRefresh(t *testing.T) {
	Convey("Given a store over a loader", t, func() {
		ctx := context.Background()
		mod := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
		loader := &fakeLoader{}
		loader.set(batchOf("a.csv", mod, "Alex Pereira", "Jon Jones"), nil)
		store := NewRosterStore(ctx, loader, WithRefreshInterval(0))
		defer store.Close()

		Convey("Then nothing is published before the first refresh", func() {
			So(store.Current(), ShouldBeNil)
			So(store.Stats().Fighters, ShouldEqual, 0)
		})

		Convey("When refreshed", func() {
			snap, err := store.Refresh(ctx)
			So(err, ShouldBeNil)

			Convey("Then the snapshot is published", func() {
				So(store.Current(), ShouldEqual, snap)
				So(snap.Len(), ShouldEqual, 2)
				st := store.Stats()
				So(st.SnapshotID, ShouldEqual, snap.ID())
				So(st.Source, ShouldEqual, "a.csv")
				So(st.Reloads, ShouldEqual, 1)
			})

			Convey("Then an unchanged source keeps the same snapshot", func() {
				again, err := store.Refresh(ctx)
				So(err, ShouldBeNil)
				So(again, ShouldEqual, snap)
				So(store.Stats().Reloads, ShouldEqual, 1)
			})

			Convey("Then a changed source publishes a new snapshot", func() {
				loader.set(batchOf("a.csv", mod.Add(time.Hour), "Alex Pereira"), nil)
				next, err := store.Refresh(ctx)
				So(err, ShouldBeNil)
				So(next.ID(), ShouldNotEqual, snap.ID())
				So(store.Current().Len(), ShouldEqual, 1)
				So(snap.Len(), ShouldEqual, 2)
			})

			Convey("Then a failed load keeps the previous snapshot", func() {
				loader.set(source.Batch{}, source.ErrNoData)
				_, err := store.Refresh(ctx)
				So(errors.Is(err, source.ErrNoData), ShouldBeTrue)
				So(store.Current(), ShouldEqual, snap)
				So(store.Stats().Failures, ShouldEqual, 1)
				So(store.Stats().LastError, ShouldContainSubstring, "no")
			})

			Convey("Then an all-nameless table is rejected", func() {
				loader.set(source.Batch{
					Source:  "b.csv",
					ModTime: mod,
					Records: []fighter.RawRecord{{"n_win": 1}},
				}, nil)
				_, err := store.Refresh(ctx)
				So(errors.Is(err, roster.ErrEmptyRoster), ShouldBeTrue)
				So(store.Current(), ShouldEqual, snap)
			})
		})
	})
}

func TestRosterStoreSingleflight(t *testing.T) {
	Convey("Given concurrent refreshes on a slow loader", t, func() {
		ctx := context.Background()
		loader := &fakeLoader{gate: make(chan struct{})}
		loader.set(batchOf("a.csv", time.Now(), "Alex Pereira"), nil)
		store := NewRosterStore(ctx, loader, WithRefreshInterval(0))
		defer store.Close()

		const callers = 8
		var wg sync.WaitGroup
		snaps := make([]*roster.Snapshot, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				snaps[i], _ = store.Refresh(ctx)
			}(i)
		}
		for loader.calls.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		time.Sleep(20 * time.Millisecond)
		close(loader.gate)
		wg.Wait()

		Convey("Then every caller sees a published snapshot", func() {
			for _, s := range snaps {
				So(s, ShouldNotBeNil)
			}
			So(loader.calls.Load(), ShouldBeLessThan, callers)
		})
	})
}

func TestRosterStorePeriodicRefresh(t *testing.T) {
	Convey("Given a store with a short interval", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		loader := &fakeLoader{}
		loader.set(batchOf("a.csv", time.Now(), "Jon Jones"), nil)
		store := NewRosterStore(ctx, loader, WithRefreshInterval(10*time.Millisecond))

		Convey("Then the ticker loads the roster", func() {
			deadline := time.Now().Add(2 * time.Second)
			for store.Current() == nil && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(store.Current(), ShouldNotBeNil)

			So(store.Close(), ShouldBeNil)
			_, err := store.Refresh(ctx)
			So(errors.Is(err, ErrClosed), ShouldBeTrue)
			So(store.Close(), ShouldBeNil)
		})
	})
}

func TestStaticStore(t *testing.T) {
	Convey("Given a static store", t, func() {
		snap := roster.NewSnapshot("mem", time.Now(), []fighter.RawRecord{{"name": "Jon Jones"}})
		store := NewStaticStore(snap)

		got, err := store.Refresh(context.Background())
		So(err, ShouldBeNil)
		So(got, ShouldEqual, snap)
		So(store.Stats().Fighters, ShouldEqual, 1)
	})
}
