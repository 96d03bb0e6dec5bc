// Package roster holds immutable, timestamped snapshots of the fighter table.
package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/cageside/internal/domain/fighter"
)

// Fighter is one usable row of a snapshot.
type Fighter struct {
	// Index is the row's position in the snapshot and its identity.
	Index int
	Name  string
	// Key is NormalizeName(Name).
	Key string
	Raw fighter.RawRecord
}

// Snapshot is an ordered, read-only view of the roster at one point in time.
// It is safe for concurrent use.
type Snapshot struct {
	id       string
	source   string
	loadedAt time.Time
	fighters []Fighter
	byKey    map[string]int
	rejected []error
	norm     *fighter.Normalizer
}

// NewSnapshot builds a snapshot from records in source order. Rows without
// a name are skipped and reported through Rejected.
func NewSnapshot(source string, loadedAt time.Time, records []fighter.RawRecord, opts ...fighter.Option) *Snapshot {
	n := fighter.NewNormalizer(opts...)
	s := &Snapshot{
		id:       uuid.NewString(),
		source:   source,
		loadedAt: loadedAt,
		fighters: make([]Fighter, 0, len(records)),
		byKey:    make(map[string]int, len(records)),
		norm:     n,
	}
	for row, raw := range records {
		name, ok := n.NameOf(raw)
		if !ok {
			s.rejected = append(s.rejected, fmt.Errorf("row %d: %w", row, fighter.ErrMalformedRecord))
			continue
		}
		f := Fighter{Index: len(s.fighters), Name: name, Key: NormalizeName(name), Raw: raw}
		if _, dup := s.byKey[f.Key]; !dup {
			s.byKey[f.Key] = f.Index
		}
		s.fighters = append(s.fighters, f)
	}
	return s
}

// ID returns the snapshot's unique identifier.
func (s *Snapshot) ID() string { return s.id }

// Source returns where the records were loaded from.
func (s *Snapshot) Source() string { return s.source }

// LoadedAt returns the load time.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of usable fighters.
func (s *Snapshot) Len() int { return len(s.fighters) }

// Fighters returns the rows in snapshot order. Callers must not modify them.
func (s *Snapshot) Fighters() []Fighter { return s.fighters }

// At returns the fighter at index i.
func (s *Snapshot) At(i int) (Fighter, bool) {
	if i < 0 || i >= len(s.fighters) {
		return Fighter{}, false
	}
	return s.fighters[i], true
}

// ByKey returns the first fighter whose normalized name equals key.
func (s *Snapshot) ByKey(key string) (Fighter, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Fighter{}, false
	}
	return s.fighters[i], true
}

// Normalizer returns the normalizer the snapshot was built with.
func (s *Snapshot) Normalizer() *fighter.Normalizer { return s.norm }

// Rejected lists the rows dropped while building the snapshot.
func (s *Snapshot) Rejected() []error { return s.rejected }

// Names returns the distinct fighter names sorted alphabetically.
func (s *Snapshot) Names() []string {
	seen := make(map[string]struct{}, len(s.fighters))
	out := make([]string, 0, len(s.fighters))
	for _, f := range s.fighters {
		if _, ok := seen[f.Name]; ok {
			continue
		}
		seen[f.Name] = struct{}{}
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}
