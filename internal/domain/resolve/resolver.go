// Package resolve finds the roster row a free-text fighter name refers to.
//
// Matching runs in three passes and stops at the first that produces a
// result: exact normalized name, normalized substring, then fuzzy WRatio.
package resolve

import (
	"sort"
	"strings"

	"github.com/okian/cageside/internal/domain/roster"
)

// Kind labels how a candidate was matched.
type Kind string

const (
	KindExact     Kind = "exact"
	KindSubstring Kind = "substring"
	KindFuzzy     Kind = "fuzzy"
)

// Defaults.
const (
	DefaultLimit    = 3
	DefaultMinScore = 50.0
	perfectScore    = 100.0
)

// Candidate is one ranked match for a query.
type Candidate struct {
	Fighter roster.Fighter
	Score   float64
	Kind    Kind
}

// Resolver matches queries against roster snapshots. It holds no state
// beyond its settings and is safe for concurrent use.
type Resolver struct {
	limit    int
	minScore float64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLimit caps the number of candidates returned.
func WithLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithMinScore drops fuzzy candidates scoring below s. Zero keeps everything.
func WithMinScore(s float64) Option {
	return func(r *Resolver) {
		if s >= 0 && s <= perfectScore {
			r.minScore = s
		}
	}
}

// New returns a Resolver with DefaultLimit and DefaultMinScore.
func New(opts ...Option) *Resolver {
	r := &Resolver{limit: DefaultLimit, minScore: DefaultMinScore}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Limit returns the configured candidate cap.
func (r *Resolver) Limit() int { return r.limit }

// Resolve returns up to Limit candidates for query.
func (r *Resolver) Resolve(query string, snap *roster.Snapshot) []Candidate {
	return r.ResolveN(query, snap, r.limit)
}

// ResolveN is Resolve with an explicit cap. A non-positive n uses Limit.
func (r *Resolver) ResolveN(query string, snap *roster.Snapshot, n int) []Candidate {
	if n <= 0 {
		n = r.limit
	}
	q := roster.NormalizeName(query)
	if q == "" || snap == nil || snap.Len() == 0 {
		return nil
	}

	if f, ok := snap.ByKey(q); ok {
		return []Candidate{{Fighter: f, Score: perfectScore, Kind: KindExact}}
	}

	if out := substring(q, snap, n); len(out) > 0 {
		return out
	}

	return r.fuzzy(q, snap, n)
}

// substring collects rows whose key contains q, one per distinct name.
func substring(q string, snap *roster.Snapshot, n int) []Candidate {
	var out []Candidate
	seen := make(map[string]struct{})
	for _, f := range snap.Fighters() {
		if !strings.Contains(f.Key, q) {
			continue
		}
		if _, dup := seen[f.Name]; dup {
			continue
		}
		seen[f.Name] = struct{}{}
		out = append(out, Candidate{Fighter: f, Score: perfectScore, Kind: KindSubstring})
		if len(out) == n {
			break
		}
	}
	return out
}

func (r *Resolver) fuzzy(q string, snap *roster.Snapshot, n int) []Candidate {
	fighters := snap.Fighters()
	out := make([]Candidate, 0, len(fighters))
	for _, f := range fighters {
		score := WRatio(q, f.Key)
		if score < r.minScore {
			continue
		}
		out = append(out, Candidate{Fighter: f, Score: score, Kind: KindFuzzy})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
