// Package prediction turns two fighter names into a named fight outcome.
package prediction

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/matchup"
	"github.com/okian/cageside/internal/domain/resolve"
	"github.com/okian/cageside/internal/domain/roster"
)

// Predictor resolves, normalizes, assembles and classifies. It carries no
// per-call state and is safe for concurrent use.
type Predictor struct {
	resolver      *resolve.Resolver
	schema        fighter.Schema
	minConfidence float64
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithResolver sets the name resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(p *Predictor) {
		if r != nil {
			p.resolver = r
		}
	}
}

// WithSchema sets the field order used to build vectors.
func WithSchema(s fighter.Schema) Option {
	return func(p *Predictor) {
		if len(s) > 0 {
			p.schema = s
		}
	}
}

// WithMinConfidence rejects a best candidate scoring below c as not found.
func WithMinConfidence(c float64) Option {
	return func(p *Predictor) {
		if c >= 0 {
			p.minConfidence = c
		}
	}
}

// New returns a Predictor using the canonical schema and a default resolver.
func New(opts ...Option) *Predictor {
	p := &Predictor{resolver: resolve.New(), schema: fighter.Canonical}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Schema returns the field order vectors are built with.
func (p *Predictor) Schema() fighter.Schema { return p.schema }

// Resolver returns the name resolver.
func (p *Predictor) Resolver() *resolve.Resolver { return p.resolver }

// PredictFight predicts blue against red using snap and clf.
func (p *Predictor) PredictFight(ctx context.Context, blueName, redName string, snap *roster.Snapshot, clf Classifier) (Outcome, error) {
	blue, err := p.best(blueName, snap)
	if err != nil {
		return Outcome{}, err
	}
	red, err := p.best(redName, snap)
	if err != nil {
		return Outcome{}, err
	}
	if blue.Fighter.Index == red.Fighter.Index {
		return Outcome{}, fmt.Errorf("%w: %q and %q are both %s", ErrDuplicateFighter, blueName, redName, blue.Fighter.Name)
	}
	if clf == nil {
		return Outcome{}, fmt.Errorf("%w: no classifier loaded", ErrClassifier)
	}

	norm := snap.Normalizer()
	blueAttrs, err := norm.Normalize(blue.Fighter.Raw)
	if err != nil {
		return Outcome{}, fmt.Errorf("blue %q: %w", blue.Fighter.Name, err)
	}
	redAttrs, err := norm.Normalize(red.Fighter.Raw)
	if err != nil {
		return Outcome{}, fmt.Errorf("red %q: %w", red.Fighter.Name, err)
	}

	vec, err := matchup.Build(blueAttrs, redAttrs, p.schema)
	if err != nil {
		return Outcome{}, err
	}

	decision, err := clf.Predict(ctx, vec.Values)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrClassifier, err)
	}

	out := Outcome{
		Blue:       withMatch(Summarize(blueAttrs), blue),
		Red:        withMatch(Summarize(redAttrs), red),
		Tape:       Compare(blueAttrs, redAttrs),
		SnapshotID: snap.ID(),
	}
	switch decision {
	case BlueWins:
		out.Winner, out.Loser, out.WinnerCorner = blue.Fighter.Name, red.Fighter.Name, CornerBlue
	case RedWins:
		out.Winner, out.Loser, out.WinnerCorner = red.Fighter.Name, blue.Fighter.Name, CornerRed
	default:
		return Outcome{}, fmt.Errorf("%w: unexpected decision %d", ErrClassifier, decision)
	}
	out.Confidence = confidence(ctx, clf, vec.Values)
	return out, nil
}

func (p *Predictor) best(name string, snap *roster.Snapshot) (resolve.Candidate, error) {
	cands := p.resolver.Resolve(name, snap)
	if len(cands) == 0 {
		return resolve.Candidate{}, fmt.Errorf("%w: %q", ErrFighterNotFound, name)
	}
	if cands[0].Score < p.minConfidence {
		return resolve.Candidate{}, fmt.Errorf("%w: %q best match %q scored %.1f", ErrFighterNotFound, name, cands[0].Fighter.Name, cands[0].Score)
	}
	return cands[0], nil
}

// confidence is max(p)*100 when clf reports a valid probability pair.
func confidence(ctx context.Context, clf Classifier, row []float64) Confidence {
	pc, ok := clf.(ProbabilityClassifier)
	if !ok {
		return Unavailable()
	}
	proba, err := pc.PredictProba(ctx, row)
	if err != nil || len(proba) != 2 {
		return Unavailable()
	}
	best := max(proba[0], proba[1])
	if math.IsNaN(best) || best < 0 || best > 1 {
		return Unavailable()
	}
	return Percent(best * 100)
}

func withMatch(s Summary, c resolve.Candidate) Summary {
	s.MatchScore = c.Score
	s.MatchKind = string(c.Kind)
	return s
}
