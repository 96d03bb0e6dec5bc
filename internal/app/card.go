package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/okian/cageside/internal/domain/prediction"
	"github.com/okian/cageside/pkg/logger"
	"github.com/okian/cageside/pkg/metrics"
)

const errMissingNames = "missing fighter names"

// Bout is one fight on a card. Blue is listed first.
type Bout struct {
	Blue        string `json:"blue" yaml:"blue"`
	Red         string `json:"red" yaml:"red"`
	WeightClass string `json:"weight_class,omitempty" yaml:"weight_class,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	MainEvent   bool   `json:"main_event,omitempty" yaml:"main_event,omitempty"`
}

// BoutResult is a Bout with either its outcome or the reason it failed.
type BoutResult struct {
	Bout
	Outcome *prediction.Outcome `json:"outcome,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// PredictCard predicts every bout against one snapshot. A failing bout is
// reported in its result and never stops the rest of the card. Results keep
// the card's order.
func (s *Service) PredictCard(ctx context.Context, bouts []Bout) ([]BoutResult, error) {
	if len(bouts) == 0 {
		return nil, ErrEmptyCard
	}
	if len(bouts) > s.maxCardBouts {
		return nil, fmt.Errorf("%w: %d > %d", ErrCardTooLarge, len(bouts), s.maxCardBouts)
	}
	if s.store == nil {
		return nil, ErrNoStore
	}
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	metrics.RecordCardBouts(len(bouts))

	results := make([]BoutResult, len(bouts))
	var g errgroup.Group
	g.SetLimit(s.cardConcurrency)
	for i, b := range bouts {
		results[i].Bout = b
		if b.Blue == "" || b.Red == "" {
			results[i].Error = errMissingNames
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			out, err := s.predictOn(ctx, snap, b.Blue, b.Red)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Outcome = &out
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.logger.Info(ctx, "card predicted",
		logger.Int("bouts", len(bouts)),
		logger.Int("failed", failed),
	)
	return results, nil
}
