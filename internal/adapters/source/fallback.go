package source

import (
	"context"
	"errors"

	"github.com/okian/cageside/pkg/logger"
)

// Fallback tries each loader in order and returns the first batch with records.
type Fallback struct {
	loaders []Loader
	logger  logger.Logger
}

// NewFallback returns a Fallback over loaders. A nil log disables logging.
func NewFallback(log logger.Logger, loaders ...Loader) *Fallback {
	return &Fallback{loaders: loaders, logger: log}
}

// Load returns the first non-empty batch.
func (f *Fallback) Load(ctx context.Context) (Batch, error) {
	var errs []error
	for i, l := range f.loaders {
		b, err := l.Load(ctx)
		if err == nil && len(b.Records) > 0 {
			if i > 0 && f.logger != nil {
				f.logger.Warn(ctx, "using fallback roster source", logger.String("source", b.Source))
			}
			return b, nil
		}
		if err == nil {
			err = ErrNoData
		}
		if ctx.Err() != nil {
			return Batch{}, ctx.Err()
		}
		if f.logger != nil {
			f.logger.Debug(ctx, "roster source unavailable", logger.Int("position", i), logger.Error(err))
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Batch{}, ErrNoData
	}
	return Batch{}, errors.Join(errs...)
}
