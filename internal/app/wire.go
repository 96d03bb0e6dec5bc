package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/okian/cageside/internal/adapters/classifier"
	"github.com/okian/cageside/internal/adapters/repository"
	"github.com/okian/cageside/internal/adapters/source"
	"github.com/okian/cageside/internal/config"
	"github.com/okian/cageside/internal/domain/fighter"
	"github.com/okian/cageside/internal/domain/matchup"
	"github.com/okian/cageside/internal/domain/prediction"
	"github.com/okian/cageside/pkg/logger"
)

// Classifier backend names.
const (
	BackendRemote   = "remote"
	BackendLogistic = "logistic"
	BackendNone     = "none"
)

// FromConfig builds a Service from cfg: the roster loaders, the store and
// the classifier. The returned service is not started.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}

	store := repository.NewRosterStore(ctx, Loader(cfg, log),
		repository.WithRefreshInterval(cfg.RefreshInterval()),
		repository.WithLogger(log.Named("repository")),
		repository.WithNormalizerOptions(fighter.WithAsOf(time.Now())),
	)

	clf, backend, err := Classifier(cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return New(
		WithStore(store),
		WithClassifier(clf, backend),
		WithResolveLimit(cfg.ResolveLimit),
		WithMinMatchScore(cfg.MinMatchScore),
		WithMinConfidence(cfg.MinConfidence),
		WithMaxCardBouts(cfg.MaxCardBouts),
		WithCardConcurrency(cfg.CardConcurrency),
		WithLogger(log.Named("service")),
	), nil
}

// Loader returns the roster source for cfg: the newest CSV in DataDir,
// falling back to FallbackFile.
func Loader(cfg *config.Config, log logger.Logger) source.Loader {
	var loaders []source.Loader
	if cfg.DataDir != "" {
		loaders = append(loaders, source.NewLatestCSV(cfg.DataDir))
	}
	if cfg.FallbackFile != "" {
		loaders = append(loaders, source.NewCSVFile(cfg.FallbackFile))
	}
	return source.NewFallback(log.Named("source"), loaders...)
}

// Classifier returns the configured classifier. ClassifierURL wins over
// ModelPath. A missing model file yields no classifier rather than an error.
func Classifier(cfg *config.Config, log logger.Logger) (prediction.Classifier, string, error) {
	if cfg.ClassifierURL != "" {
		return classifier.NewRemote(cfg.ClassifierURL,
			classifier.WithTimeout(cfg.ClassifierTimeout()),
			classifier.WithFeatureNames(matchup.Names(fighter.Canonical)),
			classifier.WithLogger(log.Named("classifier")),
		), BackendRemote, nil
	}
	if cfg.ModelPath != "" {
		l, err := classifier.LoadLogistic(cfg.ModelPath, fighter.Canonical)
		switch {
		case err == nil:
			return l, BackendLogistic, nil
		case errors.Is(err, fs.ErrNotExist):
			log.Warn(context.Background(), "model file not found", logger.String("path", cfg.ModelPath))
		default:
			return nil, "", fmt.Errorf("load classifier: %w", err)
		}
	}
	return nil, BackendNone, nil
}
