// Package config defines service configuration and its loading.
//
// Conventions:
// - New builds a Config with defaults; Load layers a file and env vars on top.
// - Durations are plain integers with a unit suffix in the key.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the crawler's fighter_stats directory. The newest CSV wins.
	DataDir string `koanf:"data_dir"`

	// FallbackFile is the static legacy table used when DataDir has nothing.
	FallbackFile string `koanf:"fallback_file"`

	// RefreshIntervalSeconds sets how often the roster is reloaded. 0 disables.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// ResolveLimit caps the candidates returned for a name query.
	ResolveLimit int `koanf:"resolve_limit"`

	// MinMatchScore drops fuzzy candidates scoring below it.
	MinMatchScore float64 `koanf:"min_match_score"`

	// MinConfidence is the lowest top-candidate score accepted for a prediction.
	MinConfidence float64 `koanf:"min_confidence"`

	// ModelPath points at a logistic model export. Empty means no local model.
	ModelPath string `koanf:"model_path"`

	// ClassifierURL is the base URL of a classifier sidecar. It takes
	// precedence over ModelPath.
	ClassifierURL string `koanf:"classifier_url"`

	// ClassifierTimeoutMS bounds each sidecar request.
	ClassifierTimeoutMS int `koanf:"classifier_timeout_ms"`

	// MaxCardBouts caps the bouts accepted in one card request.
	MaxCardBouts int `koanf:"max_card_bouts"`

	// CardConcurrency bounds the bouts of a card predicted at once.
	CardConcurrency int `koanf:"card_concurrency"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		DataDir:                "fighter_stats",
		FallbackFile:           "data/fighter_stats.csv",
		RefreshIntervalSeconds: 300,
		ResolveLimit:           3,
		MinMatchScore:          50,
		MinConfidence:          0,
		ModelPath:              "data/model.json",
		ClassifierTimeoutMS:    2000,
		MaxCardBouts:           20,
		CardConcurrency:        4,
	}
}

// RefreshInterval returns RefreshIntervalSeconds as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// ClassifierTimeout returns ClassifierTimeoutMS as a duration.
func (c *Config) ClassifierTimeout() time.Duration {
	return time.Duration(c.ClassifierTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataDir == "" && c.FallbackFile == "":
		return fmt.Errorf("%w: data_dir or fallback_file must be set", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.RefreshIntervalSeconds < 0:
		return fmt.Errorf("%w: refresh_interval_seconds must not be negative", ErrInvalidConfig)
	case c.ResolveLimit < 1:
		return fmt.Errorf("%w: resolve_limit must be at least 1", ErrInvalidConfig)
	case c.MinMatchScore < 0 || c.MinMatchScore > 100:
		return fmt.Errorf("%w: min_match_score must be within [0,100]", ErrInvalidConfig)
	case c.MinConfidence < 0 || c.MinConfidence > 100:
		return fmt.Errorf("%w: min_confidence must be within [0,100]", ErrInvalidConfig)
	case c.ClassifierTimeoutMS <= 0:
		return fmt.Errorf("%w: classifier_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxCardBouts < 1:
		return fmt.Errorf("%w: max_card_bouts must be at least 1", ErrInvalidConfig)
	case c.CardConcurrency < 1:
		return fmt.Errorf("%w: card_concurrency must be at least 1", ErrInvalidConfig)
	}
	return nil
}
