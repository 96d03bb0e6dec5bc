// Package cli implements the fightcli command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	service "github.com/okian/cageside/internal/app"
	"github.com/okian/cageside/internal/config"
	"github.com/okian/cageside/pkg/logger"
)

var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug         bool
	jsonOutput    bool
	dataDir       string
	fallbackFile  string
	modelPath     string
	classifierURL string
	minConfidence float64
}

type env struct {
	flags globalFlags
	svc   *service.Service
}

// NewRootCommand builds the fightcli command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:   "fightcli",
		Short: "Predict UFC fights from the crawler's fighter tables",
		Long: `fightcli resolves fighter names against the latest crawled roster and
predicts bouts with the configured classifier.

Configuration is read from CAGESIDE_CONFIG and CAGESIDE_* environment
variables; flags override both.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
		PersistentPostRun: func(*cobra.Command, []string) { e.teardown() },
	}

	f := cmd.PersistentFlags()
	f.BoolVar(&e.flags.debug, "debug", false, "Enable debug logging")
	f.BoolVar(&e.flags.jsonOutput, "json", false, "Write results as JSON")
	f.StringVar(&e.flags.dataDir, "data-dir", "", "Crawler fighter_stats directory")
	f.StringVar(&e.flags.fallbackFile, "fallback", "", "Static fighter table used when data-dir has no CSV")
	f.StringVar(&e.flags.modelPath, "model", "", "Logistic model export (JSON)")
	f.StringVar(&e.flags.classifierURL, "classifier-url", "", "Base URL of a classifier sidecar")
	f.Float64Var(&e.flags.minConfidence, "min-confidence", 0, "Lowest name-match score accepted for a prediction")

	cmd.AddCommand(newPredictCommand(e))
	cmd.AddCommand(newSearchCommand(e))
	cmd.AddCommand(newFightersCommand(e))
	cmd.AddCommand(newCardCommand(e))

	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return nil
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.applyFlags(cmd, cfg)
	cfg.RefreshIntervalSeconds = 0
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if e.flags.debug {
		level = slog.LevelDebug
	}
	log := logger.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := service.FromConfig(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	e.svc = svc
	return nil
}

func (e *env) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = e.flags.dataDir
	}
	if flags.Changed("fallback") {
		cfg.FallbackFile = e.flags.fallbackFile
	}
	if flags.Changed("model") {
		cfg.ModelPath = e.flags.modelPath
	}
	if flags.Changed("classifier-url") {
		cfg.ClassifierURL = e.flags.classifierURL
	}
	if flags.Changed("min-confidence") {
		cfg.MinConfidence = e.flags.minConfidence
	}
}

func (e *env) teardown() {
	if e.svc != nil {
		e.svc.Stop()
		e.svc = nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
