// Package cli implements the agrointel command line interface.  Commands
// run the decision engine in-process, so no API server is required.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agriconnect/agrointel/internal/application/advisory"
	"github.com/agriconnect/agrointel/internal/config"
	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Seed       int64
	AsOf       string
}

// NewRootCommand creates the root command with global flags and all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "agrointel",
		Short: "Agricultural decision-support engine",
		Long: "agrointel simulates weather, predicts yields and market prices, and\n" +
			"ranks crops for farmers in the supported growing regions.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.Int64Var(&opts.Seed, "seed", 0, "fixed random seed for reproducible output (0 = random)")
	pf.StringVar(&opts.AsOf, "as-of", "", "anchor date YYYY-MM-DD (default: today)")

	cmd.AddCommand(
		newForecastCmd(opts),
		newYieldCmd(opts),
		newPriceCmd(opts),
		newRecommendCmd(opts),
		newReportCmd(opts),
		newCropsCmd(opts),
	)

	return cmd
}

// newService builds the engine from configuration and global flags.
func newService(opts *RootOptions) (*advisory.Service, *catalog.Catalog, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       opts.LogLevel,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, nil, err
	}

	svcOpts := []advisory.Option{
		advisory.WithPriceHorizon(cfg.Engine.PriceHorizonDays),
		advisory.WithScorerOptions(
			recommend.WithWeights(cfg.Engine.Weights),
			recommend.WithCalibration(cfg.Engine.Calibration),
		),
	}
	if opts.Seed != 0 {
		seed := opts.Seed
		svcOpts = append(svcOpts, advisory.WithSeeder(func() int64 { return seed }))
	}

	svc, err := advisory.New(cat, logger, svcOpts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, cat, nil
}

// asOfTime parses the global --as-of flag.  Zero time means "now".
func asOfTime(opts *RootOptions) (time.Time, error) {
	if opts.AsOf == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse("2006-01-02", opts.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of must be formatted YYYY-MM-DD: %w", err)
	}
	return at, nil
}

// printJSON writes data as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Execute runs the CLI and reports errors on stderr.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		return err
	}
	return nil
}
