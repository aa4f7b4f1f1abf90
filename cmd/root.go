package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/crimedash/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataset string
	flagStyles  string

	// Loaded configuration, or the error that prevented loading it
	cfg    *cfgpkg.Global
	cfgErr error

	// Logger for diagnostics on stderr
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "crimedash",
	Short: "crimedash: GDP per capita vs. organized criminality dashboard",
	Long: `crimedash loads a country-level spreadsheet of GDP per capita, criminality and
resilience scores, derives rankings, continent aggregates and correlations,
and serves them as an interactive dark-themed dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.crimedash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "dataset path or glob pattern (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStyles, "styles", "", "TOML file with chart style overrides (overrides config)")
}

func loadConfig() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Reported by commands that need a config; config init still works.
		cfg, cfgErr = nil, err
		logger.Debug("config not loaded", "error", err)
		return
	}
	cfg, cfgErr = c, nil

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("dataset") && flagDataset != "" {
		cfg.Dataset = flagDataset
	}
	if f.Changed("styles") {
		cfg.StylesFile = flagStyles
	}
	logger.Debug("config loaded", "dataset", cfg.Dataset, "styles", cfg.StylesFile, "addr", cfg.Addr())
}

// requireConfig returns the config load error, if any. Commands that build or
// serve the dashboard call it first so a bad config stops startup.
func requireConfig() error {
	if cfg != nil {
		return nil
	}
	if cfgErr != nil {
		return fmt.Errorf("load config: %w", cfgErr)
	}
	return fmt.Errorf("no configuration loaded")
}
