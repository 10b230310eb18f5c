package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ceacalc/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	noColor    bool

	// Shared state, set up in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ceacalc",
	Short: "ceacalc - cost-effectiveness analysis helper",
	Long: `ceacalc computes cost-effectiveness (CE) metrics for social-program
interventions, in the style of J-PAL training examples:

  - Cost per beneficiary (child)
  - Standard deviations (SD) gained per $100
  - Cost per 1 SD gained

It supports optional inflation adjustment via CPI index ratios, a simple
four-scenario sensitivity sweep, and batch analysis over an uploaded
spreadsheet (xlsx or CSV). Results download as CSV artifacts.

Run "ceacalc point" to start from the built-in training example.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return err
		}
		if noColor {
			cfg.Display.NoColor = true
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// resolveConfigPath picks the explicit --config path, else ~/.ceacalc.yaml.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ceacalc.yaml"
	}
	return filepath.Join(home, ".ceacalc.yaml")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.ceacalc.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
