package main

import (
	"fmt"

	"ceacalc/internal/config"

	"github.com/spf13/cobra"
)

// configCmd manages the ceacalc config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ceacalc configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Writes the built-in defaults to the config path (see --config),
so the input defaults, sensitivity deltas, and batch settings can be
edited in one place.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := resolveConfigPath()
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote "+path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n\n", resolveConfigPath())
	fmt.Fprintf(out, "inputs:\n")
	fmt.Fprintf(out, "  label:          %s\n", cfg.Inputs.Label)
	fmt.Fprintf(out, "  analysis_type:  %s\n", cfg.Inputs.AnalysisType)
	fmt.Fprintf(out, "  total_cost:     %v\n", cfg.Inputs.TotalCost)
	fmt.Fprintf(out, "  beneficiaries:  %d\n", cfg.Inputs.Beneficiaries)
	fmt.Fprintf(out, "  impact:         %v\n", cfg.Inputs.Impact)
	fmt.Fprintf(out, "  threshold:      %v\n", cfg.Inputs.Threshold)
	fmt.Fprintf(out, "  use_inflation:  %v\n", cfg.Inputs.UseInflation)
	fmt.Fprintf(out, "  cpi:            %v (year %d) -> %v (year %d)\n",
		cfg.Inputs.CPICostYear, cfg.Inputs.CostYear,
		cfg.Inputs.CPITargetYear, cfg.Inputs.TargetYear)
	fmt.Fprintf(out, "sensitivity:      +/-%v%% cost, +/-%v%% impact\n",
		cfg.Sensitivity.CostDeltaPct, cfg.Sensitivity.ImpactDeltaPct)
	fmt.Fprintf(out, "batch sheet:      %s\n", cfg.Batch.Sheet)
	return nil
}
