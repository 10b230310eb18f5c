package main

import (
	"fmt"
	"os"

	"ceacalc/internal/cea"
	"ceacalc/internal/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pointCmd computes the point CE estimates
var pointCmd = &cobra.Command{
	Use:   "point",
	Short: "Compute point cost-effectiveness estimates",
	Long: `Computes the three point CE metrics from the scalar inputs:
cost per beneficiary, SD gained per $100, and cost per 1 SD gained.

With --inflation, costs are restated in target-year prices:
  Real cost = Nominal cost x (CPI_target_year / CPI_cost_year)
and the threshold verdict is taken on the real series.

Examples:
  ceacalc point
  ceacalc point --total-cost 74800 --beneficiaries 12000 --impact 0.19
  ceacalc point --inflation --cpi-cost 100 --cpi-target 140 --out point.csv`,
	RunE: runPoint,
}

func init() {
	addInputFlags(pointCmd)
	pointCmd.Flags().String("out", "", "Write point results CSV to this path")
}

func runPoint(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}

	res := cea.Compute(in)
	logger.Debug("computed point estimates",
		zap.Float64("cost_per_beneficiary_real", res.CostPerBeneficiaryReal),
		zap.Float64("sd_per_100_real", res.SDPer100Real),
		zap.String("verdict", res.MeetsThreshold.String()))

	s := newStyles(cfg.Display.NoColor)
	out := cmd.OutOrStdout()

	if in.Label != "" {
		fmt.Fprintln(out, s.Muted.Render(fmt.Sprintf("Context: %s | Cost year: %d | Target (real) year: %d",
			in.Label, in.CostYear, in.TargetYear)))
	}

	headers := []string{"", "Cost per child (USD)", "SD per $100", "Cost per 1 SD (USD)"}
	rows := [][]string{{
		"Nominal",
		formatMetric(res.CostPerBeneficiaryNominal),
		formatMetric(res.SDPer100Nominal),
		formatMetric(res.CostPer1SDNominal),
	}}
	if res.CPIRatio != 1 {
		rows = append(rows, []string{
			"Real",
			formatMetric(res.CostPerBeneficiaryReal),
			formatMetric(res.SDPer100Real),
			formatMetric(res.CostPer1SDReal),
		})
	}
	fmt.Fprint(out, renderTable("Point estimate of cost-effectiveness", headers, rows, s))
	fmt.Fprintln(out, verdictLine(res, s))

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		if err := writePointCSV(path, in, res); err != nil {
			return err
		}
		fmt.Fprintln(out, s.Muted.Render("Wrote "+path))
	}
	return nil
}

// verdictLine mirrors the original pass/fail/info messages.
func verdictLine(res cea.Result, s styles) string {
	switch res.MeetsThreshold {
	case cea.VerdictMeets:
		return s.Success.Render(fmt.Sprintf(
			"Based on REAL cost, the intervention meets the threshold: %s >= %s SD per $100.",
			formatMetric(res.SDPer100Real), formatMetric(res.Threshold)))
	case cea.VerdictFails:
		return s.Warning.Render(fmt.Sprintf(
			"Based on REAL cost, the intervention does NOT meet the threshold: %s < %s SD per $100.",
			formatMetric(res.SDPer100Real), formatMetric(res.Threshold)))
	default:
		return s.Info.Render("No threshold specified. Set --threshold to see a pass/fail verdict.")
	}
}

func writePointCSV(path string, in cea.Input, res cea.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WritePoint(f, in, res); err != nil {
		return err
	}
	return f.Close()
}
