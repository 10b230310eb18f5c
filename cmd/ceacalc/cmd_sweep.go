package main

import (
	"fmt"
	"os"

	"ceacalc/internal/cea"
	"ceacalc/internal/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sweepCmd runs the four-scenario sensitivity sweep
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a four-scenario sensitivity sweep",
	Long: `Perturbs the per-beneficiary cost and the impact by simple +/-
percentages (not confidence intervals) and reports cost-effectiveness for
the four bounding scenarios, in fixed order:

  Best case  (Low cost + High impact)
  Worst case (High cost + Low impact)
  Low cost + Low impact
  High cost + High impact

The center values are seeded from the point estimate (real per-beneficiary
cost when --inflation is set). Explicit bounds override the percentage
deltas, e.g. --cost-low 5.00 --cost-high 7.50.

If even the worst case clears your threshold the program is robustly
cost-effective; if only the best case does, the result is fragile.`,
	RunE: runSweep,
}

func init() {
	addInputFlags(sweepCmd)
	f := sweepCmd.Flags()
	f.Float64("cost-delta", 20, "Cost variation (+/- percent)")
	f.Float64("impact-delta", 25, "Impact variation (+/- percent)")
	f.Float64("cost-low", 0, "Explicit low cost per beneficiary (overrides --cost-delta)")
	f.Float64("cost-high", 0, "Explicit high cost per beneficiary (overrides --cost-delta)")
	f.Float64("impact-low", 0, "Explicit low impact (overrides --impact-delta)")
	f.Float64("impact-high", 0, "Explicit high impact (overrides --impact-delta)")
	f.String("out", "", "Write sensitivity CSV to this path")
}

func runSweep(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()

	costDelta := cfg.Sensitivity.CostDeltaPct
	if f.Changed("cost-delta") {
		costDelta, _ = f.GetFloat64("cost-delta")
	}
	impactDelta := cfg.Sensitivity.ImpactDeltaPct
	if f.Changed("impact-delta") {
		impactDelta, _ = f.GetFloat64("impact-delta")
	}
	if costDelta < 0 || impactDelta < 0 {
		return fmt.Errorf("sensitivity deltas must be >= 0")
	}

	// Seed the center from the point estimate; real cost is the basis
	// whenever inflation adjustment is on.
	res := cea.Compute(in)
	center := res.CostPerBeneficiaryReal

	scenarios := cea.Sweep(center, in.Impact, costDelta, impactDelta)
	if f.Changed("cost-low") || f.Changed("cost-high") ||
		f.Changed("impact-low") || f.Changed("impact-high") {
		bounds, err := explicitBounds(cmd, scenarios)
		if err != nil {
			return err
		}
		scenarios = bounds
	}

	logger.Debug("sensitivity sweep",
		zap.Float64("center_cost", center),
		zap.Float64("center_impact", in.Impact),
		zap.Float64("cost_delta_pct", costDelta),
		zap.Float64("impact_delta_pct", impactDelta))

	s := newStyles(cfg.Display.NoColor)
	out := cmd.OutOrStdout()

	headers := []string{"Scenario", "Cost per child (USD)", "Impact (SD)", "SD per $100"}
	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		rows = append(rows, []string{
			sc.Label,
			formatMetric(sc.CostPerBeneficiary),
			formatAt(sc.Impact, 3),
			formatMetric(sc.SDPer100),
		})
	}
	fmt.Fprint(out, renderTable("Sensitivity analysis", headers, rows, s))

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		if err := writeScenariosCSV(path, scenarios); err != nil {
			return err
		}
		fmt.Fprintln(out, s.Muted.Render("Wrote "+path))
	}
	return nil
}

// explicitBounds rebuilds the sweep from user-supplied bounds, keeping the
// delta-derived value for any bound left unset.
func explicitBounds(cmd *cobra.Command, derived []cea.Scenario) ([]cea.Scenario, error) {
	f := cmd.Flags()

	// Scenario order is fixed: Best carries (low cost, high impact),
	// Worst carries (high cost, low impact).
	costLow, costHigh := derived[0].CostPerBeneficiary, derived[1].CostPerBeneficiary
	impactLow, impactHigh := derived[1].Impact, derived[0].Impact

	if f.Changed("cost-low") {
		costLow, _ = f.GetFloat64("cost-low")
	}
	if f.Changed("cost-high") {
		costHigh, _ = f.GetFloat64("cost-high")
	}
	if f.Changed("impact-low") {
		impactLow, _ = f.GetFloat64("impact-low")
	}
	if f.Changed("impact-high") {
		impactHigh, _ = f.GetFloat64("impact-high")
	}

	if costLow < 0 || costHigh < 0 || impactLow < 0 || impactHigh < 0 {
		return nil, fmt.Errorf("scenario bounds must be >= 0")
	}
	if costLow > costHigh {
		return nil, fmt.Errorf("--cost-low (%v) must not exceed --cost-high (%v)", costLow, costHigh)
	}
	if impactLow > impactHigh {
		return nil, fmt.Errorf("--impact-low (%v) must not exceed --impact-high (%v)", impactLow, impactHigh)
	}
	return cea.SweepBounds(costLow, costHigh, impactLow, impactHigh), nil
}

func writeScenariosCSV(path string, scenarios []cea.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteScenarios(f, scenarios); err != nil {
		return err
	}
	return f.Close()
}
