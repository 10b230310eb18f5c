package cea

// Scenario labels, in the fixed output order.
const (
	LabelBest     = "Best case (Low cost + High impact)"
	LabelWorst    = "Worst case (High cost + Low impact)"
	LabelLowLow   = "Low cost + Low impact"
	LabelHighHigh = "High cost + High impact"
)

// Scenario is one named (cost, impact) combination from the sweep.
type Scenario struct {
	Label              string
	CostPerBeneficiary float64
	Impact             float64
	SDPer100           float64
}

// Sweep perturbs the center cost and impact by symmetric +/- percentages
// and returns the four bounding scenarios in fixed order: Best, Worst,
// Low-Low, High-High. Deltas above 100% would push the low bounds negative;
// those are clamped to zero, where the zero-cost guard in SDPer100 takes
// over.
func Sweep(centerCost, centerImpact, costDeltaPct, impactDeltaPct float64) []Scenario {
	costLow := clampNonNegative(centerCost * (1 - costDeltaPct/100))
	costHigh := centerCost * (1 + costDeltaPct/100)
	impactLow := clampNonNegative(centerImpact * (1 - impactDeltaPct/100))
	impactHigh := centerImpact * (1 + impactDeltaPct/100)
	return SweepBounds(costLow, costHigh, impactLow, impactHigh)
}

// SweepBounds builds the four scenarios from explicit low/high bounds.
// Order is significant: downstream tables and tests rely on it.
func SweepBounds(costLow, costHigh, impactLow, impactHigh float64) []Scenario {
	combos := []struct {
		label        string
		cost, impact float64
	}{
		{LabelBest, costLow, impactHigh},
		{LabelWorst, costHigh, impactLow},
		{LabelLowLow, costLow, impactLow},
		{LabelHighHigh, costHigh, impactHigh},
	}

	scenarios := make([]Scenario, 0, len(combos))
	for _, c := range combos {
		scenarios = append(scenarios, Scenario{
			Label:              c.label,
			CostPerBeneficiary: c.cost,
			Impact:             c.impact,
			SDPer100:           SDPer100(c.impact, c.cost),
		})
	}
	return scenarios
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
