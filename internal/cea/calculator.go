package cea

import "math"

// Basis selects which cost series a metric is read from.
type Basis int

const (
	BasisNominal Basis = iota
	BasisReal
)

// Verdict is the tri-state outcome of the threshold check.
type Verdict int

const (
	VerdictUnset Verdict = iota // no threshold given, no claim made
	VerdictMeets
	VerdictFails
)

func (v Verdict) String() string {
	switch v {
	case VerdictMeets:
		return "meets"
	case VerdictFails:
		return "fails"
	default:
		return "unset"
	}
}

// Input holds the scalar inputs for a single point computation.
// All numeric fields are assumed to be in their documented ranges
// (Beneficiaries >= 1, Impact >= 0, CPI values > 0) by the time they
// reach Compute; callers own validation.
type Input struct {
	Label        string // country / context label, passthrough
	AnalysisType string // e.g. Prospective_Pilot, Retrospective_Pilot

	TotalCostNominal float64 // program cost in nominal currency units
	Beneficiaries    int     // children (or other units) reached, >= 1
	Impact           float64 // SD gain per beneficiary

	CostYear      int
	TargetYear    int
	CPICostYear   float64 // price index in the cost year
	CPITargetYear float64 // price index in the target year

	Threshold float64 // minimum SD per $100; 0 means no threshold
}

// DisableInflation pins both CPI fields to the same neutral value so the
// CPI ratio is exactly 1 and real figures equal nominal figures.
func (in *Input) DisableInflation() {
	in.CPICostYear = 100.0
	in.CPITargetYear = 100.0
}

// Result is an immutable snapshot of the derived point metrics.
type Result struct {
	CPIRatio      float64
	TotalCostReal float64

	CostPerBeneficiaryNominal float64
	CostPerBeneficiaryReal    float64
	SDPer100Nominal           float64
	SDPer100Real              float64
	CostPer1SDNominal         float64
	CostPer1SDReal            float64

	Threshold      float64
	MeetsThreshold Verdict // real-basis verdict; see VerdictOn for nominal
}

// Compute derives the point CE metrics from in.
//
// Real cost = nominal cost x (CPI_target / CPI_cost). The threshold verdict
// is taken on the real series; real cost is authoritative whenever inflation
// adjustment was requested, and with adjustment off the two series coincide.
func Compute(in Input) Result {
	ratio := in.CPITargetYear / in.CPICostYear
	realCost := in.TotalCostNominal * ratio

	n := float64(in.Beneficiaries)
	perNominal := in.TotalCostNominal / n
	perReal := realCost / n

	r := Result{
		CPIRatio:      ratio,
		TotalCostReal: realCost,

		CostPerBeneficiaryNominal: perNominal,
		CostPerBeneficiaryReal:    perReal,
		SDPer100Nominal:           SDPer100(in.Impact, perNominal),
		SDPer100Real:              SDPer100(in.Impact, perReal),
		CostPer1SDNominal:         CostPer1SD(perNominal, in.Impact),
		CostPer1SDReal:            CostPer1SD(perReal, in.Impact),

		Threshold: in.Threshold,
	}
	r.MeetsThreshold = r.VerdictOn(BasisReal)
	return r
}

// VerdictOn evaluates the threshold check against the chosen cost basis.
// A zero threshold always yields VerdictUnset.
func (r Result) VerdictOn(b Basis) Verdict {
	if r.Threshold == 0 {
		return VerdictUnset
	}
	sd := r.SDPer100Real
	if b == BasisNominal {
		sd = r.SDPer100Nominal
	}
	if sd >= r.Threshold {
		return VerdictMeets
	}
	return VerdictFails
}

// SDPer100 returns the standard deviations gained per $100 spent.
// A non-positive per-beneficiary cost carries no information, so the
// metric is 0 there rather than infinite.
func SDPer100(impact, costPerBeneficiary float64) float64 {
	if costPerBeneficiary <= 0 {
		return 0.0
	}
	return (impact * 100) / costPerBeneficiary
}

// CostPer1SD returns the cost of buying one full standard deviation of
// impact. Zero impact makes the ratio undefined; the sentinel is +Inf,
// reported as "N/A" by display code (see Undefined).
func CostPer1SD(costPerBeneficiary, impact float64) float64 {
	if impact == 0 {
		return math.Inf(1)
	}
	return costPerBeneficiary / impact
}

// Undefined reports whether v is the undefined-ratio sentinel.
func Undefined(v float64) bool {
	return math.IsInf(v, 1)
}
