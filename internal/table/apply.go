package table

import "ceacalc/internal/cea"

// Options controls the derivation pass.
type Options struct {
	// ApplyInflation derives a real-cost column from the CPI columns and
	// uses it as the cost basis; without it (or without the CPI columns)
	// the nominal cost column is the basis.
	ApplyInflation bool
}

// Derivation is the tagged outcome of an Apply pass: which cost basis was
// used, what was derived, and what was skipped and why.
type Derivation struct {
	CostBasis       string
	RealCostDerived bool
	CEDerived       bool
	Skipped         []string
}

// cpiColumns are required, together with the nominal cost, to derive the
// real-cost column.
var cpiColumns = []string{ColCostYear, ColCPICost, ColTargetYear, ColCPITarget}

// Apply augments the table in place with the derived CE columns, using the
// same formulas and guards as the point calculator, element-wise. Presence
// checks are table-wide: a table missing a source column skips that whole
// derivation group rather than deriving for some rows. Rows with nulled
// source cells get nulled derived cells.
func (t *Table) Apply(opts Options) Derivation {
	d := Derivation{CostBasis: ColTotalCost}

	// Step 1: real-cost column.
	switch {
	case !opts.ApplyInflation:
		// Nominal basis by request.
	case t.Has(ColRealCost):
		// Upload already carries the real-cost column; use it, never
		// overwrite it.
		d.CostBasis = ColRealCost
	case t.HasAll(append([]string{ColTotalCost}, cpiColumns...)...):
		t.AddColumn(ColRealCost, func(row Row) *float64 {
			nominal := row.Num(ColTotalCost)
			cpiCost := row.Num(ColCPICost)
			cpiTarget := row.Num(ColCPITarget)
			if nominal == nil || cpiCost == nil || cpiTarget == nil || *cpiCost <= 0 {
				return nil
			}
			real := *nominal * (*cpiTarget / *cpiCost)
			return &real
		})
		d.CostBasis = ColRealCost
		d.RealCostDerived = true
	default:
		d.Skipped = append(d.Skipped,
			"real cost: inflation requested but CPI/year columns incomplete, using nominal cost")
	}

	// Step 2: CE columns.
	benCol, ok := t.BeneficiaryColumn()
	if !ok || !t.HasAll(d.CostBasis, ColImpact) {
		d.Skipped = append(d.Skipped,
			"cost-effectiveness: required source columns missing, nothing derived")
		return d
	}

	basis := d.CostBasis
	t.AddColumn(ColCostPerChild, func(row Row) *float64 {
		cost := row.Num(basis)
		n := row.Num(benCol)
		if cost == nil || n == nil || *n < 1 {
			return nil
		}
		per := *cost / *n
		return &per
	})
	t.AddColumn(ColSDPer100, func(row Row) *float64 {
		per := row.Num(ColCostPerChild)
		impact := row.Num(ColImpact)
		if per == nil || impact == nil {
			return nil
		}
		sd := cea.SDPer100(*impact, *per)
		return &sd
	})
	t.AddColumn(ColCostPer1SD, func(row Row) *float64 {
		per := row.Num(ColCostPerChild)
		impact := row.Num(ColImpact)
		if per == nil || impact == nil {
			return nil
		}
		c := cea.CostPer1SD(*per, *impact)
		return &c
	})
	d.CEDerived = true
	return d
}
