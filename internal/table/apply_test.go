package table

import (
	"testing"

	"ceacalc/internal/cea"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numRow(t *Table, values map[string]float64, labels map[string]string) Row {
	row := Row{}
	for col, v := range values {
		row[col] = NumCell(v)
	}
	for col, s := range labels {
		row[col] = TextCell(s)
	}
	t.Rows = append(t.Rows, row)
	return row
}

func TestApply_NominalBasis(t *testing.T) {
	tbl := New([]string{ColName, ColTotalCost, ColChildren, ColImpact})
	numRow(tbl, map[string]float64{
		ColTotalCost: 100000,
		ColChildren:  10000,
		ColImpact:    0.2,
	}, map[string]string{ColName: "Tutoring"})

	d := tbl.Apply(Options{})

	assert.Equal(t, ColTotalCost, d.CostBasis)
	assert.False(t, d.RealCostDerived)
	assert.True(t, d.CEDerived)
	assert.Empty(t, d.Skipped)

	row := tbl.Rows[0]
	require.NotNil(t, row.Num(ColCostPerChild))
	assert.InDelta(t, 10.0, *row.Num(ColCostPerChild), 1e-9)
	assert.InDelta(t, 2.0, *row.Num(ColSDPer100), 1e-9)
	assert.InDelta(t, 50.0, *row.Num(ColCostPer1SD), 1e-9)

	assert.Equal(t, []string{ColName, ColTotalCost, ColChildren, ColImpact,
		ColCostPerChild, ColSDPer100, ColCostPer1SD}, tbl.Headers)
}

func TestApply_InflationBasis(t *testing.T) {
	tbl := New([]string{ColTotalCost, ColChildren, ColImpact,
		ColCostYear, ColCPICost, ColTargetYear, ColCPITarget})
	numRow(tbl, map[string]float64{
		ColTotalCost:  74800,
		ColChildren:   12000,
		ColImpact:     0.19,
		ColCostYear:   2018,
		ColCPICost:    100,
		ColTargetYear: 2024,
		ColCPITarget:  140,
	}, nil)

	d := tbl.Apply(Options{ApplyInflation: true})

	assert.Equal(t, ColRealCost, d.CostBasis)
	assert.True(t, d.RealCostDerived)
	assert.True(t, d.CEDerived)

	row := tbl.Rows[0]
	require.NotNil(t, row.Num(ColRealCost))
	assert.InDelta(t, 104720.0, *row.Num(ColRealCost), 1e-6)
	assert.InDelta(t, 104720.0/12000, *row.Num(ColCostPerChild), 1e-9)
}

func TestApply_InflationRequestedButColumnsMissing(t *testing.T) {
	tbl := New([]string{ColTotalCost, ColChildren, ColImpact, ColCPICost})
	numRow(tbl, map[string]float64{
		ColTotalCost: 50000,
		ColChildren:  500,
		ColImpact:    0.1,
		ColCPICost:   100,
	}, nil)

	d := tbl.Apply(Options{ApplyInflation: true})

	// Falls back to the nominal cost basis and says so.
	assert.Equal(t, ColTotalCost, d.CostBasis)
	assert.False(t, d.RealCostDerived)
	assert.True(t, d.CEDerived)
	require.Len(t, d.Skipped, 1)
	assert.Contains(t, d.Skipped[0], "CPI/year columns incomplete")
	assert.False(t, tbl.Has(ColRealCost))
	assert.InDelta(t, 100.0, *tbl.Rows[0].Num(ColCostPerChild), 1e-9)
}

func TestApply_MissingSourceColumnsDerivesNothing(t *testing.T) {
	// No impact column: the whole table is "not derivable", even though
	// cost and count are present for every row.
	tbl := New([]string{ColName, ColTotalCost, ColChildren})
	numRow(tbl, map[string]float64{ColTotalCost: 1000, ColChildren: 10},
		map[string]string{ColName: "A"})
	numRow(tbl, map[string]float64{ColTotalCost: 2000, ColChildren: 20},
		map[string]string{ColName: "B"})

	d := tbl.Apply(Options{})

	assert.False(t, d.CEDerived)
	require.Len(t, d.Skipped, 1)
	assert.Contains(t, d.Skipped[0], "source columns missing")
	assert.False(t, tbl.Has(ColCostPerChild))
	assert.False(t, tbl.Has(ColSDPer100))
	assert.False(t, tbl.Has(ColCostPer1SD))
}

func TestApply_PreexistingDerivedColumnKept(t *testing.T) {
	// Upload already computed its own cost-per-child; it must survive
	// untouched and feed the downstream ratios.
	tbl := New([]string{ColTotalCost, ColChildren, ColImpact, ColCostPerChild})
	numRow(tbl, map[string]float64{
		ColTotalCost:    100000,
		ColChildren:     10000,
		ColImpact:       0.2,
		ColCostPerChild: 12.5, // deliberately not 100000/10000
	}, nil)

	d := tbl.Apply(Options{})

	assert.True(t, d.CEDerived)
	row := tbl.Rows[0]
	assert.Equal(t, 12.5, *row.Num(ColCostPerChild))
	assert.InDelta(t, (0.2*100)/12.5, *row.Num(ColSDPer100), 1e-9)
	assert.InDelta(t, 12.5/0.2, *row.Num(ColCostPer1SD), 1e-9)
}

func TestApply_BeneficiariesAlias(t *testing.T) {
	tbl := New([]string{ColTotalCost, ColBeneficiaries, ColImpact})
	numRow(tbl, map[string]float64{
		ColTotalCost:     1000,
		ColBeneficiaries: 100,
		ColImpact:        0.5,
	}, nil)

	d := tbl.Apply(Options{})

	assert.True(t, d.CEDerived)
	assert.InDelta(t, 10.0, *tbl.Rows[0].Num(ColCostPerChild), 1e-9)
}

func TestApply_NulledSourceCellNullsDerivedCells(t *testing.T) {
	tbl := New([]string{ColTotalCost, ColChildren, ColImpact})
	numRow(tbl, map[string]float64{ColTotalCost: 1000, ColChildren: 10, ColImpact: 0.3}, nil)

	bad := Row{
		ColTotalCost: Cell{Text: "n/a"}, // faulted at ingestion, no numeric value
		ColChildren:  NumCell(10),
		ColImpact:    NumCell(0.3),
	}
	tbl.Rows = append(tbl.Rows, bad)

	d := tbl.Apply(Options{})

	assert.True(t, d.CEDerived)
	assert.NotNil(t, tbl.Rows[0].Num(ColCostPerChild))
	assert.Nil(t, tbl.Rows[1].Num(ColCostPerChild))
	assert.Nil(t, tbl.Rows[1].Num(ColSDPer100))
	assert.Nil(t, tbl.Rows[1].Num(ColCostPer1SD))
}

func TestApply_ElementWiseGuards(t *testing.T) {
	tbl := New([]string{ColTotalCost, ColChildren, ColImpact})
	numRow(tbl, map[string]float64{ColTotalCost: 0, ColChildren: 50, ColImpact: 0.4}, nil)
	numRow(tbl, map[string]float64{ColTotalCost: 5000, ColChildren: 50, ColImpact: 0}, nil)

	tbl.Apply(Options{})

	// Zero cost: zero CE, not infinity.
	zeroCost := tbl.Rows[0]
	assert.Equal(t, 0.0, *zeroCost.Num(ColSDPer100))

	// Zero impact: undefined sentinel, not a divide-by-zero panic.
	zeroImpact := tbl.Rows[1]
	require.NotNil(t, zeroImpact.Num(ColCostPer1SD))
	assert.True(t, cea.Undefined(*zeroImpact.Num(ColCostPer1SD)))
	assert.Equal(t, 0.0, *zeroImpact.Num(ColSDPer100))
}
