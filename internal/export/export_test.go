package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"ceacalc/internal/cea"
	"ceacalc/internal/ingest"
	"ceacalc/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWritePoint(t *testing.T) {
	in := cea.Input{
		Label:            "West Ghana",
		AnalysisType:     "Prospective_Pilot",
		TotalCostNominal: 74800,
		Beneficiaries:    12000,
		Impact:           0.19,
		CostYear:         2018,
		TargetYear:       2024,
		CPICostYear:      100,
		CPITargetYear:    140,
		Threshold:        1.40,
	}
	res := cea.Compute(in)

	var buf bytes.Buffer
	require.NoError(t, WritePoint(&buf, in, res))

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, pointHeader, records[0])

	row := records[1]
	assert.Equal(t, "West Ghana", row[0])
	assert.Equal(t, "Prospective_Pilot", row[1])
	assert.Equal(t, "2018", row[2])
	assert.Equal(t, "2024", row[3])
	assert.Equal(t, "74800", row[4])
	assert.Equal(t, "104720", row[5])
	assert.Equal(t, "6.2333", row[6], "cost per child nominal, 4 dp")
	assert.Equal(t, "8.7267", row[7], "cost per child real, 4 dp")
	assert.Equal(t, "0.19", row[8])
	assert.Equal(t, "3.0481", row[9])
	assert.Equal(t, "2.1772", row[10])
	assert.Equal(t, "32.807", row[11])
	assert.Equal(t, "45.9298", row[12])
	assert.Equal(t, "1.4", row[13])
	assert.Equal(t, "meets", row[14])
}

func TestWritePoint_UndefinedRatio(t *testing.T) {
	in := cea.Input{TotalCostNominal: 1000, Beneficiaries: 10, Impact: 0}
	in.DisableInflation()

	var buf bytes.Buffer
	require.NoError(t, WritePoint(&buf, in, cea.Compute(in)))

	records := parseCSV(t, &buf)
	row := records[1]
	assert.Equal(t, "inf", row[11], "undefined cost per 1 SD serializes as inf")
	assert.Equal(t, "inf", row[12])
	assert.Equal(t, "unset", row[14])
}

func TestWriteScenarios(t *testing.T) {
	scenarios := cea.Sweep(6.2333, 0.19, 20, 25)

	var buf bytes.Buffer
	require.NoError(t, WriteScenarios(&buf, scenarios))

	records := parseCSV(t, &buf)
	require.Len(t, records, 5)
	assert.Equal(t, scenarioHeader, records[0])

	// Fixed sweep order, original rounding: cost 2 dp, impact 3 dp, CE 2 dp.
	assert.Equal(t, []string{cea.LabelBest, "4.99", "0.238", "4.76"}, records[1])
	assert.Equal(t, []string{cea.LabelWorst, "7.48", "0.143", "1.91"}, records[2])
	assert.Equal(t, []string{cea.LabelLowLow, "4.99", "0.143", "2.86"}, records[3])
	assert.Equal(t, []string{cea.LabelHighHigh, "7.48", "0.238", "3.18"}, records[4])
}

func TestWriteTable(t *testing.T) {
	tbl := table.New([]string{table.ColName, table.ColTotalCost,
		table.ColChildren, table.ColImpact})
	tbl.Rows = append(tbl.Rows, table.Row{
		table.ColName:      table.TextCell("Tutoring"),
		table.ColTotalCost: table.NumCell(100000),
		table.ColChildren:  table.NumCell(10000),
		table.ColImpact:    table.NumCell(0.2),
	})
	tbl.Rows = append(tbl.Rows, table.Row{
		table.ColName:      table.TextCell("NoImpact"),
		table.ColTotalCost: table.NumCell(5000),
		table.ColChildren:  table.NumCell(50),
		table.ColImpact:    table.NumCell(0),
	})
	tbl.Apply(table.Options{})

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	records := parseCSV(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{table.ColName, table.ColTotalCost, table.ColChildren,
		table.ColImpact, table.ColCostPerChild, table.ColSDPer100,
		table.ColCostPer1SD}, records[0])

	assert.Equal(t, []string{"Tutoring", "100000", "10000", "0.2", "10", "2", "50"}, records[1])
	assert.Equal(t, "inf", records[2][6], "zero impact row carries the inf sentinel")
}

func TestWriteTable_NullCellsStayEmpty(t *testing.T) {
	tbl := table.New([]string{table.ColName, table.ColTotalCost})
	tbl.Rows = append(tbl.Rows, table.Row{
		table.ColName:      table.Cell{},
		table.ColTotalCost: table.TextCell("n/a"),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tbl))

	records := parseCSV(t, &buf)
	assert.Equal(t, []string{"", "n/a"}, records[1])
}

func TestWriteTemplateCSV_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateCSV(&buf))

	tbl, err := ingest.ReadCSV(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Empty(t, tbl.Faults)

	d := tbl.Apply(table.Options{ApplyInflation: true})
	assert.Equal(t, table.ColRealCost, d.CostBasis)
	assert.InDelta(t, 104720.0, *tbl.Rows[0].Num(table.ColRealCost), 1e-6)
}

func TestWriteTemplateXLSX_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateXLSX(&buf, ingest.DefaultSheet))

	tbl, err := ingest.ReadWorkbook(&buf, ingest.DefaultSheet)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	require.Empty(t, tbl.Faults)

	d := tbl.Apply(table.Options{})
	require.True(t, d.CEDerived)
	assert.InDelta(t, 74800.0/12000, *tbl.Rows[0].Num(table.ColCostPerChild), 1e-6)
}
