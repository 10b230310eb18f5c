package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ceacalc/internal/cea"
	"ceacalc/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with a throwaway config and captured
// output. Every test passes the full flag set it asserts on, since cobra
// flag state persists across Execute calls.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)

	full := append([]string{
		"--no-color",
		"--config", filepath.Join(t.TempDir(), "ceacalc.yaml"),
	}, args...)
	rootCmd.SetArgs(full)

	err := rootCmd.Execute()
	return buf.String(), err
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestPointCommand(t *testing.T) {
	out, err := runCLI(t, "point",
		"--total-cost", "74800",
		"--beneficiaries", "12000",
		"--impact", "0.19",
		"--threshold", "1.40",
		"--inflation=false")
	require.NoError(t, err)

	assert.Contains(t, out, "6.23", "cost per child")
	assert.Contains(t, out, "3.05", "SD per $100")
	assert.Contains(t, out, "32.81", "cost per 1 SD")
	assert.Contains(t, out, "meets the threshold")
}

func TestPointCommand_FailsThreshold(t *testing.T) {
	out, err := runCLI(t, "point",
		"--total-cost", "74800",
		"--beneficiaries", "12000",
		"--impact", "0.19",
		"--threshold", "5.0",
		"--inflation=false")
	require.NoError(t, err)
	assert.Contains(t, out, "does NOT meet the threshold")
}

func TestPointCommand_NoThreshold(t *testing.T) {
	out, err := runCLI(t, "point",
		"--total-cost", "1000",
		"--beneficiaries", "100",
		"--impact", "0.1",
		"--threshold", "0",
		"--inflation=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No threshold specified")
}

func TestPointCommand_WritesCSV(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "point.csv")

	_, err := runCLI(t, "point",
		"--total-cost", "74800",
		"--beneficiaries", "12000",
		"--impact", "0.19",
		"--threshold", "1.40",
		"--inflation",
		"--cpi-cost", "100",
		"--cpi-target", "140",
		"--out", outPath)
	require.NoError(t, err)

	records := readCSVFile(t, outPath)
	require.Len(t, records, 2)
	row := records[1]
	assert.Equal(t, "74800", row[4])
	assert.Equal(t, "104720", row[5], "real cost via CPI ratio")
	assert.Equal(t, "meets", row[len(row)-1])
}

func TestPointCommand_RejectsInvalidInput(t *testing.T) {
	_, err := runCLI(t, "point", "--beneficiaries", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beneficiaries")
}

func TestSweepCommand_OrderAndValues(t *testing.T) {
	out, err := runCLI(t, "sweep",
		"--total-cost", "74800",
		"--beneficiaries", "12000",
		"--impact", "0.19",
		"--inflation=false",
		"--cost-delta", "20",
		"--impact-delta", "25")
	require.NoError(t, err)

	best := strings.Index(out, cea.LabelBest)
	worst := strings.Index(out, cea.LabelWorst)
	lowLow := strings.Index(out, cea.LabelLowLow)
	highHigh := strings.Index(out, cea.LabelHighHigh)
	require.NotEqual(t, -1, best)
	assert.True(t, best < worst && worst < lowLow && lowLow < highHigh,
		"scenario order must be Best, Worst, Low-Low, High-High")

	assert.Contains(t, out, "4.76", "best-case SD per $100")
	assert.Contains(t, out, "1.91", "worst-case SD per $100")
}

func TestSweepCommand_ExplicitBounds(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sweep.csv")

	_, err := runCLI(t, "sweep",
		"--total-cost", "74800",
		"--beneficiaries", "12000",
		"--impact", "0.19",
		"--inflation=false",
		"--cost-low", "5",
		"--cost-high", "7.5",
		"--impact-low", "0.14",
		"--impact-high", "0.24",
		"--out", outPath)
	require.NoError(t, err)

	records := readCSVFile(t, outPath)
	require.Len(t, records, 5)
	assert.Equal(t, []string{cea.LabelBest, "5", "0.24", "4.8"}, records[1])
}

func TestSweepCommand_RejectsInvertedBounds(t *testing.T) {
	_, err := runCLI(t, "sweep", "--cost-low", "10", "--cost-high", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost-low")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	upload := filepath.Join(dir, "interventions.csv")
	require.NoError(t, os.WriteFile(upload, []byte(
		"Intervention_Name,Total_Cost_USD_per_year,Number_of_children,Impact_per_child_SD\n"+
			"Tutoring,100000,10000,0.2\n"+
			"Broken,oops,10000,0.2\n"), 0644))

	outPath := filepath.Join(dir, "results.csv")
	out, err := runCLI(t, "batch", upload, "--out", outPath)
	require.NoError(t, err, "row faults must not fail the invocation")
	assert.Contains(t, out, "1 row faults")

	records := readCSVFile(t, outPath)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		table.ColName, table.ColTotalCost, table.ColChildren, table.ColImpact,
		table.ColCostPerChild, table.ColSDPer100, table.ColCostPer1SD,
	}, records[0])
	assert.Equal(t, []string{"Tutoring", "100000", "10000", "0.2", "10", "2", "50"}, records[1])
	assert.Equal(t, []string{"Broken", "oops", "10000", "0.2", "", "", ""}, records[2])
}

func TestBatchCommand_UnreadableFile(t *testing.T) {
	_, err := runCLI(t, "batch", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read")
}

func TestTemplateThenBatchRoundTrip(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "template", dir)
	require.NoError(t, err)

	outPath := filepath.Join(dir, "results.csv")
	_, err = runCLI(t, "batch", filepath.Join(dir, "CEA_template.xlsx"),
		"--inflation", "--out", outPath)
	require.NoError(t, err)

	records := readCSVFile(t, outPath)
	require.Len(t, records, 2)

	header := records[0]
	assert.Contains(t, header, table.ColRealCost)
	assert.Contains(t, header, table.ColCostPerChild)

	// CPI 100 -> 140 on the template's 74800 example.
	idx := -1
	for i, h := range header {
		if h == table.ColRealCost {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "104720", records[1][idx])
}

func TestNotesCommand(t *testing.T) {
	out, err := runCLI(t, "notes")
	require.NoError(t, err)
	assert.Contains(t, out, "CPI_target_year")
	assert.Contains(t, out, "assumptions")
}
