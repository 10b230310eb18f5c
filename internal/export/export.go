// Package export writes the three downloadable result artifacts (point
// results, sensitivity scenarios, batch results) as CSV, plus the starter
// batch template in CSV and xlsx form. Display rounding follows the
// original artifact layouts: point metrics at 4 decimal places, scenario
// costs and CE at 2, scenario impacts at 3, batch cells at full precision.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"ceacalc/internal/cea"
	"ceacalc/internal/table"

	"github.com/xuri/excelize/v2"
)

// Point result header, matching the original point-results download.
var pointHeader = []string{
	"Country/Context",
	"CEA_Type",
	"Cost_year",
	"Target_year",
	"Total_cost_nominal",
	"Total_cost_real",
	"Cost_per_child_nominal",
	"Cost_per_child_real",
	"Impact_per_child_SD",
	"SD_per_100USD_nominal",
	"SD_per_100USD_real",
	"Cost_per_1SD_nominal",
	"Cost_per_1SD_real",
	"Threshold_SD_per_100USD",
	"Meets_threshold",
}

var scenarioHeader = []string{
	"Scenario",
	"Cost_per_child_REAL_USD",
	"Impact_per_child_SD",
	"SD_per_100USD_REAL",
}

// WritePoint writes the one-row point-results CSV.
func WritePoint(w io.Writer, in cea.Input, res cea.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pointHeader); err != nil {
		return fmt.Errorf("failed to write point results: %w", err)
	}

	record := []string{
		in.Label,
		in.AnalysisType,
		strconv.Itoa(in.CostYear),
		strconv.Itoa(in.TargetYear),
		formatFull(in.TotalCostNominal),
		formatFull(res.TotalCostReal),
		formatRounded(res.CostPerBeneficiaryNominal, 4),
		formatRounded(res.CostPerBeneficiaryReal, 4),
		formatFull(in.Impact),
		formatRounded(res.SDPer100Nominal, 4),
		formatRounded(res.SDPer100Real, 4),
		formatRounded(res.CostPer1SDNominal, 4),
		formatRounded(res.CostPer1SDReal, 4),
		formatFull(in.Threshold),
		res.MeetsThreshold.String(),
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("failed to write point results: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteScenarios writes the sensitivity-sweep CSV in sweep order.
func WriteScenarios(w io.Writer, scenarios []cea.Scenario) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scenarioHeader); err != nil {
		return fmt.Errorf("failed to write scenarios: %w", err)
	}

	for _, s := range scenarios {
		record := []string{
			s.Label,
			formatRounded(s.CostPerBeneficiary, 2),
			formatRounded(s.Impact, 3),
			formatRounded(s.SDPer100, 2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write scenarios: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTable writes the augmented batch table: original columns in upload
// order, derived columns appended, numeric cells at full precision.
func WriteTable(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write batch results: %w", err)
	}

	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, h := range t.Headers {
			record[i] = cellString(row[h])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write batch results: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Template layout: the expected upload columns plus one worked example row.
var (
	templateHeader = []string{
		table.ColName,
		table.ColContext,
		table.ColCEAType,
		table.ColTotalCost,
		table.ColChildren,
		table.ColImpact,
		table.ColCostYear,
		table.ColCPICost,
		table.ColTargetYear,
		table.ColCPITarget,
	}
	templateExample = []interface{}{
		"Targeted tutoring", "West Ghana", "Prospective_Pilot",
		74800, 12000, 0.19, 2018, 100, 2024, 140,
	}
)

// WriteTemplateCSV writes the starter batch template as CSV.
func WriteTemplateCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(templateHeader); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	record := make([]string, len(templateExample))
	for i, v := range templateExample {
		record[i] = fmt.Sprintf("%v", v)
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteTemplateXLSX writes the starter template as a workbook with the
// Interventions sheet the batch reader expects.
func WriteTemplateXLSX(w io.Writer, sheet string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to build template workbook: %w", err)
	}
	header := make([]interface{}, len(templateHeader))
	for i, h := range templateHeader {
		header[i] = h
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to build template workbook: %w", err)
	}
	example := append([]interface{}(nil), templateExample...)
	if err := wb.SetSheetRow(sheet, "A2", &example); err != nil {
		return fmt.Errorf("failed to build template workbook: %w", err)
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("failed to write template workbook: %w", err)
	}
	return nil
}

// cellString serializes one batch cell. Nulls stay empty; the undefined
// sentinel serializes as "inf", matching the original artifact.
func cellString(c table.Cell) string {
	if c.Num != nil {
		return formatFull(*c.Num)
	}
	return c.Text
}

// formatFull keeps full float precision for storage.
func formatFull(v float64) string {
	if cea.Undefined(v) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatRounded rounds to the given decimal places for display artifacts.
func formatRounded(v float64, places int) string {
	if cea.Undefined(v) {
		return "inf"
	}
	scale := math.Pow10(places)
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', -1, 64)
}
