// Package ingest reads uploaded batch tables (xlsx workbooks or CSV) into
// typed tables. All coercion happens here: numeric columns are parsed once
// at the boundary, and a cell that fails to parse becomes a row-level fault
// with a nulled cell instead of a NaN that leaks into the derivation pass.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ceacalc/internal/table"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the workbook sheet the batch template uses.
const DefaultSheet = "Interventions"

// Format identifies the upload encoding.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

// numericColumns are the columns coerced to float64 at ingestion.
// Anything else passes through as text (or best-effort numeric for
// unrecognized columns).
var numericColumns = map[string]bool{
	table.ColTotalCost:     true,
	table.ColChildren:      true,
	table.ColBeneficiaries: true,
	table.ColImpact:        true,
	table.ColCostYear:      true,
	table.ColCPICost:       true,
	table.ColTargetYear:    true,
	table.ColCPITarget:     true,
	table.ColRealCost:      true,
	table.ColCostPerChild:  true,
	table.ColSDPer100:      true,
	table.ColCostPer1SD:    true,
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// ReadFile reads a batch table from path, dispatching on the extension.
// The sheet argument only applies to workbooks.
func ReadFile(path, sheet string) (*table.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatXLSX:
		return ReadWorkbook(f, sheet)
	default:
		return ReadCSV(f)
	}
}

// ReadWorkbook reads the named sheet of an xlsx workbook. An unreadable
// file or a missing sheet is a file-read fault: an error with no partial
// table.
func ReadWorkbook(r io.Reader, sheet string) (*table.Table, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read workbook: %w", err)
	}
	defer wb.Close()

	records, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	return fromRecords(records)
}

// ReadCSV reads a batch table from CSV with a header row.
func ReadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows become short rows, not errors
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV: %w", err)
	}
	return fromRecords(records)
}

// fromRecords builds the typed table: first record is the header, the rest
// are data rows run through cell coercion.
func fromRecords(records [][]string) (*table.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("table is empty: no header row")
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	t := table.New(headers)
	for i, record := range records[1:] {
		rowNum := i + 1
		row := table.Row{}
		for j, h := range headers {
			var raw string
			if j < len(record) {
				raw = record[j]
			}
			cell, fault := coerce(rowNum, h, raw)
			if fault != nil {
				t.Faults = append(t.Faults, *fault)
			}
			row[h] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// coerce validates one raw cell against its column's expected type.
func coerce(rowNum int, col, raw string) (table.Cell, *table.Fault) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.Cell{}, nil
	}

	if !numericColumns[col] {
		// Unrecognized columns keep a numeric value when they happen to
		// parse, so they round-trip through export unchanged.
		if v, err := parseNumber(trimmed); err == nil {
			return table.NumCell(v), nil
		}
		return table.TextCell(trimmed), nil
	}

	v, err := parseNumber(trimmed)
	if err != nil {
		return table.TextCell(trimmed), &table.Fault{
			Row: rowNum, Column: col,
			Reason: fmt.Sprintf("value %q is not numeric", trimmed),
		}
	}

	if (col == table.ColChildren || col == table.ColBeneficiaries) && v < 1 {
		return table.TextCell(trimmed), &table.Fault{
			Row: rowNum, Column: col,
			Reason: fmt.Sprintf("beneficiary count %v must be at least 1", v),
		}
	}
	return table.NumCell(v), nil
}

// parseNumber accepts plain floats plus the currency decorations spreadsheet
// exports tend to carry ($ signs, thousands separators).
func parseNumber(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
