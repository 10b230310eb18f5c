// Package table holds the typed batch table and the column-wise CE
// derivation pass that augments it. Column presence is decided once for the
// whole table: a table missing a required source column derives nothing for
// that column group, and pre-existing derived columns are never overwritten.
package table

import "fmt"

// Column names as they appear in the Interventions sheet.
const (
	ColName          = "Intervention_Name"
	ColContext       = "Context/Country"
	ColCEAType       = "CEA_Type"
	ColTotalCost     = "Total_Cost_USD_per_year"
	ColChildren      = "Number_of_children"
	ColBeneficiaries = "Number_of_beneficiaries" // accepted alias for ColChildren
	ColImpact        = "Impact_per_child_SD"
	ColCostYear      = "Cost_Year"
	ColCPICost       = "CPI_Cost_Year"
	ColTargetYear    = "Target_Price_Year"
	ColCPITarget     = "CPI_Target_Year"
)

// Derived column names.
const (
	ColRealCost     = "Total_Cost_Real_USD_per_year"
	ColCostPerChild = "Cost_per_child_USD"
	ColSDPer100     = "SD_per_100USD"
	ColCostPer1SD   = "Cost_per_1SD_USD"
)

// Cell is one typed table cell. Numeric cells carry a parsed value in Num;
// label cells and nulled (faulted or empty) cells have Num == nil and keep
// whatever raw text the upload had.
type Cell struct {
	Text string
	Num  *float64
}

// NumCell builds a numeric cell.
func NumCell(v float64) Cell {
	return Cell{Num: &v}
}

// TextCell builds a text-only cell.
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// IsNull reports whether the cell has neither a numeric value nor text.
func (c Cell) IsNull() bool {
	return c.Num == nil && c.Text == ""
}

// Row maps header name to cell. Unknown columns pass through untouched.
type Row map[string]Cell

// Fault is a row-level ingestion or computation fault. Faulted cells are
// nulled; the table call as a whole still succeeds.
type Fault struct {
	Row    int // 1-based data row number, excluding the header
	Column string
	Reason string
}

func (f Fault) String() string {
	return fmt.Sprintf("row %d, column %s: %s", f.Row, f.Column, f.Reason)
}

// Table is an ordered set of columns over typed rows.
type Table struct {
	Headers []string
	Rows    []Row
	Faults  []Fault
}

// New builds an empty table with the given header order.
func New(headers []string) *Table {
	return &Table{Headers: append([]string(nil), headers...)}
}

// Has reports table-wide presence of a column.
func (t *Table) Has(col string) bool {
	for _, h := range t.Headers {
		if h == col {
			return true
		}
	}
	return false
}

// HasAll reports whether every named column is present.
func (t *Table) HasAll(cols ...string) bool {
	for _, c := range cols {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

// BeneficiaryColumn resolves which of the two accepted beneficiary-count
// headers the upload used.
func (t *Table) BeneficiaryColumn() (string, bool) {
	if t.Has(ColChildren) {
		return ColChildren, true
	}
	if t.Has(ColBeneficiaries) {
		return ColBeneficiaries, true
	}
	return "", false
}

// AddColumn appends a new column and fills it row by row from derive.
// A nil result nulls the cell for that row. No-op if the column exists.
func (t *Table) AddColumn(col string, derive func(Row) *float64) {
	if t.Has(col) {
		return
	}
	t.Headers = append(t.Headers, col)
	for _, row := range t.Rows {
		if v := derive(row); v != nil {
			row[col] = NumCell(*v)
		} else {
			row[col] = Cell{}
		}
	}
}

// Num returns the numeric value of a cell, or nil when the column is
// absent or the cell is not numeric.
func (r Row) Num(col string) *float64 {
	if c, ok := r[col]; ok {
		return c.Num
	}
	return nil
}
