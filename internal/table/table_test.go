package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Has(t *testing.T) {
	tbl := New([]string{ColName, ColTotalCost})
	assert.True(t, tbl.Has(ColTotalCost))
	assert.False(t, tbl.Has(ColImpact))
	assert.True(t, tbl.HasAll(ColName, ColTotalCost))
	assert.False(t, tbl.HasAll(ColName, ColImpact))
}

func TestTable_BeneficiaryColumn(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    string
		ok      bool
	}{
		{"children header", []string{ColChildren}, ColChildren, true},
		{"beneficiaries alias", []string{ColBeneficiaries}, ColBeneficiaries, true},
		{"children wins over alias", []string{ColBeneficiaries, ColChildren}, ColChildren, true},
		{"neither", []string{ColTotalCost}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, ok := New(tc.headers).BeneficiaryColumn()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, col)
		})
	}
}

func TestTable_AddColumnDoesNotOverwrite(t *testing.T) {
	tbl := New([]string{ColCostPerChild})
	tbl.Rows = append(tbl.Rows, Row{ColCostPerChild: NumCell(3.5)})

	tbl.AddColumn(ColCostPerChild, func(Row) *float64 {
		v := 99.0
		return &v
	})

	assert.Equal(t, []string{ColCostPerChild}, tbl.Headers)
	assert.Equal(t, 3.5, *tbl.Rows[0].Num(ColCostPerChild))
}

func TestCell_IsNull(t *testing.T) {
	assert.True(t, Cell{}.IsNull())
	assert.False(t, NumCell(0).IsNull())
	assert.False(t, TextCell("x").IsNull())
}

func TestFault_String(t *testing.T) {
	f := Fault{Row: 3, Column: ColImpact, Reason: "not numeric"}
	assert.Equal(t, "row 3, column Impact_per_child_SD: not numeric", f.String())
}
