package main

import (
	"fmt"
	"os"

	"ceacalc/internal/export"
	"ceacalc/internal/ingest"
	"ceacalc/internal/table"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// batchCmd applies the CE formulas over an uploaded table
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Batch CEA over an uploaded spreadsheet (xlsx or CSV)",
	Long: `Reads a table of interventions and derives the CE columns for the
whole table at once:

  Cost_per_child_USD, SD_per_100USD, Cost_per_1SD_USD

Expected columns (sheet "Interventions" for workbooks):
  Intervention_Name, Context/Country, CEA_Type,
  Total_Cost_USD_per_year, Number_of_children (or Number_of_beneficiaries),
  Impact_per_child_SD
  Optional, for --inflation: Cost_Year, CPI_Cost_Year,
  Target_Price_Year, CPI_Target_Year

Column checks are table-wide: when a required source column is missing the
derived columns are skipped for the whole file, and columns the upload
already computed are never overwritten. Rows with malformed cells are
reported as warnings and their derived cells stay empty.

The augmented table is written as CSV to --out (default: stdout).`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("inflation", false, "Derive CPI-adjusted real costs when the CPI columns exist")
	batchCmd.Flags().String("sheet", "", "Workbook sheet to read (default: Interventions)")
	batchCmd.Flags().String("out", "", "Write batch results CSV to this path (default: stdout)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))

	f := cmd.Flags()
	sheet := cfg.Batch.Sheet
	if v, _ := f.GetString("sheet"); v != "" {
		sheet = v
	}
	applyInflation := cfg.Batch.ApplyInflation
	if f.Changed("inflation") {
		applyInflation, _ = f.GetBool("inflation")
	}

	log.Info("reading batch upload", zap.String("file", path), zap.String("sheet", sheet))
	tbl, err := ingest.ReadFile(path, sheet)
	if err != nil {
		// File-read fault: abort this invocation, no partial output.
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	for _, fault := range tbl.Faults {
		log.Warn("row fault", zap.Int("row", fault.Row),
			zap.String("column", fault.Column), zap.String("reason", fault.Reason))
	}

	d := tbl.Apply(table.Options{ApplyInflation: applyInflation})
	for _, skipped := range d.Skipped {
		log.Warn("derivation skipped", zap.String("reason", skipped))
	}
	log.Info("batch derivation done",
		zap.Int("rows", len(tbl.Rows)),
		zap.String("cost_basis", d.CostBasis),
		zap.Bool("real_cost_derived", d.RealCostDerived),
		zap.Bool("ce_derived", d.CEDerived),
		zap.Int("row_faults", len(tbl.Faults)))

	outPath, _ := f.GetString("out")
	if outPath == "" {
		return export.WriteTable(cmd.OutOrStdout(), tbl)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()
	if err := export.WriteTable(out, tbl); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	s := newStyles(cfg.Display.NoColor)
	summary := fmt.Sprintf("Wrote %s (%d rows", outPath, len(tbl.Rows))
	if !d.CEDerived {
		summary += ", CE columns not derivable"
	}
	if n := len(tbl.Faults); n > 0 {
		summary += fmt.Sprintf(", %d row faults", n)
	}
	summary += ")"
	fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render(summary))
	return nil
}
