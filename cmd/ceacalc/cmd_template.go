package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ceacalc/internal/export"

	"github.com/spf13/cobra"
)

// templateCmd writes the starter batch template
var templateCmd = &cobra.Command{
	Use:   "template [dir]",
	Short: "Write the batch upload template (xlsx and CSV)",
	Long: `Writes CEA_template.xlsx (sheet "Interventions") and CEA_template.csv
with the expected columns and one worked example row. Fill the template in
and feed it back with "ceacalc batch".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func runTemplate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	csvPath := filepath.Join(dir, "CEA_template.csv")
	xlsxPath := filepath.Join(dir, "CEA_template.xlsx")

	csvFile, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", csvPath, err)
	}
	defer csvFile.Close()
	if err := export.WriteTemplateCSV(csvFile); err != nil {
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	xlsxFile, err := os.Create(xlsxPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", xlsxPath, err)
	}
	defer xlsxFile.Close()
	if err := export.WriteTemplateXLSX(xlsxFile, cfg.Batch.Sheet); err != nil {
		return err
	}
	if err := xlsxFile.Close(); err != nil {
		return err
	}

	s := newStyles(cfg.Display.NoColor)
	fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render("Wrote "+csvPath))
	fmt.Fprintln(cmd.OutOrStdout(), s.Muted.Render("Wrote "+xlsxPath))
	return nil
}
