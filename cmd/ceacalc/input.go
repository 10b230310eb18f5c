package main

import (
	"fmt"

	"ceacalc/internal/cea"

	"github.com/spf13/cobra"
)

// addInputFlags registers the shared scalar-input flags. Flag defaults come
// from the built-in config; values from a loaded config file take over at
// run time unless the user set the flag explicitly.
func addInputFlags(c *cobra.Command) {
	f := c.Flags()
	f.Float64("total-cost", 74800, "Total program cost (nominal, program currency)")
	f.Int("beneficiaries", 12000, "Number of beneficiaries reached (>= 1)")
	f.Float64("impact", 0.19, "Impact per beneficiary (SD gain)")
	f.Float64("threshold", 1.40, "Minimum SD per $100 (0 disables the verdict)")
	f.Bool("inflation", false, "Adjust costs to target-year prices via CPI ratio")
	f.Int("cost-year", 2018, "Year the cost was incurred")
	f.Int("target-year", 2024, "Target price year for real costs")
	f.Float64("cpi-cost", 100, "CPI index in the cost year")
	f.Float64("cpi-target", 140, "CPI index in the target year")
	f.String("label", "", "Country / context label")
	f.String("analysis-type", "", "Analysis type label (e.g. Prospective_Pilot)")
}

// inputFromFlags assembles and validates the calculator input, layering
// explicit flags over the loaded config defaults.
func inputFromFlags(c *cobra.Command) (cea.Input, error) {
	f := c.Flags()
	d := cfg.Inputs

	getF := func(name string, fallback float64) float64 {
		if f.Changed(name) {
			v, _ := f.GetFloat64(name)
			return v
		}
		return fallback
	}
	getI := func(name string, fallback int) int {
		if f.Changed(name) {
			v, _ := f.GetInt(name)
			return v
		}
		return fallback
	}
	getS := func(name string, fallback string) string {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			return v
		}
		return fallback
	}

	in := cea.Input{
		Label:            getS("label", d.Label),
		AnalysisType:     getS("analysis-type", d.AnalysisType),
		TotalCostNominal: getF("total-cost", d.TotalCost),
		Beneficiaries:    getI("beneficiaries", d.Beneficiaries),
		Impact:           getF("impact", d.Impact),
		Threshold:        getF("threshold", d.Threshold),
		CostYear:         getI("cost-year", d.CostYear),
		TargetYear:       getI("target-year", d.TargetYear),
		CPICostYear:      getF("cpi-cost", d.CPICostYear),
		CPITargetYear:    getF("cpi-target", d.CPITargetYear),
	}

	useInflation := d.UseInflation
	if f.Changed("inflation") {
		useInflation, _ = f.GetBool("inflation")
	}
	if !useInflation {
		in.DisableInflation()
	}

	if err := validateInput(in); err != nil {
		return cea.Input{}, err
	}
	return in, nil
}

// validateInput enforces the documented ranges before the pure engine
// ever sees the numbers.
func validateInput(in cea.Input) error {
	if in.TotalCostNominal < 0 {
		return fmt.Errorf("--total-cost must be >= 0, got %v", in.TotalCostNominal)
	}
	if in.Beneficiaries < 1 {
		return fmt.Errorf("--beneficiaries must be >= 1, got %d", in.Beneficiaries)
	}
	if in.Impact < 0 {
		return fmt.Errorf("--impact must be >= 0, got %v", in.Impact)
	}
	if in.Threshold < 0 {
		return fmt.Errorf("--threshold must be >= 0, got %v", in.Threshold)
	}
	if in.CPICostYear <= 0 || in.CPITargetYear <= 0 {
		return fmt.Errorf("CPI index values must be > 0, got %v and %v",
			in.CPICostYear, in.CPITargetYear)
	}
	return nil
}
