// Package config holds the ceacalc YAML configuration: default scalar
// inputs for the point calculator, sensitivity deltas, batch settings,
// and display options. Flags override config, config overrides defaults,
// and a couple of environment variables override everything.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full ceacalc configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Inputs      InputDefaults     `yaml:"inputs"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
	Batch       BatchConfig       `yaml:"batch"`
	Display     DisplayConfig     `yaml:"display"`
}

// InputDefaults seeds the point-calculator flags. The numbers are the
// J-PAL-style training example the tool ships with.
type InputDefaults struct {
	Label        string `yaml:"label"`
	AnalysisType string `yaml:"analysis_type"` // Prospective_Pilot, Retrospective_Pilot, Prospective_Scale_Up

	TotalCost     float64 `yaml:"total_cost"`
	Beneficiaries int     `yaml:"beneficiaries"`
	Impact        float64 `yaml:"impact"`
	Threshold     float64 `yaml:"threshold"` // SD per $100; 0 disables the verdict

	UseInflation  bool    `yaml:"use_inflation"`
	CostYear      int     `yaml:"cost_year"`
	TargetYear    int     `yaml:"target_year"`
	CPICostYear   float64 `yaml:"cpi_cost_year"`
	CPITargetYear float64 `yaml:"cpi_target_year"`
}

// SensitivityConfig holds the default +/- percentages for the sweep.
type SensitivityConfig struct {
	CostDeltaPct   float64 `yaml:"cost_delta_pct"`
	ImpactDeltaPct float64 `yaml:"impact_delta_pct"`
}

// BatchConfig configures the upload reader.
type BatchConfig struct {
	Sheet          string `yaml:"sheet"`
	ApplyInflation bool   `yaml:"apply_inflation"`
}

// DisplayConfig configures terminal output.
type DisplayConfig struct {
	NoColor  bool `yaml:"no_color"`
	WordWrap int  `yaml:"word_wrap"` // wrap width for rendered notes
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ceacalc",
		Version: "1.0.0",

		Inputs: InputDefaults{
			Label:         "West Ghana",
			AnalysisType:  "Prospective_Pilot",
			TotalCost:     74800,
			Beneficiaries: 12000,
			Impact:        0.19,
			Threshold:     1.40,
			UseInflation:  false,
			CostYear:      2018,
			TargetYear:    2024,
			CPICostYear:   100,
			CPITargetYear: 140,
		},

		Sensitivity: SensitivityConfig{
			CostDeltaPct:   20,
			ImpactDeltaPct: 25,
		},

		Batch: BatchConfig{
			Sheet: "Interventions",
		},

		Display: DisplayConfig{
			WordWrap: 80,
		},
	}
}

// Load reads the config from path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CEACALC_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.Inputs.Threshold = f
		}
	}
	if v := os.Getenv("CEACALC_SHEET"); v != "" {
		c.Batch.Sheet = v
	}
	if v := os.Getenv("CEACALC_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Display.NoColor = b
		}
	}
}

// Validate checks the documented input ranges.
func (c *Config) Validate() error {
	in := c.Inputs
	if in.TotalCost < 0 {
		return fmt.Errorf("inputs.total_cost must be >= 0, got %v", in.TotalCost)
	}
	if in.Beneficiaries < 1 {
		return fmt.Errorf("inputs.beneficiaries must be >= 1, got %d", in.Beneficiaries)
	}
	if in.Impact < 0 {
		return fmt.Errorf("inputs.impact must be >= 0, got %v", in.Impact)
	}
	if in.Threshold < 0 {
		return fmt.Errorf("inputs.threshold must be >= 0, got %v", in.Threshold)
	}
	if in.CPICostYear <= 0 || in.CPITargetYear <= 0 {
		return fmt.Errorf("CPI index values must be > 0, got %v and %v",
			in.CPICostYear, in.CPITargetYear)
	}
	if c.Sensitivity.CostDeltaPct < 0 || c.Sensitivity.ImpactDeltaPct < 0 {
		return fmt.Errorf("sensitivity deltas must be >= 0")
	}
	if c.Batch.Sheet == "" {
		return fmt.Errorf("batch.sheet must not be empty")
	}
	if c.Display.WordWrap < 20 {
		return fmt.Errorf("display.word_wrap must be at least 20, got %d", c.Display.WordWrap)
	}
	return nil
}
