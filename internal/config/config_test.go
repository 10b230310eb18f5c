package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "ceacalc" {
		t.Errorf("expected Name=ceacalc, got %s", cfg.Name)
	}
	if cfg.Inputs.TotalCost != 74800 {
		t.Errorf("expected TotalCost=74800, got %v", cfg.Inputs.TotalCost)
	}
	if cfg.Inputs.Beneficiaries != 12000 {
		t.Errorf("expected Beneficiaries=12000, got %d", cfg.Inputs.Beneficiaries)
	}
	if cfg.Inputs.Threshold != 1.40 {
		t.Errorf("expected Threshold=1.40, got %v", cfg.Inputs.Threshold)
	}
	if cfg.Sensitivity.CostDeltaPct != 20 || cfg.Sensitivity.ImpactDeltaPct != 25 {
		t.Errorf("unexpected sensitivity defaults: %+v", cfg.Sensitivity)
	}
	if cfg.Batch.Sheet != "Interventions" {
		t.Errorf("expected Sheet=Interventions, got %s", cfg.Batch.Sheet)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("CEACALC_THRESHOLD", "")
	t.Setenv("CEACALC_SHEET", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Inputs.Threshold = 2.5
	cfg.Inputs.UseInflation = true
	cfg.Batch.Sheet = "Programs"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Inputs.Threshold != 2.5 {
		t.Errorf("expected Threshold=2.5, got %v", loaded.Inputs.Threshold)
	}
	if !loaded.Inputs.UseInflation {
		t.Error("expected UseInflation=true")
	}
	if loaded.Batch.Sheet != "Programs" {
		t.Errorf("expected Sheet=Programs, got %s", loaded.Batch.Sheet)
	}
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CEACALC_THRESHOLD", "")

	loaded, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file must fall back to defaults, got %v", err)
	}
	if loaded.Inputs.TotalCost != 74800 {
		t.Errorf("expected default TotalCost, got %v", loaded.Inputs.TotalCost)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CEACALC_THRESHOLD", "3.25")
	t.Setenv("CEACALC_SHEET", "Pilots")
	t.Setenv("CEACALC_NO_COLOR", "true")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Inputs.Threshold != 3.25 {
		t.Errorf("expected Threshold=3.25, got %v", cfg.Inputs.Threshold)
	}
	if cfg.Batch.Sheet != "Pilots" {
		t.Errorf("expected Sheet=Pilots, got %s", cfg.Batch.Sheet)
	}
	if !cfg.Display.NoColor {
		t.Error("expected NoColor=true")
	}
}

func TestConfig_EnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("CEACALC_THRESHOLD", "not-a-number")
	t.Setenv("CEACALC_NO_COLOR", "maybe")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Inputs.Threshold != 1.40 {
		t.Errorf("garbage threshold override must be ignored, got %v", cfg.Inputs.Threshold)
	}
	if cfg.Display.NoColor {
		t.Error("garbage NO_COLOR override must be ignored")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative total cost", func(c *Config) { c.Inputs.TotalCost = -1 }},
		{"zero beneficiaries", func(c *Config) { c.Inputs.Beneficiaries = 0 }},
		{"negative impact", func(c *Config) { c.Inputs.Impact = -0.1 }},
		{"negative threshold", func(c *Config) { c.Inputs.Threshold = -1 }},
		{"zero CPI", func(c *Config) { c.Inputs.CPICostYear = 0 }},
		{"negative delta", func(c *Config) { c.Sensitivity.CostDeltaPct = -5 }},
		{"empty sheet", func(c *Config) { c.Batch.Sheet = "" }},
		{"tiny word wrap", func(c *Config) { c.Display.WordWrap = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
