package cepac

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempRunConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "writing temp run config", err)
	}
	return path
}

func TestLoadRunConfig_DecodesFields(t *testing.T) {
	path := writeTempRunConfig(t, `
input_version = "1.0"
num_patients = 500
seed_mode = "fixed"
fixed_seed = 42
discount_rate_annual = 0.03
tb_module_enabled = true
`)
	cfg, err := LoadRunConfig(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling LoadRunConfig", err)
	}
	if cfg.NumPatients != 500 {
		t.Errorf(UnequalIntParameterError, "NumPatients", 500, cfg.NumPatients)
	}
	if !cfg.TBModuleEnabled {
		t.Errorf(UnequalStringParameterError, "TBModuleEnabled", "true", "false")
	}
}

func TestRunConfig_ValidateRejectsBadSeedMode(t *testing.T) {
	cfg := &RunConfig{NumPatients: 10, SeedMode: "bogus"}
	if err := cfg.Validate(); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "validating a run config with a bad seed_mode", "expected an error, got nil")
	}
}

func TestRunConfig_ValidateRejectsNonPositivePatients(t *testing.T) {
	cfg := &RunConfig{NumPatients: 0}
	if err := cfg.Validate(); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "validating a run config with zero patients", "expected an error, got nil")
	}
}

func TestRunConfig_BuildAppliesValidatedFlags(t *testing.T) {
	cfg := &RunConfig{
		NumPatients:         1000,
		SeedMode:            "fixed",
		FixedSeed:           7,
		TBModuleEnabled:     true,
		DiscountRateAnnual:  0.03,
	}
	ctx, err := cfg.Build()
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling Build", err)
	}
	if ctx.Cohort.SeedMode != FixedSeed {
		t.Errorf(UnequalIntParameterError, "Cohort.SeedMode", int(FixedSeed), int(ctx.Cohort.SeedMode))
	}
	if ctx.Cohort.FixedSeed != 7 {
		t.Errorf(UnequalIntParameterError, "Cohort.FixedSeed", 7, int(ctx.Cohort.FixedSeed))
	}
	if !ctx.TBModuleEnabled {
		t.Errorf(UnequalStringParameterError, "TBModuleEnabled", "true", "false")
	}
}

func TestRunConfig_BuildRejectsUnvalidatedBadConfig(t *testing.T) {
	cfg := &RunConfig{NumPatients: -1}
	if _, err := cfg.Build(); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "calling Build on an invalid config", "expected an error, got nil")
	}
}
