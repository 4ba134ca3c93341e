package cepac

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// RunConfig is the TOML-decoded shape of a run's cohort, seeding, and
// feature-flag configuration (§6). Large per-stratum parameter tables
// (incidence by age/gender/risk, OI probabilities, TB natural-history
// tables, and so on) are not represented here; those come from one or
// more keyed .in files applied on top of the defaults this produces
// (config_keyed.go), following the split the original cohort workbook
// draws between "run settings" and "population tables".
type RunConfig struct {
	InputVersion string `toml:"input_version"`

	NumPatients int    `toml:"num_patients"`
	SeedMode    string `toml:"seed_mode"` // "time" | "fixed"
	FixedSeed   int64  `toml:"fixed_seed"`

	DiscountRateAnnual     float64   `toml:"discount_rate_annual"`
	AltDiscountRatesAnnual []float64 `toml:"alt_discount_rates_annual"`

	DynamicTransmissionEnabled bool `toml:"dynamic_transmission_enabled"`
	TBModuleEnabled            bool `toml:"tb_module_enabled"`
	PediatricModuleEnabled     bool `toml:"pediatric_module_enabled"`
	TBAsGenericOIWhenDisabled  bool `toml:"tb_as_generic_oi_when_disabled"`

	MaxSimulationMonths int `toml:"max_simulation_months"`

	TraceEnabled    bool   `toml:"trace_enabled"`
	TracePatientIDs []int  `toml:"trace_patient_ids"`
	OutputDir       string `toml:"output_dir"`
	SQLiteOutput    bool   `toml:"sqlite_output"`
	SQLitePath      string `toml:"sqlite_path"`

	KeyedInputFiles []string `toml:"keyed_input_files"`

	validated bool
}

// LoadRunConfig decodes a TOML run-configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	cfg := new(RunConfig)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, UnreadableInputError, path)
	}
	return cfg, nil
}

// Validate checks the run config's keyword fields and required ranges.
func (c *RunConfig) Validate() error {
	switch c.SeedMode {
	case "time", "fixed", "":
	default:
		return errors.Errorf(UnrecognizedKeywordError, c.SeedMode, "seed_mode")
	}
	if c.NumPatients <= 0 {
		return errors.Errorf(InvalidIntParameterError, "num_patients", c.NumPatients, "must be positive")
	}
	if c.DiscountRateAnnual < 0 {
		return errors.Errorf(InvalidFloatParameterError, "discount_rate_annual", c.DiscountRateAnnual, "must be non-negative")
	}
	c.validated = true
	return nil
}

// seedMode resolves the decoded string into the SeedMode enum.
func (c *RunConfig) seedMode() SeedMode {
	if c.SeedMode == "fixed" {
		return FixedSeed
	}
	return TimeSeed
}

// Build assembles the immutable SimContext fields this config controls;
// the subsystem parameter tables (General, CD4HVL, ART, ...) are filled
// in separately by applying one or more keyed .in files on top of the
// zero-value SimContext this returns.
func (c *RunConfig) Build() (*SimContext, error) {
	if !c.validated {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	ctx := &SimContext{
		InputVersion: c.InputVersion,
		Cohort: CohortInputs{
			NumPatients: c.NumPatients,
			SeedMode:    c.seedMode(),
			FixedSeed:   c.FixedSeed,
		},
		RNG: RNGInputs{
			DiscountRateAnnual:     c.DiscountRateAnnual,
			AltDiscountRatesAnnual: c.AltDiscountRatesAnnual,
		},
		DynamicTransmissionEnabled: c.DynamicTransmissionEnabled,
		TBModuleEnabled:            c.TBModuleEnabled,
		PediatricModuleEnabled:     c.PediatricModuleEnabled,
		TBAsGenericOIWhenDisabled:  c.TBAsGenericOIWhenDisabled,
	}
	return ctx, nil
}
