// Package config defines the run configuration and how it is layered from
// defaults, an optional YAML file and GOTMD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gotmd/internal/model"
	"github.com/alexiusacademia/gotmd/internal/newmark"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// StandardGravity converts accelerations recorded in g to m/s²
const StandardGravity = 9.81

// Config contains everything a simulation run needs
type Config struct {
	Input     Input     `koanf:"input"`
	Output    Output    `koanf:"output"`
	Structure Structure `koanf:"structure"`
	Damper    Damper    `koanf:"damper"`
	Newmark   Newmark   `koanf:"newmark"`
	Log       Log       `koanf:"log"`

	// Gravity is the g to m/s² conversion factor.
	Gravity float64 `koanf:"gravity"`
}

// Input locates the ground motion record.
type Input struct {
	Path string `koanf:"path"`
}

// Output controls where results are written. Empty paths disable the output.
type Output struct {
	Path string `koanf:"path"` // .csv, .parquet or .db
	Plot string `koanf:"plot"` // .png, .svg or .pdf
}

// Structure holds the primary structure properties.
type Structure struct {
	Mass  float64 `koanf:"mass"`  // kg
	Omega float64 `koanf:"omega"` // rad/s
	Zeta  float64 `koanf:"zeta"`
}

// Damper holds the tuned mass damper ratios.
type Damper struct {
	MassRatio      float64 `koanf:"mass_ratio"`
	FrequencyRatio float64 `koanf:"frequency_ratio"`
	Zeta           float64 `koanf:"zeta"`
}

// Newmark holds the integration constants.
type Newmark struct {
	Gamma float64 `koanf:"gamma"`
	Beta  float64 `koanf:"beta"`
}

// Log controls logger verbosity: debug, info, warn, error.
type Log struct {
	Level string `koanf:"level"`
}

// New returns a Config filled with defaults
func New() *Config {
	return &Config{
		Structure: Structure{
			Mass:  1000,
			Omega: 2 * math.Pi,
			Zeta:  0.02,
		},
		Damper: Damper{
			MassRatio:      0.03,
			FrequencyRatio: 1.0,
			Zeta:           0.05,
		},
		Newmark: Newmark{
			Gamma: newmark.AverageAcceleration.Gamma,
			Beta:  newmark.AverageAcceleration.Beta,
		},
		Log:     Log{Level: "info"},
		Gravity: StandardGravity,
	}
}

// StructureParams converts the structure section to the model type
func (c *Config) StructureParams() model.Structure {
	return model.Structure{Mass: c.Structure.Mass, Omega: c.Structure.Omega, Zeta: c.Structure.Zeta}
}

// DamperParams converts the damper section to the model type
func (c *Config) DamperParams() model.Damper {
	return model.Damper{
		MassRatio:      c.Damper.MassRatio,
		FrequencyRatio: c.Damper.FrequencyRatio,
		Zeta:           c.Damper.Zeta,
	}
}

// NewmarkParams converts the newmark section to the integrator type
func (c *Config) NewmarkParams() newmark.Params {
	return newmark.Params{Gamma: c.Newmark.Gamma, Beta: c.Newmark.Beta}
}

// Validate checks the physical and numerical settings. The input path is
// checked by the commands that need it.
func (c *Config) Validate() error {
	if err := c.StructureParams().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.DamperParams().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.NewmarkParams().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidConfig, c.Gravity)
	}
	return nil
}
