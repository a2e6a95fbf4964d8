// Package scenario defines simulation scenarios and runs the full pipeline:
// synthetic terrain, probability field, weighted and uniform sampling, zonal
// extraction, and point-pattern summary.
package scenario

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/spatial-sim/internal/config"
)

// Value raster choices.
const (
	ValueElevation     = "elevation"
	ValuePrecipitation = "precipitation"
)

// Scenario is one reproducible simulation setup. Zero-valued fields are
// filled from config defaults by FromConfig or must be set explicitly before
// Validate.
type Scenario struct {
	Name        string  `yaml:"name"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	CellSize    float64 `yaml:"cell_size"`
	Seed        uint64  `yaml:"seed"`
	Samples     int     `yaml:"samples"`
	Exponent    float64 `yaml:"exponent"`
	Radius      float64 `yaml:"radius"`
	Segments    int     `yaml:"segments"`
	ValueRaster string  `yaml:"value_raster"`
	Export      string  `yaml:"export"`
}

// FromConfig builds a scenario from the configured defaults.
func FromConfig(sim config.SimConfig) Scenario {
	return Scenario{
		Name:        "default",
		Width:       sim.Width,
		Height:      sim.Height,
		CellSize:    sim.CellSize,
		Seed:        sim.Seed,
		Samples:     sim.Samples,
		Exponent:    sim.Exponent,
		Radius:      sim.Radius,
		Segments:    sim.Segments,
		ValueRaster: sim.ValueRaster,
	}
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: read %s", path)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, eris.Wrapf(err, "scenario: parse %s", path)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario parameters.
func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return eris.Errorf("scenario: invalid raster dimensions %dx%d", s.Width, s.Height)
	}
	if s.CellSize <= 0 {
		return eris.New("scenario: cell_size must be positive")
	}
	if s.Samples <= 0 {
		return eris.New("scenario: samples must be positive")
	}
	if s.Exponent < 0 {
		return eris.New("scenario: exponent must be non-negative")
	}
	if s.Radius <= 0 {
		return eris.New("scenario: radius must be positive")
	}
	switch s.ValueRaster {
	case ValueElevation, ValuePrecipitation:
	default:
		return eris.Errorf("scenario: unknown value_raster %q", s.ValueRaster)
	}
	return nil
}
