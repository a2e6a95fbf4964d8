package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/spatial-sim/internal/config"
)

func validScenario() Scenario {
	return Scenario{
		Name:        "test",
		Width:       20,
		Height:      20,
		CellSize:    1,
		Seed:        7,
		Samples:     100,
		Exponent:    4,
		Radius:      2,
		Segments:    32,
		ValueRaster: ValuePrecipitation,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   string
	}{
		{name: "zero width", mutate: func(s *Scenario) { s.Width = 0 }, want: "dimensions"},
		{name: "negative height", mutate: func(s *Scenario) { s.Height = -5 }, want: "dimensions"},
		{name: "zero cell size", mutate: func(s *Scenario) { s.CellSize = 0 }, want: "cell_size"},
		{name: "zero samples", mutate: func(s *Scenario) { s.Samples = 0 }, want: "samples"},
		{name: "negative exponent", mutate: func(s *Scenario) { s.Exponent = -1 }, want: "exponent"},
		{name: "zero radius", mutate: func(s *Scenario) { s.Radius = 0 }, want: "radius"},
		{name: "bad value raster", mutate: func(s *Scenario) { s.ValueRaster = "temperature" }, want: "value_raster"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validScenario()
			tt.mutate(&sc)
			err := sc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	sc := validScenario()
	assert.NoError(t, sc.Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "clumped.yaml")
	yaml := `
name: clumped-vs-random
width: 50
height: 40
cell_size: 1
seed: 99
samples: 500
exponent: 8
radius: 2.5
segments: 64
value_raster: elevation
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "clumped-vs-random", sc.Name)
	assert.Equal(t, 50, sc.Width)
	assert.Equal(t, 40, sc.Height)
	assert.Equal(t, uint64(99), sc.Seed)
	assert.Equal(t, 500, sc.Samples)
	assert.InDelta(t, 8.0, sc.Exponent, 1e-12)
	assert.InDelta(t, 2.5, sc.Radius, 1e-12)
	assert.Equal(t, ValueElevation, sc.ValueRaster)
}

func TestLoadDefaultsNameToPath(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "unnamed.yaml")
	yaml := `
width: 10
height: 10
cell_size: 1
samples: 50
exponent: 2
radius: 1
value_raster: precipitation
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, sc.Name)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("width: -2\nheight: 10\n"), 0o644))
	_, err = Load(invalid)
	require.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()
	sim := config.SimConfig{
		Width:       120,
		Height:      80,
		CellSize:    0.5,
		Seed:        13,
		Samples:     2000,
		Exponent:    6,
		Radius:      1.5,
		Segments:    48,
		ValueRaster: "elevation",
	}

	sc := FromConfig(sim)
	assert.Equal(t, "default", sc.Name)
	assert.Equal(t, 120, sc.Width)
	assert.Equal(t, 80, sc.Height)
	assert.InDelta(t, 0.5, sc.CellSize, 1e-12)
	assert.Equal(t, uint64(13), sc.Seed)
	assert.Equal(t, 2000, sc.Samples)
	assert.InDelta(t, 6.0, sc.Exponent, 1e-12)
	assert.InDelta(t, 1.5, sc.Radius, 1e-12)
	assert.Equal(t, 48, sc.Segments)
	assert.Equal(t, ValueElevation, sc.ValueRaster)
	assert.NoError(t, sc.Validate())
}
