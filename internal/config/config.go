// Package config loads tool configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sim    SimConfig    `yaml:"sim" mapstructure:"sim"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SimConfig holds the default simulation parameters. A scenario file
// overrides any of these per run.
type SimConfig struct {
	Width       int     `yaml:"width" mapstructure:"width"`
	Height      int     `yaml:"height" mapstructure:"height"`
	CellSize    float64 `yaml:"cell_size" mapstructure:"cell_size"`
	Seed        uint64  `yaml:"seed" mapstructure:"seed"`
	Samples     int     `yaml:"samples" mapstructure:"samples"`
	Exponent    float64 `yaml:"exponent" mapstructure:"exponent"`
	Radius      float64 `yaml:"radius" mapstructure:"radius"`
	Segments    int     `yaml:"segments" mapstructure:"segments"`
	ValueRaster string  `yaml:"value_raster" mapstructure:"value_raster"`
}

// ExportConfig configures shapefile output.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from an optional spatial-sim.yaml in the working
// directory plus SPATIALSIM_* environment variables, with defaults for every
// knob.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("spatial-sim")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SPATIALSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("sim.width", 100)
	v.SetDefault("sim.height", 100)
	v.SetDefault("sim.cell_size", 1.0)
	v.SetDefault("sim.seed", 42)
	v.SetDefault("sim.samples", 1000)
	v.SetDefault("sim.exponent", 4.0)
	v.SetDefault("sim.radius", 3.0)
	v.SetDefault("sim.segments", 64)
	v.SetDefault("sim.value_raster", "precipitation")
	v.SetDefault("export.dir", ".")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the simulation defaults are usable.
func (c *Config) Validate() error {
	if c.Sim.Width <= 0 || c.Sim.Height <= 0 {
		return eris.Errorf("config: invalid raster dimensions %dx%d", c.Sim.Width, c.Sim.Height)
	}
	if c.Sim.CellSize <= 0 {
		return eris.New("config: cell_size must be positive")
	}
	if c.Sim.Samples <= 0 {
		return eris.New("config: samples must be positive")
	}
	if c.Sim.Exponent < 0 {
		return eris.New("config: exponent must be non-negative")
	}
	if c.Sim.Radius <= 0 {
		return eris.New("config: radius must be positive")
	}
	switch c.Sim.ValueRaster {
	case "elevation", "precipitation":
	default:
		return eris.Errorf("config: unknown value_raster %q", c.Sim.ValueRaster)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
