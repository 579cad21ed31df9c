// Package config loads the command line configuration from defaults, an
// optional YAML file and TDR_ environment variables.
package config

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nozzle/tdr"
	"github.com/nozzle/tdr/density"
)

const (
	configName = ".tdr"
	configType = "yaml"
	envPrefix  = "TDR"
)

// Validation errors.
var (
	ErrUnknownDensity  = errors.New("unknown density")
	ErrInvalidParam    = errors.New("invalid density parameter")
	ErrInvalidTruncate = errors.New("truncation needs an increasing pair of bounds")
	ErrInvalidSample   = errors.New("invalid sample settings")
)

// Config is the configuration of the tdrsample tool.
type Config struct {
	Density   DensityConfig   `mapstructure:"density" yaml:"density"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Sample    SampleConfig    `mapstructure:"sample" yaml:"sample"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// DensityConfig selects a density from the catalog.
type DensityConfig struct {
	Name  string  `mapstructure:"name" yaml:"name"`
	Mu    float64 `mapstructure:"mu" yaml:"mu"`
	Sigma float64 `mapstructure:"sigma" yaml:"sigma"`
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`
	Beta  float64 `mapstructure:"beta" yaml:"beta"`
	Rate  float64 `mapstructure:"rate" yaml:"rate"`
	Scale float64 `mapstructure:"scale" yaml:"scale"`
	// Truncate is empty or a [left, right] pair.
	Truncate []float64 `mapstructure:"truncate" yaml:"truncate,omitempty"`
}

// GeneratorConfig mirrors tdr.Config.
type GeneratorConfig struct {
	StartingPoints []float64 `mapstructure:"starting_points" yaml:"starting_points,omitempty"`
	StartingCount  int       `mapstructure:"starting_count" yaml:"starting_count"`
	Percentiles    []float64 `mapstructure:"percentiles" yaml:"percentiles"`
	RetryPoints    int       `mapstructure:"retry_points" yaml:"retry_points"`
	MaxIntervals   int       `mapstructure:"max_intervals" yaml:"max_intervals"`
	MaxIterations  int       `mapstructure:"max_iterations" yaml:"max_iterations"`
	GuideFactor    float64   `mapstructure:"guide_factor" yaml:"guide_factor"`
	MaxRatio       float64   `mapstructure:"max_ratio" yaml:"max_ratio"`
	Tolerance      float64   `mapstructure:"tolerance" yaml:"tolerance"`
	Verify         bool      `mapstructure:"verify" yaml:"verify"`
	Pedantic       bool      `mapstructure:"pedantic" yaml:"pedantic"`
}

// SampleConfig controls the sample command.
type SampleConfig struct {
	Count   int    `mapstructure:"count" yaml:"count"`
	Seed    uint32 `mapstructure:"seed" yaml:"seed"`
	Workers int    `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig sets the log level.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Load reads the configuration. An empty path searches .tdr.yaml in the
// working directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	def := tdr.DefaultConfig()

	v.SetDefault("density.name", "normal")
	v.SetDefault("density.mu", 0.0)
	v.SetDefault("density.sigma", 1.0)
	v.SetDefault("density.alpha", 2.0)
	v.SetDefault("density.beta", 2.0)
	v.SetDefault("density.rate", 1.0)
	v.SetDefault("density.scale", 1.0)

	v.SetDefault("generator.starting_count", def.StartingCount)
	v.SetDefault("generator.percentiles", def.Percentiles)
	v.SetDefault("generator.retry_points", def.RetryPoints)
	v.SetDefault("generator.max_intervals", def.MaxIntervals)
	v.SetDefault("generator.max_iterations", def.MaxIterations)
	v.SetDefault("generator.guide_factor", def.GuideFactor)
	v.SetDefault("generator.max_ratio", def.MaxRatio)
	v.SetDefault("generator.tolerance", def.Tolerance)
	v.SetDefault("generator.verify", def.Verify)
	v.SetDefault("generator.pedantic", def.Pedantic)

	v.SetDefault("sample.count", 1000)
	v.SetDefault("sample.seed", 5489)
	v.SetDefault("sample.workers", 1)

	v.SetDefault("logging.level", def.LogLevel)
}

// Validate checks the density and sample settings and the generator
// configuration.
func (c *Config) Validate() error {
	if _, err := c.Density.New(); err != nil {
		return err
	}
	if c.Sample.Count < 0 {
		return errors.Wrapf(ErrInvalidSample, "count %d is negative", c.Sample.Count)
	}
	if c.Sample.Workers < 0 {
		return errors.Wrapf(ErrInvalidSample, "workers %d is negative", c.Sample.Workers)
	}
	return c.GeneratorConfig().Validate()
}

// GeneratorConfig returns the tdr configuration.
func (c *Config) GeneratorConfig() tdr.Config {
	g := c.Generator
	return tdr.Config{
		StartingPoints: g.StartingPoints,
		StartingCount:  g.StartingCount,
		Percentiles:    g.Percentiles,
		RetryPoints:    g.RetryPoints,
		MaxIntervals:   g.MaxIntervals,
		MaxIterations:  g.MaxIterations,
		GuideFactor:    g.GuideFactor,
		MaxRatio:       g.MaxRatio,
		Tolerance:      g.Tolerance,
		Verify:         g.Verify,
		Pedantic:       g.Pedantic,
		LogLevel:       c.Logging.Level,
	}
}

// New returns the configured density, truncated when requested.
func (d DensityConfig) New() (density.Density, error) {
	var out density.Density
	switch strings.ToLower(d.Name) {
	case "normal":
		if !(d.Sigma > 0) {
			return nil, errors.Wrapf(ErrInvalidParam, "normal sigma %g", d.Sigma)
		}
		out = density.Normal{Mu: d.Mu, Sigma: d.Sigma}
	case "gamma":
		if !(d.Alpha >= 1 && d.Beta > 0) {
			return nil, errors.Wrapf(ErrInvalidParam, "gamma alpha %g beta %g", d.Alpha, d.Beta)
		}
		out = density.Gamma{Alpha: d.Alpha, Beta: d.Beta}
	case "beta":
		if !(d.Alpha >= 1 && d.Beta >= 1) {
			return nil, errors.Wrapf(ErrInvalidParam, "beta alpha %g beta %g", d.Alpha, d.Beta)
		}
		out = density.Beta{Alpha: d.Alpha, Beta: d.Beta}
	case "exponential":
		if !(d.Rate > 0) {
			return nil, errors.Wrapf(ErrInvalidParam, "exponential rate %g", d.Rate)
		}
		out = density.Exponential{Rate: d.Rate}
	case "logistic":
		if !(d.Scale > 0) {
			return nil, errors.Wrapf(ErrInvalidParam, "logistic scale %g", d.Scale)
		}
		out = density.Logistic{Mu: d.Mu, S: d.Scale}
	case "laplace":
		if !(d.Scale > 0) {
			return nil, errors.Wrapf(ErrInvalidParam, "laplace scale %g", d.Scale)
		}
		out = density.Laplace{Mu: d.Mu, Scale: d.Scale}
	default:
		return nil, errors.Wrapf(ErrUnknownDensity, "%q", d.Name)
	}

	switch len(d.Truncate) {
	case 0:
		return out, nil
	case 2:
		if d.Truncate[0] < d.Truncate[1] {
			return density.Truncate(out, d.Truncate[0], d.Truncate[1]), nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidTruncate, "%v", d.Truncate)
}

// WriteYAML writes the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(enc.Close(), "encode config")
}
