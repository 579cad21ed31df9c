package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nozzle/tdr"
	"github.com/nozzle/tdr/density"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tdr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "normal", cfg.Density.Name)
	assert.Equal(t, 1000, cfg.Sample.Count)
	assert.Equal(t, 1, cfg.Sample.Workers)

	def := tdr.DefaultConfig()
	got := cfg.GeneratorConfig()
	assert.Equal(t, def.MaxIntervals, got.MaxIntervals)
	assert.Equal(t, def.Percentiles, got.Percentiles)
	assert.Equal(t, def.LogLevel, got.LogLevel)
	assert.InDelta(t, def.Tolerance, got.Tolerance, 1e-20)

	d, err := cfg.Density.New()
	require.NoError(t, err)
	assert.Equal(t, density.Normal{Mu: 0, Sigma: 1}, d)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
density:
  name: gamma
  alpha: 3
  beta: 0.5
  truncate: [1, 4]
generator:
  max_intervals: 50
  pedantic: true
sample:
  count: 10
  workers: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Generator.MaxIntervals)
	assert.True(t, cfg.Generator.Pedantic)
	assert.Equal(t, 4, cfg.Sample.Workers)
	assert.True(t, cfg.GeneratorConfig().Pedantic)

	d, err := cfg.Density.New()
	require.NoError(t, err)
	left, right := d.Domain()
	assert.Equal(t, 1.0, left)
	assert.Equal(t, 4.0, right)
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TDR_SAMPLE_COUNT", "7")
	t.Setenv("TDR_DENSITY_NAME", "laplace")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Sample.Count)
	assert.Equal(t, "laplace", cfg.Density.Name)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown density", "density:\n  name: cauchy\n", ErrUnknownDensity},
		{"bad sigma", "density:\n  sigma: -1\n", ErrInvalidParam},
		{"gamma not log-concave", "density:\n  name: gamma\n  alpha: 0.5\n", ErrInvalidParam},
		{"bad truncate", "density:\n  truncate: [2, 1]\n", ErrInvalidTruncate},
		{"negative count", "sample:\n  count: -1\n", ErrInvalidSample},
		{"bad generator", "generator:\n  max_ratio: 2\n", tdr.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, cfg.Density.Name, back.Density.Name)
	assert.Equal(t, cfg.Generator.MaxIntervals, back.Generator.MaxIntervals)
	assert.Contains(t, buf.String(), "max_intervals: 200")
}
