package meta

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, Workers, cfg.Search.Workers)
	require.Equal(t, "balanced", cfg.Search.Evaluate)
	require.Equal(t, "strength", cfg.Experiment.Kind)
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
search:
  workers: 2
  iterations: 0
  duration: 1500ms
  evaluate: army
  dirichlet:
    alpha: 0.3
    epsilon: 0.25
game:
  max_turns: 12
log:
  level: debug
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 2, cfg.Search.Workers)
		require.Equal(t, 1500*time.Millisecond, cfg.Search.Duration)
		require.Equal(t, "army", cfg.Search.Evaluate)
		require.Equal(t, 0.3, cfg.Search.Dirichlet.Alpha)
		require.Equal(t, 12, cfg.Game.MaxTurns)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, Depth, cfg.Search.Depth, "Unset keys keep their default")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: [1, 2"))
		require.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search:\n  workers: 0\n"))
		var rangeErr *ConfigRangeError
		require.ErrorAs(t, err, &rangeErr)
		require.Equal(t, "search.workers", rangeErr.Table)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		table  string
	}{
		{"depth", func(c *Config) { c.Search.Depth = 0 }, "search.depth"},
		{"batch", func(c *Config) { c.Search.Batch = 0 }, "search.batch"},
		{"max turns", func(c *Config) { c.Game.MaxTurns = 0 }, "game.max_turns"},
		{"experiment workers", func(c *Config) { c.Experiment.Workers = []int{1, 0} }, "experiment.workers[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			var rangeErr *ConfigRangeError
			require.ErrorAs(t, cfg.Validate(), &rangeErr)
			require.Equal(t, tt.table, rangeErr.Table)
		})
	}

	t.Run("real values", func(t *testing.T) {
		values := []struct {
			name   string
			modify func(c *Config)
			want   string
		}{
			{"temperature", func(c *Config) { c.Search.Temperature = -1 }, "search.temperature: -1 out of range [0, +Inf]"},
			{"epsilon", func(c *Config) { c.Search.Dirichlet.Epsilon = 1.5 }, "search.dirichlet.epsilon: 1.5 out of range [0, 1]"},
			{"exploration", func(c *Config) { c.Search.Exploration = -0.5 }, "search.exploration: -0.5 out of range [0, +Inf]"},
			{"nan", func(c *Config) { c.Search.Dirichlet.Alpha = math.NaN() }, "search.dirichlet.alpha: NaN out of range [0, +Inf]"},
		}
		for _, v := range values {
			cfg := Default()
			v.modify(&cfg)
			err := cfg.Validate()
			var valueErr *ValueRangeError
			require.ErrorAs(t, err, &valueErr, v.name)
			require.EqualError(t, valueErr, v.want)
		}
	})

	t.Run("no budget", func(t *testing.T) {
		cfg := Default()
		cfg.Search.Iterations = 0
		require.ErrorContains(t, cfg.Validate(), "iterations or duration")
	})

	t.Run("unknown names", func(t *testing.T) {
		cfg := Default()
		cfg.Search.Evaluate = "random"
		require.ErrorContains(t, cfg.Validate(), "unknown evaluation")

		cfg = Default()
		cfg.Experiment.Kind = "ladder"
		require.ErrorContains(t, cfg.Validate(), "unknown experiment")
	})
}

func TestCheckRange(t *testing.T) {
	require.NoError(t, CheckRange("units", 0, 1))
	require.NoError(t, CheckRange("units", 16, 17))

	err := CheckRange("units", 17, 17)
	var rangeErr *ConfigRangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, ConfigRangeError{Table: "units", Index: 17, Limit: 17}, *rangeErr)
	require.EqualError(t, err, "units: index 17 out of range [0, 17)")
	require.Error(t, CheckRange("units", -1, 17))
}
