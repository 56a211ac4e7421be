package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"polyfish/meta"

	"github.com/stretchr/testify/require"
)

func smallConfig(t *testing.T) meta.Config {
	cfg := meta.Default()
	cfg.Search.Iterations = 4
	cfg.Search.Depth = 2
	cfg.Search.Batch = 2
	cfg.Experiment.Games = 2
	cfg.Experiment.Workers = []int{1, 2}
	cfg.Experiment.Output = t.TempDir()
	return cfg
}

func TestPlan(t *testing.T) {
	t.Run("strength pairs against the baseline", func(t *testing.T) {
		configs, matchUps := plan(smallConfig(t))
		require.Len(t, configs, 3, "Worker configs plus the baseline")
		require.Len(t, matchUps, 2)
		for _, m := range matchUps {
			require.Equal(t, 0, m[0].ID, "Baseline should be the first agent")
			require.Equal(t, 1, m[0].Workers, "Baseline should be sequential")
		}
	})

	t.Run("throughput pairs configs with themselves", func(t *testing.T) {
		cfg := smallConfig(t)
		cfg.Experiment.Kind = "throughput"
		configs, matchUps := plan(cfg)
		require.Len(t, configs, 2)
		for _, m := range matchUps {
			require.Equal(t, m[0], m[1])
		}
	})
}

func TestRun(t *testing.T) {
	cfg := smallConfig(t)

	dir, err := Run(context.Background(), cfg, "duel")
	require.NoError(t, err)

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	require.Len(t, read("agent_configs.csv"), 4, "Header and three agents")
	require.Len(t, read("game_records.csv"), 5, "Header and two games per matchup")
	require.Greater(t, len(read("move_records.csv")), 1, "Moves should be recorded")
}

func TestRunUnknownScenario(t *testing.T) {
	_, err := Run(context.Background(), smallConfig(t), "atlantis")
	require.Error(t, err)
}
