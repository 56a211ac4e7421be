package predictor

import (
	"testing"

	"polyfish/game"
	"polyfish/meta"
	"polyfish/scenario"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	sc, err := scenario.Duel(1)
	require.NoError(t, err)
	s := sc.State
	n := len(s.Tiles)
	planes := make([]float32, planeCount*n)
	for i := range planes {
		planes[i] = 9
	}

	Encode(s, planes)
	at := func(plane, tile int) float32 { return planes[plane*n+tile] }

	t.Run("units from the mover's side", func(t *testing.T) {
		require.Equal(t, float32(1), at(planeOwnUnit, 12), "Own warrior at full health")
		require.Equal(t, float32(1), at(planeEnemyUnit, 13), "Enemy warrior at full health")
		require.Zero(t, at(planeOwnUnit, 13))
	})

	t.Run("cities and territory", func(t *testing.T) {
		require.InDelta(t, 1.0/game.MaxCityLevel, at(planeOwnCity, 0), 1e-6)
		require.InDelta(t, 1.0/game.MaxCityLevel, at(planeEnemyCity, 24), 1e-6)
		require.Equal(t, float32(1), at(planeOwnTerritory, 1))
		require.Equal(t, float32(1), at(planeEnemyTerritory, 23))
	})

	t.Run("stale values are cleared", func(t *testing.T) {
		require.Zero(t, at(planeWater, 6), "Field tile should not be water")
	})

	t.Run("hidden tiles stay empty", func(t *testing.T) {
		s.Tiles[24].Explorers = 0
		Encode(s, planes)
		require.Zero(t, at(planeExplored, 24))
		require.Zero(t, at(planeEnemyCity, 24), "Unexplored city should not leak")
	})
}

func TestGather(t *testing.T) {
	tiles := 4
	logits := make([]float32, game.MoveKinds*tiles)
	step := game.Step(0, 2)
	end := game.EndTurn()
	logits[step.PolicyIndex(tiles)] = 2
	logits[end.PolicyIndex(tiles)] = 0

	priors := gather(logits, []game.Move{end, step}, tiles)

	require.InDelta(t, 1.0, priors[0]+priors[1], 1e-9, "Priors should sum to one")
	require.Greater(t, priors[1], priors[0], "Higher logit should get more prior")
}

func TestNewONNX(t *testing.T) {
	t.Run("requires a model", func(t *testing.T) {
		_, err := NewONNX(meta.PredictorConfig{}, 5, 5)
		require.Error(t, err)
	})
}
