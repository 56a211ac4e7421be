package searcher

import (
	"math"
	"testing"

	"polyfish/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPUCT(t *testing.T) {
	t.Run("computing PUCT value", func(t *testing.T) {
		got := puct(0.25, 0.5, 3, math.Sqrt(16), 1.5)
		expected := 0.25 + 1.5*0.5*4/4
		require.InDelta(t, expected, got, 1e-9, "Should compute q + c*p*sqrt(N)/(1+n)")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		require.Greater(t, puct(0, 0.5, 1, 4, 1), puct(0, 0.5, 10, 4, 1),
			"More child visits should decrease exploration term")
	})

	t.Run("higher prior explores first", func(t *testing.T) {
		require.Greater(t, puct(0, 0.6, 0, 1, 1), puct(0, 0.4, 0, 1, 1),
			"Higher prior should score higher among unvisited children")
	})
}

func TestHeuristicPriors(t *testing.T) {
	moves := []game.Move{
		game.EndTurn(),
		game.Step(0, 3),
		game.Capture(0, 4, game.CaptureCity),
	}
	priors := heuristicPriors(moves)

	t.Run("sums to one", func(t *testing.T) {
		sum := 0.0
		for _, p := range priors {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9, "Priors should be a distribution")
	})

	t.Run("follows move priority", func(t *testing.T) {
		require.Greater(t, priors[2], priors[1], "City capture should outrank a step")
		require.Greater(t, priors[1], priors[0], "A step should outrank ending the turn")
	})
}

func TestNormalizePriors(t *testing.T) {
	t.Run("rejects length mismatch", func(t *testing.T) {
		_, ok := normalizePriors([]float64{0.5, 0.5}, 3)
		require.False(t, ok, "Should reject a prediction of the wrong size")
	})

	t.Run("rejects NaN", func(t *testing.T) {
		_, ok := normalizePriors([]float64{math.NaN(), 1}, 2)
		require.False(t, ok, "Should reject NaN priors")
	})

	t.Run("floors zero priors", func(t *testing.T) {
		priors, ok := normalizePriors([]float64{0, 1}, 2)
		require.True(t, ok)
		require.Greater(t, priors[0], 0.0, "Zero prior should be floored")
		require.InDelta(t, 1.0, priors[0]+priors[1], 1e-9, "Priors should sum to one")
	})
}

func TestDirichlet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("is a distribution", func(t *testing.T) {
		for _, alpha := range []float64{0.03, 0.3, 1, 2.5} {
			noise := dirichlet(rng, alpha, 10)
			sum := 0.0
			for _, x := range noise {
				require.GreaterOrEqual(t, x, 0.0, "Noise should be non-negative")
				sum += x
			}
			require.InDelta(t, 1.0, sum, 1e-9, "Noise should sum to one for alpha %v", alpha)
		}
	})

	t.Run("gamma mean matches shape", func(t *testing.T) {
		const samples = 20000
		for _, alpha := range []float64{0.5, 2} {
			sum := 0.0
			for range samples {
				sum += gamma(rng, alpha)
			}
			require.InDelta(t, alpha, sum/samples, 0.1, "Gamma(alpha, 1) should have mean alpha")
		}
	})

	t.Run("mixes into root priors", func(t *testing.T) {
		root := newRoot(1)
		moves := []game.Move{game.EndTurn(), game.Step(0, 1), game.Step(0, 2)}
		root.expand(1, moves, []float64{0.2, 0.3, 0.5})
		addNoise(root, rng, 0.3, 0.25)

		sum := 0.0
		for _, c := range root.children {
			sum += c.prior
		}
		require.InDelta(t, 1.0, sum, 1e-9, "Noisy priors should still sum to one")
	})
}
