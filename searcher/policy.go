package searcher

import (
	"math"

	"polyfish/game"

	"golang.org/x/exp/rand"
)

// Hyperparameters for MCTS

const Exploration = 1.0 // PUCT exploration constant

const priorFloor = 1e-6

// puct = q + c*p*sqrt(N)/(1+n)
func puct(q, p float64, n int, sqrtN, c float64) float64 {
	return q + c*p*sqrtN/float64(1+n)
}

// heuristicPriors turns the static move priorities into a distribution.
// Every move keeps at least priorFloor before normalization.
func heuristicPriors(moves []game.Move) []float64 {
	priors := make([]float64, len(moves))
	sum := 0.0
	for i, m := range moves {
		priors[i] = max(float64(game.Priority(m)), priorFloor)
		sum += priors[i]
	}
	for i := range priors {
		priors[i] /= sum
	}
	return priors
}

// normalizePriors floors and rescales a predicted distribution. It reports
// false when the prediction cannot be used.
func normalizePriors(priors []float64, n int) ([]float64, bool) {
	if len(priors) != n {
		return nil, false
	}
	out := make([]float64, n)
	sum := 0.0
	for i, p := range priors {
		if math.IsNaN(p) || p < 0 {
			return nil, false
		}
		out[i] = max(p, priorFloor)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out, true
}

// dirichlet samples a symmetric Dirichlet(alpha) vector of length n.
func dirichlet(rng *rand.Rand, alpha float64, n int) []float64 {
	noise := make([]float64, n)
	sum := 0.0
	for i := range noise {
		noise[i] = gamma(rng, alpha)
		sum += noise[i]
	}
	if sum == 0 {
		for i := range noise {
			noise[i] = 1 / float64(n)
		}
		return noise
	}
	for i := range noise {
		noise[i] /= sum
	}
	return noise
}

// gamma samples Gamma(alpha, 1) with the Marsaglia-Tsang method.
func gamma(rng *rand.Rand, alpha float64) float64 {
	if alpha < 1 {
		u := rng.Float64()
		return gamma(rng, alpha+1) * math.Pow(u, 1/alpha)
	}
	d := alpha - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x || math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// addNoise mixes Dirichlet noise into the priors of the root children.
func addNoise(root *node, rng *rand.Rand, alpha, epsilon float64) {
	if alpha <= 0 || epsilon <= 0 || len(root.children) < 2 {
		return
	}
	noise := dirichlet(rng, alpha, len(root.children))
	for i, child := range root.children {
		child.prior = (1-epsilon)*child.prior + epsilon*noise[i]
	}
}
