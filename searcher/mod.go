package searcher

import (
	"math"

	"polyfish/experiments/metrics"
	"polyfish/game"

	"golang.org/x/exp/rand"
)

const WIN = 1.0
const LOSS = -WIN

// Prediction is a learned prior over moves and a value in [-1, 1] from the
// perspective of the tribe to move.
type Prediction struct {
	Priors []float64 // aligned with the moves passed to Predict
	Value  float64
}

type Predictor interface {
	Predict(s *game.WorldState, moves []game.Move) (Prediction, error)
}

// PoseCache remembers move sequences by fingerprint of the tribe to move.
type PoseCache interface {
	Get(hash uint64) ([]game.Move, bool)
	Put(hash uint64, moves []game.Move)
}

type StopReason int

const (
	StopIterations StopReason = iota
	StopDuration
	StopCancelled
	StopNoMoves
	StopCached
	StopFailed
)

var stopReasonNames = [...]string{
	StopIterations: "iterations",
	StopDuration:   "duration",
	StopCancelled:  "cancelled",
	StopNoMoves:    "no-moves",
	StopCached:     "cached",
	StopFailed:     "failed",
}

func (r StopReason) String() string {
	if int(r) < len(stopReasonNames) {
		return stopReasonNames[r]
	}
	return "unknown"
}

// Visit holds the statistics of one root edge. W and Q are from the
// perspective of the tribe to move at the root.
type Visit struct {
	Move game.Move
	N    int
	W    float64
	Q    float64
	P    float64
}

type Result struct {
	Sequence   []game.Move // principal variation
	Score      float64     // Q of the first move of Sequence
	Visits     []Visit
	StopReason StopReason
	Iterations int
	MaxPath    int
	Metric     metrics.SearchMetric
	Err        error // set with StopFailed
}

// Best returns the most visited root move, or the cached first move.
func (r Result) Best() (game.Move, bool) {
	best, bestN := -1, -1
	for i, v := range r.Visits {
		if v.N > bestN {
			best, bestN = i, v.N
		}
	}
	if best >= 0 && bestN > 0 {
		return r.Visits[best].Move, true
	}
	if len(r.Sequence) > 0 {
		return r.Sequence[0], true
	}
	return game.Move{}, false
}

// Distribution returns the root visit counts raised to 1/temperature and
// normalized. A temperature of zero puts all the weight on Best.
func (r Result) Distribution(temperature float64) []float64 {
	dist := make([]float64, len(r.Visits))
	if len(dist) == 0 {
		return dist
	}
	if temperature <= 0 {
		best, bestN := 0, -1
		for i, v := range r.Visits {
			if v.N > bestN {
				best, bestN = i, v.N
			}
		}
		dist[best] = 1
		return dist
	}

	exponent := 1.0 / temperature
	sum := 0.0
	for i, v := range r.Visits {
		dist[i] = math.Pow(float64(v.N), exponent)
		sum += dist[i]
	}
	if sum == 0 {
		for i := range dist {
			dist[i] = 1 / float64(len(dist))
		}
		return dist
	}
	for i := range dist {
		dist[i] /= sum
	}
	return dist
}

// Sample draws a root move from Distribution(temperature).
func (r Result) Sample(temperature float64, rng *rand.Rand) (game.Move, bool) {
	if len(r.Visits) == 0 {
		return r.Best()
	}
	dist := r.Distribution(temperature)
	sampled := rng.Float64()
	cumulative := 0.0
	for i, p := range dist {
		cumulative += p
		if sampled < cumulative {
			return r.Visits[i].Move, true
		}
	}
	return r.Visits[len(r.Visits)-1].Move, true // rounding errors
}
