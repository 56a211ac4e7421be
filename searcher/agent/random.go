package agent

import (
	"context"

	"polyfish/experiments/metrics"
	"polyfish/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, state *game.WorldState) (game.Move, metrics.SearchMetric) {
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return game.EndTurn(), metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}
