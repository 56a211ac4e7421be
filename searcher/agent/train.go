package agent

import (
	"context"

	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts *searcher.MCTS
	rng  *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. It samples root moves
// by visit count at the search temperature.
func NewTrainingAgent(mcts *searcher.MCTS, seed uint64) Agent {
	return &trainingAgent{mcts: mcts, rng: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent) FindMove(ctx context.Context, state *game.WorldState) (game.Move, metrics.SearchMetric) {
	res := a.mcts.Search(ctx, state)
	// TODO: apply a temperature schedule over the course of a game
	move, ok := res.Sample(a.mcts.Temperature(), a.rng)
	if !ok {
		return game.EndTurn(), res.Metric
	}
	return move, res.Metric
}
