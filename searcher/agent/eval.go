package agent

import (
	"context"

	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state *game.WorldState) (game.Move, metrics.SearchMetric) {
	res := a.mcts.Search(ctx, state)
	move, ok := res.Best()
	if !ok {
		return game.EndTurn(), res.Metric
	}
	return move, res.Metric
}
