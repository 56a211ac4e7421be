package agent

import (
	"context"

	"polyfish/experiments/metrics"
	"polyfish/game"
)

type Agent interface {
	// FindMove returns the next move for the tribe to move and the metrics
	// (if collected) of the search that chose it
	FindMove(ctx context.Context, state *game.WorldState) (game.Move, metrics.SearchMetric)
}
