package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/meta"
	"polyfish/scenario"
	"polyfish/searcher"
	"polyfish/searcher/agent"

	"github.com/stretchr/testify/require"
)

type illegalAgent struct{}

func (illegalAgent) FindMove(context.Context, *game.WorldState) (game.Move, metrics.SearchMetric) {
	return game.Step(99, 0), metrics.SearchMetric{}
}

func duel(t *testing.T) *game.WorldState {
	t.Helper()
	sc, err := scenario.Duel(1)
	require.NoError(t, err)
	return sc.State
}

func TestLocalEngine(t *testing.T) {
	t.Run("panics on agent count mismatch", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(duel(t), []agent.Agent{agent.NewRandomAgent(1)})
		}, "Should need one agent per tribe")
	})

	t.Run("random game records every move", func(t *testing.T) {
		e := LocalEngine(duel(t), []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})
		e.MaxMoves = 2000

		winner, gm, moves := e.Run(context.Background())

		require.Equal(t, gm.Winner, winner)
		require.Equal(t, 1, gm.StartingPlayer)
		require.Equal(t, gm.TotalMoves, len(moves), "One metric per move")
		require.Len(t, e.History, gm.TotalMoves, "One update per move")
		require.LessOrEqual(t, gm.TotalMoves, 2000)
		for i, m := range moves {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, e.History[i].Player, m.Player)
		}
		if game.IsGameOver(e.State) {
			require.Equal(t, game.Winner(e.State), winner)
		}
	})

	t.Run("illegal choices fall back to a legal move", func(t *testing.T) {
		e := LocalEngine(duel(t), []agent.Agent{illegalAgent{}, illegalAgent{}})
		e.MaxMoves = 3

		_, gm, moves := e.Run(context.Background())

		require.Equal(t, 3, gm.TotalMoves)
		for _, m := range moves {
			require.NotEqual(t, game.Step(99, 0).String(), m.Move)
		}
	})

	t.Run("search agents", func(t *testing.T) {
		mcts := func() *searcher.MCTS {
			return searcher.NewMCTS(2, searcher.WithIterations(20), searcher.WithDepth(3), searcher.WithMetrics())
		}
		e := LocalEngine(duel(t), []agent.Agent{
			agent.NewEvaluationAgent(mcts()),
			agent.NewTrainingAgent(mcts(), 3),
		})
		e.MaxMoves = 4

		_, gm, moves := e.Run(context.Background())

		require.Equal(t, 4, gm.TotalMoves)
		require.Equal(t, 20, moves[0].Iterations, "Search metrics should be attached")
	})

	t.Run("cancelled context plays nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := LocalEngine(duel(t), []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})
		_, gm, _ := e.Run(ctx)
		require.Zero(t, gm.TotalMoves)
	})
}

func TestConfiguredTurnLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  max_turns: 2\n"), 0o644))
	cfg, err := meta.Load(path)
	require.NoError(t, err)

	sc, err := scenario.ByName("duel", cfg.Game.KeySeed, cfg.Game.MaxTurns)
	require.NoError(t, err)
	e := LocalEngine(sc.State, []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})

	winner, gm, _ := e.Run(context.Background())

	require.True(t, game.IsGameOver(e.State), "Game should end on the configured turn limit")
	require.Equal(t, 3, gm.Turns, "Both tribes play two full turns")
	require.Equal(t, game.Winner(e.State), winner)
}
