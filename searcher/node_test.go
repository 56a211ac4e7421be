package searcher

import (
	"testing"

	"polyfish/game"

	"github.com/stretchr/testify/require"
)

func expanded(pov int, priors ...float64) *node {
	n := newRoot(pov)
	moves := make([]game.Move, len(priors))
	for i := range moves {
		moves[i] = game.Step(0, i+1)
	}
	n.expand(pov, moves, priors)
	return n
}

func TestSelectChild(t *testing.T) {
	t.Run("unvisited children by prior", func(t *testing.T) {
		root := expanded(1, 0.2, 0.7, 0.1)
		require.Equal(t, root.children[1], root.selectChild(1, false), "Should pick the highest prior")
	})

	t.Run("skips pruned children", func(t *testing.T) {
		root := expanded(1, 0.2, 0.7, 0.1)
		root.children[1].pruned = true
		require.Equal(t, root.children[0], root.selectChild(1, false), "Should not pick a pruned child")
	})

	t.Run("nil when everything is pruned", func(t *testing.T) {
		root := expanded(1, 1)
		root.children[0].pruned = true
		require.Nil(t, root.selectChild(1, false), "Should find nothing to select")
	})

	t.Run("exploits value", func(t *testing.T) {
		root := expanded(1, 0.5, 0.5)
		root.children[0].visits, root.children[0].value = 10, -5
		root.children[1].visits, root.children[1].value = 10, 5
		require.Equal(t, root.children[1], root.selectChild(1, false), "Should pick the better Q at equal visits")
	})

	t.Run("passes over EndTurn at turn start", func(t *testing.T) {
		root := newRoot(1)
		root.expand(1, []game.Move{game.EndTurn(), game.Step(0, 1)}, []float64{0.9, 0.1})
		require.Equal(t, game.StepMove, root.selectChild(1, true).move.Kind, "Should skip EndTurn with alternatives")
		require.Equal(t, game.EndTurnMove, root.selectChild(1, false).move.Kind, "Should pick EndTurn later in the turn")
	})

	t.Run("EndTurn as the only choice", func(t *testing.T) {
		root := newRoot(1)
		root.expand(1, []game.Move{game.EndTurn()}, []float64{1})
		require.Equal(t, game.EndTurnMove, root.selectChild(1, true).move.Kind, "Should end the turn when nothing else is left")
	})
}

func TestBackup(t *testing.T) {
	root := expanded(1, 1)
	child := root.children[0]
	child.expand(2, []game.Move{game.EndTurn()}, []float64{1})
	grandchild := child.children[0]

	grandchild.backup(1, 0.5)

	require.Equal(t, 1, root.visits, "Root should be visited")
	require.Equal(t, 1, child.visits, "Child should be visited")
	require.Equal(t, 1, grandchild.visits, "Grandchild should be visited")
	require.InDelta(t, 0.5, root.value, 1e-9, "Root keeps the root tribe's value")
	require.InDelta(t, 0.5, child.value, 1e-9, "A move of the root tribe keeps the sign")
	require.InDelta(t, -0.5, grandchild.value, 1e-9, "A move of the opponent flips the sign")
}

func TestSnapshotMerge(t *testing.T) {
	t.Run("adds deltas of every worker", func(t *testing.T) {
		shared := expanded(1, 0.5, 0.5)
		shared.children[0].backup(1, 1)

		a := shared.snapshot(nil)
		b := shared.snapshot(nil)
		a.children[0].backup(1, 1)
		b.children[1].backup(1, -1)
		b.children[1].backup(1, -1)

		shared.merge(a)
		shared.merge(b)

		require.Equal(t, 4, shared.visits, "Root visits should be summed")
		require.Equal(t, 2, shared.children[0].visits, "First child visits")
		require.Equal(t, 2, shared.children[1].visits, "Second child visits")
		require.InDelta(t, 2.0, shared.children[0].value, 1e-9, "First child value")
		require.InDelta(t, -2.0, shared.children[1].value, 1e-9, "Second child value")
	})

	t.Run("adopts subtrees created by workers", func(t *testing.T) {
		shared := expanded(1, 0.5, 0.5)
		a := shared.snapshot(nil)
		b := shared.snapshot(nil)
		a.children[0].expand(2, []game.Move{game.EndTurn(), game.Step(1, 9)}, []float64{0.5, 0.5})
		a.children[0].children[1].backup(1, 1)
		b.children[0].expand(2, []game.Move{game.EndTurn(), game.Step(1, 9)}, []float64{0.5, 0.5})
		b.children[0].children[1].backup(1, 1)
		b.children[1].pruned = true

		shared.merge(a)
		shared.merge(b)

		first := shared.children[0]
		require.True(t, first.expanded, "Child expanded by a worker should be expanded")
		require.Equal(t, 2, first.pov, "Adopted node should keep its pov")
		require.Len(t, first.children, 2, "Children should be matched by move")
		require.Equal(t, 2, first.children[1].visits, "Both workers' visits should count")
		require.Same(t, first, first.children[1].parent, "Adopted node should point at the shared parent")
		require.True(t, shared.children[1].pruned, "Pruning should survive the merge")
	})

	t.Run("snapshot is independent", func(t *testing.T) {
		shared := expanded(1, 1)
		clone := shared.snapshot(nil)
		clone.children[0].backup(1, 1)
		require.Equal(t, 0, shared.children[0].visits, "Worker visits should not leak before the merge")
	})
}

func TestPrincipalVariation(t *testing.T) {
	root := expanded(1, 0.5, 0.5)
	root.children[1].expand(1, []game.Move{game.EndTurn(), game.Step(3, 4)}, []float64{0.5, 0.5})
	root.children[0].backup(1, 0)
	root.children[1].children[1].backup(1, 0)
	root.children[1].children[1].backup(1, 0)

	require.Equal(t, []game.Move{game.Step(0, 2), game.Step(3, 4)}, root.principalVariation(),
		"Should follow the most visited children")
}
