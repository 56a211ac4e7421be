package game_test

import (
	"testing"

	"polyfish/game"
	"polyfish/meta"
	"polyfish/scenario"

	"github.com/stretchr/testify/require"
)

func explored(t *testing.T, width, height int) *scenario.Builder {
	t.Helper()
	b, err := scenario.NewBuilder(width, height, 2, meta.MaxTurns, 5)
	require.NoError(t, err)
	return b.Explore(1).Explore(2)
}

func TestDestinations(t *testing.T) {
	t.Run("open field", func(t *testing.T) {
		b := explored(t, 5, 5)
		u := b.Unit(1, game.Rider, 0)
		s := b.Build()
		require.Equal(t, []int{1, 2, 5, 6, 7, 10, 11, 12}, game.Destinations(s, &s.Units[u]))
	})

	t.Run("road halves the cost", func(t *testing.T) {
		b := explored(t, 7, 1)
		u := b.Unit(1, game.Warrior, 0)
		s := b.Build()
		require.Equal(t, []int{1}, game.Destinations(s, &s.Units[u]))

		b = explored(t, 7, 1)
		u = b.Unit(1, game.Warrior, 0)
		b.Road(0, 1, 2, 3)
		s = b.Build()
		reach := game.ReachableTiles(s, &s.Units[u])
		require.Equal(t, map[int]float64{0: 0, 1: 0.5, 2: 1}, reach)
	})

	t.Run("enemy road", func(t *testing.T) {
		b := explored(t, 7, 1)
		u := b.Unit(1, game.Warrior, 0)
		b.Road(0, 1, 2, 3)
		b.City(2, 6, 1)
		s := b.Build()
		require.Equal(t, []int{1, 2}, game.Destinations(s, &s.Units[u]), "Unowned road is free to use")

		b = explored(t, 7, 1)
		u = b.Unit(1, game.Warrior, 0)
		b.Road(0, 1, 2, 3)
		b.City(2, 2, 1)
		s = b.Build()
		require.Equal(t, []int{1}, game.Destinations(s, &s.Units[u]), "Enemy road is not")
	})

	t.Run("zone of control", func(t *testing.T) {
		b := explored(t, 5, 2)
		u := b.Unit(1, game.Rider, 0)
		b.Unit(2, game.Warrior, 9)
		s := b.Build()
		require.Equal(t, []int{1, 2, 5, 6, 7}, game.Destinations(s, &s.Units[u]))

		b = explored(t, 5, 2)
		u = b.Unit(1, game.Rider, 0)
		b.Unit(2, game.Warrior, 7)
		s = b.Build()
		require.Equal(t, []int{1, 5, 6}, game.Destinations(s, &s.Units[u]), "Tiles next to the enemy stop the rider")
	})

	t.Run("creep ignores zone of control", func(t *testing.T) {
		b := explored(t, 5, 2)
		u := b.Unit(1, game.Hexapod, 0)
		b.Unit(2, game.Warrior, 7)
		s := b.Build()
		require.Equal(t, []int{1, 2, 5, 6}, game.Destinations(s, &s.Units[u]))
	})

	t.Run("forest and mountain", func(t *testing.T) {
		b := explored(t, 5, 1)
		u := b.Unit(1, game.Rider, 0)
		b.Terrain(game.Forest, 1)
		s := b.Build()
		require.Equal(t, []int{1}, game.Destinations(s, &s.Units[u]), "Forest ends movement")

		b = explored(t, 5, 1)
		u = b.Unit(1, game.Rider, 0)
		b.Terrain(game.Forest, 1).Road(0, 1)
		s = b.Build()
		require.Equal(t, []int{1, 2}, game.Destinations(s, &s.Units[u]), "Unless there is a road")

		b = explored(t, 5, 1)
		u = b.Unit(1, game.Rider, 0)
		b.Terrain(game.Mountain, 1)
		s = b.Build()
		require.Empty(t, game.Destinations(s, &s.Units[u]), "Mountains need climbing")

		b = explored(t, 5, 1)
		u = b.Unit(1, game.Rider, 0)
		b.Terrain(game.Mountain, 1).Tech(1, game.Climbing)
		s = b.Build()
		require.Equal(t, []int{1}, game.Destinations(s, &s.Units[u]))
	})

	t.Run("fly", func(t *testing.T) {
		b := explored(t, 5, 1)
		u := b.Unit(1, game.Dragon, 0)
		b.Terrain(game.Mountain, 1).Terrain(game.Forest, 2)
		b.Unit(2, game.Warrior, 4)
		s := b.Build()
		require.Equal(t, []int{1, 2, 3}, game.Destinations(s, &s.Units[u]))
	})

	t.Run("water", func(t *testing.T) {
		b := explored(t, 5, 1)
		u := b.Unit(1, game.Warrior, 0)
		b.Terrain(game.Water, 1)
		s := b.Build()
		require.Empty(t, game.Destinations(s, &s.Units[u]), "Land units need a port")
	})

	t.Run("unexplored", func(t *testing.T) {
		b, err := scenario.NewBuilder(5, 1, 2, meta.MaxTurns, 5)
		require.NoError(t, err)
		b.Explore(1, 0, 1)
		u := b.Unit(1, game.Rider, 0)
		s := b.Build()
		require.Equal(t, []int{1}, game.Destinations(s, &s.Units[u]))
	})
}

func TestEmbark(t *testing.T) {
	b := explored(t, 5, 1)
	u := b.Unit(1, game.Warrior, 0)
	b.City(1, 0, 1)
	b.Tech(1, game.Fishing)
	b.Terrain(game.Water, 1, 2).Structure(game.Port, 1)
	s := b.Build()
	before := s.Clone()
	require.Equal(t, []int{1}, game.Destinations(s, &s.Units[u]), "A friendly port ends movement")

	m := game.Step(u, 1)
	br := game.Execute(s, m)
	require.NoError(t, br.Err)
	require.Equal(t, game.Raft, s.Units[u].Type)
	require.Equal(t, game.Warrior, s.Units[u].Passenger)
	require.Equal(t, 100, s.Units[u].Health)
	requireFingerprints(t, s)

	br.Undo.Apply(s)
	require.NoError(t, game.Diff(before, s, m))
}
