package scenario

import (
	"testing"

	"polyfish/game"
	"polyfish/meta"

	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"duel", "capture", "lethal", "skirmish"} {
		t.Run(name, func(t *testing.T) {
			sc, err := ByName(name, 1, meta.MaxTurns)
			require.NoError(t, err)
			require.Equal(t, name, sc.Name)
			s := sc.State
			require.Equal(t, 1, s.Settings.Pov)
			require.Equal(t, 1, s.Settings.Turn)
			require.Equal(t, 2, s.LivingTribes())
			for _, tribe := range s.Tribes {
				require.Equal(t, game.ComputeFingerprint(s, tribe.Owner), tribe.Hash, "Build hashes tribe %d", tribe.Owner)
				require.NotEmpty(t, tribe.Cities)
			}
			require.NotEmpty(t, game.LegalMoves(s))
		})
	}

	_, err := ByName("tutorial", 1, meta.MaxTurns)
	require.ErrorContains(t, err, "unknown scenario")
}

func TestByNameTurnLimit(t *testing.T) {
	for _, name := range []string{"duel", "capture", "lethal", "skirmish"} {
		sc, err := ByName(name, 1, 4)
		require.NoError(t, err)
		require.Equal(t, 4, sc.State.Settings.MaxTurns, name)
	}
	_, err := ByName("duel", 1, 0)
	require.Error(t, err, "A game needs at least one turn")
}

func TestFixtures(t *testing.T) {
	t.Run("duel", func(t *testing.T) {
		sc, err := Duel(1)
		require.NoError(t, err)
		s := sc.State
		a, d := s.Units[sc.Attacker], s.Units[sc.Defender]
		require.Equal(t, 1, a.Owner)
		require.Equal(t, 2, d.Owner)
		require.Equal(t, a.Health, d.Health)
		require.True(t, s.Adjacent(a.Tile, d.Tile))
		require.Equal(t, sc.Target, d.Tile)
	})

	t.Run("capture", func(t *testing.T) {
		sc, err := VillageCapture(1)
		require.NoError(t, err)
		s := sc.State
		require.Equal(t, game.Village, s.Tiles[sc.Target].Structure)
		require.Equal(t, sc.Target, s.Units[sc.Attacker].Tile)
		require.Nil(t, s.CityAt(sc.Target))
	})

	t.Run("lethal", func(t *testing.T) {
		sc, err := LethalCapture(1)
		require.NoError(t, err)
		s := sc.State
		c := s.CityAt(sc.Target)
		require.NotNil(t, c)
		require.Equal(t, 2, c.Owner)
		require.Len(t, s.Tribe(2).Cities, 1, "The target is the last city")
		require.Equal(t, sc.Target, s.Units[sc.Attacker].Tile)
	})

	t.Run("seed changes keys only", func(t *testing.T) {
		a, err := Skirmish(1)
		require.NoError(t, err)
		b, err := Skirmish(2)
		require.NoError(t, err)
		require.Equal(t, a.State.Tiles, b.State.Tiles)
		require.Equal(t, a.State.Units, b.State.Units)
		require.NotEqual(t, a.State.Tribes[0].Hash, b.State.Tribes[0].Hash)
	})
}

func TestBuilder(t *testing.T) {
	b, err := NewBuilder(4, 3, 2, 10, 9)
	require.NoError(t, err)
	b.Explore(1, 0, 1).Stars(1, 7).Tech(2, game.Riding).Turn(3, 2)
	city := b.City(1, 0, 2)
	unit := b.Unit(2, game.Rider, 11)
	s := b.Build()

	require.Len(t, s.Tiles, 12)
	require.True(t, s.Tiles[1].ExploredBy(1))
	require.False(t, s.Tiles[2].ExploredBy(1))
	require.Equal(t, 7, s.Tribe(1).Stars)
	require.True(t, s.Tribe(2).HasTech(game.Riding))
	require.Equal(t, 3, s.Settings.Turn)
	require.Equal(t, 2, s.Settings.Pov)
	require.Equal(t, []int{0, 1, 4, 5}, s.Cities[city].Territory)
	require.Equal(t, city, s.Tiles[5].Ruler)
	require.Equal(t, unit, s.UnitAt(11).ID)
	require.Equal(t, 100, s.Units[unit].Health)

	_, err = NewBuilder(4, 3, 0, 10, 9)
	require.Error(t, err, "A world needs a tribe")
}
