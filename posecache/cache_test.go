package posecache

import (
	"sync"
	"testing"

	"polyfish/game"

	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("get after put", func(t *testing.T) {
		c := New(4)
		c.Put(1, []game.Move{game.Step(0, 3), game.EndTurn()})

		moves, ok := c.Get(1)
		require.True(t, ok)
		require.Equal(t, []game.Move{game.Step(0, 3), game.EndTurn()}, moves)

		_, ok = c.Get(2)
		require.False(t, ok, "Unknown hash should miss")
		require.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 1}, c.Stats())
	})

	t.Run("returned sequences are copies", func(t *testing.T) {
		c := New(4)
		stored := []game.Move{game.EndTurn()}
		c.Put(1, stored)
		stored[0] = game.Harvest(5)

		moves, _ := c.Get(1)
		moves[0] = game.Harvest(6)

		again, _ := c.Get(1)
		require.Equal(t, game.EndTurn(), again[0], "Callers should not alias cached moves")
	})

	t.Run("evicts the oldest entry", func(t *testing.T) {
		c := New(2)
		c.Put(1, []game.Move{game.EndTurn()})
		c.Put(2, []game.Move{game.EndTurn()})
		c.Put(1, []game.Move{game.Harvest(3)})
		c.Put(3, []game.Move{game.EndTurn()})

		_, ok := c.Get(1)
		require.False(t, ok, "First inserted entry should be evicted")
		_, ok = c.Get(2)
		require.True(t, ok)
		_, ok = c.Get(3)
		require.True(t, ok)
		require.Equal(t, 2, c.Len())
	})

	t.Run("ignores empty sequences", func(t *testing.T) {
		c := New(2)
		c.Put(1, nil)
		require.Zero(t, c.Len())
	})

	t.Run("concurrent use", func(t *testing.T) {
		c := New(16)
		var wg sync.WaitGroup
		for w := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 100 {
					c.Put(uint64(w*100+i), []game.Move{game.EndTurn()})
					c.Get(uint64(i))
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 16, c.Len(), "Cache should stay at capacity")
	})
}
