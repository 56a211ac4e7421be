// Package posecache keeps searched move sequences in memory, keyed by the
// fingerprint of the tribe to move.
package posecache

import (
	"sync"
	"sync/atomic"

	"polyfish/game"

	"golang.org/x/exp/slices"
)

// Cache is a bounded map evicting its oldest entries first. It is safe for
// concurrent use.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[uint64][]game.Move
	order    []uint64 // insertion ring
	next     int

	hits   atomic.Int64
	misses atomic.Int64
}

type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

func New(capacity int) *Cache {
	capacity = max(capacity, 1)
	return &Cache{
		capacity: capacity,
		entries:  make(map[uint64][]game.Move, capacity),
		order:    make([]uint64, 0, capacity),
	}
}

func (c *Cache) Get(hash uint64) ([]game.Move, bool) {
	c.mu.RLock()
	moves, ok := c.entries[hash]
	c.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return slices.Clone(moves), true
}

// Put stores a copy of moves. Replacing an entry keeps its age.
func (c *Cache) Put(hash uint64, moves []game.Move) {
	if len(moves) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[hash]; ok {
		c.entries[hash] = slices.Clone(moves)
		return
	}
	if len(c.order) < c.capacity {
		c.order = append(c.order, hash)
	} else {
		delete(c.entries, c.order[c.next])
		c.order[c.next] = hash
		c.next = (c.next + 1) % c.capacity
	}
	c.entries[hash] = slices.Clone(moves)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Stats() Stats {
	return Stats{Entries: c.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}
