package game

import (
	"container/heap"

	"golang.org/x/exp/slices"
)

type reachNode struct {
	tile     int
	cost     float64
	terminal bool
}

// reachHeap is a min-heap of frontier tiles keyed by accumulated cost, ties
// broken by tile index.
type reachHeap []reachNode

func (h reachHeap) Len() int { return len(h) }
func (h reachHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].tile < h[j].tile
}
func (h reachHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *reachHeap) Push(x any)   { *h = append(*h, x.(reachNode)) }
func (h *reachHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// ReachableTiles returns every tile the unit can step to this turn mapped to
// the movement it costs. The unit's own tile is included at cost 0.
func ReachableTiles(s *WorldState, u *Unit) map[int]float64 {
	budget := float64(s.unitStats(u).Movement)
	reachable := map[int]float64{u.Tile: 0}

	open := &reachHeap{{tile: u.Tile}}
	for open.Len() > 0 {
		cur := heap.Pop(open).(reachNode)
		if cur.terminal || cur.cost > reachable[cur.tile] {
			continue
		}
		for _, n := range s.Neighbors(cur.tile) {
			if n == u.Tile || !s.isSteppable(u, n) {
				continue
			}
			cost := cur.cost + s.moveCost(u, cur.tile, n)
			if cost-budget > 1e-6 {
				continue
			}
			if prev, ok := reachable[n]; ok && prev <= cost {
				continue
			}
			reachable[n] = cost
			heap.Push(open, reachNode{tile: n, cost: cost, terminal: s.isTerminal(u, n)})
		}
	}
	return reachable
}

// Destinations returns the reachable tiles other than the unit's own, sorted.
func Destinations(s *WorldState, u *Unit) []int {
	reachable := ReachableTiles(s, u)
	tiles := make([]int, 0, len(reachable))
	for tile := range reachable {
		if tile != u.Tile {
			tiles = append(tiles, tile)
		}
	}
	slices.Sort(tiles)
	return tiles
}

func (s *WorldState) moveCost(u *Unit, from, to int) float64 {
	if s.skilled(u, FlySkill, CreepSkill) {
		return 1
	}
	cost := 1.0
	if s.roadUsable(from, u.Owner) && s.roadUsable(to, u.Owner) {
		cost = 0.5
	}
	if s.Tiles[to].Terrain == Ice && s.skilled(u, SkateSkill) {
		cost *= 0.5
	}
	return cost
}

// isTerminal reports whether movement must stop on tile. Rules are checked
// in order and the first that applies decides.
func (s *WorldState) isTerminal(u *Unit, tile int) bool {
	if s.skilled(u, FlySkill) {
		return false
	}
	creep := s.skilled(u, CreepSkill)

	t := &s.Tiles[tile]
	switch t.Terrain {
	case Forest:
		if !creep && !s.roadUsable(tile, u.Owner) {
			return true
		}
	case Mountain:
		if !creep {
			return true
		}
	}

	aquatic := s.isAquatic(u)
	if !aquatic && s.isFriendlyPort(tile, u.Owner) {
		return true
	}
	if aquatic && isLand(t.Terrain) {
		return true
	}

	return !creep && s.adjacentToEnemy(tile, u.Owner)
}
