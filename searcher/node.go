package searcher

import (
	"math"

	"polyfish/game"
)

// node is one position of the search tree. value accumulates results from
// the perspective of the parent's tribe, the one that chose move.
type node struct {
	parent   *node
	move     game.Move
	pov      int // tribe to move, set on expansion
	children []*node
	prior    float64
	visits   int
	value    float64

	// statistics at the time a worker copied the tree
	baseVisits int
	baseValue  float64

	expanded bool
	terminal bool
	pruned   bool // the move turned out to be illegal
}

func newRoot(pov int) *node {
	return &node{pov: pov, move: game.Move{Src: -1, Dst: -1}}
}

func (n *node) q() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.value / float64(n.visits)
}

// expand creates a zero-statistics child per move.
func (n *node) expand(pov int, moves []game.Move, priors []float64) {
	n.pov = pov
	n.expanded = true
	n.children = make([]*node, len(moves))
	for i, m := range moves {
		n.children[i] = &node{parent: n, move: m, prior: priors[i]}
	}
}

// selectChild picks the child with the highest PUCT score. EndTurn is
// passed over at the start of a turn while there is anything else to try.
func (n *node) selectChild(c float64, turnStart bool) *node {
	total, open := 0, 0
	for _, child := range n.children {
		if !child.pruned {
			total += child.visits
			open++
		}
	}
	sqrtN := math.Sqrt(float64(max(total, 1)))

	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		if child.pruned {
			continue
		}
		if turnStart && open > 1 && child.move.Kind == game.EndTurnMove {
			continue
		}
		score := puct(child.q(), child.prior, child.visits, sqrtN, c)
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// backup adds value, given from the root tribe's perspective, to every node
// from n up to the root.
func (n *node) backup(rootPov int, value float64) {
	for node := n; node != nil; node = node.parent {
		node.visits++
		switch {
		case node.parent == nil:
			node.value += value
		case node.parent.pov == rootPov:
			node.value += value
		default:
			node.value -= value
		}
	}
}

func (n *node) child(m game.Move) *node {
	for _, c := range n.children {
		if c.move == m {
			return c
		}
	}
	return nil
}

// mostVisited returns the unpruned child with the most visits, if any was
// visited at all.
func (n *node) mostVisited() *node {
	var best *node
	for _, c := range n.children {
		if c.pruned || c.visits == 0 {
			continue
		}
		if best == nil || c.visits > best.visits {
			best = c
		}
	}
	return best
}

// principalVariation follows the most visited children from n.
func (n *node) principalVariation() []game.Move {
	var moves []game.Move
	for c := n.mostVisited(); c != nil; c = c.mostVisited() {
		moves = append(moves, c.move)
	}
	return moves
}

// snapshot deep-copies the subtree for a worker and records the current
// statistics as its base.
func (n *node) snapshot(parent *node) *node {
	c := &node{
		parent:     parent,
		move:       n.move,
		pov:        n.pov,
		prior:      n.prior,
		visits:     n.visits,
		value:      n.value,
		baseVisits: n.visits,
		baseValue:  n.value,
		expanded:   n.expanded,
		terminal:   n.terminal,
		pruned:     n.pruned,
	}
	if len(n.children) > 0 {
		c.children = make([]*node, len(n.children))
		for i, child := range n.children {
			c.children[i] = child.snapshot(c)
		}
	}
	return c
}

// merge adds the statistics a worker gathered in src since its snapshot and
// adopts the subtrees the worker created.
func (n *node) merge(src *node) {
	n.visits += src.visits - src.baseVisits
	n.value += src.value - src.baseValue
	n.pruned = n.pruned || src.pruned
	n.terminal = n.terminal || src.terminal
	if !src.expanded {
		return
	}
	if !n.expanded {
		n.pov = src.pov
		n.expanded = true
	}
	for _, child := range src.children {
		if dst := n.child(child.move); dst != nil {
			dst.merge(child)
			continue
		}
		child.adopt(n)
		n.children = append(n.children, child)
	}
}

// adopt moves a worker-created subtree into the shared tree. Its statistics
// are new in full.
func (n *node) adopt(parent *node) {
	n.parent = parent
	n.baseVisits, n.baseValue = 0, 0
	for _, child := range n.children {
		child.adopt(n)
	}
}

// size counts the nodes of the subtree.
func (n *node) size() int {
	total := 1
	for _, c := range n.children {
		total += c.size()
	}
	return total
}
