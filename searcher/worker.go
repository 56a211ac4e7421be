package searcher

import (
	"fmt"

	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/utils"

	"golang.org/x/exp/rand"
)

// worker runs complete iterations against one state it owns. Every
// iteration leaves the state as it found it.
type worker struct {
	state     *game.WorldState
	root      *node
	rootPov   int
	rootTurn  int
	depth     int
	horizon   int
	c         float64
	evaluate  game.Evaluate
	predictor Predictor
	rng       *rand.Rand
	metrics   metrics.Collector

	undo       []game.Undo
	iterations int
	maxPath    int
}

// run performs n iterations and stops at the first failing one.
func (w *worker) run(n int) error {
	for range n {
		if err := w.iterate(); err != nil {
			return err
		}
		w.iterations++
		w.metrics.AddIteration()
	}
	return nil
}

// iterate descends from the root, evaluates the leaf and backs the value up.
// The undo stack is unwound on every path out, panics included.
func (w *worker) iterate() (err error) {
	s := w.state
	var before *game.WorldState
	if game.AssertUndo {
		before = s.Clone()
	}
	w.undo = w.undo[:0]
	defer func() {
		for i := len(w.undo) - 1; i >= 0; i-- {
			w.undo[i].Apply(s)
		}
		w.undo = w.undo[:0]
		if r := recover(); r != nil {
			err = fmt.Errorf("iteration panicked: %v", r)
			return
		}
		if game.AssertUndo {
			if diff := game.Diff(before, s, game.Move{Src: -1, Dst: -1}); diff != nil {
				panic(diff)
			}
		}
	}()

	n := w.root
	var value float64
	for {
		if n.terminal || s.Settings.GameOver {
			n.terminal = true
			value = game.Outcome(s, w.rootPov)
			break
		}
		if !n.expanded {
			value = w.expandAndEvaluate(n)
			break
		}
		if len(w.undo) >= w.depth || w.beyondHorizon() {
			value = w.score()
			break
		}
		child := n.selectChild(w.c, len(s.Settings.RecentMoves) == 0)
		if child == nil {
			value = w.score()
			break
		}
		b := game.Execute(s, child.move)
		if b.Err != nil {
			child.pruned = true
			w.metrics.AddIllegal()
			continue
		}
		w.undo = append(w.undo, b.Undo)
		n = child
	}

	w.maxPath = max(w.maxPath, len(w.undo))
	w.metrics.ObserveDepth(len(w.undo))
	n.backup(w.rootPov, value)
	return nil
}

// expandAndEvaluate creates the children of n and returns the leaf value
// from the root tribe's perspective.
func (w *worker) expandAndEvaluate(n *node) float64 {
	s := w.state
	moves := game.LegalMoves(s)
	if len(moves) == 0 {
		n.terminal = true
		n.pov = s.Settings.Pov
		n.expanded = true
		return game.Outcome(s, w.rootPov)
	}

	if w.predictor != nil {
		if p, err := w.predictor.Predict(s, moves); err == nil {
			if priors, ok := normalizePriors(p.Priors, len(moves)); ok {
				n.expand(s.Settings.Pov, moves, priors)
				return w.fromPov(s.Settings.Pov, utils.Clamp(p.Value, LOSS, WIN))
			}
		}
	}
	n.expand(s.Settings.Pov, moves, heuristicPriors(moves))
	w.rollout()
	return w.score()
}

// rollout plays random moves until the game ends, the depth budget is spent
// or the turn horizon is reached.
func (w *worker) rollout() {
	s := w.state
	for len(w.undo) < w.depth && !s.Settings.GameOver && !w.beyondHorizon() {
		moves := game.LegalMoves(s)
		played := false
		for len(moves) > 0 {
			i := w.rng.Intn(len(moves))
			b := game.Execute(s, moves[i])
			if b.Err == nil {
				w.undo = append(w.undo, b.Undo)
				played = true
				break
			}
			w.metrics.AddIllegal()
			moves = utils.Without(moves, i)
		}
		if !played {
			return
		}
	}
}

// score evaluates the current state from the root tribe's perspective.
func (w *worker) score() float64 {
	s := w.state
	if s.Settings.GameOver {
		w.metrics.AddFullPlayout()
		return game.Outcome(s, w.rootPov)
	}
	return w.fromPov(s.Settings.Pov, w.evaluate(s))
}

func (w *worker) fromPov(pov int, value float64) float64 {
	if pov == w.rootPov {
		return value
	}
	return -value
}

func (w *worker) beyondHorizon() bool {
	return w.horizon > 0 && w.state.Settings.Turn-w.rootTurn >= w.horizon
}
