package searcher

import (
	"context"
	"fmt"
	"time"

	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

type MCTS struct {
	workers     int
	iterations  int
	duration    time.Duration
	depth       int
	horizon     int
	batch       int
	exploration float64
	temperature float64
	alpha       float64
	epsilon     float64
	seed        uint64
	evaluate    game.Evaluate
	predictor   Predictor
	cache       PoseCache
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithDepth bounds the number of moves one iteration may execute.
func WithDepth(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithTurnHorizon stops descents and rollouts that many turns past the root.
func WithTurnHorizon(turns int) Option {
	return func(m *MCTS) {
		if turns > 0 {
			m.horizon = turns
		}
	}
}

// WithBatch sets the iterations a worker runs between two merges.
func WithBatch(batch int) Option {
	return func(m *MCTS) {
		if batch > 0 {
			m.batch = batch
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithPredictor(predictor Predictor) Option {
	return func(m *MCTS) {
		m.predictor = predictor
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithTemperature sets the temperature agents sample root moves with.
func WithTemperature(temperature float64) Option {
	return func(m *MCTS) {
		if temperature >= 0 {
			m.temperature = temperature
		}
	}
}

// WithDirichlet mixes Dirichlet(alpha) noise into the root priors with
// weight epsilon.
func WithDirichlet(alpha, epsilon float64) Option {
	return func(m *MCTS) {
		m.alpha = alpha
		m.epsilon = epsilon
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithPoseCache(cache PoseCache) Option {
	return func(m *MCTS) {
		m.cache = cache
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// FromConfig translates the search section of a configuration into options.
func FromConfig(cfg meta.Config) []Option {
	sc := cfg.Search
	return []Option{
		WithIterations(sc.Iterations),
		WithDuration(sc.Duration),
		WithDepth(sc.Depth),
		WithTurnHorizon(sc.TurnHorizon),
		WithBatch(sc.Batch),
		WithExploration(sc.Exploration),
		WithTemperature(sc.Temperature),
		WithDirichlet(sc.Dirichlet.Alpha, sc.Dirichlet.Epsilon),
		WithSeed(sc.Seed),
		WithEvaluationFn(game.Evaluators[sc.Evaluate]),
	}
}

func NewMCTS(workers int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		workers:     max(workers, 1),
		depth:       meta.Depth,
		batch:       meta.Batch,
		exploration: Exploration,
		seed:        1,
		evaluate:    game.EvaluateBalanced,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	return m
}

func (m *MCTS) Workers() int { return m.workers }

func (m *MCTS) Temperature() float64 { return m.temperature }

// Search runs the tree search from s. s is mutated during the search and
// restored before Search returns. Budgets and ctx are only checked between
// rounds, so a round in progress always completes.
func (m *MCTS) Search(ctx context.Context, s *game.WorldState) Result {
	start := time.Now()
	m.metrics.Start(m.workers, m.depth, m.evaluate)
	pov := s.Settings.Pov
	hash := game.Fingerprint(s, pov)

	if res, ok := m.lookup(s, hash); ok {
		return res
	}

	moves := game.LegalMoves(s)
	if len(moves) == 0 {
		return Result{StopReason: StopNoMoves, Metric: m.metrics.Complete()}
	}

	root := newRoot(pov)
	rng := rand.New(rand.NewSource(m.seed))
	seeder := &worker{
		state:     s,
		root:      root,
		rootPov:   pov,
		rootTurn:  s.Settings.Turn,
		depth:     m.depth,
		evaluate:  m.evaluate,
		predictor: m.predictor,
		rng:       rng,
		metrics:   m.metrics,
	}
	seeder.expandRoot(moves)
	addNoise(root, rng, m.alpha, m.epsilon)

	log.Debug().
		Int("workers", m.workers).
		Int("iterations", m.iterations).
		Dur("duration", m.duration).
		Int("moves", len(moves)).
		Uint64("hash", hash).
		Msg("search started")

	reason, done, maxPath, err := m.rounds(ctx, s, root, start)

	res := Result{
		Sequence:   root.principalVariation(),
		StopReason: reason,
		Iterations: done,
		MaxPath:    maxPath,
		Err:        err,
	}
	for _, c := range root.children {
		if c.pruned {
			continue
		}
		res.Visits = append(res.Visits, Visit{Move: c.move, N: c.visits, W: c.value, Q: c.q(), P: c.prior})
	}
	if first := root.mostVisited(); first != nil {
		res.Score = first.q()
	}
	if m.cache != nil && err == nil && len(res.Sequence) > 0 {
		m.cache.Put(hash, turnPrefix(res.Sequence))
	}
	res.Metric = m.metrics.Complete()

	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.
		Str("stop", reason.String()).
		Int("iterations", done).
		Int("max_path", maxPath).
		Int("nodes", root.size()).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")
	return res
}

// lookup returns a cached sequence whose first move is still legal.
func (m *MCTS) lookup(s *game.WorldState, hash uint64) (Result, bool) {
	if m.cache == nil {
		return Result{}, false
	}
	seq, ok := m.cache.Get(hash)
	if !ok || len(seq) == 0 || !slices.Contains(game.LegalMoves(s), seq[0]) {
		return Result{}, false
	}
	m.metrics.SetCacheHit(true)
	log.Debug().Uint64("hash", hash).Str("move", seq[0].String()).Msg("pose cache hit")
	return Result{
		Sequence:   slices.Clone(seq),
		StopReason: StopCached,
		Metric:     m.metrics.Complete(),
	}, true
}

// rounds runs iteration batches until a budget is spent. With one worker the
// live state and the shared tree are used directly; otherwise every worker
// gets a private clone of both and the driver merges the deltas after the
// whole round has finished.
func (m *MCTS) rounds(ctx context.Context, s *game.WorldState, root *node, start time.Time) (StopReason, int, int, error) {
	var deadline time.Time
	if m.duration > 0 {
		deadline = start.Add(m.duration)
	}
	done, maxPath := 0, 0

	for round := 0; ; round++ {
		switch {
		case ctx.Err() != nil:
			return StopCancelled, done, maxPath, nil
		case m.iterations > 0 && done >= m.iterations:
			return StopIterations, done, maxPath, nil
		case !deadline.IsZero() && !time.Now().Before(deadline):
			return StopDuration, done, maxPath, nil
		}

		quotas := m.quotas(done)
		workers := make([]*worker, len(quotas))
		for i := range workers {
			w := &worker{
				state:     s,
				root:      root,
				rootPov:   root.pov,
				rootTurn:  s.Settings.Turn,
				depth:     m.depth,
				horizon:   m.horizon,
				c:         m.exploration,
				evaluate:  m.evaluate,
				predictor: m.predictor,
				rng:       rand.New(rand.NewSource(m.seed + uint64(round*m.workers+i) + 1)),
				metrics:   m.metrics,
			}
			if m.workers > 1 {
				w.state = s.Clone()
				w.root = root.snapshot(nil)
			}
			workers[i] = w
		}

		var g errgroup.Group
		for i, w := range workers {
			if m.workers == 1 {
				if err := w.run(quotas[i]); err != nil {
					return StopFailed, done + w.iterations, max(maxPath, w.maxPath), err
				}
				continue
			}
			g.Go(func() error { return w.run(quotas[i]) })
		}
		err := g.Wait()

		for _, w := range workers {
			if m.workers > 1 {
				root.merge(w.root)
			}
			done += w.iterations
			maxPath = max(maxPath, w.maxPath)
		}
		m.metrics.AddRound()
		if err != nil {
			return StopFailed, done, maxPath, fmt.Errorf("round %d: %w", round, err)
		}
	}
}

// quotas splits the next round between the workers without ever exceeding
// the iteration budget.
func (m *MCTS) quotas(done int) []int {
	quotas := make([]int, m.workers)
	if m.iterations <= 0 {
		for i := range quotas {
			quotas[i] = m.batch
		}
		return quotas
	}
	remaining := m.iterations - done
	per := min(m.batch, (remaining+m.workers-1)/m.workers)
	for i := range quotas {
		quotas[i] = min(per, remaining)
		remaining -= quotas[i]
	}
	return quotas
}

// expandRoot gives the root its children before any worker starts.
func (w *worker) expandRoot(moves []game.Move) {
	s := w.state
	if w.predictor != nil {
		if p, err := w.predictor.Predict(s, moves); err == nil {
			if priors, ok := normalizePriors(p.Priors, len(moves)); ok {
				w.root.expand(s.Settings.Pov, moves, priors)
				return
			}
		} else {
			log.Warn().Err(err).Msg("predictor failed, using heuristic priors")
		}
	}
	w.root.expand(s.Settings.Pov, moves, heuristicPriors(moves))
}

// turnPrefix cuts a sequence after the first EndTurn.
func turnPrefix(moves []game.Move) []game.Move {
	for i, m := range moves {
		if m.Kind == game.EndTurnMove {
			return slices.Clone(moves[:i+1])
		}
	}
	return slices.Clone(moves)
}
