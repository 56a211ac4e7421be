package metrics

import (
	"sync/atomic"
	"time"

	"polyfish/game"

	"github.com/google/uuid"
)

type AgentConfig struct {
	ID         int
	Workers    int
	Duration   time.Duration
	Iterations int
	Depth      int
	Evaluate   string // name of the evaluation function
}

type SearchMetric struct {
	RunID        uuid.UUID
	Workers      int
	Duration     time.Duration
	Iterations   int
	Rounds       int
	Depth        int
	MaxPath      int
	Evaluate     game.Evaluate
	FullPlayouts int
	Illegal      int
	CacheHit     bool
}

type MoveMetric struct {
	Step   int
	Player int // owner id
	Move   string
	SearchMetric
}

type GameMetric struct {
	ID             uuid.UUID
	StartingPlayer int // owner id
	Winner         int // owner id, 0 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Turns          int
}

// Collector gathers the statistics of one search. Every method except Start
// and Complete may be called from several workers at once.
type Collector interface {
	Start(workers, depth int, evaluate game.Evaluate)
	SetCacheHit(value bool)
	AddIteration()
	AddFullPlayout()
	AddRound()
	AddIllegal()
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	runID        uuid.UUID
	workers      int
	depth        int
	evaluate     game.Evaluate
	startTime    time.Time
	iterations   atomic.Int32
	rounds       atomic.Int32
	fullPlayouts atomic.Int32
	illegal      atomic.Int32
	maxPath      atomic.Int32
	cacheHit     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetCacheHit(value bool) {
	m.cacheHit.Store(value)
}

func (m *collector) Start(workers, depth int, evaluate game.Evaluate) {
	m.runID = uuid.New()
	m.startTime = time.Now()
	m.workers = workers
	m.depth = depth
	m.evaluate = evaluate
	m.iterations.Store(0)
	m.rounds.Store(0)
	m.fullPlayouts.Store(0)
	m.illegal.Store(0)
	m.maxPath.Store(0)
	m.cacheHit.Store(false)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddRound() {
	m.rounds.Add(1)
}

func (m *collector) AddIllegal() {
	m.illegal.Add(1)
}

func (m *collector) ObserveDepth(depth int) {
	for {
		cur := m.maxPath.Load()
		if int32(depth) <= cur || m.maxPath.CompareAndSwap(cur, int32(depth)) {
			return
		}
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		RunID:        m.runID,
		Workers:      m.workers,
		Duration:     time.Since(m.startTime),
		Iterations:   int(m.iterations.Load()),
		Rounds:       int(m.rounds.Load()),
		Depth:        m.depth,
		MaxPath:      int(m.maxPath.Load()),
		Evaluate:     m.evaluate,
		FullPlayouts: int(m.fullPlayouts.Load()),
		Illegal:      int(m.illegal.Load()),
		CacheHit:     m.cacheHit.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, depth int, evaluate game.Evaluate) {}
func (m *dummyCollector) SetCacheHit(value bool)                          {}
func (m *dummyCollector) AddIteration()                                   {}
func (m *dummyCollector) AddFullPlayout()                                 {}
func (m *dummyCollector) AddRound()                                       {}
func (m *dummyCollector) AddIllegal()                                     {}
func (m *dummyCollector) ObserveDepth(depth int)                          {}
func (m *dummyCollector) Complete() SearchMetric                          { return SearchMetric{} }
