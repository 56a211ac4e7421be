// meta/meta.go
package meta

import "time"

// Workers defines the default number of search workers.
const Workers = 4

// Iterations defines the default number of MCTS iterations per search.
const Iterations = 400

// Depth defines the default maximum path length of one iteration.
const Depth = 8

// Batch is the number of iterations a worker runs between merges.
const Batch = 64

// Exploration is the default PUCT exploration constant.
const Exploration = 1.0

// MaxTurns is the default turn limit of a game.
const MaxTurns = 30

// MaxTribes is the most tribes a world can hold (explorer sets are 32-bit masks).
const MaxTribes = 32

// CandidateCap is the declared upper bound of legal move candidates.
const CandidateCap = 512

// KeySeed seeds the default Zobrist key table.
const KeySeed = 0x5eed

// Duration is the default time budget of a CLI search.
const Duration = 2 * time.Second
