package engine

import (
	"context"
	"time"

	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Update is one played move and the mover's fingerprint afterwards.
type Update struct {
	Move   game.Move
	Player int
	Hash   uint64
}

// Local plays a game in process, one agent per tribe.
type Local struct {
	State    *game.WorldState
	Agents   []agent.Agent
	MaxMoves int
	History  []Update
}

var _ Engine = (*Local)(nil)

func LocalEngine(state *game.WorldState, agents []agent.Agent) *Local {
	if len(agents) != len(state.Tribes) {
		panic("number of tribes does not match number of agents")
	}
	if len(agents) < 2 {
		panic("need at least two agents")
	}
	return &Local{State: state, Agents: agents, MaxMoves: MaxMoves}
}

// Run executes the game loop until the game is over, the move limit is hit
// or ctx is done. Forced follow-up choices are left to the agents.
func (e *Local) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric) {
	s := e.State
	gm := metrics.GameMetric{
		ID:             uuid.New(),
		StartingPlayer: s.Settings.Pov,
		StartTime:      time.Now(),
	}
	log.Info().Str("game", gm.ID.String()).Int("tribe", gm.StartingPlayer).Msg("game started")

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !game.IsGameOver(s) && step < e.MaxMoves && ctx.Err() == nil {
		step++
		pov := s.Settings.Pov
		candidate, metric := e.Agents[pov-1].FindMove(ctx, s)

		move, ok := e.play(candidate)
		if !ok {
			log.Error().Int("tribe", pov).Int("turn", s.Settings.Turn).Msg("no playable move")
			break
		}
		e.History = append(e.History, Update{Move: move, Player: pov, Hash: game.Fingerprint(s, pov)})
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       pov,
			Move:         move.String(),
			SearchMetric: metric,
		})
	}

	winner := game.Winner(s)
	gm.Winner = winner
	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.TotalMoves = step
	gm.Turns = s.Settings.Turn

	if game.IsGameOver(s) {
		log.Info().Str("game", gm.ID.String()).Int("winner", winner).Int("moves", step).Msg("game over")
	} else {
		log.Info().Str("game", gm.ID.String()).Int("moves", step).Msg("stopped before game over")
	}
	return winner, gm, moveMetrics
}

// play executes the agent's move, or the first legal move that executes when
// the agent's choice is rejected.
func (e *Local) play(candidate game.Move) (game.Move, bool) {
	s := e.State
	if b := game.Execute(s, candidate); b.Err == nil {
		return candidate, true
	}
	log.Warn().Str("move", candidate.String()).Msg("agent returned an illegal move, falling back")
	for _, m := range game.LegalMoves(s) {
		if b := game.Execute(s, m); b.Err == nil {
			return m, true
		}
	}
	return game.Move{}, false
}
