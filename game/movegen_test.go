package game_test

import (
	"testing"

	"polyfish/game"
	"polyfish/scenario"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestLegalMoves(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := load(t, scenario.Skirmish).State
		b := a.Clone()
		require.Equal(t, game.LegalMoves(a), game.LegalMoves(b))
		require.Equal(t, game.LegalMoves(a), game.LegalMoves(a), "Repeated calls agree")
	})

	t.Run("priority order", func(t *testing.T) {
		s := load(t, scenario.Skirmish).State
		moves := game.LegalMoves(s)
		require.Contains(t, moves, game.EndTurn())
		for i := 1; i < len(moves); i++ {
			require.GreaterOrEqual(t, game.Priority(moves[i-1]), game.Priority(moves[i]), "Move %d", i)
		}
		require.Equal(t, game.EndTurn(), moves[len(moves)-1], "Ending the turn comes last")
	})

	t.Run("all execute", func(t *testing.T) {
		s := load(t, scenario.Skirmish).State
		for _, m := range game.LegalMoves(s) {
			b := game.Execute(s, m)
			require.NoError(t, b.Err, "Generated %s", m)
			b.Undo.Apply(s)
		}
	})

	t.Run("duel", func(t *testing.T) {
		sc := load(t, scenario.Duel)
		moves := game.LegalMoves(sc.State)
		require.Contains(t, moves, game.Attack(sc.Attacker, sc.Target))
		require.Contains(t, moves, game.Step(sc.Attacker, 6))
		require.NotContains(t, moves, game.Step(sc.Attacker, sc.Target), "Occupied")
		require.NotContains(t, moves, game.Summon(0, 0, game.Rider), "Riding is not researched")
		require.Contains(t, moves, game.Summon(0, 0, game.Warrior))
		require.Contains(t, moves, game.Research(game.Riding))
		for _, m := range moves {
			require.NotEqual(t, sc.Defender, m.Src, "Only the pov tribe moves")
		}
	})

	t.Run("attacks before steps", func(t *testing.T) {
		sc := load(t, scenario.Duel)
		moves := game.LegalMoves(sc.State)
		attack := slices.Index(moves, game.Attack(sc.Attacker, sc.Target))
		step := slices.Index(moves, game.Step(sc.Attacker, 6))
		summon := slices.Index(moves, game.Summon(0, 0, game.Warrior))
		require.NotEqual(t, -1, attack)
		require.Less(t, attack, step, "Attacks are searched before movement")
		require.Less(t, step, summon, "Movement comes before the economy")

		require.Greater(t, game.Priority(game.Capture(0, 1, game.CaptureCity)), game.Priority(game.Ability(0, 0, game.DisbandAbility)))
		require.Greater(t, game.Priority(game.Ability(0, 0, game.DisbandAbility)), game.Priority(game.Attack(0, 1)))
		require.Greater(t, game.Priority(game.Step(0, 1)), game.Priority(game.Harvest(1)))
		require.Greater(t, game.Priority(game.Step(0, 1)), game.Priority(game.Research(game.Riding)))
	})

	t.Run("captures first", func(t *testing.T) {
		sc := load(t, scenario.LethalCapture)
		moves := game.LegalMoves(sc.State)
		require.Equal(t, game.Capture(sc.Attacker, sc.Target, game.CaptureCity), moves[0])
	})

	t.Run("candidate cap", func(t *testing.T) {
		prev := game.CandidateCap
		t.Cleanup(func() { game.CandidateCap = prev })
		game.CandidateCap = 1
		s := load(t, scenario.Skirmish).State
		require.Greater(t, len(game.LegalMoves(s)), 1, "The cap only warns")
	})
}

func TestPolicyIndex(t *testing.T) {
	const tiles = 25
	seen := map[int]game.Move{}
	sc := load(t, scenario.Duel)
	for _, m := range game.LegalMoves(sc.State) {
		i := m.PolicyIndex(tiles)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 10*tiles)
		seen[i] = m
	}
	require.Equal(t, game.EndTurnMove, seen[game.EndTurn().PolicyIndex(tiles)].Kind)
}
