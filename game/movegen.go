package game

import (
	"polyfish/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// CandidateCap is the declared upper bound of LegalMoves. Exceeding it is
// logged; the moves are still returned.
var CandidateCap = meta.CandidateCap

var unitAbilities = []AbilityType{
	PromoteAbility,
	RecoverAbility,
	HealOthersAbility,
	BoostAbility,
	FreezeAreaAbility,
	DisbandAbility,
}

var tileAbilities = []AbilityType{
	ClearForestAbility,
	BurnForestAbility,
	GrowForestAbility,
	DestroyAbility,
}

// LegalMoves returns the moves of the pov tribe, highest priority first and
// in generation order within a priority. Pending rewards must be resolved
// before anything else.
func LegalMoves(s *WorldState) []Move {
	if s.Settings.GameOver {
		return nil
	}
	if pending := s.Settings.PendingRewards; len(pending) > 0 {
		return slices.Clone(pending)
	}

	moves := []Move{EndTurn()}
	moves = append(moves, ArmyMoves(s)...)
	moves = append(moves, EconomyMoves(s)...)
	slices.SortStableFunc(moves, func(a, b Move) int { return Priority(b) - Priority(a) })

	if len(moves) > CandidateCap {
		log.Warn().Int("count", len(moves)).Int("cap", CandidateCap).Msg("candidate cap exceeded")
	}
	return moves
}

// ArmyMoves returns captures, abilities, attacks and steps of every pov unit,
// then the summons of every pov city.
func ArmyMoves(s *WorldState) []Move {
	var moves []Move
	tribe := s.PovTribe()
	for _, id := range tribe.Units {
		u := &s.Units[id]
		if !u.Alive || u.Effects.Has(Frozen) {
			continue
		}
		if m, ok := s.captureMove(u); ok {
			moves = append(moves, m)
		}
		for _, ab := range unitAbilities {
			if s.unitAbilityOK(u, ab) {
				moves = append(moves, Ability(id, u.Tile, ab))
			}
		}
		if !u.Attacked && s.unitStats(u).Attack > 0 {
			for _, tile := range s.EnemiesInRange(u) {
				moves = append(moves, Attack(id, tile))
			}
		}
		if !u.Moved {
			for _, tile := range Destinations(s, u) {
				moves = append(moves, Step(id, tile))
			}
		}
	}

	for _, id := range tribe.Cities {
		c := &s.Cities[id]
		if c.UnitCount > c.Level || s.UnitAt(c.Tile) != nil {
			continue
		}
		for typ := UnitType(1); int(typ) < len(s.Content.Units); typ++ {
			if s.summonable(tribe, typ) && tribe.Stars >= s.Content.Units[typ].Cost {
				moves = append(moves, Summon(id, c.Tile, typ))
			}
		}
	}
	return moves
}

func (s *WorldState) captureMove(u *Unit) (Move, bool) {
	if u.Moved || u.Attacked {
		return Move{}, false
	}
	t := &s.Tiles[u.Tile]
	switch {
	case t.City >= 0 && s.Cities[t.City].Owner != u.Owner:
		return Capture(u.ID, u.Tile, CaptureCity), true
	case t.Structure == Village && t.City < 0:
		return Capture(u.ID, u.Tile, CaptureVillage), true
	case t.Structure == Ruins:
		return Capture(u.ID, u.Tile, CaptureRuins), true
	}
	return Move{}, false
}

// EconomyMoves returns territory abilities, harvests and builds in tile order,
// then research.
func EconomyMoves(s *WorldState) []Move {
	var moves []Move
	owner := s.Settings.Pov
	tribe := s.Tribe(owner)
	for _, i := range s.Territory(owner) {
		t := &s.Tiles[i]
		if t.Ruler < 0 {
			continue
		}
		if u := s.UnitAt(i); u != nil && u.Owner != owner {
			continue
		}
		for _, ab := range tileAbilities {
			if s.tileAbilityOK(i, ab) {
				moves = append(moves, Ability(-1, i, ab))
			}
		}
		if r := t.Resource; r != NoResource {
			rs := &s.Content.Resources[r]
			if rs.Structure == NoStructure && tribe.HasTech(rs.Tech) && tribe.Stars >= rs.Cost {
				moves = append(moves, Harvest(i))
			}
		}
		for st := Farm; int(st) < len(s.Content.Structures); st++ {
			if s.buildable(i, st) >= 0 && tribe.Stars >= s.Content.Structures[st].Cost {
				moves = append(moves, Build(i, st))
			}
		}
	}

	for tech := TechType(1); int(tech) < len(s.Content.Techs); tech++ {
		if s.canResearch(tribe, tech) && tribe.Stars >= s.TechCost(tribe, tech) {
			moves = append(moves, Research(tech))
		}
	}
	return moves
}
