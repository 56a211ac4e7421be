package predictor

import (
	"math"

	"polyfish/game"
)

// Input planes, each width*height floats, from the perspective of the tribe
// to move. Hidden tiles are all zero except for the explored plane.
const (
	planeExplored = iota
	planeWater
	planeRough
	planeResource
	planeOwnTerritory
	planeEnemyTerritory
	planeOwnUnit
	planeEnemyUnit
	planeOwnCity
	planeEnemyCity
	planeCount
)

// Encode writes the planes of s into dst, which must hold
// planeCount*len(s.Tiles) values.
func Encode(s *game.WorldState, dst []float32) {
	clear(dst)
	n := len(s.Tiles)
	pov := s.Settings.Pov
	set := func(plane, tile int, v float32) { dst[plane*n+tile] = v }

	for i := range s.Tiles {
		t := &s.Tiles[i]
		if !t.ExploredBy(pov) {
			continue
		}
		set(planeExplored, i, 1)
		switch t.Terrain {
		case game.Water, game.Ocean:
			set(planeWater, i, 1)
		case game.Forest, game.Mountain:
			set(planeRough, i, 1)
		}
		if t.Resource != game.NoResource {
			set(planeResource, i, 1)
		}
		switch t.Owner {
		case game.Nobody:
		case pov:
			set(planeOwnTerritory, i, 1)
		default:
			set(planeEnemyTerritory, i, 1)
		}
		if u := s.UnitAt(i); u != nil {
			health := float32(u.Health) / float32(max(s.MaxHealth(u), 1))
			if u.Owner == pov {
				set(planeOwnUnit, i, health)
			} else {
				set(planeEnemyUnit, i, health)
			}
		}
		if c := s.CityAt(i); c != nil {
			level := float32(c.Level) / game.MaxCityLevel
			if c.Owner == pov {
				set(planeOwnCity, i, level)
			} else {
				set(planeEnemyCity, i, level)
			}
		}
	}
}

// gather turns policy logits into priors over moves with a softmax restricted
// to the given moves.
func gather(logits []float32, moves []game.Move, tiles int) []float64 {
	priors := make([]float64, len(moves))
	best := math.Inf(-1)
	for i, m := range moves {
		idx := m.PolicyIndex(tiles)
		if idx < len(logits) {
			priors[i] = float64(logits[idx])
		} else {
			priors[i] = math.Inf(-1)
		}
		best = max(best, priors[i])
	}
	sum := 0.0
	for i := range priors {
		priors[i] = math.Exp(priors[i] - best)
		sum += priors[i]
	}
	for i := range priors {
		priors[i] /= sum
	}
	return priors
}
