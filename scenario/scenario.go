package scenario

import (
	"fmt"

	"polyfish/game"
	"polyfish/meta"
)

// Scenario describes a fixture and the tiles and units of interest in it.
type Scenario struct {
	Name     string
	State    *game.WorldState
	Attacker int // unit slot
	Defender int // unit slot
	Target   int // tile
}

// Duel is two warriors of different tribes standing next to each other on
// open ground, each tribe owning a city in its corner.
func Duel(seed uint64) (*Scenario, error) {
	return duel(seed, meta.MaxTurns)
}

func duel(seed uint64, maxTurns int) (*Scenario, error) {
	b, err := NewBuilder(5, 5, 2, maxTurns, seed)
	if err != nil {
		return nil, err
	}
	b.Explore(1).Explore(2).Stars(1, 5).Stars(2, 5)
	b.City(1, 0, 1)
	b.City(2, 24, 1)
	attacker := b.Unit(1, game.Warrior, 12)
	defender := b.Unit(2, game.Warrior, 13)
	return &Scenario{Name: "duel", State: b.Build(), Attacker: attacker, Defender: defender, Target: 13}, nil
}

// VillageCapture has a ready warrior standing on a neutral village whose
// surrounding ring is unowned.
func VillageCapture(seed uint64) (*Scenario, error) {
	return villageCapture(seed, meta.MaxTurns)
}

func villageCapture(seed uint64, maxTurns int) (*Scenario, error) {
	b, err := NewBuilder(7, 7, 2, maxTurns, seed)
	if err != nil {
		return nil, err
	}
	b.Explore(1, 0, 1, 2, 7, 8, 9, 14, 15, 16).Explore(2).Stars(1, 5).Stars(2, 5)
	b.City(1, 0, 1)
	b.City(2, 48, 1)
	b.Structure(game.Village, 24)
	b.Explore(1, b.State().TilesInRadius(24, 1, true)...)
	warrior := b.Unit(1, game.Warrior, 24)
	return &Scenario{Name: "capture", State: b.Build(), Attacker: warrior, Defender: -1, Target: 24}, nil
}

// LethalCapture has a ready warrior of tribe 1 on the last city of tribe 2.
// Capturing it ends the game; every other move is neutral.
func LethalCapture(seed uint64) (*Scenario, error) {
	return lethalCapture(seed, meta.MaxTurns)
}

func lethalCapture(seed uint64, maxTurns int) (*Scenario, error) {
	b, err := NewBuilder(6, 6, 2, maxTurns, seed)
	if err != nil {
		return nil, err
	}
	b.Explore(1).Explore(2).Stars(1, 6).Stars(2, 6)
	b.Terrain(game.Forest, 2, 12)
	b.Resource(game.Fruit, 1)
	b.City(1, 0, 1)
	city := b.City(2, 21, 1)
	b.Unit(1, game.Warrior, 7)
	capturer := b.Unit(1, game.Warrior, 21)
	b.Unit(2, game.Warrior, 35)
	return &Scenario{Name: "lethal", State: b.Build(), Attacker: capturer, Defender: -1, Target: b.State().Cities[city].Tile}, nil
}

// Skirmish is a small mixed-terrain map with two developing tribes.
func Skirmish(seed uint64) (*Scenario, error) {
	return skirmish(seed, meta.MaxTurns)
}

func skirmish(seed uint64, maxTurns int) (*Scenario, error) {
	b, err := NewBuilder(8, 8, 2, maxTurns, seed)
	if err != nil {
		return nil, err
	}
	b.Terrain(game.Forest, 2, 10, 29, 45, 53)
	b.Terrain(game.Mountain, 19, 36, 44)
	b.Terrain(game.Water, 31, 32, 39, 40)
	b.Terrain(game.Ocean, 47, 55)
	b.Resource(game.Fruit, 1, 62)
	b.Resource(game.WildAnimal, 10, 53)
	b.Resource(game.Fish, 31, 32)
	b.Resource(game.Crop, 8, 54)
	b.Resource(game.Metal, 19, 44)
	b.Structure(game.Village, 27, 4, 59)
	b.Structure(game.Ruins, 35)
	b.Road(9, 18, 27)

	b.City(1, 9, 1)
	b.City(2, 54, 1)
	b.Tech(1, game.Hunting).Tech(2, game.Organization)
	b.Stars(1, 5).Stars(2, 5)
	b.Unit(1, game.Warrior, 18)
	b.Unit(1, game.Rider, 17)
	b.Unit(2, game.Warrior, 46)
	b.Unit(2, game.Rider, 61)

	s := b.State()
	for _, owner := range []int{1, 2} {
		var seen []int
		for _, u := range s.Units {
			if u.Owner == owner {
				seen = append(seen, s.TilesInRadius(u.Tile, 1, true)...)
			}
		}
		for _, c := range s.Cities {
			if c.Owner == owner {
				seen = append(seen, s.TilesInRadius(c.Tile, 2, true)...)
			}
		}
		b.Explore(owner, seen...)
	}
	return &Scenario{Name: "skirmish", State: b.Build(), Attacker: -1, Defender: -1, Target: -1}, nil
}

// ByName returns the fixture registered under name, ending after maxTurns
// turns.
func ByName(name string, seed uint64, maxTurns int) (*Scenario, error) {
	switch name {
	case "duel":
		return duel(seed, maxTurns)
	case "capture":
		return villageCapture(seed, maxTurns)
	case "lethal":
		return lethalCapture(seed, maxTurns)
	case "skirmish":
		return skirmish(seed, maxTurns)
	}
	return nil, fmt.Errorf("unknown scenario %q", name)
}
