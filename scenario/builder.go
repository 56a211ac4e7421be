// Package scenario builds small hand-made worlds for tests, experiments and
// the command line.
package scenario

import (
	"fmt"

	"polyfish/game"
	"polyfish/utils"
	"polyfish/zobrist"
)

// Builder edits a fresh world directly, without going through moves.
// Fingerprints are computed once in Build.
type Builder struct {
	s *game.WorldState
}

// NewBuilder creates an all-field world with a key table generated from seed.
func NewBuilder(width, height, tribes, maxTurns int, seed uint64) (*Builder, error) {
	content := game.DefaultContent()
	keys, err := zobrist.New(content.Dims(width*height, tribes, maxTurns), seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create key table: %w", err)
	}
	s, err := game.NewWorldState(width, height, tribes, maxTurns, content, keys)
	if err != nil {
		return nil, err
	}
	return &Builder{s: s}, nil
}

func (b *Builder) Terrain(t game.TerrainType, tiles ...int) *Builder {
	for _, i := range tiles {
		b.s.Tiles[i].Terrain = t
	}
	return b
}

func (b *Builder) Structure(st game.StructureType, tiles ...int) *Builder {
	for _, i := range tiles {
		b.s.Tiles[i].Structure = st
	}
	return b
}

func (b *Builder) Resource(r game.ResourceType, tiles ...int) *Builder {
	for _, i := range tiles {
		b.s.Tiles[i].Resource = r
	}
	return b
}

func (b *Builder) Road(tiles ...int) *Builder {
	for _, i := range tiles {
		b.s.Tiles[i].Road = true
	}
	return b
}

// Explore marks tiles as explored by owner. No tiles means the whole map.
func (b *Builder) Explore(owner int, tiles ...int) *Builder {
	if len(tiles) == 0 {
		for i := range b.s.Tiles {
			b.s.Tiles[i].Explorers |= 1 << (owner - 1)
		}
		return b
	}
	for _, i := range tiles {
		b.s.Tiles[i].Explorers |= 1 << (owner - 1)
	}
	return b
}

func (b *Builder) Tech(owner int, techs ...game.TechType) *Builder {
	t := b.s.Tribe(owner)
	t.Tech = utils.Appended(t.Tech, techs...)
	return b
}

func (b *Builder) Stars(owner, stars int) *Builder {
	b.s.Tribe(owner).Stars = stars
	return b
}

func (b *Builder) Turn(turn, pov int) *Builder {
	b.s.Settings.Turn = turn
	b.s.Settings.Pov = pov
	return b
}

// Unit places a fresh, ready unit and returns its slot.
func (b *Builder) Unit(owner int, typ game.UnitType, tile int) int {
	s := b.s
	id := len(s.Units)
	s.Units = append(s.Units, game.Unit{
		ID:     id,
		Type:   typ,
		Owner:  owner,
		Tile:   tile,
		Home:   -1,
		Health: s.Content.Units[typ].Health * 10,
		Alive:  true,
	})
	s.Tiles[tile].Unit = id
	t := s.Tribe(owner)
	t.Units = utils.Appended(t.Units, id)
	return id
}

// City founds a city with its radius-1 territory and returns its slot.
func (b *Builder) City(owner, tile, level int) int {
	s := b.s
	id := len(s.Cities)
	c := game.City{
		ID:         id,
		Tile:       tile,
		Owner:      owner,
		Level:      level,
		Production: level,
		Border:     1,
	}
	for _, i := range s.TilesInRadius(tile, 1, true) {
		if s.Tiles[i].Owner != game.Nobody {
			continue
		}
		s.Tiles[i].Owner = owner
		s.Tiles[i].Ruler = id
		c.Territory = append(c.Territory, i)
	}
	s.Cities = append(s.Cities, c)
	s.Tiles[tile].City = id
	t := s.Tribe(owner)
	t.Cities = utils.Appended(t.Cities, id)
	return id
}

// State gives direct access for adjustments the builder does not cover.
func (b *Builder) State() *game.WorldState {
	return b.s
}

// Build finalizes the world and computes its fingerprints.
func (b *Builder) Build() *game.WorldState {
	b.s.Rehash()
	return b.s
}
