package game

import (
	"fmt"

	"polyfish/meta"
	"polyfish/zobrist"

	"golang.org/x/exp/slices"
)

// Nobody is the owner id of unowned tiles. Tribe owner ids start at 1.
const Nobody = 0

// Tile is one cell of the map. Unit, City and Ruler are slot indexes into
// the world's unit and city tables, -1 when empty.
type Tile struct {
	Terrain   TerrainType
	Road      bool
	Owner     int
	Explorers uint32 // bit owner-1 set once the tribe has explored the tile
	Structure StructureType
	Resource  ResourceType
	Unit      int
	City      int
	Ruler     int
}

func (t *Tile) ExploredBy(owner int) bool {
	return owner > Nobody && t.Explorers&(1<<(owner-1)) != 0
}

type Unit struct {
	ID        int
	Type      UnitType
	Passenger UnitType
	Owner     int
	Tile      int
	Home      int // city slot, -1 when homeless
	Health    int // hit points, ten per health point of the settings
	Kills     int
	Veteran   bool
	Moved     bool
	Attacked  bool
	Effects   Effects
	Alive     bool
}

type City struct {
	ID         int
	Tile       int
	Owner      int
	Level      int
	Population int
	Progress   int
	Production int
	Border     int
	UnitCount  int
	Walls      bool
	Riot       bool
	Rewards    []RewardType
	Territory  []int
}

type Tribe struct {
	Owner      int
	Stars      int
	Score      int
	Tech       []TechType
	Units      []int
	Cities     []int
	Kills      int
	Casualties int
	KilledTurn int
	Known      uint32 // bit set of tribes this tribe has met
	Hash       uint64 // incremental fingerprint
}

func (t *Tribe) HasTech(tech TechType) bool {
	return tech == NoTech || slices.Contains(t.Tech, tech)
}

func (t *Tribe) Alive() bool {
	return t.KilledTurn == 0
}

type Settings struct {
	Turn           int
	Pov            int
	MaxTurns       int
	GameOver       bool
	PendingRewards []Move
	RecentMoves    []MoveKind
}

// WorldState is the live, mutable game state. It is only mutated through
// Execute and the undo lists it returns.
type WorldState struct {
	Width    int
	Height   int
	Tiles    []Tile
	Units    []Unit
	Cities   []City
	Tribes   []Tribe
	Settings Settings

	Content *Content
	Keys    *zobrist.Keys
}

// NewWorldState creates an all-field map with unexplored tiles and tribes
// without units or cities. Fingerprints are initialized.
func NewWorldState(width, height, tribes, maxTurns int, content *Content, keys *zobrist.Keys) (*WorldState, error) {
	if err := meta.CheckRange("tribes", tribes-1, meta.MaxTribes); err != nil {
		return nil, err
	}
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	if err := keys.Fits(content.Dims(width*height, tribes, maxTurns)); err != nil {
		return nil, fmt.Errorf("key table too small: %w", err)
	}

	s := &WorldState{
		Width:   width,
		Height:  height,
		Tiles:   make([]Tile, width*height),
		Tribes:  make([]Tribe, tribes),
		Content: content,
		Keys:    keys,
		Settings: Settings{
			Turn:     1,
			Pov:      1,
			MaxTurns: maxTurns,
		},
	}
	for i := range s.Tiles {
		s.Tiles[i] = Tile{Terrain: Field, Unit: -1, City: -1, Ruler: -1}
	}
	for i := range s.Tribes {
		s.Tribes[i].Owner = i + 1
	}
	s.Rehash()
	return s, nil
}

// Clone deep-copies the state. Content and Keys are immutable and shared.
func (s *WorldState) Clone() *WorldState {
	c := *s
	c.Tiles = slices.Clone(s.Tiles)
	c.Units = slices.Clone(s.Units)
	c.Cities = slices.Clone(s.Cities)
	for i := range c.Cities {
		c.Cities[i].Rewards = slices.Clone(s.Cities[i].Rewards)
		c.Cities[i].Territory = slices.Clone(s.Cities[i].Territory)
	}
	c.Tribes = slices.Clone(s.Tribes)
	for i := range c.Tribes {
		c.Tribes[i].Tech = slices.Clone(s.Tribes[i].Tech)
		c.Tribes[i].Units = slices.Clone(s.Tribes[i].Units)
		c.Tribes[i].Cities = slices.Clone(s.Tribes[i].Cities)
	}
	c.Settings.PendingRewards = slices.Clone(s.Settings.PendingRewards)
	c.Settings.RecentMoves = slices.Clone(s.Settings.RecentMoves)
	return &c
}

// Tribe returns the tribe with the given owner id.
func (s *WorldState) Tribe(owner int) *Tribe {
	return &s.Tribes[owner-1]
}

// PovTribe returns the tribe whose turn it is.
func (s *WorldState) PovTribe() *Tribe {
	return s.Tribe(s.Settings.Pov)
}

// UnitAt returns the living unit on a tile, or nil.
func (s *WorldState) UnitAt(tile int) *Unit {
	if tile < 0 || tile >= len(s.Tiles) {
		return nil
	}
	id := s.Tiles[tile].Unit
	if id < 0 || !s.Units[id].Alive {
		return nil
	}
	return &s.Units[id]
}

// CityAt returns the city located on a tile, or nil.
func (s *WorldState) CityAt(tile int) *City {
	if tile < 0 || tile >= len(s.Tiles) {
		return nil
	}
	id := s.Tiles[tile].City
	if id < 0 {
		return nil
	}
	return &s.Cities[id]
}

func (s *WorldState) UnitSettings(u *Unit) *UnitSettings {
	return &s.Content.Units[u.Type]
}

// LivingTribes counts tribes that have not been eliminated.
func (s *WorldState) LivingTribes() int {
	n := 0
	for i := range s.Tribes {
		if s.Tribes[i].Alive() {
			n++
		}
	}
	return n
}

// Territory returns the tiles owned by a tribe in index order.
func (s *WorldState) Territory(owner int) []int {
	var tiles []int
	for i := range s.Tiles {
		if s.Tiles[i].Owner == owner {
			tiles = append(tiles, i)
		}
	}
	return tiles
}
