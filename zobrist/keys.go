// Package zobrist holds the immutable random key tables behind the per-tribe
// state fingerprints. A table is generated once from a seed and shared by
// pointer between every world state (and every worker clone) that uses it.
package zobrist

import (
	"polyfish/meta"

	"golang.org/x/exp/rand"
)

// Bucket counts for unbounded quantities.
const (
	HealthBuckets   = 64
	StarBuckets     = 128
	KillBuckets     = 4
	ProgressBuckets = 16
	unitFlags       = 3
)

// Unit flag offsets.
const (
	FlagVeteran = iota
	FlagMoved
	FlagAttacked
)

// Dims are the dimensions a key table is generated for.
type Dims struct {
	Tiles      int
	Tribes     int
	MaxTurns   int
	Terrains   int
	Structures int
	Resources  int
	Units      int
	Techs      int
	Effects    int
	Levels     int
}

type Keys struct {
	dims Dims

	turn     []uint64
	pov      []uint64
	gameOver [2]uint64

	unexplored []uint64
	terrain    []uint64
	road       []uint64
	owner      []uint64
	structure  []uint64
	resource   []uint64

	unitOwner  []uint64
	unitType   []uint64
	passenger  []uint64
	unitHealth []uint64
	unitKills  []uint64
	unitFlag   []uint64
	unitEffect []uint64

	cityOwner    []uint64
	cityLevel    []uint64
	cityProgress []uint64
	cityWalls    []uint64
	cityRiot     []uint64
	cityUnits    []uint64

	stars []uint64
	tech  []uint64
}

func (d Dims) validate() error {
	checks := []struct {
		table string
		value int
		limit int
	}{
		{"tiles", d.Tiles - 1, 1 << 20},
		{"tribes", d.Tribes - 1, meta.MaxTribes},
		{"max turns", d.MaxTurns - 1, 1 << 16},
		{"terrains", d.Terrains - 1, 256},
		{"structures", d.Structures - 1, 256},
		{"resources", d.Resources - 1, 256},
		{"units", d.Units - 1, 256},
		{"techs", d.Techs - 1, 256},
		{"effects", d.Effects - 1, 32},
		{"levels", d.Levels - 1, 256},
	}
	for _, c := range checks {
		if err := meta.CheckRange(c.table, c.value, c.limit); err != nil {
			return err
		}
	}
	return nil
}

// New generates a key table for the given dimensions. The same seed always
// yields the same table.
func New(d Dims, seed uint64) (*Keys, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(seed))
	fill := func(n int) []uint64 {
		keys := make([]uint64, n)
		for i := range keys {
			keys[i] = r.Uint64()
		}
		return keys
	}

	owners := d.Tribes + 1
	k := &Keys{dims: d}
	k.turn = fill(d.MaxTurns + 2)
	k.pov = fill(owners)
	k.gameOver = [2]uint64{r.Uint64(), r.Uint64()}

	k.unexplored = fill(d.Tiles)
	k.terrain = fill(d.Tiles * d.Terrains)
	k.road = fill(d.Tiles)
	k.owner = fill(d.Tiles * owners)
	k.structure = fill(d.Tiles * d.Structures)
	k.resource = fill(d.Tiles * d.Resources)

	k.unitOwner = fill(d.Tiles * owners)
	k.unitType = fill(d.Tiles * d.Units)
	k.passenger = fill(d.Tiles * d.Units)
	k.unitHealth = fill(d.Tiles * HealthBuckets)
	k.unitKills = fill(d.Tiles * KillBuckets)
	k.unitFlag = fill(d.Tiles * unitFlags)
	k.unitEffect = fill(d.Tiles * d.Effects)

	k.cityOwner = fill(d.Tiles * owners)
	k.cityLevel = fill(d.Tiles * d.Levels)
	k.cityProgress = fill(d.Tiles * ProgressBuckets)
	k.cityWalls = fill(d.Tiles)
	k.cityRiot = fill(d.Tiles)

	k.stars = fill(owners * StarBuckets)
	k.tech = fill(owners * d.Techs)
	k.cityUnits = fill(d.Tiles * (d.Levels + 1))
	return k, nil
}

func (k *Keys) Dims() Dims {
	return k.dims
}

// Fits reports whether a world with dimensions d can be hashed with k.
func (k *Keys) Fits(d Dims) error {
	checks := []struct {
		table string
		value int
		limit int
	}{
		{"tiles", d.Tiles - 1, k.dims.Tiles},
		{"tribes", d.Tribes - 1, k.dims.Tribes},
		{"max turns", d.MaxTurns - 1, k.dims.MaxTurns},
		{"terrains", d.Terrains - 1, k.dims.Terrains},
		{"structures", d.Structures - 1, k.dims.Structures},
		{"resources", d.Resources - 1, k.dims.Resources},
		{"units", d.Units - 1, k.dims.Units},
		{"techs", d.Techs - 1, k.dims.Techs},
		{"effects", d.Effects - 1, k.dims.Effects},
		{"levels", d.Levels - 1, k.dims.Levels},
	}
	for _, c := range checks {
		if err := meta.CheckRange(c.table, c.value, c.limit); err != nil {
			return err
		}
	}
	return nil
}

func bucket(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Turn clamps turns past the limit onto the last key.
func (k *Keys) Turn(turn int) uint64 { return k.turn[bucket(turn, len(k.turn))] }
func (k *Keys) Pov(owner int) uint64 { return k.pov[owner] }

func (k *Keys) GameOver(over bool) uint64 {
	if over {
		return k.gameOver[1]
	}
	return k.gameOver[0]
}

func (k *Keys) Unexplored(tile int) uint64 { return k.unexplored[tile] }
func (k *Keys) Road(tile int) uint64       { return k.road[tile] }

func (k *Keys) Terrain(tile, terrain int) uint64 {
	return k.terrain[tile*k.dims.Terrains+terrain]
}

func (k *Keys) Owner(tile, owner int) uint64 {
	return k.owner[tile*(k.dims.Tribes+1)+owner]
}

func (k *Keys) Structure(tile, structure int) uint64 {
	return k.structure[tile*k.dims.Structures+structure]
}

func (k *Keys) Resource(tile, resource int) uint64 {
	return k.resource[tile*k.dims.Resources+resource]
}

func (k *Keys) UnitOwner(tile, owner int) uint64 {
	return k.unitOwner[tile*(k.dims.Tribes+1)+owner]
}

func (k *Keys) UnitType(tile, unit int) uint64 {
	return k.unitType[tile*k.dims.Units+unit]
}

func (k *Keys) Passenger(tile, unit int) uint64 {
	return k.passenger[tile*k.dims.Units+unit]
}

// UnitHealth buckets health in steps of ten hit points.
func (k *Keys) UnitHealth(tile, health int) uint64 {
	return k.unitHealth[tile*HealthBuckets+bucket(health/10, HealthBuckets)]
}

func (k *Keys) UnitKills(tile, kills int) uint64 {
	return k.unitKills[tile*KillBuckets+bucket(kills, KillBuckets)]
}

func (k *Keys) UnitFlag(tile, flag int) uint64 {
	return k.unitFlag[tile*unitFlags+flag]
}

func (k *Keys) UnitEffect(tile, effect int) uint64 {
	return k.unitEffect[tile*k.dims.Effects+effect]
}

func (k *Keys) CityOwner(tile, owner int) uint64 {
	return k.cityOwner[tile*(k.dims.Tribes+1)+owner]
}

func (k *Keys) CityLevel(tile, level int) uint64 {
	return k.cityLevel[tile*k.dims.Levels+bucket(level, k.dims.Levels)]
}

func (k *Keys) CityProgress(tile, progress int) uint64 {
	return k.cityProgress[tile*ProgressBuckets+bucket(progress, ProgressBuckets)]
}

// CityUnits covers the number of units a city supports, which can exceed
// its level by one.
func (k *Keys) CityUnits(tile, count int) uint64 {
	n := k.dims.Levels + 1
	return k.cityUnits[tile*n+bucket(count, n)]
}

func (k *Keys) CityWalls(tile int) uint64 { return k.cityWalls[tile] }
func (k *Keys) CityRiot(tile int) uint64  { return k.cityRiot[tile] }

func (k *Keys) Stars(owner, stars int) uint64 {
	return k.stars[owner*StarBuckets+bucket(stars, StarBuckets)]
}

func (k *Keys) Tech(owner, tech int) uint64 {
	return k.tech[owner*k.dims.Techs+tech]
}
