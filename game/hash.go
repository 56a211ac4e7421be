package game

import (
	"math/bits"

	"polyfish/zobrist"
)

// Fingerprint returns the incrementally maintained fingerprint of the world
// as seen by the tribe with the given owner id.
func Fingerprint(s *WorldState, owner int) uint64 {
	return s.Tribe(owner).Hash
}

// ComputeFingerprint recomputes the fingerprint of owner from scratch. It
// must always agree with Fingerprint.
func ComputeFingerprint(s *WorldState, owner int) uint64 {
	h := s.globalKeys(&s.Settings) ^ s.tribeKeys(s.Tribe(owner))
	for i := range s.Tiles {
		h ^= s.visibleKeys(i, &s.Tiles[i], owner)
	}
	return h
}

// Rehash resets every tribe's fingerprint to its recomputed value. Only
// builders call it; moves keep fingerprints up to date on their own.
func (s *WorldState) Rehash() {
	for i := range s.Tribes {
		s.Tribes[i].Hash = ComputeFingerprint(s, s.Tribes[i].Owner)
	}
}

func (s *WorldState) globalKeys(st *Settings) uint64 {
	k := s.Keys
	return k.Turn(st.Turn) ^ k.Pov(st.Pov) ^ k.GameOver(st.GameOver)
}

func (s *WorldState) tribeKeys(t *Tribe) uint64 {
	k := s.Keys
	h := k.Stars(t.Owner, t.Stars)
	for _, tech := range t.Tech {
		h ^= k.Tech(t.Owner, int(tech))
	}
	return h
}

// tileKeys covers the attributes stored on the tile itself.
func (s *WorldState) tileKeys(i int, t *Tile) uint64 {
	k := s.Keys
	h := k.Terrain(i, int(t.Terrain)) ^ k.Owner(i, t.Owner) ^
		k.Structure(i, int(t.Structure)) ^ k.Resource(i, int(t.Resource))
	if t.Road {
		h ^= k.Road(i)
	}
	return h
}

func (s *WorldState) unitKeys(u *Unit) uint64 {
	k, i := s.Keys, u.Tile
	h := k.UnitOwner(i, u.Owner) ^ k.UnitType(i, int(u.Type)) ^
		k.UnitHealth(i, u.Health) ^ k.UnitKills(i, u.Kills)
	if u.Passenger != NoUnit {
		h ^= k.Passenger(i, int(u.Passenger))
	}
	if u.Veteran {
		h ^= k.UnitFlag(i, zobrist.FlagVeteran)
	}
	if u.Moved {
		h ^= k.UnitFlag(i, zobrist.FlagMoved)
	}
	if u.Attacked {
		h ^= k.UnitFlag(i, zobrist.FlagAttacked)
	}
	for e := EffectType(0); e < effectCount; e++ {
		if u.Effects.Has(e) {
			h ^= k.UnitEffect(i, int(e))
		}
	}
	return h
}

func (s *WorldState) cityKeys(c *City) uint64 {
	k, i := s.Keys, c.Tile
	h := k.CityOwner(i, c.Owner) ^ k.CityLevel(i, c.Level) ^ k.CityProgress(i, c.Progress) ^
		k.CityUnits(i, c.UnitCount)
	if c.Walls {
		h ^= k.CityWalls(i)
	}
	if c.Riot {
		h ^= k.CityRiot(i)
	}
	return h
}

// entityKeys covers everything located on a tile.
func (s *WorldState) entityKeys(i int, t *Tile) uint64 {
	h := s.tileKeys(i, t)
	if t.Unit >= 0 && s.Units[t.Unit].Alive {
		h ^= s.unitKeys(&s.Units[t.Unit])
	}
	if t.City >= 0 {
		h ^= s.cityKeys(&s.Cities[t.City])
	}
	return h
}

// visibleKeys is what the tile contributes to owner's fingerprint.
func (s *WorldState) visibleKeys(i int, t *Tile, owner int) uint64 {
	if t.ExploredBy(owner) {
		return s.entityKeys(i, t)
	}
	return s.Keys.Unexplored(i)
}

// toggleTile xors delta into the fingerprint of every tribe that explored tile i.
func (s *WorldState) toggleTile(i int, delta uint64) {
	if delta == 0 {
		return
	}
	for explorers := s.Tiles[i].Explorers; explorers != 0; explorers &= explorers - 1 {
		s.Tribes[bits.TrailingZeros32(explorers)].Hash ^= delta
	}
}

func (s *WorldState) toggleAll(delta uint64) {
	for i := range s.Tribes {
		s.Tribes[i].Hash ^= delta
	}
}

// The put methods are the only writers of hashed state. Each xors out the
// keys of the current value and xors in the keys of the new one, so applying
// the previous value again restores the fingerprints exactly.

func (s *WorldState) putSettings(next Settings) {
	s.toggleAll(s.globalKeys(&s.Settings) ^ s.globalKeys(&next))
	s.Settings = next
}

func (s *WorldState) putTribe(next Tribe) {
	cur := &s.Tribes[next.Owner-1]
	next.Hash = cur.Hash ^ s.tribeKeys(cur) ^ s.tribeKeys(&next)
	*cur = next
}

// putTile keeps the unit and city slots of the current tile; they belong to
// putUnit and putCity.
func (s *WorldState) putTile(i int, next Tile) {
	cur := &s.Tiles[i]
	next.Unit, next.City = cur.Unit, cur.City
	for t := range s.Tribes {
		owner := t + 1
		if before, after := s.visibleKeys(i, cur, owner), s.visibleKeys(i, &next, owner); before != after {
			s.Tribes[t].Hash ^= before ^ after
		}
	}
	*cur = next
}

func (s *WorldState) putUnit(next Unit) {
	cur := &s.Units[next.ID]
	if cur.Alive {
		s.toggleTile(cur.Tile, s.unitKeys(cur))
		if s.Tiles[cur.Tile].Unit == cur.ID {
			s.Tiles[cur.Tile].Unit = -1
		}
	}
	*cur = next
	if next.Alive {
		s.Tiles[next.Tile].Unit = next.ID
		s.toggleTile(next.Tile, s.unitKeys(cur))
	}
}

func (s *WorldState) putCity(next City) {
	cur := &s.Cities[next.ID]
	if cur.Tile >= 0 {
		s.toggleTile(cur.Tile, s.cityKeys(cur))
		if s.Tiles[cur.Tile].City == cur.ID {
			s.Tiles[cur.Tile].City = -1
		}
	}
	*cur = next
	if next.Tile >= 0 {
		s.Tiles[next.Tile].City = next.ID
		s.toggleTile(next.Tile, s.cityKeys(cur))
	}
}
