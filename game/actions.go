package game

import "polyfish/utils"

// Score awards.
const (
	scoreExplore = 5
	scoreClaim   = 20
	scoreCity    = 100
	scoreLevel   = 50
	scorePark    = 250
	scoreTech    = 30
)

// Stars handed out when a ruins or reward has nothing better to give.
const (
	ruinsStars     = 10
	resourcesStars = 5
)

// discover explores the tiles within radius of center for owner and returns
// how many were new. Meeting another tribe's units or land records it as known.
func (j *journal) discover(owner, center, radius int) int {
	s := j.s
	bit := uint32(1) << (owner - 1)
	var met uint32
	n := 0
	for _, i := range s.TilesInRadius(center, radius, true) {
		if s.Tiles[i].Explorers&bit != 0 {
			continue
		}
		j.tile(i, func(t *Tile) { t.Explorers |= bit })
		n++
		if u := s.UnitAt(i); u != nil && u.Owner != owner {
			met |= 1 << (u.Owner - 1)
		}
		if o := s.Tiles[i].Owner; o != Nobody && o != owner {
			met |= 1 << (o - 1)
		}
	}
	if n > 0 || met&^s.Tribe(owner).Known != 0 {
		j.tribe(owner, func(t *Tribe) {
			t.Score += scoreExplore * n
			t.Known |= met
		})
	}
	return n
}

// claim hands the unowned tiles among tiles to the city.
func (j *journal) claim(cityID int, tiles []int) int {
	s := j.s
	owner := s.Cities[cityID].Owner
	var claimed []int
	for _, i := range tiles {
		if s.Tiles[i].Owner != Nobody {
			continue
		}
		j.tile(i, func(t *Tile) {
			t.Owner = owner
			t.Ruler = cityID
		})
		claimed = append(claimed, i)
	}
	if len(claimed) == 0 {
		return 0
	}
	j.city(cityID, func(c *City) { c.Territory = utils.Appended(c.Territory, claimed...) })
	j.tribe(owner, func(t *Tribe) { t.Score += scoreClaim * len(claimed) })
	return len(claimed)
}

func levelRewards(level int) []RewardType {
	switch level {
	case 2:
		return []RewardType{WorkshopReward, ExplorerReward}
	case 3:
		return []RewardType{CityWallReward, ResourcesReward}
	case 4:
		return []RewardType{PopulationGrowthReward, BorderGrowthReward}
	default:
		return []RewardType{ParkReward, SuperUnitReward}
	}
}

// growCity adds population to a city. Reaching level+1 progress levels the
// city up and returns the reward choice as follow-up moves.
func (j *journal) growCity(id, n int) []Move {
	if id < 0 || n == 0 {
		return nil
	}
	leveled := false
	j.city(id, func(c *City) {
		c.Population += n
		c.Progress = max(c.Progress+n, 0)
		if c.Progress >= c.Level+1 {
			c.Progress -= c.Level + 1
			c.Level++
			c.Production++
			leveled = true
		}
	})
	if !leveled {
		return nil
	}

	c := &j.s.Cities[id]
	j.tribe(c.Owner, func(t *Tribe) { t.Score += scoreLevel * c.Level })
	var follow []Move
	for _, r := range levelRewards(c.Level) {
		follow = append(follow, Reward(id, c.Tile, r))
	}
	return follow
}

func (j *journal) stars(owner, delta int) {
	j.tribe(owner, func(t *Tribe) { t.Stars += delta })
}

// newUnit returns a fresh, exhausted unit at full health.
func (s *WorldState) newUnit(typ UnitType, owner, tile, home int) Unit {
	return Unit{
		Type:     typ,
		Owner:    owner,
		Tile:     tile,
		Home:     home,
		Health:   s.Content.Units[typ].Health * 10,
		Moved:    true,
		Attacked: true,
	}
}

// freeTileNear returns center or the first free land tile next to it, or -1.
func (s *WorldState) freeTileNear(center int) int {
	for _, i := range s.TilesInRadius(center, 1, true) {
		if s.UnitAt(i) == nil && isLand(s.Tiles[i].Terrain) {
			return i
		}
	}
	return -1
}

// killUnit removes a unit from the board, its roster and its home city.
func (j *journal) killUnit(id int, casualty bool) {
	u := j.s.Units[id]
	j.unit(id, func(x *Unit) { x.Alive = false })
	j.tribe(u.Owner, func(t *Tribe) {
		if i := utils.FindIndex(t.Units, id); i >= 0 {
			t.Units = utils.Without(t.Units, i)
		}
		if casualty {
			t.Casualties++
		}
	})
	if u.Home >= 0 && j.s.Cities[u.Home].UnitCount > 0 {
		j.city(u.Home, func(c *City) { c.UnitCount-- })
	}
}

// eliminate removes every unit of a tribe that lost its last city.
func (j *journal) eliminate(owner int) {
	for _, id := range j.s.Tribe(owner).Units {
		j.killUnit(id, false)
	}
	turn := j.s.Settings.Turn
	j.tribe(owner, func(t *Tribe) { t.KilledTurn = turn })
	if j.s.LivingTribes() <= 1 {
		j.settings(func(st *Settings) { st.GameOver = true })
	}
}

func (j *journal) captureVillage(u *Unit, tile int) {
	owner := u.Owner
	id := j.addCity(City{
		Tile:       tile,
		Owner:      owner,
		Level:      1,
		Production: 1,
		Border:     1,
	})
	j.tile(tile, func(t *Tile) { t.Structure = NoStructure })
	j.claim(id, j.s.TilesInRadius(tile, 1, true))
	j.tribe(owner, func(t *Tribe) { t.Score += scoreCity })
	j.discover(owner, tile, 2)
}

func (j *journal) captureCity(u *Unit, cityID int) {
	s := j.s
	c := s.Cities[cityID]
	owner, loser := u.Owner, c.Owner

	j.city(cityID, func(c *City) {
		c.Owner = owner
		c.Riot = false
		c.UnitCount = 0
	})
	for _, i := range c.Territory {
		j.tile(i, func(t *Tile) { t.Owner = owner })
	}
	for _, id := range s.Tribe(loser).Units {
		if s.Units[id].Home == cityID {
			j.unit(id, func(x *Unit) { x.Home = -1 })
		}
	}
	j.tribe(loser, func(t *Tribe) {
		if i := utils.FindIndex(t.Cities, cityID); i >= 0 {
			t.Cities = utils.Without(t.Cities, i)
		}
		t.Score -= scoreCity
	})
	j.tribe(owner, func(t *Tribe) {
		t.Cities = utils.Appended(t.Cities, cityID)
		t.Score += scoreCity
	})
	j.discover(owner, c.Tile, c.Border+1)

	if len(s.Tribe(loser).Cities) == 0 {
		j.eliminate(loser)
	}
}

// captureRuins hands out a reward picked from the tile index.
func (j *journal) captureRuins(u *Unit, tile int) []Move {
	s := j.s
	owner := u.Owner
	j.tile(tile, func(t *Tile) { t.Structure = NoStructure })

	switch tile % 5 {
	case 1:
		tribe := s.Tribe(owner)
		for tech := TechType(1); tech < TechType(len(s.Content.Techs)); tech++ {
			if s.canResearch(tribe, tech) {
				j.tribe(owner, func(t *Tribe) {
					t.Tech = utils.Appended(t.Tech, tech)
					t.Score += scoreTech
				})
				return nil
			}
		}
	case 2:
		if cities := s.Tribe(owner).Cities; len(cities) > 0 {
			return j.growCity(cities[0], 3)
		}
	case 3:
		j.discover(owner, tile, 3)
		return nil
	case 4:
		if at := s.freeTileNear(tile); at >= 0 {
			vet := s.newUnit(Swordsman, owner, at, -1)
			vet.Veteran = true
			vet.Health += 50
			j.addUnit(vet)
			j.discover(owner, at, 1)
			return nil
		}
	}
	j.stars(owner, ruinsStars)
	return nil
}

// applyReward resolves one of a city's level-up rewards.
func (j *journal) applyReward(id int, reward RewardType) []Move {
	s := j.s
	c := s.Cities[id]
	j.city(id, func(c *City) { c.Rewards = utils.Appended(c.Rewards, reward) })

	switch reward {
	case WorkshopReward:
		j.city(id, func(c *City) { c.Production++ })
	case ExplorerReward:
		j.discover(c.Owner, c.Tile, 3)
	case CityWallReward:
		j.city(id, func(c *City) { c.Walls = true })
	case ResourcesReward:
		j.stars(c.Owner, resourcesStars)
	case PopulationGrowthReward:
		return j.growCity(id, 3)
	case BorderGrowthReward:
		j.city(id, func(c *City) { c.Border++ })
		j.claim(id, s.TilesInRadius(c.Tile, c.Border+1, true))
		j.discover(c.Owner, c.Tile, c.Border+2)
	case ParkReward:
		j.city(id, func(c *City) { c.Production++ })
		j.tribe(c.Owner, func(t *Tribe) { t.Score += scorePark })
	case SuperUnitReward:
		if at := s.freeTileNear(c.Tile); at >= 0 {
			j.addUnit(s.newUnit(Giant, c.Owner, at, id))
		}
	}
	return nil
}
