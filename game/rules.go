package game

import "math"

// Settings of a unit as it currently fights. A raft keeps the health pool of
// the unit it carries.
func (s *WorldState) unitStats(u *Unit) UnitSettings {
	st := s.Content.Units[u.Type]
	if st.Health == 0 && u.Passenger != NoUnit {
		st.Health = s.Content.Units[u.Passenger].Health
	}
	if u.Effects.Has(Boosted) {
		st.Attack += 0.5
		st.Movement++
	}
	return st
}

// MaxHealth is in hit points. Veterans get fifty more.
func (s *WorldState) MaxHealth(u *Unit) int {
	hp := s.unitStats(u).Health * 10
	if u.Veteran {
		hp += 50
	}
	return hp
}

func (s *WorldState) skilled(u *Unit, skills ...SkillType) bool {
	return s.Content.Units[u.Type].Skills.Any(skills...)
}

// isAquatic reports whether a unit moves on water.
func (s *WorldState) isAquatic(u *Unit) bool {
	return s.skilled(u, CarrySkill, FloatSkill, NavigateSkill)
}

func (s *WorldState) isFriendlyPort(tile, owner int) bool {
	t := &s.Tiles[tile]
	return t.Structure == Port && t.Owner == owner
}

// roadUsable reports whether the road network on a tile can be used by owner.
// Cities count as road.
func (s *WorldState) roadUsable(tile, owner int) bool {
	t := &s.Tiles[tile]
	return (t.Road || t.City >= 0) && (t.Owner == owner || t.Owner == Nobody)
}

// adjacentToEnemy reports whether any unit of another tribe stands next to tile.
func (s *WorldState) adjacentToEnemy(tile, owner int) bool {
	for _, n := range s.Neighbors(tile) {
		if u := s.UnitAt(n); u != nil && u.Owner != owner {
			return true
		}
	}
	return false
}

// navigable checks terrain against the tribe's technology and the unit's
// movement class, ignoring occupancy.
func (s *WorldState) navigable(u *Unit, tile int) bool {
	if s.skilled(u, FlySkill) {
		return true
	}
	t := &s.Tiles[tile]
	tribe := s.Tribe(u.Owner)
	switch {
	case t.Terrain == Mountain && !tribe.HasTech(Climbing):
		return false
	case t.Terrain == Ocean && !tribe.HasTech(Sailing):
		return false
	}

	if !s.isAquatic(u) {
		if isLand(t.Terrain) {
			return true
		}
		return s.isFriendlyPort(tile, u.Owner)
	}
	if isWater(t.Terrain) {
		return true
	}
	switch {
	case s.skilled(u, CarrySkill):
		return true
	case s.skilled(u, NavigateSkill):
		return t.Structure == Village
	}
	return false
}

// isSteppable reports whether u may end a step on tile.
func (s *WorldState) isSteppable(u *Unit, tile int) bool {
	t := &s.Tiles[tile]
	if !t.ExploredBy(u.Owner) || s.UnitAt(tile) != nil {
		return false
	}
	return s.navigable(u, tile)
}

// EnemiesInRange returns the tiles of enemy units u can attack, in index order.
func (s *WorldState) EnemiesInRange(u *Unit) []int {
	return s.enemiesInRange(u, u.Tile)
}

func (s *WorldState) enemiesInRange(u *Unit, from int) []int {
	var tiles []int
	for _, n := range s.TilesInRadius(from, s.unitStats(u).Range, false) {
		if !s.Tiles[n].ExploredBy(u.Owner) {
			continue
		}
		if e := s.UnitAt(n); e != nil && e.Owner != u.Owner {
			tiles = append(tiles, n)
		}
	}
	return tiles
}

// DefenseBonus is the multiplier applied to a defender's strength.
func (s *WorldState) DefenseBonus(u *Unit) float64 {
	t := &s.Tiles[u.Tile]
	tribe := s.Tribe(u.Owner)
	bonus := 1.0
	switch {
	case isWater(t.Terrain) && tribe.HasTech(Aquatism),
		t.Terrain == Forest && tribe.HasTech(Archery),
		t.Terrain == Mountain && tribe.HasTech(Climbing):
		bonus = 1.5
	}
	if c := s.CityAt(u.Tile); c != nil && c.Owner == u.Owner && s.skilled(u, FortifySkill) {
		if c.Walls {
			bonus = 4
		} else {
			bonus = 1.5
		}
	}
	if u.Effects.Has(Poisoned) {
		bonus *= 0.7
	}
	return bonus
}

// Combat returns the damage dealt by the attacker and the retaliation it
// would take if the defender survives, both in hit points.
func (s *WorldState) Combat(attacker, defender *Unit) (damage, retaliation int) {
	as, ds := s.unitStats(attacker), s.unitStats(defender)
	attackForce := as.Attack * float64(attacker.Health) / float64(s.MaxHealth(attacker))
	defenseForce := ds.Defense * float64(defender.Health) / float64(s.MaxHealth(defender)) * s.DefenseBonus(defender)
	total := attackForce + defenseForce
	if total <= 0 {
		return 0, 0
	}

	damage = int(math.Round(attackForce/total*as.Attack*4.5)) * 10
	if damage >= defender.Health {
		return damage, 0
	}
	if s.skilled(attacker, SurpriseSkill) || s.skilled(defender, StiffSkill) {
		return damage, 0
	}
	if s.Distance(attacker.Tile, defender.Tile) > ds.Range {
		return damage, 0
	}
	retaliation = int(math.Round(defenseForce/total*ds.Defense*4.5)) * 10
	return damage, retaliation
}

// TechCost grows with the tier and the number of cities.
func (s *WorldState) TechCost(t *Tribe, tech TechType) int {
	cost := s.Content.Techs[tech].Tier*len(t.Cities) + 4
	if t.HasTech(Philosophy) {
		cost = int(math.Ceil(float64(cost) * 0.77))
	}
	return cost
}

// canResearch reports whether tech is unlocked next in the tree.
func (s *WorldState) canResearch(t *Tribe, tech TechType) bool {
	if tech == NoTech || t.HasTech(tech) {
		return false
	}
	return t.HasTech(s.Content.Techs[tech].Requires)
}

// hasAbility reports whether any of the tribe's technologies grants ability.
func (s *WorldState) hasAbility(t *Tribe, ability AbilityType) bool {
	for _, tech := range t.Tech {
		for _, a := range s.Content.Techs[tech].Abilities {
			if a == ability {
				return true
			}
		}
	}
	return false
}

// enemyOccupied reports whether a unit of another tribe stands on the city.
func (s *WorldState) enemyOccupied(c *City) bool {
	u := s.UnitAt(c.Tile)
	return u != nil && u.Owner != c.Owner
}

func IsGameOver(s *WorldState) bool {
	return s.Settings.GameOver
}

// Winner returns the owner id of the winning tribe, or Nobody for a draw or
// a running game.
func Winner(s *WorldState) int {
	if !s.Settings.GameOver {
		return Nobody
	}
	if s.LivingTribes() == 1 {
		for i := range s.Tribes {
			if s.Tribes[i].Alive() {
				return s.Tribes[i].Owner
			}
		}
	}
	best, winner := math.MinInt, Nobody
	for i := range s.Tribes {
		t := &s.Tribes[i]
		if !t.Alive() {
			continue
		}
		switch {
		case t.Score > best:
			best, winner = t.Score, t.Owner
		case t.Score == best:
			winner = Nobody
		}
	}
	return winner
}

// Outcome is 1 for a win, -1 for a loss and 0 for a draw, from owner's
// perspective.
func Outcome(s *WorldState, owner int) float64 {
	switch Winner(s) {
	case owner:
		return 1
	case Nobody:
		return 0
	default:
		return -1
	}
}
