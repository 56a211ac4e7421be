package game

// territoryAbility reports whether ability is performed on a tile of the
// tribe's territory rather than by a unit.
func territoryAbility(ability AbilityType) bool {
	switch ability {
	case ClearForestAbility, BurnForestAbility, GrowForestAbility, DestroyAbility:
		return true
	}
	return false
}

func ability(j *journal, m Move) ([]Move, error) {
	if territoryAbility(AbilityType(m.Arg)) {
		return tileAbility(j, m)
	}
	return unitAbility(j, m)
}

// tileAbilityOK reports whether the pov tribe can use ability on tile.
func (s *WorldState) tileAbilityOK(tile int, ability AbilityType) bool {
	t := &s.Tiles[tile]
	tribe := s.Tribe(t.Owner)
	if !s.hasAbility(tribe, ability) {
		return false
	}
	switch ability {
	case ClearForestAbility:
		return t.Terrain == Forest && t.Structure == NoStructure
	case BurnForestAbility:
		return t.Terrain == Forest && t.Structure == NoStructure && tribe.Stars >= 2
	case GrowForestAbility:
		return t.Terrain == Field && t.Structure == NoStructure && t.City < 0 && t.Resource == NoResource && tribe.Stars >= 5
	case DestroyAbility:
		return t.Structure > Ruins && t.City < 0
	}
	return false
}

func tileAbility(j *journal, m Move) ([]Move, error) {
	s := j.s
	t, err := j.ownTerritory(m)
	if err != nil {
		return nil, err
	}
	ab := AbilityType(m.Arg)
	if !s.tileAbilityOK(m.Dst, ab) {
		return nil, illegal(m, "ability %d is not available on tile %d", m.Arg, m.Dst)
	}
	owner, ruler := t.Owner, t.Ruler

	switch ab {
	case ClearForestAbility:
		j.tile(m.Dst, func(t *Tile) { t.Terrain = Field })
		j.stars(owner, 1)
	case BurnForestAbility:
		j.stars(owner, -2)
		j.tile(m.Dst, func(t *Tile) {
			t.Terrain = Field
			t.Resource = Crop
		})
	case GrowForestAbility:
		j.stars(owner, -5)
		j.tile(m.Dst, func(t *Tile) { t.Terrain = Forest })
	case DestroyAbility:
		lost := s.Content.Structures[t.Structure].Population
		j.tile(m.Dst, func(t *Tile) { t.Structure = NoStructure })
		j.growCity(ruler, -lost)
	}
	return nil, nil
}

// unitAbilityOK reports whether u can use ability now.
func (s *WorldState) unitAbilityOK(u *Unit, ability AbilityType) bool {
	fresh := !u.Moved && !u.Attacked
	switch ability {
	case RecoverAbility:
		return fresh && (u.Health < s.MaxHealth(u) || u.Effects.Has(Poisoned))
	case HealOthersAbility:
		return fresh && s.skilled(u, HealSkill) && len(s.woundedAllies(u)) > 0
	case DisbandAbility:
		return !u.Attacked && s.hasAbility(s.Tribe(u.Owner), DisbandAbility)
	case PromoteAbility:
		return u.Kills >= 3 && !u.Veteran
	case FreezeAreaAbility:
		return !u.Attacked && s.skilled(u, FreezeAreaSkill)
	case BoostAbility:
		return !u.Attacked && s.skilled(u, BoostSkill) && len(s.allies(u)) > 0
	}
	return false
}

func (s *WorldState) allies(u *Unit) []int {
	var ids []int
	for _, n := range s.Neighbors(u.Tile) {
		if a := s.UnitAt(n); a != nil && a.Owner == u.Owner {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func (s *WorldState) woundedAllies(u *Unit) []int {
	var ids []int
	for _, id := range s.allies(u) {
		if a := &s.Units[id]; a.Health < s.MaxHealth(a) {
			ids = append(ids, id)
		}
	}
	return ids
}

func unitAbility(j *journal, m Move) ([]Move, error) {
	s := j.s
	u, err := j.actor(m)
	if err != nil {
		return nil, err
	}
	ab := AbilityType(m.Arg)
	if u.Tile != m.Dst || !s.unitAbilityOK(&u, ab) {
		return nil, illegal(m, "unit %d cannot use ability %d", u.ID, m.Arg)
	}

	exhaust := true
	switch ab {
	case RecoverAbility:
		heal := 20
		if s.Tiles[u.Tile].Owner == u.Owner {
			heal = 40
		}
		limit := s.MaxHealth(&u)
		j.unit(u.ID, func(x *Unit) {
			x.Health = min(x.Health+heal, limit)
			x.Effects = x.Effects.Without(Poisoned)
		})
	case HealOthersAbility:
		for _, id := range s.woundedAllies(&u) {
			limit := s.MaxHealth(&s.Units[id])
			j.unit(id, func(x *Unit) { x.Health = min(x.Health+40, limit) })
		}
	case DisbandAbility:
		j.killUnit(u.ID, false)
		j.stars(u.Owner, s.Content.Units[u.Type].Cost/2)
		return nil, nil
	case PromoteAbility:
		j.unit(u.ID, func(x *Unit) { x.Veteran = true })
		limit := s.MaxHealth(&s.Units[u.ID])
		j.unit(u.ID, func(x *Unit) { x.Health = limit })
		exhaust = false
	case FreezeAreaAbility:
		for _, n := range s.Neighbors(u.Tile) {
			if t := &s.Tiles[n]; isWater(t.Terrain) && t.Structure == NoStructure {
				j.tile(n, func(t *Tile) { t.Terrain = Ice })
			}
			if e := s.UnitAt(n); e != nil && e.Owner != u.Owner {
				j.unit(e.ID, func(x *Unit) {
					x.Effects = x.Effects.With(Frozen)
					x.Moved, x.Attacked = true, true
				})
			}
		}
	case BoostAbility:
		for _, id := range s.allies(&u) {
			j.unit(id, func(x *Unit) { x.Effects = x.Effects.With(Boosted) })
		}
	}

	if exhaust {
		j.unit(u.ID, func(x *Unit) { x.Moved, x.Attacked = true, true })
	}
	return nil, nil
}
