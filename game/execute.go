package game

import (
	"polyfish/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Branch is the result of executing a move: the inverse ops and the forced
// choices the caller has to resolve next. Err is set, and Undo empty, when
// the move was illegal and nothing changed.
type Branch struct {
	FollowUps []Move
	Undo      Undo
	Err       error
}

type executor func(j *journal, m Move) ([]Move, error)

var executors = [moveKindCount]executor{
	EndTurnMove:  endTurn,
	StepMove:     step,
	AttackMove:   attack,
	CaptureMove:  capture,
	SummonMove:   summon,
	AbilityMove:  ability,
	ResearchMove: research,
	BuildMove:    build,
	HarvestMove:  harvest,
	RewardMove:   reward,
}

// Execute applies m to s. It never panics on an illegal move: the partial
// changes are rolled back, the problem is logged and reported in Branch.Err.
func Execute(s *WorldState, m Move) Branch {
	j := &journal{s: s}
	follow, err := j.execute(m)
	if err != nil {
		j.rollback()
		log.Warn().
			Str("move", m.String()).
			Int("turn", s.Settings.Turn).
			Int("pov", s.Settings.Pov).
			Err(err).
			Msg("illegal move")
		return Branch{Err: err}
	}
	return Branch{FollowUps: follow, Undo: j.undo}
}

func (j *journal) execute(m Move) ([]Move, error) {
	s := j.s
	if s.Settings.GameOver {
		return nil, illegal(m, "game is over")
	}
	if int(m.Kind) >= len(executors) {
		return nil, illegal(m, "unknown move kind")
	}
	if pending := s.Settings.PendingRewards; len(pending) > 0 && !slices.Contains(pending, m) {
		return nil, illegal(m, "%d rewards pending", len(pending))
	}

	follow, err := executors[m.Kind](j, m)
	if err != nil {
		return nil, err
	}
	if m.Kind == EndTurnMove {
		return nil, nil
	}

	j.settings(func(st *Settings) {
		if m.Kind == RewardMove {
			var rest []Move
			for _, p := range st.PendingRewards {
				if p.Src != m.Src {
					rest = append(rest, p)
				}
			}
			st.PendingRewards = rest
		}
		if len(follow) > 0 {
			st.PendingRewards = utils.Appended(st.PendingRewards, follow...)
		}
		st.RecentMoves = utils.Appended(st.RecentMoves, m.Kind)
	})
	return follow, nil
}

// actor returns a copy of the living pov unit acting in m.
func (j *journal) actor(m Move) (Unit, error) {
	s := j.s
	if m.Src < 0 || m.Src >= len(s.Units) {
		return Unit{}, illegal(m, "no unit %d", m.Src)
	}
	u := s.Units[m.Src]
	if !u.Alive {
		return Unit{}, illegal(m, "unit %d is dead", m.Src)
	}
	if u.Owner != s.Settings.Pov {
		return Unit{}, illegal(m, "unit %d belongs to tribe %d", m.Src, u.Owner)
	}
	if u.Effects.Has(Frozen) {
		return Unit{}, illegal(m, "unit %d is frozen", m.Src)
	}
	return u, nil
}

func (j *journal) target(m Move) (*Tile, error) {
	if m.Dst < 0 || m.Dst >= len(j.s.Tiles) {
		return nil, illegal(m, "no tile %d", m.Dst)
	}
	return &j.s.Tiles[m.Dst], nil
}

func (j *journal) pay(m Move, owner, cost int) error {
	if have := j.s.Tribe(owner).Stars; have < cost {
		return illegal(m, "costs %d stars, have %d", cost, have)
	}
	if cost != 0 {
		j.stars(owner, -cost)
	}
	return nil
}

func discoverRadius(s *WorldState, u *Unit) int {
	if s.Tiles[u.Tile].Terrain == Mountain || s.skilled(u, ScoutSkill) {
		return 2
	}
	return 1
}

func endTurn(j *journal, m Move) ([]Move, error) {
	s := j.s
	cur, turn := s.Settings.Pov, s.Settings.Turn
	next := cur
	for range s.Tribes {
		next = next%len(s.Tribes) + 1
		if next == 1 {
			turn++
		}
		if s.Tribe(next).Alive() {
			break
		}
	}
	over := turn > s.Settings.MaxTurns || s.LivingTribes() <= 1
	j.settings(func(st *Settings) {
		st.Pov = next
		st.Turn = turn
		st.GameOver = over
		st.RecentMoves = nil
	})
	if over {
		return nil, nil
	}

	tribe := s.Tribe(next)
	if turn >= 2 {
		income := 0
		for _, id := range tribe.Cities {
			c := &s.Cities[id]
			if !c.Riot && !s.enemyOccupied(c) {
				income += c.Production
			}
		}
		if income > 0 {
			j.stars(next, income)
		}
	}
	for _, id := range tribe.Units {
		j.unit(id, func(u *Unit) {
			if u.Effects.Has(Frozen) {
				u.Effects = u.Effects.Without(Frozen)
				u.Moved, u.Attacked = true, true
			} else {
				u.Moved, u.Attacked = false, false
			}
			u.Effects = u.Effects.Without(Boosted)
		})
	}
	return nil, nil
}

func step(j *journal, m Move) ([]Move, error) {
	s := j.s
	u, err := j.actor(m)
	if err != nil {
		return nil, err
	}
	if u.Moved {
		return nil, illegal(m, "unit %d already moved", u.ID)
	}
	if _, err := j.target(m); err != nil {
		return nil, err
	}
	if _, ok := ReachableTiles(s, &u)[m.Dst]; !ok || m.Dst == u.Tile {
		return nil, illegal(m, "tile %d is out of reach", m.Dst)
	}

	typ, passenger := u.Type, u.Passenger
	dst := &s.Tiles[m.Dst]
	switch {
	case !s.isAquatic(&u) && !s.skilled(&u, FlySkill) && isWater(dst.Terrain):
		typ, passenger = Raft, u.Type
	case s.skilled(&u, CarrySkill) && passenger != NoUnit && isLand(dst.Terrain):
		typ, passenger = passenger, NoUnit
	}

	j.unit(u.ID, func(x *Unit) {
		x.Tile = m.Dst
		x.Type = typ
		x.Passenger = passenger
		x.Moved = true
	})
	moved := &s.Units[u.ID]
	j.discover(u.Owner, m.Dst, discoverRadius(s, moved))

	// Dash units may still attack if an enemy is in range after moving.
	canAttack := typ != Raft && s.skilled(moved, DashSkill) && len(s.EnemiesInRange(moved)) > 0
	if !canAttack {
		j.unit(u.ID, func(x *Unit) { x.Attacked = true })
	}
	return nil, nil
}

func attack(j *journal, m Move) ([]Move, error) {
	s := j.s
	a, err := j.actor(m)
	if err != nil {
		return nil, err
	}
	st := s.unitStats(&a)
	switch {
	case a.Attacked:
		return nil, illegal(m, "unit %d already attacked", a.ID)
	case st.Attack <= 0:
		return nil, illegal(m, "unit %d cannot attack", a.ID)
	}
	if _, err := j.target(m); err != nil {
		return nil, err
	}
	dp := s.UnitAt(m.Dst)
	switch {
	case dp == nil || dp.Owner == a.Owner:
		return nil, illegal(m, "no enemy on tile %d", m.Dst)
	case s.Distance(a.Tile, m.Dst) > st.Range:
		return nil, illegal(m, "tile %d is out of range", m.Dst)
	case !s.Tiles[m.Dst].ExploredBy(a.Owner):
		return nil, illegal(m, "tile %d is unexplored", m.Dst)
	}
	d := *dp

	var splash []int
	if s.skilled(&a, SplashSkill) {
		for _, n := range s.Neighbors(m.Dst) {
			if e := s.UnitAt(n); e != nil && e.Owner != a.Owner {
				splash = append(splash, n)
			}
		}
	}

	damage, retaliation := s.Combat(&a, &d)
	killed := damage >= d.Health
	if killed {
		j.killUnit(d.ID, true)
		j.unit(a.ID, func(x *Unit) { x.Kills++ })
		j.tribe(a.Owner, func(t *Tribe) { t.Kills++ })
		if st.Range == 1 && s.navigable(&a, m.Dst) {
			j.unit(a.ID, func(x *Unit) { x.Tile = m.Dst })
			j.discover(a.Owner, m.Dst, discoverRadius(s, &s.Units[a.ID]))
		}
	} else {
		j.unit(d.ID, func(x *Unit) { x.Health -= damage })
		if retaliation >= a.Health {
			j.killUnit(a.ID, true)
			j.unit(d.ID, func(x *Unit) { x.Kills++ })
			j.tribe(d.Owner, func(t *Tribe) { t.Kills++ })
		} else if retaliation > 0 {
			j.unit(a.ID, func(x *Unit) { x.Health -= retaliation })
		}
	}

	for _, tile := range splash {
		e := s.UnitAt(tile)
		if e == nil {
			continue
		}
		hit, _ := s.Combat(&a, e)
		hit = hit / 20 * 10
		if hit >= e.Health {
			j.killUnit(e.ID, true)
			j.tribe(a.Owner, func(t *Tribe) { t.Kills++ })
		} else if hit > 0 {
			j.unit(e.ID, func(x *Unit) { x.Health -= hit })
		}
	}

	if s.Units[a.ID].Alive {
		escape := s.skilled(&a, EscapeSkill)
		persist := killed && s.skilled(&a, PersistSkill)
		j.unit(a.ID, func(x *Unit) {
			x.Attacked = !persist
			x.Moved = x.Moved || !escape
		})
	}
	return nil, nil
}

func capture(j *journal, m Move) ([]Move, error) {
	s := j.s
	u, err := j.actor(m)
	if err != nil {
		return nil, err
	}
	if u.Moved || u.Attacked {
		return nil, illegal(m, "unit %d is exhausted", u.ID)
	}
	if u.Tile != m.Dst {
		return nil, illegal(m, "unit %d is not on tile %d", u.ID, m.Dst)
	}
	t := &s.Tiles[m.Dst]

	var follow []Move
	switch m.Arg {
	case CaptureVillage:
		if t.Structure != Village || t.City >= 0 {
			return nil, illegal(m, "no village on tile %d", m.Dst)
		}
		j.captureVillage(&u, m.Dst)
	case CaptureRuins:
		if t.Structure != Ruins {
			return nil, illegal(m, "no ruins on tile %d", m.Dst)
		}
		follow = j.captureRuins(&u, m.Dst)
	case CaptureCity:
		c := s.CityAt(m.Dst)
		if c == nil || c.Owner == u.Owner {
			return nil, illegal(m, "no enemy city on tile %d", m.Dst)
		}
		j.captureCity(&u, c.ID)
	default:
		return nil, illegal(m, "unknown capture target %d", m.Arg)
	}

	j.unit(u.ID, func(x *Unit) { x.Moved, x.Attacked = true, true })
	return follow, nil
}

// summonable reports whether a city may train typ.
func (s *WorldState) summonable(t *Tribe, typ UnitType) bool {
	if typ == NoUnit || int(typ) >= len(s.Content.Units) {
		return false
	}
	st := &s.Content.Units[typ]
	return st.Cost > 0 && !st.Super && t.HasTech(st.Tech)
}

func summon(j *journal, m Move) ([]Move, error) {
	s := j.s
	if m.Src < 0 || m.Src >= len(s.Cities) {
		return nil, illegal(m, "no city %d", m.Src)
	}
	c := s.Cities[m.Src]
	typ := UnitType(m.Arg)
	owner := s.Settings.Pov
	switch {
	case c.Owner != owner:
		return nil, illegal(m, "city %d belongs to tribe %d", c.ID, c.Owner)
	case c.Tile != m.Dst:
		return nil, illegal(m, "city %d is not on tile %d", c.ID, m.Dst)
	case !s.summonable(s.Tribe(owner), typ):
		return nil, illegal(m, "unit type %d is locked", m.Arg)
	case c.UnitCount > c.Level:
		return nil, illegal(m, "city %d supports no more units", c.ID)
	case s.UnitAt(c.Tile) != nil:
		return nil, illegal(m, "city %d is occupied", c.ID)
	}
	if err := j.pay(m, owner, s.Content.Units[typ].Cost); err != nil {
		return nil, err
	}
	j.addUnit(s.newUnit(typ, owner, c.Tile, c.ID))
	return nil, nil
}

func research(j *journal, m Move) ([]Move, error) {
	s := j.s
	tech := TechType(m.Arg)
	owner := s.Settings.Pov
	tribe := s.Tribe(owner)
	if m.Arg <= 0 || m.Arg >= len(s.Content.Techs) || !s.canResearch(tribe, tech) {
		return nil, illegal(m, "technology %d is not researchable", m.Arg)
	}
	if err := j.pay(m, owner, s.TechCost(tribe, tech)); err != nil {
		return nil, err
	}
	j.tribe(owner, func(t *Tribe) {
		t.Tech = utils.Appended(t.Tech, tech)
		t.Score += scoreTech
	})
	return nil, nil
}

// ownTerritory returns the tile of m if it belongs to a pov city.
func (j *journal) ownTerritory(m Move) (*Tile, error) {
	t, err := j.target(m)
	if err != nil {
		return nil, err
	}
	if t.Owner != j.s.Settings.Pov || t.Ruler < 0 {
		return nil, illegal(m, "tile %d is not in own territory", m.Dst)
	}
	if u := j.s.UnitAt(m.Dst); u != nil && u.Owner != t.Owner {
		return nil, illegal(m, "tile %d is occupied by an enemy", m.Dst)
	}
	return t, nil
}

// buildable reports the population a structure would add on tile, or -1 if it
// cannot be built there.
func (s *WorldState) buildable(tile int, structure StructureType) int {
	if structure <= Ruins || int(structure) >= len(s.Content.Structures) {
		return -1
	}
	st := &s.Content.Structures[structure]
	t := &s.Tiles[tile]
	switch {
	case t.Structure != NoStructure || t.City >= 0:
		return -1
	case !slices.Contains(st.Terrain, t.Terrain):
		return -1
	case st.Resource != NoResource && t.Resource != st.Resource:
		return -1
	case !s.Tribe(t.Owner).HasTech(st.Tech):
		return -1
	}
	if st.PerCity {
		for _, i := range s.Cities[t.Ruler].Territory {
			if s.Tiles[i].Structure == structure {
				return -1
			}
		}
	}
	if st.Adjacent == NoStructure {
		return st.Population
	}
	n := 0
	for _, i := range s.Neighbors(tile) {
		if s.Tiles[i].Structure == st.Adjacent && s.Tiles[i].Owner == t.Owner {
			n++
		}
	}
	if n == 0 {
		return -1
	}
	return n * st.Population
}

func build(j *journal, m Move) ([]Move, error) {
	s := j.s
	t, err := j.ownTerritory(m)
	if err != nil {
		return nil, err
	}
	structure := StructureType(m.Arg)
	pop := s.buildable(m.Dst, structure)
	if pop < 0 {
		return nil, illegal(m, "structure %d cannot be built on tile %d", m.Arg, m.Dst)
	}
	owner, ruler := t.Owner, t.Ruler
	st := &s.Content.Structures[structure]
	if err := j.pay(m, owner, st.Cost); err != nil {
		return nil, err
	}

	j.tile(m.Dst, func(t *Tile) {
		t.Structure = structure
		if st.Resource != NoResource {
			t.Resource = NoResource
		}
	})
	follow := j.growCity(ruler, pop)

	// Existing workshops next to the new structure grow as well.
	for _, i := range s.Neighbors(m.Dst) {
		n := &s.Tiles[i]
		if n.Owner != owner || n.Ruler < 0 || n.Structure == NoStructure {
			continue
		}
		if feeder := &s.Content.Structures[n.Structure]; feeder.Adjacent == structure {
			follow = append(follow, j.growCity(n.Ruler, feeder.Population)...)
		}
	}
	return follow, nil
}

func harvest(j *journal, m Move) ([]Move, error) {
	s := j.s
	t, err := j.ownTerritory(m)
	if err != nil {
		return nil, err
	}
	if t.Resource == NoResource {
		return nil, illegal(m, "no resource on tile %d", m.Dst)
	}
	rs := &s.Content.Resources[t.Resource]
	if rs.Structure != NoStructure || !s.Tribe(t.Owner).HasTech(rs.Tech) {
		return nil, illegal(m, "resource on tile %d cannot be harvested", m.Dst)
	}
	owner, ruler := t.Owner, t.Ruler
	if err := j.pay(m, owner, rs.Cost); err != nil {
		return nil, err
	}
	j.tile(m.Dst, func(t *Tile) { t.Resource = NoResource })
	return j.growCity(ruler, rs.Population), nil
}

func reward(j *journal, m Move) ([]Move, error) {
	s := j.s
	if m.Src < 0 || m.Src >= len(s.Cities) || s.Cities[m.Src].Owner != s.Settings.Pov {
		return nil, illegal(m, "city %d is not owned", m.Src)
	}
	if m.Arg <= int(NoReward) || m.Arg > int(SuperUnitReward) {
		return nil, illegal(m, "unknown reward %d", m.Arg)
	}
	return j.applyReward(m.Src, RewardType(m.Arg)), nil
}
