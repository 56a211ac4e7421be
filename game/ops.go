package game

import "polyfish/utils"

// Op is one recorded inverse operation. Reverting it restores a single
// entity, fingerprints included.
type Op interface {
	revert(s *WorldState)
}

// Undo is the ordered inverse of one executed move.
type Undo []Op

// Apply reverts the ops innermost first.
func (u Undo) Apply(s *WorldState) {
	for i := len(u) - 1; i >= 0; i-- {
		u[i].revert(s)
	}
}

type settingsOp struct{ prev Settings }

func (o settingsOp) revert(s *WorldState) { s.putSettings(o.prev) }

type tribeOp struct{ prev Tribe }

func (o tribeOp) revert(s *WorldState) { s.putTribe(o.prev) }

type tileOp struct {
	index int
	prev  Tile
}

func (o tileOp) revert(s *WorldState) { s.putTile(o.index, o.prev) }

type unitOp struct{ prev Unit }

func (o unitOp) revert(s *WorldState) { s.putUnit(o.prev) }

type cityOp struct{ prev City }

func (o cityOp) revert(s *WorldState) { s.putCity(o.prev) }

// unitAddOp drops a slot appended to the unit table.
type unitAddOp struct{ prev []Unit }

func (o unitAddOp) revert(s *WorldState) { s.Units = o.prev }

type cityAddOp struct{ prev []City }

func (o cityAddOp) revert(s *WorldState) { s.Cities = o.prev }

// journal applies mutations through the put methods and records their
// inverses. Slices inside entities are replaced, never written in place, so
// the recorded previous values stay intact.
type journal struct {
	s    *WorldState
	undo Undo
}

func (j *journal) settings(fn func(st *Settings)) {
	next := j.s.Settings
	fn(&next)
	j.undo = append(j.undo, settingsOp{prev: j.s.Settings})
	j.s.putSettings(next)
}

func (j *journal) tribe(owner int, fn func(t *Tribe)) {
	cur := j.s.Tribes[owner-1]
	next := cur
	fn(&next)
	j.undo = append(j.undo, tribeOp{prev: cur})
	j.s.putTribe(next)
}

func (j *journal) tile(i int, fn func(t *Tile)) {
	cur := j.s.Tiles[i]
	next := cur
	fn(&next)
	if next == cur {
		return
	}
	j.undo = append(j.undo, tileOp{index: i, prev: cur})
	j.s.putTile(i, next)
}

func (j *journal) unit(id int, fn func(u *Unit)) {
	cur := j.s.Units[id]
	next := cur
	fn(&next)
	if next == cur {
		return
	}
	j.undo = append(j.undo, unitOp{prev: cur})
	j.s.putUnit(next)
}

func (j *journal) city(id int, fn func(c *City)) {
	cur := j.s.Cities[id]
	next := cur
	fn(&next)
	j.undo = append(j.undo, cityOp{prev: cur})
	j.s.putCity(next)
}

// addUnit appends u to the unit table and the owner's roster.
func (j *journal) addUnit(u Unit) int {
	id := len(j.s.Units)
	j.undo = append(j.undo, unitAddOp{prev: j.s.Units})
	j.s.Units = append(j.s.Units, Unit{ID: id, Tile: -1, Home: -1})
	u.ID = id
	u.Alive = true
	j.unit(id, func(x *Unit) { *x = u })
	j.tribe(u.Owner, func(t *Tribe) { t.Units = utils.Appended(t.Units, id) })
	if u.Home >= 0 {
		j.city(u.Home, func(c *City) { c.UnitCount++ })
	}
	return id
}

// addCity appends c to the city table and the owner's city list.
func (j *journal) addCity(c City) int {
	id := len(j.s.Cities)
	j.undo = append(j.undo, cityAddOp{prev: j.s.Cities})
	j.s.Cities = append(j.s.Cities, City{ID: id, Tile: -1})
	c.ID = id
	j.city(id, func(x *City) { *x = c })
	j.tribe(c.Owner, func(t *Tribe) { t.Cities = utils.Appended(t.Cities, id) })
	return id
}

// rollback reverts everything recorded so far.
func (j *journal) rollback() {
	j.undo.Apply(j.s)
	j.undo = nil
}
