package game

import (
	"fmt"
	"reflect"
)

// CheckRoundTrip executes m on s, undoes it at once and reports the first
// part of the state that was not restored. s is left undone.
func CheckRoundTrip(s *WorldState, m Move) error {
	before := s.Clone()
	b := Execute(s, m)
	if b.Err != nil {
		return b.Err
	}
	b.Undo.Apply(s)
	return Diff(before, s, m)
}

// Diff compares a state against the snapshot taken before m was executed and
// undone. It also checks every incremental fingerprint against a full
// recomputation.
func Diff(want, got *WorldState, m Move) error {
	parts := []struct {
		name      string
		want, got any
	}{
		{"tiles", want.Tiles, got.Tiles},
		{"units", want.Units, got.Units},
		{"cities", want.Cities, got.Cities},
		{"tribes", want.Tribes, got.Tribes},
		{"settings", want.Settings, got.Settings},
	}
	for _, p := range parts {
		if !reflect.DeepEqual(p.want, p.got) {
			return &UndoMismatchError{Move: m, Field: p.name}
		}
	}
	for i := range got.Tribes {
		owner := got.Tribes[i].Owner
		if got.Tribes[i].Hash != ComputeFingerprint(got, owner) {
			return &UndoMismatchError{Move: m, Field: fmt.Sprintf("fingerprint of tribe %d", owner)}
		}
	}
	return nil
}
