package game

import "fmt"

// IllegalMoveError describes a move whose preconditions did not hold. It is
// reported through Branch.Err and never aborts the caller.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func illegal(m Move, format string, args ...any) *IllegalMoveError {
	return &IllegalMoveError{Move: m, Reason: fmt.Sprintf(format, args...)}
}

// UndoMismatchError reports that undoing a move did not restore the state.
type UndoMismatchError struct {
	Move  Move
	Field string
}

func (e *UndoMismatchError) Error() string {
	return fmt.Sprintf("undo of %s did not restore %s", e.Move, e.Field)
}
