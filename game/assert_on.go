//go:build polydebug

package game

// AssertUndo makes the search verify every undo against a snapshot.
const AssertUndo = true
