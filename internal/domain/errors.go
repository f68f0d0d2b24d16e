package domain

import "errors"

// Rule errors signaled by board updates. Callers branch with errors.Is;
// user-facing text lives in the report package.
var (
	ErrOutOfBounds = errors.New("cell coordinates out of bounds")
	ErrValueRange  = errors.New("value out of range")
	ErrFixedCell   = errors.New("cell is fixed")
	ErrConflict    = errors.New("value conflicts with row, column, or box")
)

// ErrIllegalGrid is returned by the board constructor when the initial
// grid already violates the no-duplicate rule.
var ErrIllegalGrid = errors.New("initial grid is illegal")

// ErrSessionNotFound is returned when a session id is unknown to both the
// live set and the store.
var ErrSessionNotFound = errors.New("session not found")
