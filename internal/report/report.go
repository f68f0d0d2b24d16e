// Package report maps rule errors to user-facing messages and to stable
// machine codes for API responses and the move journal. The board itself
// never formats display text.
package report

import (
	"errors"

	"svw.info/sudoku-board/internal/domain"
)

// Code returns a stable identifier for the error kind.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrValueRange):
		return "value_range"
	case errors.Is(err, domain.ErrFixedCell):
		return "fixed_cell"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, domain.ErrIllegalGrid):
		return "illegal_grid"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

// Message returns the text shown to players.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrValueRange):
		return "Invalid input: value must be between 0 and 9."
	case errors.Is(err, domain.ErrFixedCell):
		return "This cell is fixed and cannot be modified."
	case errors.Is(err, domain.ErrConflict):
		return "Move causes a conflict in row, column, or box."
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Cell coordinates must be between 0 and 8."
	case errors.Is(err, domain.ErrIllegalGrid):
		return "The starting grid already breaks the Sudoku rules."
	case errors.Is(err, domain.ErrSessionNotFound):
		return "No such session."
	default:
		return err.Error()
	}
}
