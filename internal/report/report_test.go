package report

import (
	"errors"
	"fmt"
	"testing"

	"svw.info/sudoku-board/internal/domain"
)

func TestCodeAndMessage(t *testing.T) {
	tests := []struct {
		err     error
		code    string
		message string
	}{
		{domain.ErrValueRange, "value_range", "Invalid input: value must be between 0 and 9."},
		{domain.ErrFixedCell, "fixed_cell", "This cell is fixed and cannot be modified."},
		{domain.ErrConflict, "conflict", "Move causes a conflict in row, column, or box."},
		{domain.ErrOutOfBounds, "out_of_bounds", "Cell coordinates must be between 0 and 8."},
		{domain.ErrSessionNotFound, "not_found", "No such session."},
		{nil, "", ""},
	}
	for _, tt := range tests {
		// Kinds must survive wrapping, which is how the board surfaces them.
		wrapped := tt.err
		if wrapped != nil {
			wrapped = fmt.Errorf("cell (0,0): %w", tt.err)
		}
		if got := Code(wrapped); got != tt.code {
			t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.code)
		}
		if got := Message(wrapped); got != tt.message {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.message)
		}
	}
}

func TestUnknownErrorPassthrough(t *testing.T) {
	err := errors.New("disk on fire")
	if got := Code(err); got != "internal" {
		t.Fatalf("Code = %q, want internal", got)
	}
	if got := Message(err); got != "disk on fire" {
		t.Fatalf("Message = %q", got)
	}
}
