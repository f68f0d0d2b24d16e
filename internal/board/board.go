// Package board holds the mutable state of one puzzle and guarantees that
// every committed update keeps the grid legal.
package board

import (
	"fmt"

	"svw.info/sudoku-board/internal/domain"
	"svw.info/sudoku-board/internal/validator"
)

// Board owns a grid plus the editable-cell mask derived at construction.
// Row, column and box views are computed from the grid on demand, so there
// is exactly one copy of the state and nothing to keep in sync on rollback.
//
// A Board is not safe for concurrent use: Update's tentative write and
// rollback assume a single writer per grid.
type Board struct {
	grid     domain.Grid
	editable domain.Mask
}

// New builds a Board from an initial grid. Cells holding a non-zero value
// become fixed givens. The grid is checked eagerly: every value must be in
// [0,9] and no row, column, or box may contain a duplicate.
func New(grid domain.Grid) (*Board, error) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if grid[r][c] > 9 {
				return nil, fmt.Errorf("cell (%d,%d) holds %d: %w", r, c, grid[r][c], domain.ErrValueRange)
			}
		}
	}
	if ok, conf := validator.Check(grid); !ok {
		return nil, fmt.Errorf("%d duplicated cells: %w", len(conf), domain.ErrIllegalGrid)
	}
	b := &Board{grid: grid}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			b.editable[r][c] = grid[r][c] == 0
		}
	}
	return b, nil
}

// Resume rebuilds a Board from the puzzle's initial grid and a previously
// saved position. The mask is derived from the initial grid; the saved
// cells are replayed through Update so a corrupted position cannot smuggle
// in an illegal state.
func Resume(initial, current domain.Grid) (*Board, error) {
	b, err := New(initial)
	if err != nil {
		return nil, err
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if current[r][c] == initial[r][c] {
				continue
			}
			if err := b.Update(r, c, int(current[r][c])); err != nil {
				return nil, fmt.Errorf("replay cell (%d,%d): %w", r, c, err)
			}
		}
	}
	return b, nil
}

// BoxIndex maps a cell to the 3x3 box containing it. Boxes are numbered
// 0-8 left to right, top to bottom.
func BoxIndex(r, c int) int { return c/3 + (r/3)*3 }

// Cell returns the value at (r, c).
func (b *Board) Cell(r, c int) uint8 { return b.grid[r][c] }

// Editable reports whether (r, c) may be changed by Update.
func (b *Board) Editable(r, c int) bool { return b.editable[r][c] }

// Row returns the nine values of row i, left to right.
func (b *Board) Row(i int) [9]uint8 { return b.grid[i] }

// Column returns the nine values of column i, top to bottom.
func (b *Board) Column(i int) [9]uint8 {
	var out [9]uint8
	for r := 0; r < 9; r++ {
		out[r] = b.grid[r][i]
	}
	return out
}

// Box returns the nine values of box i, row by row.
func (b *Board) Box(i int) [9]uint8 {
	var out [9]uint8
	br, bc := (i/3)*3, (i%3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			out[dr*3+dc] = b.grid[br+dr][bc+dc]
		}
	}
	return out
}

// Grid returns a copy of the current grid.
func (b *Board) Grid() domain.Grid { return b.grid }

// Mask returns a copy of the editable-cell mask.
func (b *Board) Mask() domain.Mask { return b.editable }

// Valid reports whether the row, column and box containing (r, c) are free
// of duplicates, ignoring empty cells. Only the three units touching the
// cell are inspected: a single-cell change cannot introduce a duplicate
// anywhere else.
func (b *Board) Valid(r, c int) bool {
	return unitValid(b.Row(r)) && unitValid(b.Column(c)) && unitValid(b.Box(BoxIndex(r, c)))
}

func unitValid(unit [9]uint8) bool {
	m := 0
	for _, v := range unit {
		if v == 0 {
			continue
		}
		bit := 1 << v
		if m&bit != 0 {
			return false
		}
		m |= bit
	}
	return true
}

// Update writes val into (r, c); 0 clears the cell. Checks run in a fixed
// order: coordinate bounds, value range, fixed cell, then a tentative write
// that is rolled back if it duplicates a value in any unit containing the
// cell. The grid is legal when Update returns, whether or not it succeeded.
func (b *Board) Update(r, c, val int) error {
	if r < 0 || r > 8 || c < 0 || c > 8 {
		return fmt.Errorf("cell (%d,%d): %w", r, c, domain.ErrOutOfBounds)
	}
	if val < 0 || val > 9 {
		return fmt.Errorf("value %d: %w", val, domain.ErrValueRange)
	}
	if !b.editable[r][c] {
		return fmt.Errorf("cell (%d,%d): %w", r, c, domain.ErrFixedCell)
	}
	prev := b.grid[r][c]
	b.grid[r][c] = uint8(val)
	if !b.Valid(r, c) {
		b.grid[r][c] = prev
		return fmt.Errorf("value %d at (%d,%d): %w", val, r, c, domain.ErrConflict)
	}
	return nil
}

// Solved reports whether every cell is filled. Legality is not re-checked:
// Update never commits an illegal value, so a full grid is a solution.
func (b *Board) Solved() bool {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b.grid[r][c] == 0 {
				return false
			}
		}
	}
	return true
}
