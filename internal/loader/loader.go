// Package loader reads the puzzle exchange format: a JSON array of nine
// rows, each holding nine integers in [0,9], row-major. Structural checks
// (shape, value range) happen here; legality is the board's job.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"svw.info/sudoku-board/internal/domain"
)

// FromRows converts an already-decoded row slice into a Grid.
func FromRows(rows [][]int) (domain.Grid, error) {
	var g domain.Grid
	if len(rows) != 9 {
		return g, fmt.Errorf("loader: expected 9 rows, got %d", len(rows))
	}
	for r, row := range rows {
		if len(row) != 9 {
			return g, fmt.Errorf("loader: row %d has %d cells, expected 9", r, len(row))
		}
		for c, v := range row {
			if v < 0 || v > 9 {
				return g, fmt.Errorf("loader: cell (%d,%d) holds %d, expected 0-9", r, c, v)
			}
			g[r][c] = uint8(v)
		}
	}
	return g, nil
}

// FromReader decodes a puzzle from r.
func FromReader(r io.Reader) (domain.Grid, error) {
	var rows [][]int
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return domain.Grid{}, fmt.Errorf("loader: decode puzzle: %w", err)
	}
	return FromRows(rows)
}

// FromFile reads a puzzle file from disk.
func FromFile(path string) (domain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Grid{}, fmt.Errorf("loader: open puzzle: %w", err)
	}
	defer f.Close()
	return FromReader(f)
}
