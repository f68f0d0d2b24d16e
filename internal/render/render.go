// Package render draws a grid for terminals. It needs read access to cell
// values only; masks and errors are other collaborators' business.
package render

import (
	"fmt"
	"io"
	"strings"

	"svw.info/sudoku-board/internal/domain"
)

const rule = "_____________________________________" // 37 chars, one per column of the row line

// Text writes a bordered 9x9 grid, one value per cell, 0 shown as-is for
// empty cells.
func Text(w io.Writer, g domain.Grid) error {
	for r := 0; r < 9; r++ {
		var sb strings.Builder
		sb.WriteByte('|')
		for c := 0; c < 9; c++ {
			fmt.Fprintf(&sb, " %d |", g[r][c])
		}
		sb.WriteByte('\n')
		sb.WriteString(rule)
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// String renders the grid into a string.
func String(g domain.Grid) string {
	var sb strings.Builder
	_ = Text(&sb, g)
	return sb.String()
}

// TextRenderer satisfies ports.Renderer.
type TextRenderer struct{}

func New() *TextRenderer { return &TextRenderer{} }

func (*TextRenderer) Render(w io.Writer, g domain.Grid) error { return Text(w, g) }
