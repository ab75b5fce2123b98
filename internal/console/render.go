package console

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// painter colours glyphs by the mark they stand for; the zero value prints
// plain text.
type painter struct {
	x *color.Color
	o *color.Color
}

func newPainter(enabled bool) painter {
	if !enabled {
		return painter{}
	}

	x := color.New(color.FgRed, color.Bold)
	o := color.New(color.FgCyan, color.Bold)
	x.EnableColor()
	o.EnableColor()

	return painter{x: x, o: o}
}

func (that painter) paint(mark entity.Mark, glyph string) string {
	switch {
	case mark == entity.MarkX && that.x != nil:
		return that.x.Sprint(glyph)
	case mark == entity.MarkO && that.o != nil:
		return that.o.Sprint(glyph)
	default:
		return glyph
	}
}

// renderBoard writes the grid with its column and row headers. Empty cells
// show the token that plays them.
func renderBoard(w io.Writer, state tictactoe.DisplayState, tokens Tokens, p painter) {
	width := 1
	for _, row := range state.Grid {
		for _, glyph := range row {
			width = max(width, utf8.RuneCountInString(glyph))
		}
	}
	for n := 1; n <= entity.CellCount; n++ {
		width = max(width, utf8.RuneCountInString(tokens.Label(n)))
	}

	header := make([]string, entity.Size)
	for col := range header {
		header[col] = center(fmt.Sprint(col), width)
	}

	fmt.Fprintf(w, "\n  %s\n", strings.Join(header, "   "))

	for row := 0; row < entity.Size; row++ {
		cells := make([]string, entity.Size)
		for col := 0; col < entity.Size; col++ {
			mark := state.Marks[row][col]
			if mark == entity.NoMark {
				n, _ := entity.IndexFromPosition(row, col)
				cells[col] = center(tokens.Label(n), width)
				continue
			}

			glyph := state.Grid[row][col]
			left, right := padding(glyph, width)
			cells[col] = left + p.paint(mark, glyph) + right
		}

		fmt.Fprintf(w, "%d %s\n", row, strings.Join(cells, " | "))
		if row < entity.Size-1 {
			fmt.Fprintf(w, " %s\n", strings.Repeat("-", entity.Size*(width+3)-1))
		}
	}

	fmt.Fprintln(w)
}

func center(s string, width int) string {
	left, right := padding(s, width)

	return left + s + right
}

// padding splits the space around s, measured in characters, to fill width.
func padding(s string, width int) (string, string) {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return "", ""
	}

	return strings.Repeat(" ", pad/2), strings.Repeat(" ", pad-pad/2)
}
