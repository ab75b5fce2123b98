package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// IsWinningFor reports whether every cell of line holds mark.
func IsWinningFor(line entity.Line, mark entity.Mark) bool {
	if !mark.IsValid() {
		return false
	}

	for _, cell := range line.Cells {
		if cell.Mark != mark {
			return false
		}
	}

	return true
}

// WinningLine returns the first line, in canonical order, owned by mark.
func WinningLine(board *entity.Board, mark entity.Mark) (entity.Line, bool) {
	for _, line := range board.Lines() {
		if IsWinningFor(line, mark) {
			return line, true
		}
	}

	return entity.Line{}, false
}
