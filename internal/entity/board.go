package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	Size      = 3
	CellCount = Size * Size
	LineCount = 2*Size + 2
)

type Orientation string

const (
	OrientationRow          Orientation = "row"
	OrientationColumn       Orientation = "column"
	OrientationDiagonal     Orientation = "diagonal"
	OrientationAntiDiagonal Orientation = "anti-diagonal"
)

// lineCoords lists every line in canonical order:
// row0, col0, row1, col1, row2, col2, main diagonal, anti diagonal.
var lineCoords = [LineCount][Size][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Cell is a fixed board position and its current occupant.
type Cell struct {
	Row  int
	Col  int
	Mark Mark
}

func (that Cell) IsEmpty() bool {
	return that.Mark == NoMark
}

// Line is a read-only view of three cells.
type Line struct {
	Orientation Orientation
	Index       int
	Cells       [Size]Cell
}

type Board struct {
	cells [Size][Size]Mark
}

func NewBoard() *Board {
	return &Board{}
}

func (that *Board) Get(row, col int) (Mark, error) {
	if err := checkRange(row, col); err != nil {
		return NoMark, err
	}

	return that.cells[row][col], nil
}

// Place puts mark on an empty cell.
func (that *Board) Place(row, col int, mark Mark) error {
	if err := checkRange(row, col); err != nil {
		return err
	}

	if !mark.IsValid() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if that.cells[row][col] != NoMark {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row][col] = mark

	return nil
}

// clear restores a cell without occupancy validation. Only move commands
// reversing their own placement may call it.
func (that *Board) clear(row, col int) {
	that.cells[row][col] = NoMark
}

func (that *Board) Lines() [LineCount]Line {
	var lines [LineCount]Line

	for i, coords := range lineCoords {
		line := Line{Orientation: orientationOf(i), Index: i / 2}
		if i >= 2*Size {
			line.Index = 0
		}

		for j, c := range coords {
			line.Cells[j] = Cell{Row: c[0], Col: c[1], Mark: that.cells[c[0]][c[1]]}
		}

		lines[i] = line
	}

	return lines
}

func (that *Board) IsFull() bool {
	return that.Empty() == 0
}

// Empty returns the number of unoccupied cells.
func (that *Board) Empty() int {
	count := 0
	for _, row := range that.cells {
		for _, mark := range row {
			if mark == NoMark {
				count++
			}
		}
	}

	return count
}

// Grid returns a copy of the board contents.
func (that *Board) Grid() [Size][Size]Mark {
	return that.cells
}

func orientationOf(i int) Orientation {
	switch {
	case i == 2*Size:
		return OrientationDiagonal
	case i == 2*Size+1:
		return OrientationAntiDiagonal
	case i%2 == 0:
		return OrientationRow
	default:
		return OrientationColumn
	}
}

func checkRange(row, col int) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	return nil
}

// PositionFromIndex converts the 1..9 numbering (1-3 top row, 7-9 bottom row)
// into board coordinates.
func PositionFromIndex(n int) (int, int, error) {
	if n < 1 || n > CellCount {
		return 0, 0, fmt.Errorf("%w: index %d", apperror.ErrOutOfRange, n)
	}

	return (n - 1) / Size, (n - 1) % Size, nil
}

func IndexFromPosition(row, col int) (int, error) {
	if err := checkRange(row, col); err != nil {
		return 0, err
	}

	return row*Size + col + 1, nil
}
