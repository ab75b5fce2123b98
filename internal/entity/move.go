package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type CommandState string

const (
	CommandPending  CommandState = "pending"
	CommandExecuted CommandState = "executed"
	CommandUndone   CommandState = "undone"
)

// Move is a value snapshot of a placement, used for move logs.
type Move struct {
	Row  int
	Col  int
	Mark Mark
}

// MoveCommand places a mark on a board and can reverse that placement.
// The board is supplied by the caller on every call.
type MoveCommand struct {
	row      int
	col      int
	mark     Mark
	previous Mark
	state    CommandState
}

func NewMoveCommand(row, col int, mark Mark) *MoveCommand {
	return &MoveCommand{
		row:   row,
		col:   col,
		mark:  mark,
		state: CommandPending,
	}
}

func (that *MoveCommand) Row() int            { return that.row }
func (that *MoveCommand) Col() int            { return that.col }
func (that *MoveCommand) Mark() Mark          { return that.mark }
func (that *MoveCommand) State() CommandState { return that.state }
func (that *MoveCommand) Previous() Mark      { return that.previous }

func (that *MoveCommand) Move() Move {
	return Move{Row: that.row, Col: that.col, Mark: that.mark}
}

// Execute captures the current value of the target cell and places the mark.
// A failed execute leaves both the board and the command state untouched.
func (that *MoveCommand) Execute(board *Board) error {
	if that.state == CommandExecuted {
		return fmt.Errorf("%w: execute from %s", apperror.ErrInvalidCommandState, that.state)
	}

	previous, err := board.Get(that.row, that.col)
	if err != nil {
		return fmt.Errorf("could not read target cell: %w", err)
	}

	if previous != NoMark {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, that.row, that.col)
	}

	if err = board.Place(that.row, that.col, that.mark); err != nil {
		return fmt.Errorf("could not place mark: %w", err)
	}

	that.previous = previous
	that.state = CommandExecuted

	return nil
}

// Undo restores the value the target cell held before Execute.
func (that *MoveCommand) Undo(board *Board) error {
	if that.state != CommandExecuted {
		return fmt.Errorf("%w: undo from %s", apperror.ErrInvalidCommandState, that.state)
	}

	// previous is always empty: Execute refuses occupied cells.
	board.clear(that.row, that.col)

	that.state = CommandUndone

	return nil
}

// Redo re-applies an undone command.
func (that *MoveCommand) Redo(board *Board) error {
	if that.state != CommandUndone {
		return fmt.Errorf("%w: redo from %s", apperror.ErrInvalidCommandState, that.state)
	}

	return that.Execute(board)
}
