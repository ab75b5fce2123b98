package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// History keeps executed commands in an arena. commands[:cursor] are executed;
// at most one undone command, the redo candidate, sits at commands[cursor].
type History struct {
	commands []*entity.MoveCommand
	cursor   int
}

func NewHistory() *History {
	return &History{
		commands: make([]*entity.MoveCommand, 0, entity.CellCount),
	}
}

// Push appends an executed command and drops the redo candidate.
func (that *History) Push(cmd *entity.MoveCommand) error {
	if cmd == nil || cmd.State() != entity.CommandExecuted {
		return fmt.Errorf("%w: only executed commands can be pushed", apperror.ErrInvalidCommandState)
	}

	that.commands = append(that.commands[:that.cursor], cmd)
	that.cursor++

	return nil
}

// UndoLast reverses the most recent command and keeps it as the only redo
// candidate.
func (that *History) UndoLast(board *entity.Board) (*entity.MoveCommand, error) {
	if that.cursor == 0 {
		return nil, apperror.ErrEmptyHistory
	}

	cmd := that.commands[that.cursor-1]
	if err := cmd.Undo(board); err != nil {
		return nil, fmt.Errorf("could not undo move: %w", err)
	}

	that.cursor--
	that.commands = that.commands[:that.cursor+1]

	return cmd, nil
}

// RedoLast re-applies the redo candidate.
func (that *History) RedoLast(board *entity.Board) (*entity.MoveCommand, error) {
	if !that.CanRedo() {
		return nil, apperror.ErrEmptyHistory
	}

	cmd := that.commands[that.cursor]
	if err := cmd.Redo(board); err != nil {
		return nil, fmt.Errorf("could not redo move: %w", err)
	}

	that.cursor++

	return cmd, nil
}

// Entries returns the executed moves, oldest first.
func (that *History) Entries() []entity.Move {
	moves := make([]entity.Move, 0, that.cursor)
	for _, cmd := range that.commands[:that.cursor] {
		moves = append(moves, cmd.Move())
	}

	return moves
}

func (that *History) Len() int {
	return that.cursor
}

func (that *History) CanUndo() bool {
	return that.cursor > 0
}

func (that *History) CanRedo() bool {
	return that.cursor < len(that.commands)
}
