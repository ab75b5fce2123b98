package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executed(t *testing.T, board *entity.Board, row, col int, mark entity.Mark) *entity.MoveCommand {
	t.Helper()

	cmd := entity.NewMoveCommand(row, col, mark)
	require.NoError(t, cmd.Execute(board))

	return cmd
}

func TestHistory_Push(t *testing.T) {
	t.Run("Records executed commands oldest first", func(t *testing.T) {
		// Given: two executed commands
		board := entity.NewBoard()
		history := NewHistory()

		// When: they are pushed
		require.NoError(t, history.Push(executed(t, board, 0, 0, entity.MarkX)))
		require.NoError(t, history.Push(executed(t, board, 1, 1, entity.MarkO)))

		// Then: the entries are in push order
		assert.Equal(t, []entity.Move{
			{Row: 0, Col: 0, Mark: entity.MarkX},
			{Row: 1, Col: 1, Mark: entity.MarkO},
		}, history.Entries())
		assert.Equal(t, 2, history.Len())
	})

	t.Run("Error on pushing a pending command", func(t *testing.T) {
		history := NewHistory()

		err := history.Push(entity.NewMoveCommand(0, 0, entity.MarkX))

		require.ErrorIs(t, err, apperror.ErrInvalidCommandState)
		assert.Zero(t, history.Len())
	})
}

func TestHistory_UndoRedo(t *testing.T) {
	t.Run("N moves followed by N undos empty the board", func(t *testing.T) {
		// Given: five executed moves
		board := entity.NewBoard()
		history := NewHistory()
		moves := [][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 2}, {2, 0}}
		mark := entity.MarkX
		for _, m := range moves {
			require.NoError(t, history.Push(executed(t, board, m[0], m[1], mark)))
			mark = mark.Opponent()
		}

		// When: every move is undone
		for i := len(moves) - 1; i >= 0; i-- {
			cmd, err := history.UndoLast(board)
			require.NoError(t, err)
			assert.Equal(t, moves[i], [2]int{cmd.Row(), cmd.Col()})
		}

		// Then: the board and the history are empty
		assert.Equal(t, entity.CellCount, board.Empty())
		assert.Empty(t, history.Entries())
		assert.False(t, history.CanUndo())
	})

	t.Run("Undo then redo restores the same board", func(t *testing.T) {
		// Given: two executed moves
		board := entity.NewBoard()
		history := NewHistory()
		require.NoError(t, history.Push(executed(t, board, 0, 0, entity.MarkX)))
		require.NoError(t, history.Push(executed(t, board, 2, 1, entity.MarkO)))
		before := board.Grid()

		// When: the last move is undone and redone
		undone, err := history.UndoLast(board)
		require.NoError(t, err)
		assert.True(t, history.CanRedo())

		redone, err := history.RedoLast(board)
		require.NoError(t, err)

		// Then: the board is identical and the same command came back
		assert.Same(t, undone, redone)
		assert.Equal(t, before, board.Grid())
		assert.Equal(t, 2, history.Len())
		assert.False(t, history.CanRedo())
	})

	t.Run("New push discards the redo candidate", func(t *testing.T) {
		// Given: an undone move
		board := entity.NewBoard()
		history := NewHistory()
		require.NoError(t, history.Push(executed(t, board, 0, 0, entity.MarkX)))
		_, err := history.UndoLast(board)
		require.NoError(t, err)

		// When: a different move is pushed
		require.NoError(t, history.Push(executed(t, board, 1, 1, entity.MarkX)))

		// Then: redo has nothing to replay
		assert.False(t, history.CanRedo())
		_, err = history.RedoLast(board)
		require.ErrorIs(t, err, apperror.ErrEmptyHistory)

		mark, _ := board.Get(0, 0)
		assert.Equal(t, entity.NoMark, mark)
	})

	t.Run("Only the latest undone move can be redone", func(t *testing.T) {
		// Given: two moves, both undone
		board := entity.NewBoard()
		history := NewHistory()
		require.NoError(t, history.Push(executed(t, board, 0, 0, entity.MarkX)))
		require.NoError(t, history.Push(executed(t, board, 1, 1, entity.MarkO)))
		_, err := history.UndoLast(board)
		require.NoError(t, err)
		_, err = history.UndoLast(board)
		require.NoError(t, err)

		// When: redo is requested twice
		cmd, err := history.RedoLast(board)
		require.NoError(t, err)
		_, second := history.RedoLast(board)

		// Then: only the first move comes back
		assert.Equal(t, entity.Move{Row: 0, Col: 0, Mark: entity.MarkX}, cmd.Move())
		require.ErrorIs(t, second, apperror.ErrEmptyHistory)
		assert.Equal(t, entity.CellCount-1, board.Empty())
	})

	t.Run("Undo and redo on empty history are no-ops", func(t *testing.T) {
		board := entity.NewBoard()
		history := NewHistory()

		_, err := history.UndoLast(board)
		require.ErrorIs(t, err, apperror.ErrEmptyHistory)

		_, err = history.RedoLast(board)
		require.ErrorIs(t, err, apperror.ErrEmptyHistory)
	})
}
