package tictactoe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusTied    = "tied"
)

type Settings struct {
	FirstMark entity.Mark
	Glyphs    entity.Glyphs

	// AllowUndoAfterFinish lets a finished game take back its last move,
	// which reopens the session.
	AllowUndoAfterFinish bool
}

func DefaultSettings() Settings {
	return Settings{
		FirstMark:            entity.MarkX,
		Glyphs:               entity.DefaultGlyphs(),
		AllowUndoAfterFinish: true,
	}
}

// DisplayState is the read-only view the presentation layer renders. Grid
// holds display glyphs, Marks the occupants they stand for.
type DisplayState struct {
	GameID  string
	Grid    [entity.Size][entity.Size]string
	Marks   [entity.Size][entity.Size]entity.Mark
	Turn    string
	Status  string
	Winner  string
	Moves   int
	CanUndo bool
	CanRedo bool
}

// GameController owns one game session. It is not safe for concurrent use;
// callers serialize requests.
type GameController struct {
	logger   *slog.Logger
	settings Settings

	id      string
	board   *entity.Board
	history *History
	turn    entity.Mark
	status  string
	winner  entity.Mark

	listeners []Listener
}

func NewGameController(logger *slog.Logger, settings Settings) *GameController {
	if !settings.FirstMark.IsValid() {
		settings.FirstMark = entity.MarkX
	}

	that := &GameController{
		logger:   logger.With("component", "game_controller"),
		settings: settings,
	}
	that.init()

	return that
}

func (that *GameController) init() {
	that.id = uuid.NewString()
	that.board = entity.NewBoard()
	that.history = NewHistory()
	that.turn = that.settings.FirstMark
	that.status = StatusOngoing
	that.winner = entity.NoMark
}

func (that *GameController) Subscribe(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

// RequestMove places the current player's mark at (row, col).
func (that *GameController) RequestMove(row, col int) error {
	log := that.logger.With("method", "RequestMove", "gameID", that.id, "row", row, "col", col)

	if that.IsFinished() {
		that.emitInvalid(apperror.ErrGameFinished)
		return apperror.ErrGameFinished
	}

	cmd := entity.NewMoveCommand(row, col, that.turn)
	if err := cmd.Execute(that.board); err != nil {
		log.Debug("move rejected", "error", err)
		that.emitInvalid(err)

		return fmt.Errorf("invalid move: %w", err)
	}

	if err := that.history.Push(cmd); err != nil {
		return fmt.Errorf("could not record move: %w", err)
	}

	log.Debug("move applied", "mark", cmd.Mark())
	that.settle(cmd.Mark())

	return nil
}

// RequestUndo takes back the last move and gives the turn to its player.
func (that *GameController) RequestUndo() error {
	if that.IsFinished() && !that.settings.AllowUndoAfterFinish {
		return apperror.ErrGameFinished
	}

	cmd, err := that.history.UndoLast(that.board)
	if err != nil {
		return fmt.Errorf("could not undo: %w", err)
	}

	that.status = StatusOngoing
	that.winner = entity.NoMark
	that.turn = cmd.Mark()

	that.logger.Debug("move undone", "gameID", that.id, "row", cmd.Row(), "col", cmd.Col())
	that.emit(Event{Kind: EventTurnChanged, Mark: that.turn})

	return nil
}

// RequestRedo re-applies the last undone move.
func (that *GameController) RequestRedo() error {
	if !that.history.CanRedo() {
		return fmt.Errorf("could not redo: %w", apperror.ErrEmptyHistory)
	}

	cmd, err := that.history.RedoLast(that.board)
	if err != nil {
		return fmt.Errorf("could not redo: %w", err)
	}

	that.logger.Debug("move redone", "gameID", that.id, "row", cmd.Row(), "col", cmd.Col())
	that.settle(cmd.Mark())

	return nil
}

// RequestReset discards the session and starts a new one. The reset event is
// raised under the old id and names the new one; later events use the new id.
func (that *GameController) RequestReset() {
	previous := that.id
	that.init()

	that.logger.Info("game reset", "previousGameID", previous, "gameID", that.id)
	that.emit(Event{GameID: previous, Kind: EventReset, NextGameID: that.id})
	that.emit(Event{Kind: EventTurnChanged, Mark: that.turn})
}

// settle evaluates the board after mark was placed. The win check runs
// before the full-board check.
func (that *GameController) settle(mark entity.Mark) {
	if line, ok := WinningLine(that.board, mark); ok {
		that.status = StatusWon
		that.winner = mark
		that.logger.Info("game won", "gameID", that.id, "mark", mark, "line", line.Orientation, "index", line.Index)
		that.emit(Event{Kind: EventWon, Mark: mark})

		return
	}

	if that.board.IsFull() {
		that.status = StatusTied
		that.logger.Info("game tied", "gameID", that.id)
		that.emit(Event{Kind: EventTied})

		return
	}

	that.turn = mark.Opponent()
	that.emit(Event{Kind: EventTurnChanged, Mark: that.turn})
}

func (that *GameController) emitInvalid(reason error) {
	that.emit(Event{Kind: EventInvalidMove, Reason: reason})
}

func (that *GameController) emit(event Event) {
	if event.GameID == "" {
		event.GameID = that.id
	}
	if event.Mark != entity.NoMark {
		event.Glyph = that.settings.Glyphs.For(event.Mark)
	}

	for _, listener := range that.listeners {
		listener.Notify(event)
	}
}

func (that *GameController) ID() string {
	return that.id
}

func (that *GameController) Turn() entity.Mark {
	return that.turn
}

func (that *GameController) Status() string {
	return that.status
}

// Winner returns NoMark unless the game is won.
func (that *GameController) Winner() entity.Mark {
	return that.winner
}

func (that *GameController) IsFinished() bool {
	return that.status == StatusWon || that.status == StatusTied
}

func (that *GameController) Moves() []entity.Move {
	return that.history.Entries()
}

func (that *GameController) DisplayState() DisplayState {
	state := DisplayState{
		GameID:  that.id,
		Turn:    that.settings.Glyphs.For(that.turn),
		Status:  that.status,
		Winner:  that.settings.Glyphs.For(that.winner),
		Moves:   that.history.Len(),
		CanUndo: that.history.CanUndo(),
		CanRedo: that.history.CanRedo(),
	}

	state.Marks = that.board.Grid()
	for row, marks := range state.Marks {
		for col, mark := range marks {
			state.Grid[row][col] = that.settings.Glyphs.For(mark)
		}
	}

	return state
}

// IsRejection reports whether err is a move the player can correct, as
// opposed to a failure of the engine itself.
func IsRejection(err error) bool {
	return errors.Is(err, apperror.ErrOutOfRange) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrEmptyHistory)
}
