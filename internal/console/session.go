package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type controller interface {
	RequestMove(row, col int) error
	RequestUndo() error
	RequestRedo() error
	RequestReset()
	DisplayState() tictactoe.DisplayState
	IsFinished() bool
	Subscribe(listener tictactoe.Listener)
}

type Options struct {
	Tokens Tokens
	Color  bool
}

// Session drives a controller from line based input. It prints the board and
// the controller's notifications; it never decides game rules itself.
type Session struct {
	logger     *slog.Logger
	controller controller
	tokens     Tokens
	painter    painter

	in  io.Reader
	out io.Writer

	// notifications raised while a request runs, printed below the board
	pending []string
}

func NewSession(logger *slog.Logger, ctrl controller, in io.Reader, out io.Writer, opts Options) (*Session, error) {
	if err := opts.Tokens.Validate(); err != nil {
		return nil, fmt.Errorf("invalid console tokens: %w", err)
	}

	that := &Session{
		logger:     logger.With("component", "console"),
		controller: ctrl,
		tokens:     opts.Tokens,
		painter:    newPainter(opts.Color),
		in:         in,
		out:        out,
	}
	ctrl.Subscribe(tictactoe.ListenerFunc(that.notify))

	return that, nil
}

// Run reads requests until the quit token, end of input or ctx is done.
func (that *Session) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(that.out, "Welcome to Tic Tac Toe")
	that.render()
	fmt.Fprintf(that.out, "Player %s's turn\n", that.controller.DisplayState().Turn)

	for {
		fmt.Fprint(that.out, that.tokens.Prompt())

		select {
		case <-ctx.Done():
			fmt.Fprintln(that.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(that.out)
				return that.inputError(readErr)
			}

			if quit := that.handle(line); quit {
				fmt.Fprintln(that.out, "Bye!")
				return nil
			}
		}
	}
}

// handle processes one line and reports whether the session should end.
func (that *Session) handle(line string) bool {
	request, err := that.tokens.Parse(line)
	if err != nil {
		that.report(err)
		return false
	}

	switch request.Action {
	case ActionQuit:
		return true
	case ActionHelp:
		that.help()
		return false
	case ActionMove:
		err = that.controller.RequestMove(request.Row, request.Col)
	case ActionUndo:
		err = that.controller.RequestUndo()
	case ActionRedo:
		err = that.controller.RequestRedo()
	case ActionReset:
		that.controller.RequestReset()
	}

	if err == nil {
		that.render()
	}
	that.flush()

	if err != nil {
		// rejected moves are already described by the invalid_move notification
		if request.Action != ActionMove || !tictactoe.IsRejection(err) {
			that.report(err)
		}

		if !tictactoe.IsRejection(err) {
			that.logger.Error("request failed", "action", request.Action, "error", err)
		}

		return false
	}

	if that.controller.IsFinished() {
		fmt.Fprintf(that.out, "Type %s to take the move back, %s for a new game or %s to quit.\n",
			that.tokens.Undo, that.tokens.Reset, that.tokens.Quit)
	}

	return false
}

func (that *Session) notify(event tictactoe.Event) {
	var message string

	switch event.Kind {
	case tictactoe.EventTurnChanged:
		message = fmt.Sprintf("Player %s's turn", event.Glyph)
	case tictactoe.EventInvalidMove:
		message = "Invalid move: " + describe(event.Reason)
	case tictactoe.EventWon:
		message = fmt.Sprintf("Player %s wins!", event.Glyph)
	case tictactoe.EventTied:
		message = "It's a tie!"
	case tictactoe.EventReset:
		message = "New game started"
	default:
		return
	}

	that.pending = append(that.pending, message)
}

func (that *Session) flush() {
	for _, message := range that.pending {
		fmt.Fprintln(that.out, message)
	}
	that.pending = that.pending[:0]
}

func (that *Session) render() {
	renderBoard(that.out, that.controller.DisplayState(), that.tokens, that.painter)
}

func (that *Session) report(err error) {
	fmt.Fprintf(that.out, "%s\n", describe(err))
}

func (that *Session) help() {
	fmt.Fprint(that.out, heredoc.Docf(`
		Play a cell by typing its number (%s to %s), row by row from the top left.
		  %-6s take back the last move
		  %-6s replay the move taken back
		  %-6s start a new game
		  %-6s quit
	`, that.tokens.Label(1), that.tokens.Label(9), that.tokens.Undo, that.tokens.Redo, that.tokens.Reset, that.tokens.Quit))
}

func (that *Session) inputError(readErr <-chan error) error {
	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("could not read input: %w", err)
		}
	default:
	}

	return nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrOutOfRange):
		return "out of bounds"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "cell already taken"
	case errors.Is(err, apperror.ErrGameFinished):
		return "the game is already over"
	case errors.Is(err, apperror.ErrEmptyHistory):
		return "nothing to take back or replay"
	case errors.Is(err, apperror.ErrUnknownToken):
		return "unknown input, type help for the list of commands"
	default:
		return err.Error()
	}
}
