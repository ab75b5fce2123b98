package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Scheme string

const (
	SchemeNumeric Scheme = "numeric"
	SchemeRoman   Scheme = "roman"
)

var romanNumerals = [entity.CellCount]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}

type Action string

const (
	ActionMove  Action = "move"
	ActionUndo  Action = "undo"
	ActionRedo  Action = "redo"
	ActionReset Action = "reset"
	ActionQuit  Action = "quit"
	ActionHelp  Action = "help"
)

// Request is one parsed line of input.
type Request struct {
	Action Action
	Row    int
	Col    int
}

// Tokens maps input text to requests. Positions are numbered 1..9 row by row,
// written as decimals or roman numerals depending on the scheme.
type Tokens struct {
	Scheme Scheme
	Undo   string
	Redo   string
	Reset  string
	Quit   string
}

func DefaultTokens() Tokens {
	return Tokens{Scheme: SchemeNumeric, Undo: "u", Redo: "r", Reset: "n", Quit: "q"}
}

// Validate rejects unknown schemes and command tokens that shadow a position
// or each other.
func (that Tokens) Validate() error {
	if that.Scheme != SchemeNumeric && that.Scheme != SchemeRoman {
		return fmt.Errorf("%w: scheme %q", apperror.ErrUnknownToken, that.Scheme)
	}

	seen := map[string]bool{"HELP": true, "?": true}
	for _, token := range []string{that.Undo, that.Redo, that.Reset, that.Quit} {
		key := normalize(token)
		if key == "" {
			return fmt.Errorf("%w: empty command token", apperror.ErrUnknownToken)
		}

		if n, err := that.position(key); err == nil && n >= 1 && n <= entity.CellCount {
			return fmt.Errorf("%w: %q is a position", apperror.ErrUnknownToken, token)
		}

		if seen[key] {
			return fmt.Errorf("%w: %q is used twice", apperror.ErrUnknownToken, token)
		}
		seen[key] = true
	}

	return nil
}

func (that Tokens) Parse(input string) (Request, error) {
	key := normalize(input)

	switch key {
	case "":
		return Request{}, fmt.Errorf("%w: empty input", apperror.ErrUnknownToken)
	case normalize(that.Undo):
		return Request{Action: ActionUndo}, nil
	case normalize(that.Redo):
		return Request{Action: ActionRedo}, nil
	case normalize(that.Reset):
		return Request{Action: ActionReset}, nil
	case normalize(that.Quit):
		return Request{Action: ActionQuit}, nil
	case "HELP", "?":
		return Request{Action: ActionHelp}, nil
	}

	n, err := that.position(key)
	if err != nil {
		return Request{}, err
	}

	row, col, err := entity.PositionFromIndex(n)
	if err != nil {
		return Request{}, err
	}

	return Request{Action: ActionMove, Row: row, Col: col}, nil
}

// Label returns the token a player types for the 1..9 position n.
func (that Tokens) Label(n int) string {
	if that.Scheme == SchemeRoman && n >= 1 && n <= entity.CellCount {
		return romanNumerals[n-1]
	}

	return strconv.Itoa(n)
}

func (that Tokens) Prompt() string {
	return fmt.Sprintf("Number (%s-%s): ", that.Label(1), that.Label(entity.CellCount))
}

func (that Tokens) position(key string) (int, error) {
	if that.Scheme == SchemeRoman {
		for i, numeral := range romanNumerals {
			if key == numeral {
				return i + 1, nil
			}
		}

		return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownToken, key)
	}

	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownToken, key)
	}

	return n, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
