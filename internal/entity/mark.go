package entity

import "fmt"

// Mark identifies the player occupying a cell. Marks compare by tag only,
// the glyph used to display them is configured separately in Glyphs.
type Mark uint8

const (
	NoMark Mark = iota
	MarkX
	MarkO
)

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other player's mark. NoMark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return NoMark
	}
}

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	case NoMark:
		return "-"
	default:
		return fmt.Sprintf("Mark(%d)", uint8(that))
	}
}

// ParseMark accepts the tag names used in configuration ("X" or "O").
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X", "x":
		return MarkX, nil
	case "O", "o":
		return MarkO, nil
	default:
		return NoMark, fmt.Errorf("unknown mark %q", s)
	}
}

// Glyphs maps marks to their display text.
type Glyphs struct {
	X string
	O string
}

func DefaultGlyphs() Glyphs {
	return Glyphs{X: "X", O: "O"}
}

func (that Glyphs) For(mark Mark) string {
	switch mark {
	case MarkX:
		return that.X
	case MarkO:
		return that.O
	default:
		return ""
	}
}
