package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

type EventKind string

const (
	EventTurnChanged EventKind = "turn_changed"
	EventInvalidMove EventKind = "invalid_move"
	EventWon         EventKind = "won"
	EventTied        EventKind = "tied"
	EventReset       EventKind = "reset"
)

// Event is a state change notification for the presentation layer.
// Mark and Glyph are set for turn_changed and won, Reason for invalid_move.
// A reset carries the id of the game it ends and NextGameID of the new one.
type Event struct {
	GameID     string
	Kind       EventKind
	Mark       entity.Mark
	Glyph      string
	Reason     error
	NextGameID string
}

type Listener interface {
	Notify(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

func (that ListenerFunc) Notify(event Event) {
	that(event)
}
