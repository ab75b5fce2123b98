package redis

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw *goredis.Message) Message {
	t.Helper()

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(raw.Payload), &msg))
	assert.False(t, msg.At.IsZero())
	msg.At = time.Time{}

	return msg
}

func TestPublisher_message(t *testing.T) {
	// Given: a publisher with a fixed clock
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	publisher := &Publisher{prefix: "game", now: func() time.Time { return at }}

	t.Run("invalid move carries the reason", func(t *testing.T) {
		// When: an invalid move event is converted
		msg := publisher.message(tictactoe.Event{
			GameID: "abc",
			Kind:   tictactoe.EventInvalidMove,
			Reason: fmt.Errorf("invalid move: %w", apperror.ErrCellOccupied),
		})

		// Then: the reason text is carried and no mark is set
		assert.Equal(t, Message{
			GameID: "abc",
			Event:  "invalid_move",
			Reason: "invalid move: cell is already occupied",
			At:     at,
		}, msg)
		assert.Equal(t, "game:abc:events", publisher.Channel("abc"))
	})

	t.Run("reset names the next game", func(t *testing.T) {
		msg := publisher.message(tictactoe.Event{GameID: "abc", Kind: tictactoe.EventReset, NextGameID: "def"})

		assert.Equal(t, Message{GameID: "abc", Event: "reset", NextGameID: "def", At: at}, msg)
	})
}

func TestPublisher_Notify(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a controller publishing to Redis and a subscriber on its channel
	controller := tictactoe.NewGameController(st.Logger, tictactoe.DefaultSettings())
	publisher := NewPublisher(st.Logger, st.Redis, "game", time.Second)
	controller.Subscribe(publisher)

	messages := st.Listen(ctx, publisher.Channel(controller.ID()))

	// When: X plays and then O hits the same cell
	require.NoError(t, controller.RequestMove(0, 0))
	require.ErrorIs(t, controller.RequestMove(0, 0), apperror.ErrCellOccupied)

	// Then: both events arrive in order
	assert.Equal(t, Message{GameID: controller.ID(), Event: "turn_changed", Mark: entity.DefaultGlyphs().O}, decode(t, st.Next(messages)))
	assert.Equal(t, Message{
		GameID: controller.ID(),
		Event:  "invalid_move",
		Reason: "invalid move: cell is already occupied: (0, 0)",
	}, decode(t, st.Next(messages)))
}

func TestPublisher_NotifyReset(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a subscriber on the channel of the running game
	controller := tictactoe.NewGameController(st.Logger, tictactoe.DefaultSettings())
	publisher := NewPublisher(st.Logger, st.Redis, "game", time.Second)
	controller.Subscribe(publisher)

	previousID := controller.ID()
	old := st.Listen(ctx, publisher.Channel(previousID))

	// When: the game is reset and the new game gets a move
	controller.RequestReset()
	next := st.Listen(ctx, publisher.Channel(controller.ID()))
	require.NoError(t, controller.RequestMove(1, 1))

	// Then: the old channel learns about the reset and where the game went
	assert.Equal(t, Message{GameID: previousID, Event: "reset", NextGameID: controller.ID()}, decode(t, st.Next(old)))

	// And: the new game's events arrive on the new channel
	assert.Equal(t, Message{GameID: controller.ID(), Event: "turn_changed", Mark: entity.DefaultGlyphs().O}, decode(t, st.Next(next)))
}

func TestNewConnection(t *testing.T) {
	ctx, st := suite.New(t)

	t.Run("connects to a running server", func(t *testing.T) {
		conn, err := NewConnection(ctx, st.Addr)
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	})

	t.Run("fails when nothing listens", func(t *testing.T) {
		_, err := NewConnection(ctx, "127.0.0.1:1")
		assert.Error(t, err)
	})
}
