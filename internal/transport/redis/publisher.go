package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const defaultPublishTimeout = 2 * time.Second

// Message is the JSON payload published for every game event. A reset is
// published on the channel of the game it ends; NextGameID names the channel
// the following events go to.
type Message struct {
	GameID     string    `json:"game_id"`
	Event      string    `json:"event"`
	Mark       string    `json:"mark,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	NextGameID string    `json:"next_game_id,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher forwards controller events to a Redis pub/sub channel per game.
// Nothing is stored; only live subscribers receive the events.
type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	prefix  string
	timeout time.Duration
	now     func() time.Time
}

func NewPublisher(logger *slog.Logger, client *redis.Client, prefix string, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	return &Publisher{
		logger:  logger.With("component", "redis_publisher"),
		client:  client,
		prefix:  prefix,
		timeout: timeout,
		now:     time.Now,
	}
}

// Channel returns the channel events of gameID are published on.
func (that *Publisher) Channel(gameID string) string {
	return that.prefix + ":" + gameID + ":events"
}

// Notify implements tictactoe.Listener. Failures are logged and dropped.
func (that *Publisher) Notify(event tictactoe.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), that.timeout)
	defer cancel()

	if err := that.Publish(ctx, event); err != nil {
		that.logger.Error("could not publish event", "gameID", event.GameID, "event", event.Kind, "error", err)
	}
}

func (that *Publisher) Publish(ctx context.Context, event tictactoe.Event) error {
	payload, err := json.Marshal(that.message(event))
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(event.GameID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (that *Publisher) message(event tictactoe.Event) Message {
	msg := Message{
		GameID:     event.GameID,
		Event:      string(event.Kind),
		Mark:       event.Glyph,
		NextGameID: event.NextGameID,
		At:         that.now().UTC(),
	}

	if event.Reason != nil {
		msg.Reason = event.Reason.Error()
	}

	return msg
}
