package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewConnection opens a client and checks the server answers.
func NewConnection(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}
