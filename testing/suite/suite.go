package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL   = 120
	startupTimeout = 120 * time.Second
	messageTimeout = 5 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite runs a disposable Redis server for tests of the event feed. Redis is
// a publishing client; Listen opens subscriptions on a separate connection.
type Suite struct {
	*testing.T
	Logger *slog.Logger
	Redis  *redis.Client
	Addr   string
}

// New starts Redis in a container. The test is skipped when Docker is not
// reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon is not reachable: %v", err)
	}

	addr := startRedis(ctx, t, pool)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	return ctx, &Suite{
		T:      t,
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Redis:  client,
		Addr:   addr,
	}
}

func startRedis(ctx context.Context, t *testing.T, pool *dockertest.Pool) string {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	// never returns error
	_ = resource.Expire(containerTTL)

	addr := resource.GetHostPort(redisPort)

	// the server needs a moment before it accepts connections
	pool.MaxWait = startupTimeout
	if err = pool.Retry(func() error {
		conn := redis.NewClient(&redis.Options{Addr: addr})
		defer conn.Close()

		return conn.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("redis did not come up: %v", err)
	}

	return addr
}

// Listen subscribes to channel and returns its messages. The subscription is
// confirmed before Listen returns, so nothing published afterwards is missed.
func (that *Suite) Listen(ctx context.Context, channel string) <-chan *redis.Message {
	that.Helper()

	sub := that.Redis.Subscribe(ctx, channel)
	that.Cleanup(func() { _ = sub.Close() })

	if _, err := sub.Receive(ctx); err != nil {
		that.Fatalf("could not subscribe to %s: %v", channel, err)
	}

	return sub.Channel()
}

// Next waits for the next message on messages or fails the test.
func (that *Suite) Next(messages <-chan *redis.Message) *redis.Message {
	that.Helper()

	select {
	case msg, ok := <-messages:
		if !ok {
			that.Fatalf("subscription closed")
		}

		return msg
	case <-time.After(messageTimeout):
		that.Fatalf("no message within %s", messageTimeout)
	}

	return nil
}
