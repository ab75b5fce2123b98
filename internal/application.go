package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/redis"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs an interactive game on the terminal until the player quits or
// the process is signalled.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run plays one console session on in and out.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	controller := tictactoe.NewGameController(logger, conf.Game.Settings())

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		client, err := redis.NewConnection(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis connection", "error", err)
			}
		}()

		publisher := redis.NewPublisher(logger, client, conf.Redis.ChannelPrefix, conf.Redis.PublishTimeout)
		controller.Subscribe(publisher)
		controller.Subscribe(tictactoe.ListenerFunc(func(event tictactoe.Event) {
			if event.Kind == tictactoe.EventReset {
				log.Info("Publishing game events", "channel", publisher.Channel(event.NextGameID))
			}
		}))

		log.Info("Publishing game events", "addr", redisAddrString, "channel", publisher.Channel(controller.ID()))
	}

	session, err := console.NewSession(logger, controller, in, out, console.Options{
		Tokens: console.Tokens{
			Scheme: console.Scheme(conf.Console.Scheme),
			Undo:   conf.Console.Undo,
			Redo:   conf.Console.Redo,
			Reset:  conf.Console.Reset,
			Quit:   conf.Console.Quit,
		},
		Color: !conf.Console.NoColor && !color.NoColor,
	})
	if err != nil {
		return fmt.Errorf("could not start console: %w", err)
	}

	log.Info("Starting game", "gameID", controller.ID())

	if err = session.Run(ctx); err != nil {
		return fmt.Errorf("console session failed: %w", err)
	}

	log.Info("Game session closed")

	return nil
}
