package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	SchemeNumeric = "numeric"
	SchemeRoman   = "roman"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game    `yaml:"game"`
	Console  Console `yaml:"console"`
	Redis    Redis   `yaml:"redis"`
}

type Game struct {
	FirstMark string `yaml:"first-mark" env:"GAME_FIRST_MARK" env-default:"X"`
	GlyphX    string `yaml:"glyph-x" env:"GAME_GLYPH_X" env-default:"X"`
	GlyphO    string `yaml:"glyph-o" env:"GAME_GLYPH_O" env-default:"O"`

	// LockAfterFinish forbids taking back the move that finished a game.
	LockAfterFinish bool `yaml:"lock-after-finish" env:"GAME_LOCK_AFTER_FINISH"`
}

type Console struct {
	Scheme  string `yaml:"scheme" env:"CONSOLE_SCHEME" env-default:"numeric"`
	Undo    string `yaml:"undo" env:"CONSOLE_UNDO" env-default:"u"`
	Redo    string `yaml:"redo" env:"CONSOLE_REDO" env-default:"r"`
	Reset   string `yaml:"reset" env:"CONSOLE_RESET" env-default:"n"`
	Quit    string `yaml:"quit" env:"CONSOLE_QUIT" env-default:"q"`
	NoColor bool   `yaml:"no-color" env:"NO_COLOR"`
}

type Redis struct {
	Enabled        bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port           string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ChannelPrefix  string        `yaml:"channel-prefix" env:"REDIS_CHANNEL_PREFIX" env-default:"game"`
	PublishTimeout time.Duration `yaml:"publish-timeout" env:"REDIS_PUBLISH_TIMEOUT" env-default:"2s"`
}

// DefaultPath is the config file looked up when no path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tictactoe", "config.yml")
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path when it exists and the environment otherwise. Variables
// from a .env file in the working directory are loaded first.
func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	config := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err = cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("could not read config %s: %w", path, err)
			}

			return config, config.Validate()
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return config, config.Validate()
}

func (that *Config) Validate() error {
	if _, err := entity.ParseMark(that.Game.FirstMark); err != nil {
		return fmt.Errorf("%w: game.first-mark: %w", ErrInvalidConfig, err)
	}

	if that.Game.GlyphX == "" || that.Game.GlyphO == "" {
		return fmt.Errorf("%w: glyphs must not be empty", ErrInvalidConfig)
	}

	switch that.Console.Scheme {
	case SchemeNumeric, SchemeRoman:
	default:
		return fmt.Errorf("%w: unknown console scheme %q", ErrInvalidConfig, that.Console.Scheme)
	}

	tokens := []string{that.Console.Undo, that.Console.Redo, that.Console.Reset, that.Console.Quit}
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if token == "" {
			return fmt.Errorf("%w: console tokens must not be empty", ErrInvalidConfig)
		}
		if _, ok := seen[token]; ok {
			return fmt.Errorf("%w: duplicate console token %q", ErrInvalidConfig, token)
		}
		seen[token] = struct{}{}
	}

	return nil
}

// Settings converts the game section into controller settings.
func (that *Game) Settings() tictactoe.Settings {
	first, err := entity.ParseMark(that.FirstMark)
	if err != nil {
		first = entity.MarkX
	}

	return tictactoe.Settings{
		FirstMark:            first,
		Glyphs:               entity.Glyphs{X: that.GlyphX, O: that.GlyphO},
		AllowUndoAfterFinish: !that.LockAfterFinish,
	}
}

// GetRedisAddr returns host:port, or an empty string when no host is set.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
