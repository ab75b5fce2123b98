package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file overriding a few keys
		path := writeConfig(t, `
log-level: debug
game:
  first-mark: O
  glyph-x: "#"
  lock-after-finish: true
console:
  scheme: roman
  quit: exit
redis:
  enabled: true
  port: "6380"
  publish-timeout: 500ms
`)

		// When: the file is loaded
		conf, err := Load(path)

		// Then: file values and defaults are combined
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, SchemeRoman, conf.Console.Scheme)
		assert.Equal(t, "exit", conf.Console.Quit)
		assert.Equal(t, "u", conf.Console.Undo)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 500*time.Millisecond, conf.Redis.PublishTimeout)

		settings := conf.Game.Settings()
		assert.Equal(t, entity.MarkO, settings.FirstMark)
		assert.Equal(t, entity.Glyphs{X: "#", O: "O"}, settings.Glyphs)
		assert.False(t, settings.AllowUndoAfterFinish)
	})

	t.Run("Falls back to the environment when the file is missing", func(t *testing.T) {
		// Given: no config file and a scheme in the environment
		t.Setenv("CONSOLE_SCHEME", "roman")

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults and environment are used
		require.NoError(t, err)
		assert.Equal(t, SchemeRoman, conf.Console.Scheme)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "X", conf.Game.FirstMark)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, 2*time.Second, conf.Redis.PublishTimeout)
		assert.True(t, conf.Game.Settings().AllowUndoAfterFinish)
	})

	t.Run("Error on invalid values", func(t *testing.T) {
		cases := map[string]string{
			"first mark":      "game:\n  first-mark: Z\n",
			"scheme":          "console:\n  scheme: binary\n",
			"duplicate token": "console:\n  undo: x\n  redo: x\n",
		}

		for name, body := range cases {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig, name)
		}
	})
}

func TestMustLoad(t *testing.T) {
	path := writeConfig(t, "console:\n  scheme: nope\n")

	assert.Panics(t, func() {
		MustLoad(path)
	})
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("tictactoe", "config.yml"), filepath.Join(filepath.Base(filepath.Dir(DefaultPath())), filepath.Base(DefaultPath())))
}
