package main

import (
	"bytes"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termsight/config"
	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/engine"
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/scene"
	"github.com/lixenwraith/termsight/status"
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
)

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupLoggingCreatesFile(t *testing.T) {
	restoreDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	f, logger, err := setupLogging(path, config.DefaultLogMaxSize, slog.LevelInfo)
	require.NoError(t, err)
	defer f.Close()

	logger.Debug("hidden")
	logger.Info("visible", "k", 1)
	log.Println("stray stdlib line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=visible k=1")
	assert.Contains(t, string(data), "stray stdlib line")
	assert.NotContains(t, string(data), "hidden")

	assert.NotEqual(t, os.Stdout, log.Writer())
	assert.NotEqual(t, os.Stderr, log.Writer())
}

func TestSetupLoggingTruncates(t *testing.T) {
	restoreDefaultLogger(t)
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	f, _, err := setupLogging(path, config.DefaultLogMaxSize, slog.LevelInfo)
	require.NoError(t, err)
	f.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "small logs are not rotated")
}

func TestSetupLoggingRotation(t *testing.T) {
	restoreDefaultLogger(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")
	const maxSize = 1024
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, maxSize+1), 0644))

	f, _, err := setupLogging(path, maxSize, slog.LevelInfo)
	require.NoError(t, err)
	defer f.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated string
	for _, e := range entries {
		if e.Name() != "debug.log" && strings.HasPrefix(e.Name(), "debug.") && filepath.Ext(e.Name()) == ".log" {
			rotated = e.Name()
		}
	}
	require.NotEmpty(t, rotated, "expected a rotated log file")

	info, err := os.Stat(filepath.Join(dir, rotated))
	require.NoError(t, err)
	assert.EqualValues(t, maxSize+1, info.Size())

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFlagsOverrideConfig(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{"unset keeps file values", nil, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, 45, cfg.FPS)
			assert.Equal(t, config.SceneCube, cfg.Scene)
		}},
		{"fps", []string{"-fps", "12"}, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, 12, cfg.FPS)
		}},
		{"dither", []string{"-dither", "4", "-method", "floyd-steinberg"}, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, uint32(4), cfg.Dither.Level)
			assert.Equal(t, "floyd-steinberg", cfg.Dither.Method)
		}},
		{"dither clamps before narrowing", []string{"-dither", "4294967296"}, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, dither.MaxLevel, cfg.Dither.Level)
		}},
		{"image implies scene", []string{"-image", "cat.png"}, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, config.SceneImage, cfg.Scene)
			assert.Equal(t, "cat.png", cfg.ImagePath)
		}},
		{"explicit scene wins", []string{"-image", "cat.png", "-scene", "spheres"}, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, config.SceneSpheres, cfg.Scene)
		}},
		{"misc", []string{"-color", "mono", "-async", "-log", "/tmp/x.log"}, func(t *testing.T, cfg *config.Config) {
			assert.Equal(t, "mono", cfg.Color)
			assert.True(t, cfg.AsyncRender)
			assert.Equal(t, "/tmp/x.log", cfg.Log.Path)
		}},
	}

	path := filepath.Join(t.TempDir(), "termsight.toml")
	require.NoError(t, os.WriteFile(path, []byte("fps = 45\nscene = \"cube\"\n"), 0644))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags cliFlags
			fs := flag.NewFlagSet("termsight", flag.ContinueOnError)
			flags.register(fs)
			require.NoError(t, fs.Parse(append([]string{"-config", path}, tt.args...)))

			cfg, got, err := loadConfig(&flags, fs)
			require.NoError(t, err)
			assert.Equal(t, path, got)
			tt.check(t, cfg)
		})
	}
}

func TestFlagsRejectInvalid(t *testing.T) {
	var flags cliFlags
	fs := flag.NewFlagSet("termsight", flag.ContinueOnError)
	flags.register(fs)
	require.NoError(t, fs.Parse([]string{"-config", filepath.Join(t.TempDir(), "none.toml"), "-fps", "0"}))

	_, _, err := loadConfig(&flags, fs)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestBuildScene(t *testing.T) {
	cfg := config.Default()
	sc, err := buildScene(cfg)
	require.NoError(t, err)
	assert.IsType(t, &scene.Spheres{}, sc)

	cfg.Scene = config.SceneCube
	sc, err = buildScene(cfg)
	require.NoError(t, err)
	assert.IsType(t, &scene.Cube{}, sc)

	cfg.Scene = config.SceneImage
	cfg.ImagePath = filepath.Join(t.TempDir(), "missing.png")
	sc, err = buildScene(cfg)
	assert.Error(t, err)
	assert.Nil(t, sc)
}

func TestDitherControlAppliesInSameCycle(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := terminal.NewWithScreen(sim, terminal.Options{ColorMode: terminal.ColorModeTrueColor})
	require.NoError(t, term.Init())
	t.Cleanup(term.Fini)
	sim.SetSize(40, 12)

	app := engine.New(term, scene.NewRenderer(&scene.Fill{Luma: 128}, nil), engine.Options{})
	_, err := app.CreateDisplay(1, tui.DefaultStyle)
	require.NoError(t, err)
	installWidgets(app, app.Display().Config())

	key := func(r rune) input.Event { return input.Event{Kind: input.KindKey, Key: input.KeyRune, Rune: r} }

	app.Publish(key('d'))
	require.NoError(t, app.Tick(0))
	_, focused := app.Widgets().Focused()
	require.True(t, focused)

	app.Publish(key('+'))
	require.NoError(t, app.Tick(0))
	assert.Equal(t, uint32(2), app.Display().Config().DitherLevel, "level change lands in the cycle of the key press")
	assert.EqualValues(t, 2, app.Stats().Ints.Get(status.KeyDitherLevel).Load())
}
