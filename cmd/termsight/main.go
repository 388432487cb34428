// Command termsight renders an animated scene into the terminal as dithered
// braille, with a status bar, help panel, metrics pane, and dither control
// layered on top.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gg"
	"github.com/mitchellh/go-homedir"

	"github.com/lixenwraith/termsight/config"
	"github.com/lixenwraith/termsight/core"
	"github.com/lixenwraith/termsight/display"
	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/engine"
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/scene"
	"github.com/lixenwraith/termsight/status"
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
	"github.com/lixenwraith/termsight/widgets"
)

func main() {
	defer func() { core.HandleCrash(recover()) }()

	var flags cliFlags
	flags.register(flag.CommandLine)
	flag.Parse()

	if err := run(&flags); err != nil {
		fmt.Fprintf(os.Stderr, "termsight: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and layers explicitly set flags over it
func loadConfig(flags *cliFlags, fs *flag.FlagSet) (*config.Config, string, error) {
	path := flags.configPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	flags.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func run(flags *cliFlags) error {
	cfg, path, err := loadConfig(flags, flag.CommandLine)
	if err != nil {
		return err
	}
	if flags.printConfig != "" {
		return cfg.Encode(os.Stdout, flags.printConfig)
	}

	logFile, log, err := setupLogging(cfg.LogPath(), cfg.Log.MaxSize, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer logFile.Close()
	gg.SetLogger(log.With("component", "gg"))
	log.Info("starting", "config", path, "scene", cfg.Scene, "fps", cfg.FPS, "async", cfg.AsyncRender)

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	colorMode, err := cfg.ColorMode()
	if err != nil {
		return err
	}
	term, err := terminal.New(terminal.Options{
		ColorMode:           colorMode,
		Mouse:               cfg.Input.Mouse,
		KeyboardEnhancement: cfg.Input.KeyboardEnhancement,
	})
	if err != nil {
		return err
	}

	guard := core.NewGuard(term.Fini)
	core.SetCrashGuard(guard)
	defer guard.Recover()

	dc, err := cfg.DisplayConfig()
	if err != nil {
		return err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	stats := status.NewRegistry()
	stats.Strings.Get(status.KeyScene).Store(cfg.Scene)

	app := engine.New(term, scene.NewRenderer(sc, log.With("component", "scene")), engine.Options{
		Log:             log,
		Guard:           guard,
		Keys:            keys,
		Stats:           stats,
		FPS:             cfg.FPS,
		AsyncRender:     cfg.AsyncRender,
		ReadbackTimeout: cfg.Timeout(),
		Method:          dc.Method,
		ConfigPath:      path,
	})
	if err := app.Start(); err != nil {
		return err
	}
	defer app.Close()

	if _, err := app.CreateDisplay(dc.DitherLevel, dc.Style); err != nil {
		return err
	}
	installWidgets(app, dc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx)
	log.Info("stopped", "frames", app.Frame(), "error", err)
	return err
}

// buildScene picks the demo scene named by the config
func buildScene(cfg *config.Config) (scene.Scene, error) {
	switch cfg.Scene {
	case config.SceneCube:
		return scene.NewCube(), nil
	case config.SceneImage:
		p, err := homedir.Expand(cfg.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("expand image path: %w", err)
		}
		img, err := scene.LoadImage(p)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	return scene.NewSpheres(), nil
}

// installWidgets registers the bundled overlays and binds their keys
func installWidgets(app *engine.App, dc display.Config) {
	app.RegisterWidget(widgets.NewStatusBar(app.Stats()), true, widget.BottomRows(1))

	metrics := widgets.NewStats(app.Stats())
	app.RegisterWidget(metrics, false, metrics.Area())
	app.BindIntent(input.IntentToggleStats, metrics.Toggle)

	help := widgets.NewHelp(app.Keys())
	app.RegisterWidget(help, false, help.Area())
	app.BindIntent(input.IntentToggleHelp, help.Toggle)

	toast := widgets.NewToast()

	ctl := widgets.NewDitherControl(dc.DitherLevel, dc.Method, func(level uint32, method dither.Method) {
		cfg := app.Display().Config()
		cfg.DitherLevel, cfg.Method = level, method
		// Already on the frame loop inside the control's queued action
		if err := app.ApplyDisplayConfig(cfg); err != nil {
			toast.Show("dither change failed, see log", tui.ToastError, 0)
		}
	})
	ctlID := app.RegisterWidget(ctl, true, ctl.Area())
	app.BindIntent(input.IntentFocusDither, func() { app.FocusWidget(ctlID) })
	app.OnReconfigure(func(c display.Config) { ctl.Sync(c.DitherLevel, c.Method) })

	// Registered last so it paints above the other panes
	app.RegisterWidget(toast, false, toast.Area())
	app.OnReload(func(_ *config.Config, err error) {
		if err != nil {
			toast.Show("config rejected, see log", tui.ToastError, 0)
			return
		}
		help.SetKeys(app.Keys())
		toast.Show("config reloaded", tui.ToastSuccess, 0)
	})
}
