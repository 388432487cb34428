// Package engine ties the terminal, renderer, display, and widget layer into a
// fixed-rate frame loop.
//
// Every cycle runs on one goroutine: poll input, publish and drain the event
// queue, handle resize, dispatch to the focused widget, run global handlers,
// apply deferred commands and reconfiguration, advance the scene, render,
// capture, compose widgets, and flush. Only the input pump, the optional
// render worker, and the config watcher run concurrently.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termsight/config"
	"github.com/lixenwraith/termsight/core"
	"github.com/lixenwraith/termsight/display"
	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/render"
	"github.com/lixenwraith/termsight/scene"
	"github.com/lixenwraith/termsight/status"
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

// ErrDisplayExists is returned by CreateDisplay when the app already drives a display
var ErrDisplayExists = errors.New("display already created")

// ErrNoDisplay is returned by Tick before CreateDisplay
var ErrNoDisplay = errors.New("no display")

// Options configures an App, zero values select defaults
type Options struct {
	Log   *slog.Logger
	Guard *core.Guard // nil builds a guard restoring the terminal
	Keys  *input.KeyTable
	Stats *status.Registry
	Clock TimeProvider

	FPS             int
	AsyncRender     bool
	ReadbackTimeout time.Duration // bound on waiting for a rendered frame
	Method          dither.Method

	// ConfigPath is watched for changes while Run is active, empty disables reload
	ConfigPath string
}

// App is the public surface: one terminal, one renderer, at most one display
type App struct {
	term     terminal.Terminal
	renderer *scene.Renderer
	log      *slog.Logger
	guard    *core.Guard
	now      TimeProvider
	clock    *PausableClock

	display  *display.Display
	widgets  *widget.Registry
	cmds     widget.Commands
	queue    input.Queue
	poller   *input.Poller
	handlers []func(input.Event)
	intents  map[input.Intent][]func()
	keys     *input.KeyTable

	asyncRender bool
	timeout     time.Duration
	method      dither.Method
	interval    atomic.Int64 // tick period in ns, read by the loop
	configPath  string

	reloads       chan reload
	onReload      []func(*config.Config, error)
	onReconfigure []func(display.Config)

	frame    uint64
	lastTick time.Time
	quit     chan struct{}
	quitOnce sync.Once

	stats   *status.Registry
	metrics metrics
}

type reload struct {
	cfg *config.Config
	err error
}

// metrics caches status pointers written every frame
type metrics struct {
	frame      *atomic.Int64
	tick       *atomic.Int64
	dropped    *atomic.Int64
	renderErrs *atomic.Int64
	cols       *atomic.Int64
	rows       *atomic.Int64
	level      *atomic.Int64
	faults     *atomic.Int64
	reloads    *atomic.Int64
	smoothFPS  *status.AtomicFloat
	paused     *atomic.Bool
	method     *status.AtomicString
	focus      *status.AtomicString
}

// New builds an App around an initialized or soon to be initialized terminal
func New(term terminal.Terminal, renderer *scene.Renderer, opts Options) *App {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	guard := opts.Guard
	if guard == nil {
		guard = core.NewGuard(term.Fini)
	}
	keys := opts.Keys
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	stats := opts.Stats
	if stats == nil {
		stats = status.NewRegistry()
	}
	now := opts.Clock
	if now == nil {
		now = NewMonotonicTimeProvider()
	}
	timeout := opts.ReadbackTimeout
	if timeout <= 0 {
		timeout = config.DefaultReadbackTimeout
	}

	a := &App{
		term:        term,
		renderer:    renderer,
		log:         log,
		guard:       guard,
		now:         now,
		clock:       NewPausableClock(),
		widgets:     widget.NewRegistry(log.With("component", "widget")),
		intents:     make(map[input.Intent][]func()),
		keys:        keys,
		asyncRender: opts.AsyncRender,
		timeout:     timeout,
		method:      opts.Method,
		configPath:  opts.ConfigPath,
		reloads:     make(chan reload, 1),
		quit:        make(chan struct{}),
		stats:       stats,
	}
	a.SetFPS(opts.FPS)
	a.metrics = metrics{
		smoothFPS:  stats.Floats.Get(status.KeyFPS),
		frame:      stats.Ints.Get(status.KeyFrame),
		tick:       stats.Ints.Get(status.KeyTickTime),
		dropped:    stats.Ints.Get(status.KeyDropped),
		renderErrs: stats.Ints.Get(status.KeyRenderErrors),
		cols:       stats.Ints.Get(status.KeyCols),
		rows:       stats.Ints.Get(status.KeyRows),
		level:      stats.Ints.Get(status.KeyDitherLevel),
		faults:     stats.Ints.Get(status.KeyFaults),
		reloads:    stats.Ints.Get(status.KeyReloads),
		paused:     stats.Bools.Get(status.KeyPaused),
		method:     stats.Strings.Get(status.KeyDitherMethod),
		focus:      stats.Strings.Get(status.KeyFocus),
	}

	a.BindIntent(input.IntentQuit, a.Quit)
	a.BindIntent(input.IntentUnfocus, a.UnfocusAll)
	a.BindIntent(input.IntentTogglePause, func() { a.metrics.paused.Store(a.clock.Toggle()) })
	a.BindIntent(input.IntentDitherUp, func() { a.StepDither(1) })
	a.BindIntent(input.IntentDitherDown, func() { a.StepDither(-1) })
	return a
}

// Start enters raw mode and the alternate screen
// On failure the terminal is restored before the error is returned
func (a *App) Start() error {
	if err := a.term.Init(); err != nil {
		a.guard.Restore()
		return fmt.Errorf("init terminal: %w", err)
	}
	return nil
}

// Close releases the display and restores the terminal, safe to call more than once
func (a *App) Close() {
	if a.display != nil {
		a.display.Close()
	}
	a.guard.Restore()
}

// CreateDisplay sizes a render surface to the terminal and composites the widget layer over it
func (a *App) CreateDisplay(ditherLevel uint32, style tui.Style) (*display.Display, error) {
	if a.display != nil {
		return nil, ErrDisplayExists
	}
	d, err := display.New(a.term, a.renderer, display.Config{
		DitherLevel: ditherLevel,
		Method:      a.method,
		Style:       style,
	}, a.log.With("component", "display"))
	if err != nil {
		return nil, err
	}
	d.AddLayer(a.widgets, render.PriorityWidgets)
	a.display = d
	a.publishDisplay()
	return d, nil
}

// RegisterWidget adds w above the scene, nil area covers the full screen
func (a *App) RegisterWidget(w widget.Widget, enabled bool, area widget.Area) widget.ID {
	return a.widgets.Register(w, enabled, area)
}

// FocusWidget moves focus to id at the next sync point
func (a *App) FocusWidget(id widget.ID) { a.cmds.Focus(id) }

// UnfocusAll clears focus at the next sync point
func (a *App) UnfocusAll() { a.cmds.Unfocus() }

// Subscribe registers a handler that sees every event after widget dispatch
func (a *App) Subscribe(fn func(input.Event)) {
	a.handlers = append(a.handlers, fn)
}

// BindIntent runs fn when a key bound to in is pressed
// Rune bindings are suppressed while a widget holds focus
func (a *App) BindIntent(in input.Intent, fn func()) {
	a.intents[in] = append(a.intents[in], fn)
}

// OnReload is called on the frame loop after a config reload attempt
func (a *App) OnReload(fn func(*config.Config, error)) {
	a.onReload = append(a.onReload, fn)
}

// OnReconfigure is called after the display has been reprovisioned with a new config
func (a *App) OnReconfigure(fn func(display.Config)) {
	a.onReconfigure = append(a.onReconfigure, fn)
}

// Quit stops Run after the current cycle
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Done is closed once Quit has been called
func (a *App) Done() <-chan struct{} { return a.quit }

// SetFPS changes the tick rate, out of range values select the default
func (a *App) SetFPS(fps int) {
	if fps < config.MinFPS || fps > config.MaxFPS {
		fps = config.DefaultFPS
	}
	a.interval.Store(int64(time.Second / time.Duration(fps)))
}

// Interval returns the current tick period
func (a *App) Interval() time.Duration { return time.Duration(a.interval.Load()) }

// SetKeys replaces the key table used for global intents
func (a *App) SetKeys(kt *input.KeyTable) { a.keys = kt }

// Keys returns the key table used for global intents
func (a *App) Keys() *input.KeyTable { return a.keys }

// Display returns the display, nil before CreateDisplay
func (a *App) Display() *display.Display { return a.display }

// Widgets returns the widget registry composited above the scene
func (a *App) Widgets() *widget.Registry { return a.widgets }

// Stats returns the metrics registry written every frame
func (a *App) Stats() *status.Registry { return a.stats }

// Guard returns the guard restoring the terminal
func (a *App) Guard() *core.Guard { return a.guard }

// Clock returns the scene clock, paused by the pause intent
func (a *App) Clock() *PausableClock { return a.clock }

// Frame returns the number of cycles run, read only from the frame loop or after Run returns
func (a *App) Frame() uint64 { return a.frame }

// Renderer returns the scene renderer
func (a *App) Renderer() *scene.Renderer { return a.renderer }

// Terminal returns the terminal the display flushes to
func (a *App) Terminal() terminal.Terminal { return a.term }

// StepDither queues a dither level change of delta for the next sync point
func (a *App) StepDither(delta int) {
	a.cmds.Do(func() {
		if a.display == nil {
			return
		}
		cfg := a.display.Config()
		level := int(cfg.DitherLevel) + delta
		level = max(0, min(level, int(dither.MaxLevel)))
		if uint32(level) == cfg.DitherLevel {
			return
		}
		cfg.DitherLevel = uint32(level)
		a.ApplyDisplayConfig(cfg)
	})
}

// Reconfigure queues a display config change for the next sync point
func (a *App) Reconfigure(cfg display.Config) {
	a.cmds.Do(func() { a.ApplyDisplayConfig(cfg) })
}

// ApplyDisplayConfig reprovisions the display immediately
// Must run on the frame loop, e.g. from a widget action or an intent handler
func (a *App) ApplyDisplayConfig(cfg display.Config) error {
	if a.display == nil {
		return ErrNoDisplay
	}
	if err := a.display.Reconfigure(cfg); err != nil {
		a.log.Error("reconfigure display", "error", err)
		return err
	}
	a.publishDisplay()
	applied := a.display.Config()
	for _, fn := range a.onReconfigure {
		fn(applied)
	}
	return nil
}

// ApplyConfig applies a reloaded config, must run on the frame loop
// Display changes reprovision the surface only when dither or style differ
func (a *App) ApplyConfig(cfg *config.Config) error {
	dc, err := cfg.DisplayConfig()
	if err != nil {
		return err
	}
	kt, err := cfg.KeyTable()
	if err != nil {
		return err
	}
	a.SetFPS(cfg.FPS)
	a.keys = kt
	a.timeout = cfg.Timeout()
	a.method = dc.Method
	if a.display != nil && a.display.Config() != dc {
		return a.ApplyDisplayConfig(dc)
	}
	return nil
}

// publishDisplay refreshes display metrics after provisioning
func (a *App) publishDisplay() {
	if a.display == nil {
		return
	}
	if s := a.display.Surface(); s != nil {
		a.metrics.cols.Store(int64(s.Cols))
		a.metrics.rows.Store(int64(s.Rows))
	}
	cfg := a.display.Config()
	a.metrics.level.Store(int64(cfg.DitherLevel))
	a.metrics.method.Store(cfg.Method.String())
}
