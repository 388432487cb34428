package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Options configures the tcell-backed terminal
type Options struct {
	ColorMode           ColorMode
	Mouse               bool
	KeyboardEnhancement bool

	// Output receives sequences tcell does not emit itself (keyboard protocol)
	// New defaults it to os.Stdout; nil disables keyboard enhancement
	Output io.Writer
}

// Screen implements Terminal on top of a tcell.Screen
type Screen struct {
	screen tcell.Screen
	opts   Options
	tty    bool // attached to the process terminal, termios snapshot applies

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseOn     bool
	kbdPushed   bool

	// Front buffer for diffing, mirrors what tcell has been told to paint
	front      []Cell
	width      int
	height     int
	fullRedraw bool
}

var _ Terminal = (*Screen)(nil)

// New creates a terminal bound to the process TTY
// Fails with ErrNotTerminal before touching terminal state
func New(opts Options) (*Screen, error) {
	if !IsTerminal() {
		return nil, ErrNotTerminal
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	t := NewWithScreen(s, opts)
	t.tty = true
	return t, nil
}

// NewWithScreen wraps an existing tcell screen, e.g. tcell.NewSimulationScreen
func NewWithScreen(s tcell.Screen, opts Options) *Screen {
	return &Screen{
		screen: s,
		opts:   opts,
	}
}

// Init enters raw mode and alternate screen, then enables mouse and keyboard enhancement
// A failure after partial entry restores what was entered
func (t *Screen) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if t.tty {
		snapshotState(int(os.Stdin.Fd()))
	}

	// tcell enters raw mode and the alternate screen together
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.initialized = true

	t.screen.HideCursor()
	t.screen.Clear()

	if t.opts.Mouse {
		t.screen.EnableMouse()
		t.mouseOn = true
	}

	if t.opts.KeyboardEnhancement && t.opts.Output != nil {
		if _, err := t.opts.Output.Write(csiKeyboardPush); err != nil {
			t.finiLocked()
			return fmt.Errorf("push keyboard enhancement: %w", err)
		}
		t.kbdPushed = true
	}

	t.width, t.height = t.screen.Size()
	t.front = make([]Cell, t.width*t.height)
	t.fullRedraw = true
	return nil
}

// Fini restores terminal state
func (t *Screen) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finiLocked()
}

// finiLocked reverses Init: keyboard flags, mouse, alternate screen and raw mode, flush
func (t *Screen) finiLocked() {
	if !t.initialized || t.finalized {
		return
	}
	// Set first so a fault in any step below can never re-enter teardown
	t.finalized = true

	if t.kbdPushed {
		t.opts.Output.Write(csiKeyboardPop)
		t.kbdPushed = false
	}
	if t.mouseOn {
		t.screen.DisableMouse()
		t.mouseOn = false
	}
	t.screen.Fini()

	if s, ok := t.opts.Output.(interface{ Sync() error }); ok {
		s.Sync()
	}
}

// Active reports whether the terminal is between Init and Fini
func (t *Screen) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized && !t.finalized
}

// Size returns current terminal dimensions
func (t *Screen) Size() (int, int) {
	return t.screen.Size()
}

// QuerySize returns current dimensions or an error wrapping ErrQuery
func (t *Screen) QuerySize() (int, int, error) {
	t.mu.Lock()
	active := t.initialized && !t.finalized
	t.mu.Unlock()

	if !active && t.tty {
		return QueryFdSize(int(os.Stdout.Fd()))
	}
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: reported %dx%d", ErrQuery, w, h)
	}
	return w, h, nil
}

// ColorMode returns the color capability used for painting
func (t *Screen) ColorMode() ColorMode {
	return t.opts.ColorMode
}

// Flush paints changed cells and shows the frame
// A size mismatch with the screen drops the frame to avoid resize race corruption
func (t *Screen) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	currW, currH := t.screen.Size()
	if currW != width || currH != height || len(cells) < width*height {
		return
	}

	if width != t.width || height != t.height {
		t.width, t.height = width, height
		t.front = make([]Cell, width*height)
		t.fullRedraw = true
	}

	mode := t.opts.ColorMode
	for i := 0; i < width*height; i++ {
		c := cells[i]
		if !t.fullRedraw && c == t.front[i] {
			continue
		}
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		t.screen.SetContent(i%width, i/width, r, nil, cellStyle(c, mode))
		t.front[i] = c
	}
	t.fullRedraw = false

	t.screen.Show()
}

// Sync forces full redraw
func (t *Screen) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.fullRedraw = true
	t.screen.Sync()
}

// PollEvent blocks until next input event
func (t *Screen) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent injects a synthetic event
func (t *Screen) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}
