package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Guard restores the terminal exactly once, however many paths ask for it
type Guard struct {
	restore   func()
	once      sync.Once
	restoring atomic.Bool
	swallowed atomic.Value // panic raised by restore, kept for inspection

	// Out receives the crash banner, defaults to stderr
	Out io.Writer
	// Exit terminates the process after a crash, defaults to os.Exit
	Exit func(code int)
}

// NewGuard wraps restore, nil restore makes Restore a no-op
func NewGuard(restore func()) *Guard {
	return &Guard{restore: restore, Out: os.Stderr, Exit: os.Exit}
}

// Restore runs the restore function once
// A nested call from inside restore returns immediately, and a panic raised by restore is swallowed
func (g *Guard) Restore() {
	if g.restoring.Load() {
		return
	}
	g.once.Do(func() {
		if g.restore == nil {
			return
		}
		g.restoring.Store(true)
		defer g.restoring.Store(false)
		defer func() {
			if r := recover(); r != nil {
				g.swallowed.Store(fmt.Sprint(r))
			}
		}()
		g.restore()
	})
}

// SwallowedFault returns the panic message raised during restore, if any
func (g *Guard) SwallowedFault() (string, bool) {
	v, ok := g.swallowed.Load().(string)
	return v, ok
}

// Recover is deferred at the top of main and every goroutine
func (g *Guard) Recover() {
	if r := recover(); r != nil {
		g.Crash(r)
	}
}

// Crash restores the terminal, prints the panic with its stack, and exits 1
func (g *Guard) Crash(r any) {
	g.Restore()

	out := g.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := out.(*os.File); ok {
		f.Sync()
	}

	exit := g.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

// Go runs fn in a new goroutine under g.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(g *Guard, fn func()) {
	go func() {
		defer g.Recover()
		fn()
	}()
}

// Guarded wraps an errgroup task so a panic inside it goes through g
func Guarded(g *Guard, fn func() error) func() error {
	return func() error {
		defer g.Recover()
		return fn()
	}
}
