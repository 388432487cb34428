package core

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(restore func()) (*Guard, *bytes.Buffer, *atomic.Int32) {
	var out bytes.Buffer
	var exits atomic.Int32
	g := NewGuard(restore)
	g.Out = &out
	g.Exit = func(code int) {
		if code == 1 {
			exits.Add(1)
		}
	}
	return g, &out, &exits
}

func TestRestoreExactlyOnce(t *testing.T) {
	var calls atomic.Int32
	g, _, _ := newTestGuard(func() { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Restore()
		}()
	}
	wg.Wait()
	g.Restore()
	assert.Equal(t, int32(1), calls.Load())
}

func TestNestedRestoreDoesNotRecurse(t *testing.T) {
	var calls int
	var g *Guard
	g, _, _ = newTestGuard(func() {
		calls++
		g.Restore()
	})

	done := make(chan struct{})
	go func() {
		g.Restore()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("nested restore deadlocked")
	}
	assert.Equal(t, 1, calls)
}

func TestFaultDuringRestoreSwallowed(t *testing.T) {
	g, _, _ := newTestGuard(func() { panic("restore failed") })
	assert.NotPanics(t, g.Restore)
	msg, ok := g.SwallowedFault()
	require.True(t, ok)
	assert.Equal(t, "restore failed", msg)
	assert.NotPanics(t, g.Restore)
}

func TestRecoverRestoresPrintsAndExits(t *testing.T) {
	var restored atomic.Int32
	g, out, exits := newTestGuard(func() { restored.Add(1) })

	func() {
		defer g.Recover()
		panic("kaboom")
	}()

	assert.Equal(t, int32(1), restored.Load())
	assert.Equal(t, int32(1), exits.Load())
	assert.Contains(t, out.String(), "CRASH DETECTED: kaboom")
	assert.Contains(t, out.String(), "Stack Trace:")
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	var restored atomic.Int32
	g, out, exits := newTestGuard(func() { restored.Add(1) })
	func() {
		defer g.Recover()
	}()
	assert.Zero(t, restored.Load())
	assert.Zero(t, exits.Load())
	assert.Empty(t, out.String())
}

func TestNestedFaultsRestoreOnce(t *testing.T) {
	var restored atomic.Int32
	g, out, exits := newTestGuard(func() { restored.Add(1) })

	func() {
		defer g.Recover()
		func() {
			defer func() {
				// Crash handler itself faulting is caught by the outer Recover
				if r := recover(); r != nil {
					g.Crash(r)
					panic("second fault")
				}
			}()
			panic("first fault")
		}()
	}()

	assert.Equal(t, int32(1), restored.Load())
	assert.Equal(t, int32(2), exits.Load())
	assert.Contains(t, out.String(), "first fault")
	assert.Contains(t, out.String(), "second fault")
}

func TestGoRecoversInGoroutine(t *testing.T) {
	var restored atomic.Int32
	g, _, exits := newTestGuard(func() { restored.Add(1) })

	done := make(chan struct{})
	g.Exit = func(int) {
		exits.Add(1)
		close(done)
	}
	Go(g, func() { panic("worker died") })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine panic not handled")
	}
	assert.Equal(t, int32(1), restored.Load())
}

func TestGuardedPassesError(t *testing.T) {
	g, _, exits := newTestGuard(nil)
	err := Guarded(g, func() error { return assert.AnError })()
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, exits.Load())

	assert.NotPanics(t, func() {
		_ = Guarded(g, func() error { panic("task") })()
	})
	assert.Equal(t, int32(1), exits.Load())
}

func TestHandleCrashUsesInstalledGuard(t *testing.T) {
	var restored atomic.Int32
	g, out, exits := newTestGuard(func() { restored.Add(1) })
	SetCrashGuard(g)
	t.Cleanup(func() { SetCrashGuard(nil) })

	HandleCrash(nil)
	assert.Zero(t, exits.Load())

	HandleCrash("fatal")
	assert.Equal(t, int32(1), restored.Load())
	assert.Equal(t, int32(1), exits.Load())
	assert.Contains(t, out.String(), "fatal")
}
