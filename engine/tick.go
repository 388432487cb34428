package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/widget"
)

// statsLogEvery is the number of seconds between debug dumps of the metrics registry
const statsLogEvery = 5

// Publish queues synthetic events for the next Tick
func (a *App) Publish(events ...input.Event) {
	a.queue.Publish(events...)
}

// Tick runs one frame cycle, dt is the wall time since the previous cycle
// Errors are fatal to the loop: resize reprovisioning failures only
func (a *App) Tick(dt time.Duration) error {
	if a.display == nil {
		return ErrNoDisplay
	}
	start := a.now.Now()
	a.frame++

	if a.poller != nil {
		a.queue.Publish(a.poller.Poll()...)
	}
	events := a.queue.Drain()

	for _, ev := range events {
		if ev.Kind != input.KindResize {
			continue
		}
		if err := a.display.OnResize(ev.Cols, ev.Rows); err != nil {
			return fmt.Errorf("resize to %dx%d: %w", ev.Cols, ev.Rows, err)
		}
		a.publishDisplay()
	}

	a.widgets.Dispatch(events, &a.cmds)
	a.dispatchGlobal(events)

	// Sync point: deferred focus changes, widget actions, and reloads land here
	a.applyReload()
	a.widgets.ApplyCommands(&a.cmds)

	if sceneDt := a.clock.Advance(dt); sceneDt > 0 {
		a.renderer.Update(sceneDt)
	}
	a.widgets.Update(widget.Time{Now: start, Delta: dt, Frame: a.frame}, &a.cmds)

	a.renderFrame()
	a.display.Compose()
	a.display.Flush(a.term)

	a.publishFrame(start, dt)
	return nil
}

// dispatchGlobal resolves key intents and runs subscribers for every event
func (a *App) dispatchGlobal(events []input.Event) {
	_, focused := a.widgets.Focused()
	for _, ev := range events {
		// A focused widget owns printable keys
		if !(focused && ev.Key == input.KeyRune) {
			if in := a.keys.Lookup(ev); in != input.IntentNone {
				for _, fn := range a.intents[in] {
					fn()
				}
			}
		}
		for _, h := range a.handlers {
			h(ev)
		}
	}
}

// renderFrame produces a scene frame and captures it into the display
// A missing or late frame keeps the previous one on screen
func (a *App) renderFrame() {
	timeout := time.Duration(0)
	if a.asyncRender {
		a.renderer.Request()
		timeout = a.timeout
	} else if err := a.renderer.Render(); err != nil {
		a.metrics.renderErrs.Add(1)
		a.log.Error("render failed", "frame", a.frame, "error", err)
	}

	if !a.display.Capture(timeout) {
		a.metrics.dropped.Add(1)
		a.log.Debug("frame kept", "frame", a.frame, "async", a.asyncRender)
	}
}

// applyReload applies at most one pending config reload
func (a *App) applyReload() {
	var r reload
	select {
	case r = <-a.reloads:
	default:
		return
	}

	if r.err == nil {
		r.err = a.ApplyConfig(r.cfg)
	}
	if r.err != nil {
		a.log.Warn("config reload rejected", "error", r.err)
	} else {
		a.metrics.reloads.Add(1)
		a.log.Info("config reloaded", "fps", r.cfg.FPS, "dither", r.cfg.Dither.Level, "method", r.cfg.Dither.Method)
	}
	for _, fn := range a.onReload {
		fn(r.cfg, r.err)
	}
}

// publishFrame writes per-frame metrics
func (a *App) publishFrame(start time.Time, dt time.Duration) {
	m := a.metrics
	m.frame.Store(int64(a.frame))
	m.tick.Store(int64(a.now.Now().Sub(start)))
	m.paused.Store(a.clock.IsPaused())
	m.faults.Store(int64(a.widgets.Faults()))
	m.focus.Store(a.focusName())
	if dt > 0 {
		m.smoothFPS.Smooth(1/dt.Seconds(), 0.1)
	}

	fps := uint64(time.Second / a.Interval())
	if fps > 0 && a.frame%(fps*statsLogEvery) == 0 {
		a.log.Debug("frame stats", a.stats.Attrs()...)
	}
}

func (a *App) focusName() string {
	id, ok := a.widgets.Focused()
	if !ok {
		return ""
	}
	w, _ := a.widgets.Get(id)
	if n, ok := w.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("#%d", id)
}
