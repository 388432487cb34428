package engine

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/termsight/config"
	"github.com/lixenwraith/termsight/core"
	"github.com/lixenwraith/termsight/input"
)

// eventBuffer bounds raw events held between the pump and the frame loop
const eventBuffer = 256

// Run drives the frame loop at the configured rate until ctx ends, Quit is
// called, or the terminal stops delivering events. The input pump, the render
// worker (async mode), and the config watcher run alongside in one errgroup.
// The terminal is restored before Run returns.
func (a *App) Run(ctx context.Context) error {
	if a.display == nil {
		return ErrNoDisplay
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	raw := make(chan tcell.Event, eventBuffer)
	a.poller = input.NewPoller(raw)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(core.Guarded(a.guard, func() error {
		return input.Pump(gctx, a.term, raw)
	}))

	if a.asyncRender {
		g.Go(core.Guarded(a.guard, func() error {
			return a.renderer.Worker(gctx)
		}))
	}

	if a.configPath != "" {
		g.Go(core.Guarded(a.guard, func() error {
			if err := config.Watch(gctx, a.configPath, a.enqueueReload); err != nil {
				a.log.Warn("config watch disabled", "path", a.configPath, "error", err)
			}
			return nil
		}))
	}

	g.Go(core.Guarded(a.guard, func() error {
		defer cancel()
		// Finalizing the terminal unblocks the pump
		defer a.guard.Restore()
		return a.loop(gctx)
	}))

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) loop(ctx context.Context) error {
	interval := a.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.log.Info("frame loop started", "interval", interval, "async", a.asyncRender)
	last := a.now.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.quit:
			a.log.Info("quit requested", "frame", a.frame)
			return nil
		case <-ticker.C:
			now := a.now.Now()
			dt := now.Sub(last)
			last = now
			if err := a.Tick(dt); err != nil {
				return err
			}
			if a.poller.Closed() {
				a.log.Info("input closed", "frame", a.frame)
				return nil
			}
			if iv := a.Interval(); iv != interval {
				interval = iv
				ticker.Reset(iv)
			}
		}
	}
}

// enqueueReload hands a watcher result to the frame loop, replacing any unapplied one
func (a *App) enqueueReload(cfg *config.Config, err error) {
	r := reload{cfg: cfg, err: err}
	for {
		select {
		case a.reloads <- r:
			return
		default:
		}
		select {
		case <-a.reloads:
		default:
		}
	}
}
