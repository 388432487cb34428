package input

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Source yields blocking terminal events, nil once the source is finalized
type Source interface {
	PollEvent() tcell.Event
}

// Pump moves events from src into ch until src is finalized or ctx ends
// ch is closed on return so the Poller can observe shutdown
func Pump(ctx context.Context, src Source, ch chan<- tcell.Event) error {
	defer close(ch)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
