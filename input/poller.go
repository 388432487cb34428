package input

import "github.com/gdamore/tcell/v2"

// Poller drains pumped events once per frame without blocking
type Poller struct {
	ch     <-chan tcell.Event
	tr     Translator
	seq    uint64
	closed bool
}

// NewPoller reads from the channel fed by Pump
func NewPoller(ch <-chan tcell.Event) *Poller {
	return &Poller{ch: ch}
}

// Closed reports whether the pump has shut down
func (p *Poller) Closed() bool {
	return p.closed
}

// Poll returns all pending events in arrival order, nil if none
// Only the last resize of a batch survives, kept at its own position
func (p *Poller) Poll() []Event {
	var events []Event
	lastResize := -1

drain:
	for {
		select {
		case raw, ok := <-p.ch:
			if !ok {
				p.closed = true
				break drain
			}
			ev, keep := p.tr.Translate(raw)
			if !keep {
				continue
			}
			p.seq++
			ev.Seq = p.seq
			if ev.Kind == KindResize {
				lastResize = len(events)
			}
			events = append(events, ev)
		default:
			break drain
		}
	}

	if lastResize < 0 {
		return events
	}
	out := events[:0]
	for i, ev := range events {
		if ev.Kind == KindResize && i != lastResize {
			continue
		}
		out = append(out, ev)
	}
	return out
}
