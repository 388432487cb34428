package input

import (
	"github.com/gdamore/tcell/v2"
)

// Kind discriminates event payloads
type Kind uint8

const (
	KindKey Kind = iota
	KindMouse
	KindResize
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindResize:
		return "resize"
	}
	return "unknown"
}

// Event is a translated terminal event
// Fields outside the active Kind are zero
type Event struct {
	Kind Kind
	Seq  uint64 // Monotonic arrival number

	// Key
	Key    Key
	Rune   rune
	Mods   Modifier
	Action KeyAction

	// Mouse
	X, Y        int
	Button      MouseButton
	MouseAction MouseAction

	// Resize
	Cols, Rows int
}

// IsRune reports whether e is a key press of printable r
func (e Event) IsRune(r rune) bool {
	return e.Kind == KindKey && e.Key == KeyRune && e.Rune == r && e.Action != KeyRelease
}

// IsKey reports whether e is a press of k
func (e Event) IsKey(k Key) bool {
	return e.Kind == KindKey && e.Key == k && e.Action != KeyRelease
}

// Translator converts tcell events, keeping mouse button state between calls
type Translator struct {
	mouse mouseTracker
}

// Translate converts ev, ok is false for events the engine does not consume
func (t *Translator) Translate(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, known := fromTcellKey[e.Key()]
		if !known {
			return Event{}, false
		}
		out := Event{Kind: KindKey, Key: k, Mods: fromTcellMods(e.Modifiers()), Action: KeyPress}
		if k == KeyRune {
			out.Rune = e.Rune()
		}
		return out, true

	case *tcell.EventMouse:
		x, y := e.Position()
		btn, act := t.mouse.classify(e.Buttons())
		return Event{
			Kind:        KindMouse,
			X:           x,
			Y:           y,
			Button:      btn,
			MouseAction: act,
			Mods:        fromTcellMods(e.Modifiers()),
		}, true

	case *tcell.EventResize:
		cols, rows := e.Size()
		return Event{Kind: KindResize, Cols: cols, Rows: rows}, true
	}
	return Event{}, false
}
