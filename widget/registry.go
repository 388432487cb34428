package widget

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/render"
)

type entry struct {
	id      ID
	w       Widget
	area    Area
	enabled bool
	faulted bool
}

// Info is a snapshot of a widget's registry state
type Info struct {
	ID      ID
	Enabled bool
	Faulted bool
	Focused bool
}

// Registry holds widgets in registration order and owns the focus slot
// Not safe for concurrent use, the frame loop is the only caller
type Registry struct {
	entries []*entry
	next    ID
	focus   ID
	log     *slog.Logger
}

// NewRegistry creates an empty registry, nil log discards output
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Registry{log: log}
}

// Register appends w and returns its id, nil area covers the full screen
func (r *Registry) Register(w Widget, enabled bool, area Area) ID {
	if area == nil {
		area = Full()
	}
	r.next++
	r.entries = append(r.entries, &entry{id: r.next, w: w, area: area, enabled: enabled})
	return r.next
}

func (r *Registry) find(id ID) (int, *entry) {
	for i, e := range r.entries {
		if e.id == id {
			return i, e
		}
	}
	return -1, nil
}

// Remove deletes a widget, a focused widget leaves the slot stale
func (r *Registry) Remove(id ID) bool {
	i, _ := r.find(id)
	if i < 0 {
		return false
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return true
}

// SetEnabled toggles input delivery, faulted widgets stay disabled
func (r *Registry) SetEnabled(id ID, on bool) bool {
	_, e := r.find(id)
	if e == nil || e.faulted {
		return false
	}
	e.enabled = on
	return true
}

// Get returns the widget for id
func (r *Registry) Get(id ID) (Widget, bool) {
	_, e := r.find(id)
	if e == nil {
		return nil, false
	}
	return e.w, true
}

// Info returns the registry state of id
func (r *Registry) Info(id ID) (Info, bool) {
	_, e := r.find(id)
	if e == nil {
		return Info{}, false
	}
	focused, _ := r.Focused()
	return Info{ID: id, Enabled: e.enabled, Faulted: e.faulted, Focused: focused == id}, true
}

// Len returns the number of registered widgets
func (r *Registry) Len() int { return len(r.entries) }

// Faults returns the number of widgets disabled by a fault
func (r *Registry) Faults() int {
	n := 0
	for _, e := range r.entries {
		if e.faulted {
			n++
		}
	}
	return n
}

// Each visits widgets in registration order until fn returns false
func (r *Registry) Each(fn func(id ID, w Widget) bool) {
	for _, e := range r.entries {
		if !fn(e.id, e.w) {
			return
		}
	}
}

// Focused returns the focused widget, a removed widget counts as no focus
func (r *Registry) Focused() (ID, bool) {
	if r.focus == 0 {
		return 0, false
	}
	if _, e := r.find(r.focus); e == nil {
		return 0, false
	}
	return r.focus, true
}

// setFocus moves the slot and notifies listeners of both sides
func (r *Registry) setFocus(id ID) {
	prev, hadPrev := r.Focused()
	if hadPrev && prev == id {
		return
	}
	r.focus = id
	if hadPrev {
		r.notifyFocus(prev, false)
	}
	if id != 0 {
		r.notifyFocus(id, true)
	}
}

func (r *Registry) notifyFocus(id ID, focused bool) {
	_, e := r.find(id)
	if e == nil || e.faulted {
		return
	}
	if l, ok := e.w.(FocusListener); ok {
		r.guard(e, "focus", func() { l.FocusChanged(focused) })
	}
}

// ApplyCommands executes queued commands in order
func (r *Registry) ApplyCommands(cmds *Commands) {
	for _, op := range cmds.drain() {
		switch op.kind {
		case cmdFocus:
			_, e := r.find(op.id)
			if e == nil || e.faulted {
				r.log.Debug("focus target unavailable", "widget", op.id)
				continue
			}
			r.setFocus(op.id)
		case cmdUnfocus:
			r.setFocus(0)
		case cmdSetEnabled:
			r.SetEnabled(op.id, op.on)
		case cmdDo:
			r.runAction(op)
		}
	}
}

// Dispatch delivers events in order to the focused widget if it is enabled and healthy
func (r *Registry) Dispatch(events []input.Event, cmds *Commands) {
	id, ok := r.Focused()
	if !ok {
		return
	}
	_, e := r.find(id)
	for _, ev := range events {
		if !e.enabled || e.faulted {
			return
		}
		r.guard(e, "event", func() {
			cmds.actingAs(e.id, func() { e.w.HandleEvent(ev, cmds) })
		})
	}
}

// Update calls Update on every healthy widget
func (r *Registry) Update(t Time, cmds *Commands) {
	for _, e := range r.snapshot() {
		if e.faulted {
			continue
		}
		r.guard(e, "update", func() {
			cmds.actingAs(e.id, func() { e.w.Update(t, cmds) })
		})
	}
}

// Render clears and paints every visible healthy widget area in registration order
func (r *Registry) Render(fb *render.FrameBuffer) {
	root := fb.Region()
	for _, e := range r.snapshot() {
		if e.faulted {
			continue
		}
		r.guard(e, "render", func() {
			if v, ok := e.w.(Visibility); ok && !v.Visible() {
				return
			}
			rect := e.area(fb.Width(), fb.Height())
			region := root.Sub(rect.X, rect.Y, rect.W, rect.H)
			if region.W == 0 || region.H == 0 {
				return
			}
			region.Clear()
			e.w.Render(region)
		})
	}
}

// runAction executes a deferred action under the guard of the widget that queued it
// Actions of a widget that has since faulted or been removed are dropped
func (r *Registry) runAction(op command) {
	if op.owner == 0 {
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("deferred action fault", "panic", rec, "stack", string(debug.Stack()))
			}
		}()
		op.fn()
		return
	}
	_, e := r.find(op.owner)
	if e == nil || e.faulted {
		r.log.Debug("dropping action of unavailable widget", "widget", op.owner)
		return
	}
	r.guard(e, "command", op.fn)
}

// snapshot guards iteration against callbacks that register or remove widgets
func (r *Registry) snapshot() []*entry {
	return append([]*entry(nil), r.entries...)
}

// guard runs fn, isolating a panic to the widget that raised it
func (r *Registry) guard(e *entry, phase string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("widget fault",
				"widget", e.id,
				"type", fmt.Sprintf("%T", e.w),
				"phase", phase,
				"panic", rec,
				"stack", string(debug.Stack()))
			e.faulted = true
			e.enabled = false
			if r.focus == e.id {
				r.focus = 0
			}
		}
	}()
	fn()
}
