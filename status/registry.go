package status

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Well-known metric keys published by the engine and display
const (
	KeyFPS          = "engine.fps"        // Floats, smoothed frames per second
	KeyFrame        = "engine.frame"      // Ints, frames ticked
	KeyPaused       = "engine.paused"     // Bools
	KeyTickTime     = "engine.tick.timer" // Ints, last tick duration in ns
	KeyDropped      = "render.dropped"    // Ints, cycles that kept the previous frame
	KeyRenderErrors = "render.errors"     // Ints
	KeyCols         = "display.cols"      // Ints
	KeyRows         = "display.rows"      // Ints
	KeyDitherLevel  = "display.dither"    // Ints
	KeyDitherMethod = "display.method"    // Strings
	KeyScene        = "scene.name"        // Strings
	KeyFocus        = "widget.focus"      // Strings, name of focused widget or empty
	KeyFaults       = "widget.faults"     // Ints
	KeyReloads      = "config.reloads"    // Ints
)

// Registry is the central metrics facade
// Producers cache pointers once, hot paths write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines formats every metric as "key: value", grouped by type and sorted by key
// Int keys ending in ".timer" are shown as durations
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s: %v", key, ptr.Load()))
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		val := ptr.Load()
		if strings.HasSuffix(key, ".timer") {
			out = append(out, fmt.Sprintf("%s: %s", key, time.Duration(val)))
			return
		}
		out = append(out, fmt.Sprintf("%s: %d", key, val))
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s: %.1f", key, ptr.Get()))
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out = append(out, fmt.Sprintf("%s: %s", key, ptr.Load()))
	})
	return out
}

// Attrs flattens the registry into slog key/value pairs for periodic debug logging
func (r *Registry) Attrs() []any {
	out := make([]any, 0, r.TotalCount()*2)
	r.Bools.Range(func(key string, ptr *atomic.Bool) { out = append(out, key, ptr.Load()) })
	r.Ints.Range(func(key string, ptr *atomic.Int64) { out = append(out, key, ptr.Load()) })
	r.Floats.Range(func(key string, ptr *AtomicFloat) { out = append(out, key, ptr.Get()) })
	r.Strings.Range(func(key string, ptr *AtomicString) { out = append(out, key, ptr.Load()) })
	return out
}
