package status

import (
	"sort"
	"sync"
)

// MetricMap is a thread-safe registry for metrics of type T
// Registration uses mutex; cached pointer access is lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an initialized MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the metric pointer for key, creating if absent
// First call for a key allocates; subsequent calls return cached pointer
func (m *MetricMap[T]) Get(key string) *T {
	// Fast path: RLock check
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	// Slow path: Lock and create
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok := m.items[key]; ok {
		return ptr
	}

	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

// Range iterates over all metrics in sorted key order
// Callback receives the pointer; caller reads atomic value from it
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ptrs := make([]*T, len(keys))
	for i, k := range keys {
		ptrs[i] = m.items[k]
	}
	m.mu.RUnlock()

	// Callback runs unlocked so it may register further metrics
	for i, k := range keys {
		fn(k, ptrs[i])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
