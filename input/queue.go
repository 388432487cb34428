package input

import "sync"

// Queue buffers translated events between producers and the frame loop
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Publish appends events in order
func (q *Queue) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Drain returns all queued events in FIFO order and empties the queue in one step
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	out := q.events
	q.events = nil
	q.mu.Unlock()
	return out
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
