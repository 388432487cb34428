// Package input translates terminal events into engine events.
//
// A pump goroutine moves blocking PollEvent results into a channel, a Poller
// drains that channel without blocking once per frame, and a Queue hands the
// batch to consumers in arrival order.
package input
