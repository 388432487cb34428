package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock tracks scene time, which stops advancing while paused
// Wall time keeps flowing for widgets and toasts regardless of pause
type PausableClock struct {
	mu sync.RWMutex

	isPaused    atomic.Bool
	sceneTime   time.Duration // accumulated unpaused time
	pausedTime  time.Duration // accumulated paused time
	pauseEvents uint64
}

// NewPausableClock creates a running clock at scene time zero
func NewPausableClock() *PausableClock {
	return &PausableClock{}
}

// Advance accounts for dt of wall time and returns the scene delta, zero while paused
func (pc *PausableClock) Advance(dt time.Duration) time.Duration {
	if dt < 0 {
		dt = 0
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.Load() {
		pc.pausedTime += dt
		return 0
	}
	pc.sceneTime += dt
	return dt
}

// Pause stops scene time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		pc.pauseEvents++
		pc.mu.Unlock()
	}
}

// Resume continues scene time advancement
func (pc *PausableClock) Resume() {
	pc.isPaused.Store(false)
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.isPaused.Load() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// SceneTime returns total unpaused time seen by Advance
func (pc *PausableClock) SceneTime() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.sceneTime
}

// GetTotalPauseDuration returns cumulative paused time seen by Advance
func (pc *PausableClock) GetTotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.pausedTime
}

// PauseCount returns how many times the clock has been paused
func (pc *PausableClock) PauseCount() uint64 {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.pauseEvents
}
