package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	assert.True(t, t2.After(t1))
	assert.GreaterOrEqual(t, t2.Sub(t1), 10*time.Millisecond)
}

func TestPausableClock(t *testing.T) {
	pc := NewPausableClock()

	assert.Equal(t, 16*time.Millisecond, pc.Advance(16*time.Millisecond))
	assert.False(t, pc.IsPaused())

	assert.True(t, pc.Toggle())
	assert.Zero(t, pc.Advance(time.Second), "paused clock yields no scene time")
	assert.Zero(t, pc.Advance(time.Second))
	assert.Equal(t, 2*time.Second, pc.GetTotalPauseDuration())

	// Repeated pause is counted once
	pc.Pause()
	assert.EqualValues(t, 1, pc.PauseCount())

	assert.False(t, pc.Toggle())
	assert.Equal(t, 4*time.Millisecond, pc.Advance(4*time.Millisecond))
	assert.Equal(t, 20*time.Millisecond, pc.SceneTime())

	assert.Zero(t, pc.Advance(-time.Second), "negative deltas clamp")
	assert.Equal(t, 20*time.Millisecond, pc.SceneTime())
}
