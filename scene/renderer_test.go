package scene

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termsight/surface"
)

// thresholdPost sets pixels at or above 128 to 255, others to 0
type thresholdPost struct{ calls atomic.Int32 }

func (p *thresholdPost) Apply(dst, src *image.Gray) {
	p.calls.Add(1)
	for i, v := range src.Pix {
		if v >= 128 {
			dst.Pix[i] = 255
		} else {
			dst.Pix[i] = 0
		}
	}
}

type failingScene struct{}

func (failingScene) Update(time.Duration)            {}
func (failingScene) Draw(*gg.Context, *Camera) error { return errors.New("boom") }

func TestRendererLifecycle(t *testing.T) {
	r := NewRenderer(&Fill{Luma: 200}, nil)

	surf, err := r.Allocate(10, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, surf.Width())
	assert.Equal(t, 20, surf.Height())
	assert.Equal(t, 1, r.Len())

	_, _, err = r.Latest(surf.Handle)
	assert.ErrorIs(t, err, ErrNoFrame)

	// Targets without a camera are skipped
	require.NoError(t, r.Render())
	_, _, err = r.Latest(surf.Handle)
	assert.ErrorIs(t, err, ErrNoFrame)

	require.NoError(t, r.BindCamera(surf.Handle, NewCamera(Vec3{})))
	post := &thresholdPost{}
	require.NoError(t, r.SetPostProcess(surf.Handle, post))
	require.NoError(t, r.Render())

	frame, seq, err := r.Latest(surf.Handle)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, image.Rect(0, 0, 20, 20), frame.Rect)
	for _, v := range frame.Pix {
		require.Equal(t, uint8(255), v)
	}
	assert.Equal(t, int32(1), post.calls.Load())
	assert.Equal(t, frame.Pix, surf.Pix.Pix)

	require.NoError(t, r.Release(surf.Handle))
	assert.ErrorIs(t, r.Release(surf.Handle), ErrUnknownHandle)
	_, _, err = r.Latest(surf.Handle)
	assert.ErrorIs(t, err, ErrUnknownHandle)
	assert.ErrorIs(t, r.BindCamera(surf.Handle, nil), ErrUnknownHandle)
	assert.ErrorIs(t, r.SetPostProcess(surf.Handle, nil), ErrUnknownHandle)
}

func TestRendererLuminanceWithoutPost(t *testing.T) {
	r := NewRenderer(&Fill{Luma: 90}, nil)
	surf, err := r.Allocate(2, 1)
	require.NoError(t, err)
	require.NoError(t, r.BindCamera(surf.Handle, NewCamera(Vec3{})))
	require.NoError(t, r.Render())

	frame, _, err := r.Latest(surf.Handle)
	require.NoError(t, err)
	for _, v := range frame.Pix {
		assert.InDelta(t, 90, int(v), 2)
	}
}

func TestRendererPublishesExactLuminance(t *testing.T) {
	r := NewRenderer(&Fill{Luma: 200}, nil)
	surf, err := r.Allocate(3, 2)
	require.NoError(t, err)
	require.NoError(t, r.BindCamera(surf.Handle, NewCamera(Vec3{})))
	require.NoError(t, r.Render())

	frame, seq, err := r.Latest(surf.Handle)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)
	require.Equal(t, surf.Width(), frame.Rect.Dx())
	require.Equal(t, surf.Height(), frame.Rect.Dy())
	for y := 0; y < frame.Rect.Dy(); y++ {
		for x := 0; x < frame.Rect.Dx(); x++ {
			assert.Equal(t, uint8(200), frame.GrayAt(x, y).Y, "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, frame.Pix, surf.Pix.Pix, "surface holds the published frame")
}

func TestRedChannel(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 0; i < 6; i++ {
		v := uint8(i * 40)
		copy(src.Pix[i*4:], []uint8{v, v, v, 255})
	}
	got := redChannel(src)
	require.Equal(t, image.Rect(0, 0, 3, 2), got.Rect)
	assert.Equal(t, []uint8{0, 40, 80, 120, 160, 200}, got.Pix)
}

func TestRendererClearColorIsBlack(t *testing.T) {
	r := NewRenderer(nil, nil)
	surf, err := r.Allocate(3, 2)
	require.NoError(t, err)
	require.NoError(t, r.BindCamera(surf.Handle, NewCamera(Vec3{})))
	require.NoError(t, r.Render())
	frame, _, err := r.Latest(surf.Handle)
	require.NoError(t, err)
	for _, v := range frame.Pix {
		assert.Zero(t, v)
	}
}

func TestAllocateInvalid(t *testing.T) {
	r := NewRenderer(nil, nil)
	_, err := r.Allocate(0, 10)
	assert.ErrorIs(t, err, surface.ErrInvalidSize)
	assert.Zero(t, r.Len())
}

func TestRenderReportsSceneError(t *testing.T) {
	r := NewRenderer(failingScene{}, nil)
	surf, err := r.Allocate(1, 1)
	require.NoError(t, err)
	require.NoError(t, r.BindCamera(surf.Handle, NewCamera(Vec3{})))
	assert.ErrorContains(t, r.Render(), "boom")
	_, _, err = r.Latest(surf.Handle)
	assert.ErrorIs(t, err, ErrNoFrame)
}

func TestAwaitTimesOut(t *testing.T) {
	r := NewRenderer(&Fill{Luma: 10}, nil)
	surf, err := r.Allocate(1, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err = r.Await(ctx, surf.Handle, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerHandOff(t *testing.T) {
	r := NewRenderer(&Fill{Luma: 255}, nil)
	surf, err := r.Allocate(2, 2)
	require.NoError(t, err)
	require.NoError(t, r.BindCamera(surf.Handle, NewCamera(Vec3{})))

	assert.True(t, r.Request())
	assert.False(t, r.Request(), "second request coalesces into the pending slot")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Worker(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	frame, seq, err := r.Await(waitCtx, surf.Handle, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seq, uint64(1))
	assert.Equal(t, 4, frame.Rect.Dx())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
