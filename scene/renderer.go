package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/effect"
	"github.com/gogpu/gg"

	"github.com/lixenwraith/termsight/surface"
)

var (
	// ErrUnknownHandle is returned for handles never allocated or already released
	ErrUnknownHandle = errors.New("unknown surface handle")
	// ErrNoFrame is returned when a surface has not produced a frame yet
	ErrNoFrame = errors.New("no frame rendered yet")
)

// PostProcess transforms a rendered luminance image before it is published
type PostProcess interface {
	Apply(dst, src *image.Gray)
}

// target is one allocated surface with its drawing state
type target struct {
	surf *surface.Surface
	dc   *gg.Context
	cam  *Camera
	post PostProcess

	frame *image.Gray // last published frame, never mutated after publish
	seq   uint64
}

// Renderer owns render targets and draws the active scene into each of them
type Renderer struct {
	// drawMu serializes scene mutation and drawing
	drawMu sync.Mutex
	scene  Scene

	mu      sync.Mutex
	targets map[surface.Handle]*target
	next    surface.Handle
	ready   chan struct{} // closed and replaced on every publish

	requests chan struct{} // single-slot hand-off to the worker
	log      *slog.Logger
}

// NewRenderer creates a renderer drawing s, nil log discards output
func NewRenderer(s Scene, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		scene:    s,
		targets:  make(map[surface.Handle]*target),
		ready:    make(chan struct{}),
		requests: make(chan struct{}, 1),
		log:      log,
	}
}

// SetScene swaps the active scene
func (r *Renderer) SetScene(s Scene) {
	r.drawMu.Lock()
	r.scene = s
	r.drawMu.Unlock()
}

// Update advances the active scene
func (r *Renderer) Update(dt time.Duration) {
	r.drawMu.Lock()
	defer r.drawMu.Unlock()
	if r.scene != nil {
		r.scene.Update(dt)
	}
}

// Allocate creates a render target covering cols x rows terminal cells
func (r *Renderer) Allocate(cols, rows int) (*surface.Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	surf, err := surface.New(r.next, cols, rows)
	if err != nil {
		return nil, fmt.Errorf("allocate surface: %w", err)
	}
	r.targets[surf.Handle] = &target{
		surf: surf,
		dc:   gg.NewContext(surf.Width(), surf.Height()),
	}
	r.log.Debug("surface allocated", "handle", surf.Handle, "cols", cols, "rows", rows,
		"width", surf.Width(), "height", surf.Height())
	return surf, nil
}

// Release frees a render target
func (r *Renderer) Release(h surface.Handle) error {
	r.mu.Lock()
	t, ok := r.targets[h]
	delete(r.targets, h)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("release %d: %w", h, ErrUnknownHandle)
	}

	// Wait out an in-flight draw before closing the context
	r.drawMu.Lock()
	defer r.drawMu.Unlock()
	if err := t.dc.Close(); err != nil {
		r.log.Warn("close render context", "handle", h, "error", err)
	}
	return nil
}

// Len returns the number of live targets
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.targets)
}

func (r *Renderer) lookup(h surface.Handle) (*target, error) {
	t, ok := r.targets[h]
	if !ok {
		return nil, fmt.Errorf("surface %d: %w", h, ErrUnknownHandle)
	}
	return t, nil
}

// BindCamera points cam at the surface, replacing any previous binding
func (r *Renderer) BindCamera(h surface.Handle, cam *Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookup(h)
	if err != nil {
		return err
	}
	t.cam = cam
	return nil
}

// Camera returns the camera bound to the surface, nil if none
func (r *Renderer) Camera(h surface.Handle) (*Camera, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	return t.cam, nil
}

// SetPostProcess attaches p to the surface, nil detaches
func (r *Renderer) SetPostProcess(h surface.Handle, p PostProcess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookup(h)
	if err != nil {
		return err
	}
	t.post = p
	return nil
}

// Render draws the scene into every target that has a camera and publishes the frames
func (r *Renderer) Render() error {
	r.drawMu.Lock()
	defer r.drawMu.Unlock()

	r.mu.Lock()
	jobs := make([]*target, 0, len(r.targets))
	for _, t := range r.targets {
		if t.cam != nil {
			jobs = append(jobs, t)
		}
	}
	r.mu.Unlock()

	var errs []error
	for _, t := range jobs {
		if err := r.draw(t); err != nil {
			errs = append(errs, fmt.Errorf("render surface %d: %w", t.surf.Handle, err))
		}
	}
	return errors.Join(errs...)
}

// draw runs one target through scene, luminance conversion, and post-process
// Called with drawMu held
func (r *Renderer) draw(t *target) error {
	r.mu.Lock()
	cam, post := t.cam, t.post
	r.mu.Unlock()

	t.dc.ClearWithColor(gray(cam.ClearLuma))
	if r.scene != nil {
		if err := r.scene.Draw(t.dc, cam); err != nil {
			return err
		}
	}

	lum := redChannel(effect.Grayscale(t.dc.Image()))
	out := image.NewGray(t.surf.Pix.Rect)
	if post != nil {
		post.Apply(out, lum)
	} else {
		copyGray(out, lum)
	}
	copyGray(t.surf.Pix, out)
	r.publish(t, out)
	return nil
}

func (r *Renderer) publish(t *target, frame *image.Gray) {
	r.mu.Lock()
	t.frame = frame
	t.seq++
	close(r.ready)
	r.ready = make(chan struct{})
	r.mu.Unlock()
}

// Latest returns the most recent frame of the surface and its sequence number
func (r *Renderer) Latest(h surface.Handle) (*image.Gray, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.lookup(h)
	if err != nil {
		return nil, 0, err
	}
	if t.frame == nil {
		return nil, 0, ErrNoFrame
	}
	return t.frame, t.seq, nil
}

// Await blocks until the surface publishes a frame newer than after, or ctx ends
func (r *Renderer) Await(ctx context.Context, h surface.Handle, after uint64) (*image.Gray, uint64, error) {
	for {
		r.mu.Lock()
		t, err := r.lookup(h)
		if err != nil {
			r.mu.Unlock()
			return nil, 0, err
		}
		if t.frame != nil && t.seq > after {
			frame, seq := t.frame, t.seq
			r.mu.Unlock()
			return frame, seq, nil
		}
		ready := r.ready
		r.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
}

// Request asks the worker for a render, coalescing with one already pending
// Reports false when a request was already queued
func (r *Renderer) Request() bool {
	select {
	case r.requests <- struct{}{}:
		return true
	default:
		return false
	}
}

// Worker serves render requests until ctx ends
func (r *Renderer) Worker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.requests:
			if err := r.Render(); err != nil {
				r.log.Error("render failed", "error", err)
			}
		}
	}
}

// redChannel collapses a grayscale RGBA image, where R=G=B, into one byte per pixel
func redChannel(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range d {
			d[x] = row[x*4]
		}
	}
	return dst
}

// copyGray copies the overlapping area of src into dst
func copyGray(dst, src *image.Gray) {
	w := min(dst.Rect.Dx(), src.Rect.Dx())
	h := min(dst.Rect.Dy(), src.Rect.Dy())
	for y := 0; y < h; y++ {
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		s := src.Pix[y*src.Stride : y*src.Stride+w]
		copy(d, s)
	}
}
