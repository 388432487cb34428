// Package display drives a terminal as the output of a scene renderer.
//
// A Display sizes a render surface to the terminal, attaches the dither stage
// and camera, and converts each captured frame into braille cells that are
// composited with widget layers before flushing.
package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/render"
	"github.com/lixenwraith/termsight/scene"
	"github.com/lixenwraith/termsight/surface"
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
)

// Config controls how frames are quantized and styled
type Config struct {
	DitherLevel uint32
	Method      dither.Method
	Style       tui.Style
}

// Display binds a terminal-sized surface to a renderer
type Display struct {
	renderer *scene.Renderer
	cfg      Config
	log      *slog.Logger

	surf  *surface.Surface
	cam   *scene.Camera
	stage dither.Stage

	sceneFB *render.FrameBuffer // last presented scene frame, kept across skipped captures
	fb      *render.FrameBuffer // composed output
	comp    *render.Compositor
	lastSeq uint64
}

// New queries the terminal size and provisions a surface for it
func New(sizer terminal.Sizer, r *scene.Renderer, cfg Config, log *slog.Logger) (*Display, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cols, rows, err := sizer.QuerySize()
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}

	d := &Display{
		renderer: r,
		cfg:      cfg,
		log:      log,
		cam:      scene.NewCamera(scene.Vec3{}),
		sceneFB:  render.NewFrameBuffer(0, 0),
		fb:       render.NewFrameBuffer(cols, rows),
		comp:     render.NewCompositor(),
	}
	d.comp.Register(render.LayerFunc(d.renderScene), render.PriorityScene)

	if err := d.provision(cols, rows); err != nil {
		return nil, err
	}
	return d, nil
}

// provision allocates a surface of cols x rows cells and wires post-process and camera
func (d *Display) provision(cols, rows int) error {
	surf, err := d.renderer.Allocate(cols, rows)
	if err != nil {
		return fmt.Errorf("provision surface: %w", err)
	}
	d.cfg.DitherLevel = dither.ClampLevel(d.cfg.DitherLevel)
	d.stage = dither.New(d.cfg.Method, d.cfg.DitherLevel)
	if err := d.renderer.SetPostProcess(surf.Handle, d.stage); err != nil {
		return fmt.Errorf("attach dither: %w", err)
	}
	if err := d.renderer.BindCamera(surf.Handle, d.cam); err != nil {
		return fmt.Errorf("bind camera: %w", err)
	}

	d.surf = surf
	d.lastSeq = 0
	d.fb.Resize(cols, rows)
	d.log.Info("display provisioned",
		"cols", cols, "rows", rows,
		"width", surf.Width(), "height", surf.Height(),
		"dither", d.stage.Method().String(), "level", d.stage.Level())
	return nil
}

// release frees the current surface, the scene frame is kept until a new one arrives
func (d *Display) release() {
	if d.surf == nil {
		return
	}
	if err := d.renderer.Release(d.surf.Handle); err != nil && !errors.Is(err, scene.ErrUnknownHandle) {
		d.log.Warn("release surface", "handle", d.surf.Handle, "error", err)
	}
	d.surf = nil
}

// OnResize reprovisions the surface for a new terminal size
// Unchanged dimensions are a no-op, non-positive ones are ignored
func (d *Display) OnResize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		d.log.Warn("ignoring resize", "cols", cols, "rows", rows)
		return nil
	}
	if d.surf.Matches(cols, rows) {
		return nil
	}
	d.release()
	return d.provision(cols, rows)
}

// Reconfigure replaces the config and reprovisions at the current size
func (d *Display) Reconfigure(cfg Config) error {
	cols, rows := d.fb.Width(), d.fb.Height()
	if d.surf != nil {
		cols, rows = d.surf.Cols, d.surf.Rows
	}
	d.cfg = cfg
	d.release()
	return d.provision(cols, rows)
}

// BindCamera replaces the camera and rebinds it to the current surface
func (d *Display) BindCamera(cam *scene.Camera) error {
	if cam == nil {
		return errors.New("bind camera: nil camera")
	}
	d.cam = cam
	if d.surf == nil {
		return nil
	}
	return d.renderer.BindCamera(d.surf.Handle, cam)
}

// Camera returns the bound camera
func (d *Display) Camera() *scene.Camera { return d.cam }

// Config returns the active config with the dither level clamped
func (d *Display) Config() Config { return d.cfg }

// Surface returns the current render surface
func (d *Display) Surface() *surface.Surface { return d.surf }

// Frame returns the composed output buffer
func (d *Display) Frame() *render.FrameBuffer { return d.fb }

// AddLayer composites l above the scene at priority p
func (d *Display) AddLayer(l render.Layer, p render.Priority) {
	d.comp.Register(l, p)
}

// Capture reads the newest frame and presents it into the scene buffer
// A timeout of zero reads without waiting. Reports false when no new frame
// was available, in which case the previous scene buffer stays in place
func (d *Display) Capture(timeout time.Duration) bool {
	if d.surf == nil {
		return false
	}
	h := d.surf.Handle

	var (
		frame *image.Gray
		seq   uint64
		err   error
	)
	if timeout <= 0 {
		frame, seq, err = d.renderer.Latest(h)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		frame, seq, err = d.renderer.Await(ctx, h, d.lastSeq)
		cancel()
	}
	if err != nil {
		d.log.Debug("frame capture skipped", "handle", h, "error", err)
		return false
	}
	if seq == d.lastSeq {
		return false
	}
	d.lastSeq = seq
	d.sceneFB = Present(frame, surface.CellWidth, surface.CellHeight, d.cfg.Style)
	return true
}

func (d *Display) renderScene(fb *render.FrameBuffer) {
	fb.Blit(d.sceneFB)
}

// Compose paints the scene frame and every registered layer into the output buffer
func (d *Display) Compose() *render.FrameBuffer {
	d.comp.Compose(d.fb)
	return d.fb
}

// Flush hands the composed buffer to the terminal
func (d *Display) Flush(term terminal.Terminal) {
	d.fb.FlushToTerminal(term)
}

// Close releases the surface
func (d *Display) Close() {
	d.release()
}
