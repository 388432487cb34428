package render

// Layer paints into a frame buffer during composition
type Layer interface {
	Render(fb *FrameBuffer)
}

// LayerFunc adapts a function to Layer
type LayerFunc func(fb *FrameBuffer)

// Render calls f(fb)
func (f LayerFunc) Render(fb *FrameBuffer) { f(fb) }

// VisibilityToggle is implemented by layers that can be hidden
type VisibilityToggle interface {
	IsVisible() bool
}

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Compositor paints registered layers in priority order, last writer wins
type Compositor struct {
	layers   []layerEntry
	regCount int
}

// NewCompositor creates an empty compositor
func NewCompositor() *Compositor {
	return &Compositor{layers: make([]layerEntry, 0, 4)}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (c *Compositor) Register(l Layer, priority Priority) {
	entry := layerEntry{layer: l, priority: priority, index: c.regCount}
	c.regCount++

	pos := len(c.layers)
	for i, e := range c.layers {
		if priority < e.priority {
			pos = i
			break
		}
	}

	c.layers = append(c.layers, layerEntry{})
	copy(c.layers[pos+1:], c.layers[pos:])
	c.layers[pos] = entry
}

// Len returns number of registered layers
func (c *Compositor) Len() int { return len(c.layers) }

// Compose clears fb and renders all visible layers into it
func (c *Compositor) Compose(fb *FrameBuffer) {
	fb.Clear()
	for _, entry := range c.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(fb)
	}
}
