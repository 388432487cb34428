package widgets

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/render"
	"github.com/lixenwraith/termsight/status"
	"github.com/lixenwraith/termsight/terminal/tui"
	"github.com/lixenwraith/termsight/widget"
)

// row returns the visible text of row y, skipping wide-rune continuation cells
func row(fb *render.FrameBuffer, y int) string {
	var sb strings.Builder
	for x := 0; x < fb.Width(); x++ {
		if r := fb.Get(x, y).Rune; r != 0 {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

func screen(fb *render.FrameBuffer) string {
	lines := make([]string, fb.Height())
	for y := range lines {
		lines[y] = row(fb, y)
	}
	return strings.Join(lines, "\n")
}

func key(r rune) input.Event {
	return input.Event{Kind: input.KindKey, Key: input.KeyRune, Rune: r}
}

func special(k input.Key) input.Event {
	return input.Event{Kind: input.KindKey, Key: k}
}

func TestStatusBar(t *testing.T) {
	stats := status.NewRegistry()
	bar := NewStatusBar(stats)

	stats.Floats.Get(status.KeyFPS).Set(29.7)
	stats.Ints.Get(status.KeyCols).Store(80)
	stats.Ints.Get(status.KeyRows).Store(24)
	stats.Ints.Get(status.KeyDitherLevel).Store(2)
	stats.Strings.Get(status.KeyDitherMethod).Store("bayer")
	stats.Strings.Get(status.KeyScene).Store("spheres")

	assert.Equal(t, " spheres │ 30 fps │ bayer L2 │ 80x24", bar.Left())
	assert.Equal(t, "? help ", bar.Right())

	stats.Strings.Get(status.KeyFocus).Store("dither")
	stats.Bools.Get(status.KeyPaused).Store(true)
	stats.Ints.Get(status.KeyFaults).Store(1)
	assert.Equal(t, "[dither] faults:1 PAUSED ? help ", bar.Right())

	reg := widget.NewRegistry(nil)
	reg.Register(bar, false, widget.BottomRows(1))
	fb := render.NewFrameBuffer(80, 3)
	reg.Render(fb)

	last := row(fb, 2)
	assert.True(t, strings.HasPrefix(last, " spheres"))
	assert.True(t, strings.HasSuffix(last, "? help "))
	assert.Equal(t, tui.DefaultTheme.StatusBg, fb.Get(40, 2).Bg)
	assert.Equal(t, strings.Repeat(" ", 80), row(fb, 0), "rows above are untouched")
}

func TestStatusBarNarrowDropsRight(t *testing.T) {
	bar := NewStatusBar(status.NewRegistry())
	fb := render.NewFrameBuffer(20, 1)
	reg := widget.NewRegistry(nil)
	reg.Register(bar, false, widget.Full())
	reg.Render(fb)
	assert.NotContains(t, row(fb, 0), "help")
}

func TestHelpListsBindings(t *testing.T) {
	kt := &input.KeyTable{
		Runes: map[rune]input.Intent{'q': input.IntentQuit},
		Keys:  map[input.Key]input.Intent{input.KeyF1: input.IntentToggleHelp},
	}
	h := NewHelp(kt)
	require.False(t, h.Visible())
	require.Len(t, h.Items(), 2)
	assert.Equal(t, tui.ListItem{Key: "f1", Text: "toggle this help"}, h.Items()[0])
	assert.Equal(t, tui.ListItem{Key: "q", Text: "quit"}, h.Items()[1])

	w, ht := h.Size()
	assert.Equal(t, 4, ht)
	assert.Equal(t, 2+1+len("toggle this help")+4, w)

	reg := widget.NewRegistry(nil)
	reg.Register(h, false, h.Area())
	fb := render.NewFrameBuffer(40, 10)

	reg.Render(fb)
	assert.Equal(t, strings.Repeat(" ", 40), row(fb, 4), "hidden help paints nothing")

	h.Toggle()
	reg.Render(fb)
	out := screen(fb)
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "q  quit")
	assert.Contains(t, out, "f1 toggle this help")
}

func TestDitherControlKeys(t *testing.T) {
	var changes [][2]any
	d := NewDitherControl(2, dither.MethodBayer, func(l uint32, m dither.Method) {
		changes = append(changes, [2]any{l, m})
	})

	reg := widget.NewRegistry(nil)
	id := reg.Register(d, true, d.Area())
	cmds := &widget.Commands{}
	cmds.Focus(id)
	reg.ApplyCommands(cmds)
	require.True(t, d.Focused())

	reg.Dispatch([]input.Event{key('+'), special(input.KeyUp), key('+'), key('m')}, cmds)
	assert.Equal(t, dither.MaxLevel, d.Level(), "clamped at max")
	assert.Equal(t, dither.MethodFloydSteinberg, d.Method())
	assert.Empty(t, changes, "callbacks wait for the sync point")

	reg.ApplyCommands(cmds)
	assert.Equal(t, [][2]any{
		{uint32(3), dither.MethodBayer},
		{uint32(4), dither.MethodBayer},
		{uint32(4), dither.MethodFloydSteinberg},
	}, changes)

	changes = nil
	reg.Dispatch([]input.Event{key('-'), key('x'), special(input.KeyEscape)}, cmds)
	reg.ApplyCommands(cmds)
	assert.Equal(t, [][2]any{{uint32(3), dither.MethodFloydSteinberg}}, changes)
	_, focused := reg.Focused()
	assert.False(t, focused)
	assert.False(t, d.Focused())
}

func TestDitherControlLowerBound(t *testing.T) {
	calls := 0
	d := NewDitherControl(0, dither.MethodBayer, func(uint32, dither.Method) { calls++ })
	cmds := &widget.Commands{}
	d.HandleEvent(key('-'), cmds)
	assert.Equal(t, 0, cmds.Len())
	assert.Equal(t, uint32(0), d.Level())
	assert.Zero(t, calls)
}

func TestDitherControlRender(t *testing.T) {
	d := NewDitherControl(9, dither.MethodBayer, nil)
	assert.Equal(t, dither.MaxLevel, d.Level())
	d.Sync(1, dither.MethodFloydSteinberg)
	assert.Equal(t, "■□□□", d.Bar())

	reg := widget.NewRegistry(nil)
	reg.Register(d, true, d.Area())
	fb := render.NewFrameBuffer(40, 8)
	reg.Render(fb)

	out := screen(fb)
	assert.Contains(t, out, "Dither")
	assert.Contains(t, out, "floyd-steinberg")
	assert.Contains(t, out, "■□□□ 1/4")
	assert.Equal(t, tui.DefaultTheme.Border, fb.Get(40-DitherControlW-1, 1).Fg)

	d.FocusChanged(true)
	reg.Render(fb)
	assert.Equal(t, tui.DefaultTheme.Focus, fb.Get(40-DitherControlW-1, 1).Fg)
}

func TestStatsPanel(t *testing.T) {
	stats := status.NewRegistry()
	stats.Ints.Get(status.KeyFrame).Store(7)
	s := NewStats(stats)
	require.False(t, s.Visible())

	rect := s.Area()(80, 24)
	assert.Equal(t, 1, rect.X)
	assert.Equal(t, 3, rect.H)

	s.SetVisible(true)
	reg := widget.NewRegistry(nil)
	reg.Register(s, false, s.Area())
	fb := render.NewFrameBuffer(80, 24)
	reg.Render(fb)
	out := screen(fb)
	assert.Contains(t, out, "Metrics")
	assert.Contains(t, out, "engine.frame: 7")
}

func TestToastLifecycle(t *testing.T) {
	toast := NewToast()
	assert.False(t, toast.Visible())

	start := time.Unix(100, 0)
	toast.Show("reloaded", tui.ToastSuccess, time.Second)
	require.True(t, toast.Visible())

	toast.Update(widget.Time{Now: start}, nil)
	assert.True(t, toast.Visible())

	reg := widget.NewRegistry(nil)
	reg.Register(toast, false, toast.Area())
	fb := render.NewFrameBuffer(40, 10)
	reg.Render(fb)
	assert.Contains(t, row(fb, 7), "reloaded")
	assert.Equal(t, strings.Repeat(" ", 40), row(fb, 9), "status row kept clear")

	toast.Update(widget.Time{Now: start.Add(999 * time.Millisecond)}, nil)
	assert.True(t, toast.Visible())
	toast.Update(widget.Time{Now: start.Add(time.Second)}, nil)
	assert.False(t, toast.Visible())
	assert.Empty(t, toast.Message())
}

func TestToastReplaceRestartsClock(t *testing.T) {
	toast := NewToast()
	start := time.Unix(0, 0)
	toast.Show("one", tui.ToastInfo, time.Second)
	toast.Update(widget.Time{Now: start}, nil)

	toast.Show("two", tui.ToastWarning, 0)
	toast.Update(widget.Time{Now: start.Add(2 * time.Second)}, nil)
	assert.Equal(t, "two", toast.Message())
	toast.Update(widget.Time{Now: start.Add(2*time.Second + DefaultToastTTL)}, nil)
	assert.False(t, toast.Visible())
}
