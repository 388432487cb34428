package terminal

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T, w, h int, out *bytes.Buffer) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	opts := Options{ColorMode: ColorModeTrueColor, Mouse: true, KeyboardEnhancement: true}
	if out != nil {
		opts.Output = out
	}
	term := NewWithScreen(sim, opts)
	require.NoError(t, term.Init())
	sim.SetSize(w, h)
	return term, sim
}

func TestScreen_InitFiniIdempotent(t *testing.T) {
	var out bytes.Buffer
	term, _ := newSimTerminal(t, 10, 5, &out)

	require.NoError(t, term.Init(), "second Init must be a no-op")
	assert.True(t, term.Active())

	term.Fini()
	term.Fini()
	assert.False(t, term.Active())

	// Exactly one push and one pop, push first
	assert.Equal(t, 1, bytes.Count(out.Bytes(), csiKeyboardPush))
	assert.Equal(t, 1, bytes.Count(out.Bytes(), csiKeyboardPop))
	assert.Less(t, bytes.Index(out.Bytes(), csiKeyboardPush), bytes.Index(out.Bytes(), csiKeyboardPop))
}

func TestScreen_FiniBeforeInit(t *testing.T) {
	var out bytes.Buffer
	term := NewWithScreen(tcell.NewSimulationScreen("UTF-8"), Options{KeyboardEnhancement: true, Output: &out})
	term.Fini()
	assert.Zero(t, out.Len(), "teardown of a never-entered terminal must not write")
}

func TestScreen_NoKeyboardWithoutOutput(t *testing.T) {
	term, _ := newSimTerminal(t, 4, 2, nil)
	defer term.Fini()
	assert.False(t, term.kbdPushed)
}

func TestScreen_FlushPaintsCells(t *testing.T) {
	term, sim := newSimTerminal(t, 3, 2, nil)
	defer term.Fini()

	cells := make([]Cell, 6)
	for i := range cells {
		cells[i] = Cell{Rune: 'a' + rune(i), Fg: RGBWhite, Bg: RGBBlack}
	}
	term.Flush(cells, 3, 2)

	got, w, h := sim.GetContents()
	require.Equal(t, 3, w)
	require.Equal(t, 2, h)
	for i, c := range got {
		require.NotEmpty(t, c.Runes)
		assert.Equal(t, 'a'+rune(i), c.Runes[0])
	}
}

func TestScreen_FlushDropsMismatchedFrame(t *testing.T) {
	term, sim := newSimTerminal(t, 3, 2, nil)
	defer term.Fini()

	cells := make([]Cell, 4)
	for i := range cells {
		cells[i] = Cell{Rune: 'x'}
	}
	term.Flush(cells, 2, 2)

	got, _, _ := sim.GetContents()
	for _, c := range got {
		if len(c.Runes) > 0 {
			assert.NotEqual(t, 'x', c.Runes[0])
		}
	}
}

func TestScreen_QuerySize(t *testing.T) {
	term, _ := newSimTerminal(t, 12, 7, nil)
	cols, rows, err := term.QuerySize()
	require.NoError(t, err)
	assert.Equal(t, 12, cols)
	assert.Equal(t, 7, rows)

	term.Fini()
}

func TestScreen_QuerySizeZero(t *testing.T) {
	term, sim := newSimTerminal(t, 1, 1, nil)
	defer term.Fini()
	sim.SetSize(0, 0)

	_, _, err := term.QuerySize()
	assert.ErrorIs(t, err, ErrQuery)
}

func TestScreen_FlushAfterFini(t *testing.T) {
	term, _ := newSimTerminal(t, 2, 1, nil)
	term.Fini()
	assert.NotPanics(t, func() {
		term.Flush([]Cell{{Rune: 'a'}, {Rune: 'b'}}, 2, 1)
		term.Sync()
	})
}

func TestEmergencyReset_WritesTeardownSequences(t *testing.T) {
	var out bytes.Buffer
	EmergencyReset(&out)

	seqs := [][]byte{csiKeyboardPop, csiMouseSGROff, csiCursorShow, csiAltScreenExit, csiSGR0}
	last := -1
	for _, seq := range seqs {
		idx := bytes.Index(out.Bytes(), seq)
		require.GreaterOrEqual(t, idx, 0, "missing %q", seq)
		assert.Greater(t, idx, last, "sequence %q out of order", seq)
		last = idx
	}
}
