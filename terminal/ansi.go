package terminal

// Raw sequences written outside tcell (keyboard protocol, emergency reset)
var (
	csiSGR0 = []byte("\x1b[0m")
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)

	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenExit = []byte("\x1b[?1049l")
	csiAutoWrapOn    = []byte("\x1b[?7h")

	// Mouse reporting modes, all disabled on reset
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROff    = []byte("\x1b[?1006l")

	// Kitty keyboard protocol: push "disambiguate escape codes", pop restores previous flags
	csiKeyboardPush = []byte("\x1b[>1u")
	csiKeyboardPop  = []byte("\x1b[<u")
)
