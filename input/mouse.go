package input

import "github.com/gdamore/tcell/v2"

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}

// primaryButton picks the reported button, wheel takes precedence
func primaryButton(m tcell.ButtonMask) MouseButton {
	switch {
	case m&tcell.WheelUp != 0:
		return MouseBtnWheelUp
	case m&tcell.WheelDown != 0:
		return MouseBtnWheelDown
	case m&tcell.Button1 != 0:
		return MouseBtnLeft
	case m&tcell.Button3 != 0:
		return MouseBtnMiddle
	case m&tcell.Button2 != 0:
		return MouseBtnRight
	}
	return MouseBtnNone
}

// mouseTracker derives press/release/drag from tcell's button state reports
type mouseTracker struct {
	held MouseButton
}

func (t *mouseTracker) classify(m tcell.ButtonMask) (MouseButton, MouseAction) {
	btn := primaryButton(m)
	switch {
	case btn == MouseBtnWheelUp || btn == MouseBtnWheelDown:
		return btn, MouseActionPress
	case btn == MouseBtnNone && t.held != MouseBtnNone:
		released := t.held
		t.held = MouseBtnNone
		return released, MouseActionRelease
	case btn == MouseBtnNone:
		return MouseBtnNone, MouseActionMove
	case btn == t.held:
		return btn, MouseActionDrag
	default:
		t.held = btn
		return btn, MouseActionPress
	}
}
