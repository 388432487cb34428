package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyCtrlC
)

// keyToName maps Key constants to canonical names
var keyToName = map[Key]string{
	KeyRune:      "rune",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "page_up",
	KeyPageDown:  "page_down",
	KeyInsert:    "insert",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyCtrlC:     "ctrl_c",
}

// String returns the canonical key name
func (k Key) String() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	return "none"
}

// KeyByName resolves a canonical name, case-insensitive
func KeyByName(name string) (Key, bool) {
	name = strings.ToLower(name)
	for k, n := range keyToName {
		if n == name {
			return k, true
		}
	}
	return KeyNone, false
}

// fromTcellKey maps tcell key codes, ctrl aliases of tab/enter/backspace resolve to the named key
var fromTcellKey = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
	tcell.KeyCtrlC:      KeyCtrlC,
}

// Modifier is a bitmask of held modifier keys
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

func fromTcellMods(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		out |= ModMeta
	}
	return out
}

// KeyAction distinguishes press, repeat, and release reports
type KeyAction uint8

const (
	KeyPress KeyAction = iota
	KeyRepeat
	KeyRelease
)
