package input

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Intent is an application action bound to a key
type Intent uint8

const (
	IntentNone Intent = iota
	IntentQuit
	IntentToggleHelp
	IntentDitherUp
	IntentDitherDown
	IntentFocusDither
	IntentUnfocus
	IntentTogglePause
	IntentToggleStats
)

// intentNames maps canonical action names used in config files
var intentNames = map[string]Intent{
	"none":         IntentNone,
	"quit":         IntentQuit,
	"help":         IntentToggleHelp,
	"dither_up":    IntentDitherUp,
	"dither_down":  IntentDitherDown,
	"focus_dither": IntentFocusDither,
	"unfocus":      IntentUnfocus,
	"pause":        IntentTogglePause,
	"stats":        IntentToggleStats,
}

func (i Intent) String() string {
	for name, v := range intentNames {
		if v == i {
			return name
		}
	}
	return fmt.Sprintf("intent(%d)", i)
}

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// KeyTable maps keys to intents
type KeyTable struct {
	Runes map[rune]Intent
	Keys  map[Key]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Intent{
			'q': IntentQuit,
			'?': IntentToggleHelp,
			'+': IntentDitherUp,
			'=': IntentDitherUp,
			'-': IntentDitherDown,
			'd': IntentFocusDither,
			' ': IntentTogglePause,
			's': IntentToggleStats,
		},
		Keys: map[Key]Intent{
			KeyCtrlC:  IntentQuit,
			KeyEscape: IntentUnfocus,
			KeyF1:     IntentToggleHelp,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{Runes: maps.Clone(kt.Runes), Keys: maps.Clone(kt.Keys)}
}

// Lookup returns the intent bound to a key event
func (kt *KeyTable) Lookup(ev Event) Intent {
	if ev.Kind != KindKey || ev.Action == KeyRelease {
		return IntentNone
	}
	if ev.Key == KeyRune {
		return kt.Runes[ev.Rune]
	}
	return kt.Keys[ev.Key]
}

// Bindings lists "key: action" descriptions sorted by action then key
func (kt *KeyTable) Bindings() [][2]string {
	var out [][2]string
	for r, in := range kt.Runes {
		if in == IntentNone {
			continue
		}
		name := string(r)
		for alias, ar := range runeAliases {
			if ar == r {
				name = alias
			}
		}
		out = append(out, [2]string{name, in.String()})
	}
	for k, in := range kt.Keys {
		if in != IntentNone {
			out = append(out, [2]string{k.String(), in.String()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][1] != out[j][1] {
			return out[i][1] < out[j][1]
		}
		return out[i][0] < out[j][0]
	})
	return out
}

// LoadKeyConfig parses "key = action" pairs into a sparse override table
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(raw map[string]string) (*KeyTable, error) {
	kt := &KeyTable{Runes: map[rune]Intent{}, Keys: map[Key]Intent{}}
	for keyStr, actionName := range raw {
		intent, ok := intentNames[strings.ToLower(strings.TrimSpace(actionName))]
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action: %q", keyStr, actionName)
		}
		if k, ok := KeyByName(keyStr); ok && k != KeyRune {
			kt.Keys[k] = intent
			continue
		}
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, err
		}
		kt.Runes[r] = intent
	}
	return kt, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// MergeKeyTable returns a new table with base values overridden
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	mergeMap(result.Runes, override.Runes)
	mergeMap(result.Keys, override.Keys)
	return result
}

func mergeMap[K comparable](base, override map[K]Intent) {
	for k, v := range override {
		if v == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
