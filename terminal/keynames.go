package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// keyToName maps Key constants to canonical config string names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySpace:     "space",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	for r := 'a'; r <= 'z'; r++ {
		keyToName[CtrlKey(r)] = "ctrl_" + string(r)
	}
	nameToKey = make(map[string]Key, len(keyToName)+4)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["esc"] = KeyEscape
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["pgup"] = KeyPageUp
	nameToKey["pgdn"] = KeyPageDown
}

// KeyName returns the config name of a special key, "" for KeyRune and KeyNone
func KeyName(k Key) string {
	return keyToName[k]
}

// ParseKey resolves a config key name
// Single characters yield KeyRune with that rune; names are case-insensitive,
// "-" and "+" are accepted in place of "_" ("ctrl+c", "page-up")
func ParseKey(name string) (Key, rune, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r == ' ' {
			return KeySpace, ' ', nil
		}
		return KeyRune, r, nil
	}
	norm := strings.NewReplacer("-", "_", "+", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
	if k, ok := nameToKey[norm]; ok {
		return k, 0, nil
	}
	return KeyNone, 0, fmt.Errorf("unknown key name %q", name)
}
