package terminal

import "github.com/gdamore/tcell/v2"

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt // Synthetic wake-up posted by PostInterrupt
	EventError     // Read error
	EventClosed    // Screen finalized, no more events
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError
}

// fromTcellKey maps tcell special keys to Key
// KeyCtrlH, KeyCtrlI, KeyCtrlM and KeyCtrlLeftSq share codes with Backspace, Tab, Enter and Escape
var fromTcellKey = map[tcell.Key]Key{
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
	tcell.KeyCtrlA:      KeyCtrlA,
	tcell.KeyCtrlB:      KeyCtrlB,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlD:      KeyCtrlD,
	tcell.KeyCtrlE:      KeyCtrlE,
	tcell.KeyCtrlF:      KeyCtrlF,
	tcell.KeyCtrlG:      KeyCtrlG,
	tcell.KeyCtrlJ:      KeyCtrlJ,
	tcell.KeyCtrlK:      KeyCtrlK,
	tcell.KeyCtrlL:      KeyCtrlL,
	tcell.KeyCtrlN:      KeyCtrlN,
	tcell.KeyCtrlO:      KeyCtrlO,
	tcell.KeyCtrlP:      KeyCtrlP,
	tcell.KeyCtrlQ:      KeyCtrlQ,
	tcell.KeyCtrlR:      KeyCtrlR,
	tcell.KeyCtrlS:      KeyCtrlS,
	tcell.KeyCtrlT:      KeyCtrlT,
	tcell.KeyCtrlU:      KeyCtrlU,
	tcell.KeyCtrlV:      KeyCtrlV,
	tcell.KeyCtrlW:      KeyCtrlW,
	tcell.KeyCtrlX:      KeyCtrlX,
	tcell.KeyCtrlY:      KeyCtrlY,
	tcell.KeyCtrlZ:      KeyCtrlZ,
}

// toTcellKey is the reverse of fromTcellKey, used to inject keys into a simulation
var toTcellKey map[Key]tcell.Key

func init() {
	toTcellKey = make(map[Key]tcell.Key, len(fromTcellKey))
	for tk, k := range fromTcellKey {
		if tk == tcell.KeyBackspace2 {
			continue
		}
		toTcellKey[k] = tk
	}
}

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
	return out
}

// convertEvent normalizes a tcell event; nil means the screen was finalized
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case nil:
		return Event{Type: EventClosed}
	case *tcell.EventKey:
		return convertKey(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	case *tcell.EventError:
		return Event{Type: EventError, Err: e}
	}
	return Event{Type: EventNone}
}

func convertKey(e *tcell.EventKey) Event {
	mods := fromTcellMods(e.Modifiers())
	if e.Key() == tcell.KeyRune {
		r := e.Rune()
		if mods&ModCtrl != 0 {
			if k := CtrlKey(r); k != KeyNone {
				return Event{Type: EventKey, Key: k, Modifiers: mods}
			}
		}
		if r == ' ' {
			return Event{Type: EventKey, Key: KeySpace, Rune: ' ', Modifiers: mods}
		}
		return Event{Type: EventKey, Key: KeyRune, Rune: r, Modifiers: mods}
	}
	if k, ok := fromTcellKey[e.Key()]; ok {
		return Event{Type: EventKey, Key: k, Modifiers: mods}
	}
	return Event{Type: EventKey, Key: KeyNone, Modifiers: mods}
}
