package input

import (
	"unicode"

	"github.com/lixenwraith/tstris/terminal"
)

// KeyTable maps keys to commands
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys, space)
	SpecialKeys map[terminal.Key]Command

	// Printable rune bindings
	Runes map[rune]Command
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[terminal.Key]Command{
			terminal.KeyLeft:   CommandMoveLeft,
			terminal.KeyRight:  CommandMoveRight,
			terminal.KeyUp:     CommandRotateCW,
			terminal.KeyDown:   CommandSoftDrop,
			terminal.KeySpace:  CommandHardDrop,
			terminal.KeyEscape: CommandPause,
			terminal.KeyCtrlC:  CommandQuit,
		},
		Runes: map[rune]Command{
			'x': CommandRotateCW,
			'd': CommandRotateCCW,
			'z': CommandRotateCCW,
			'a': CommandRotate180,
			's': CommandHardDrop,
			'h': CommandHold,
			'c': CommandHold,
			'p': CommandPause,
			'r': CommandRestart,
			'm': CommandToggleMute,
			'q': CommandQuit,
		},
	}
}

// Lookup returns the command bound to a key event, CommandNone if unbound
// Unbound upper-case runes fall back to their lower-case binding
func (kt *KeyTable) Lookup(ev terminal.Event) Command {
	if ev.Type != terminal.EventKey {
		return CommandNone
	}
	if ev.Key != terminal.KeyRune {
		return kt.SpecialKeys[ev.Key]
	}
	if c, ok := kt.Runes[ev.Rune]; ok {
		return c
	}
	return kt.Runes[unicode.ToLower(ev.Rune)]
}

// Bindings returns the config names of every key bound to c
func (kt *KeyTable) Bindings(c Command) []string {
	var out []string
	for k, cmd := range kt.SpecialKeys {
		if cmd == c {
			out = append(out, terminal.KeyName(k))
		}
	}
	for r, cmd := range kt.Runes {
		if cmd == c {
			out = append(out, string(r))
		}
	}
	return out
}

// Clone creates a deep copy of the KeyTable
func (kt *KeyTable) Clone() *KeyTable {
	clone := &KeyTable{
		SpecialKeys: make(map[terminal.Key]Command, len(kt.SpecialKeys)),
		Runes:       make(map[rune]Command, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		clone.SpecialKeys[k] = v
	}
	for r, v := range kt.Runes {
		clone.Runes[r] = v
	}
	return clone
}
