package input

import (
	"github.com/lixenwraith/tstris/terminal"
)

// Machine parses terminal.Event into Intent
type Machine struct {
	keyTable *KeyTable
}

// NewMachine creates a machine with the default key table
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// SetKeyTable replaces the active bindings
func (m *Machine) SetKeyTable(kt *KeyTable) {
	if kt != nil {
		m.keyTable = kt
	}
}

// KeyTable returns the active bindings
func (m *Machine) KeyTable() *KeyTable {
	return m.keyTable
}

// Process converts one event; the second return is false when the event carries nothing for the loop
func (m *Machine) Process(ev terminal.Event) (Intent, bool) {
	switch ev.Type {
	case terminal.EventKey:
		cmd := m.keyTable.Lookup(ev)
		if cmd == CommandNone {
			return Intent{}, false
		}
		return Intent{Type: IntentCommand, Command: cmd}, true
	case terminal.EventResize:
		return Intent{Type: IntentResize, Width: ev.Width, Height: ev.Height}, true
	case terminal.EventClosed:
		return Intent{Type: IntentClosed}, true
	}
	return Intent{}, false
}
