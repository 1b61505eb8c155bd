package input

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/tstris/terminal"
)

// ApplyBindings returns a copy of base with the configured bindings applied
// Each listed action loses its default keys and gains exactly the listed ones;
// a key listed for one action is taken away from any action it was bound to.
// An empty list unbinds the action.
// Returns error on unknown action or key names
func ApplyBindings(base *KeyTable, bindings map[string][]string) (*KeyTable, error) {
	result := base.Clone()
	if len(bindings) == 0 {
		return result, nil
	}

	// Deterministic order so duplicate keys resolve the same way on every run
	actions := make([]string, 0, len(bindings))
	for name := range bindings {
		actions = append(actions, name)
	}
	slices.Sort(actions)

	type binding struct {
		key terminal.Key
		r   rune
		cmd Command
	}
	var resolved []binding

	for _, name := range actions {
		cmd, ok := ActionCommand(name)
		if !ok {
			return nil, fmt.Errorf("keys: unknown action %q", name)
		}
		unbindCommand(result, cmd)
		for _, keyName := range bindings[name] {
			k, r, err := terminal.ParseKey(keyName)
			if err != nil {
				return nil, fmt.Errorf("keys.%s: %w", name, err)
			}
			resolved = append(resolved, binding{k, r, cmd})
		}
	}

	for _, b := range resolved {
		if b.key == terminal.KeyRune {
			result.Runes[b.r] = b.cmd
		} else {
			result.SpecialKeys[b.key] = b.cmd
		}
	}
	return result, nil
}

func unbindCommand(kt *KeyTable, cmd Command) {
	for k, c := range kt.SpecialKeys {
		if c == cmd {
			delete(kt.SpecialKeys, k)
		}
	}
	for r, c := range kt.Runes {
		if c == cmd {
			delete(kt.Runes, r)
		}
	}
}
