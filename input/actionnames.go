package input

import "strings"

// commandNames maps each Command to its canonical config name
var commandNames = map[Command]string{
	CommandMoveLeft:   "move_left",
	CommandMoveRight:  "move_right",
	CommandRotateCW:   "rotate_cw",
	CommandRotateCCW:  "rotate_ccw",
	CommandRotate180:  "rotate_180",
	CommandSoftDrop:   "soft_drop",
	CommandHardDrop:   "hard_drop",
	CommandHold:       "hold",
	CommandPause:      "pause",
	CommandRestart:    "restart",
	CommandToggleMute: "toggle_mute",
	CommandQuit:       "quit",
}

// actionRegistry resolves config action names, including aliases, to commands
var actionRegistry map[string]Command

func init() {
	actionRegistry = make(map[string]Command, len(commandNames)+6)
	for c, name := range commandNames {
		actionRegistry[name] = c
	}
	actionRegistry["left"] = CommandMoveLeft
	actionRegistry["right"] = CommandMoveRight
	actionRegistry["rotate"] = CommandRotateCW
	actionRegistry["drop"] = CommandHardDrop
	actionRegistry["down"] = CommandSoftDrop
	actionRegistry["mute"] = CommandToggleMute
}

// ActionCommand resolves an action name; names are case-insensitive and accept "-" for "_"
func ActionCommand(name string) (Command, bool) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	c, ok := actionRegistry[norm]
	return c, ok
}

// ActionNames returns the canonical action names in Command order
func ActionNames() []string {
	names := make([]string, 0, len(commandNames))
	for c := CommandNone + 1; c < commandCount; c++ {
		names = append(names, commandNames[c])
	}
	return names
}
