package input

// Command is a gameplay or system action decoded from a key
type Command uint8

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandRotateCW
	CommandRotateCCW
	CommandRotate180
	CommandSoftDrop
	CommandHardDrop
	CommandHold
	CommandPause
	CommandRestart
	CommandToggleMute
	CommandQuit

	commandCount
)

// Gameplay reports whether the command acts on the falling piece
// Gameplay commands are ignored while paused
func (c Command) Gameplay() bool {
	return c >= CommandMoveLeft && c <= CommandHold
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// IntentType discriminates what the input producer hands the loop
type IntentType uint8

const (
	IntentNone    IntentType = iota
	IntentCommand            // Key decoded to a Command
	IntentResize             // Terminal resized
	IntentClosed             // Input source ended
)

// Intent is a single message from the input goroutine to the engine loop
type Intent struct {
	Type    IntentType
	Command Command
	Width   int // IntentResize
	Height  int // IntentResize
}
