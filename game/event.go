package game

// EventKind classifies notable state changes reported to the loop
type EventKind uint8

const (
	EventSpawn EventKind = iota
	EventLock
	EventClear
	EventLevelUp
	EventHold
	EventHardDrop
	EventGameOver
	EventFinished
	EventPause
	EventResume
	EventRestart
	EventStart
)

var eventNames = [...]string{
	"spawn", "lock", "clear", "level_up", "hold", "hard_drop",
	"game_over", "finished", "pause", "resume", "restart", "start",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is emitted by the game and drained by the loop for sound and logging
type Event struct {
	Kind  EventKind
	Shape Shape
	Lines int
	Level int
	Score int
}
