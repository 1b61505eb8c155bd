package audio

import (
	"errors"
)

// Cue identifies a short gameplay sound
type Cue int

const (
	CueLock     Cue = iota // Piece locked without clearing
	CueHardDrop            // Piece slammed to the floor
	CueClear               // One to three lines cleared
	CueTetris              // Four lines cleared
	CueLevelUp             // Level increased
	CueGameOver            // Spawn collided
	CueFinished            // Sprint goal reached
	cueCount
)

var cueNames = [cueCount]string{"lock", "hard_drop", "clear", "tetris", "level_up", "game_over", "finished"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Sentinel errors
var (
	ErrUnknownCue = errors.New("unknown cue")
)
