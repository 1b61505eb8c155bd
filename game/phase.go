package game

import "fmt"

// Phase is the state of the game state machine
type Phase uint8

const (
	PhaseCountdown Phase = iota
	PhaseSpawning
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseGameOver
	PhaseFinished
	// PhaseReady waits for Start before the countdown
	PhaseReady
)

var phaseNames = [...]string{"countdown", "spawning", "falling", "locking", "clearing", "game_over", "finished", "ready"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether the phase only accepts restart and quit
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseFinished
}

// Mode selects the rule set
type Mode uint8

const (
	// ModeMarathon levels up every LinesPerLevel lines and ends only on game over
	ModeMarathon Mode = iota
	// ModeSprint keeps the level fixed and finishes when the line goal is reached
	ModeSprint
)

func (m Mode) String() string {
	if m == ModeSprint {
		return "sprint"
	}
	return "marathon"
}

// ParseMode resolves a config name to a Mode
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "marathon":
		return ModeMarathon, nil
	case "sprint", "40l":
		return ModeSprint, nil
	}
	return ModeMarathon, fmt.Errorf("unknown mode %q", name)
}
