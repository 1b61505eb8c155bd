package constant

import "time"

// Leveling
const (
	// LinesPerLevel is the number of cleared lines that advance the level in marathon mode
	LinesPerLevel = 10

	// MinLevel is the first level
	MinLevel = 1

	// MaxGravityLevel caps the gravity curve; levels above it fall at this speed
	MaxGravityLevel = 20

	// DefaultSprintLines is the sprint goal (40 line sprint)
	DefaultSprintLines = 40
)

// Gravity
const (
	// MinGravityInterval floors the gravity curve at one frame
	MinGravityInterval = FrameUpdateInterval
)

// Lock Delay
const (
	// DefaultLockDelay is how long a grounded piece may still be moved before it locks
	DefaultLockDelay = 500 * time.Millisecond

	// MaxLockResets bounds lock delay extensions from moves and rotations on the ground
	MaxLockResets = 15
)

// Scoring
const (
	// SoftDropPoints is awarded per row moved by a soft drop
	SoftDropPoints = 1

	// HardDropPoints is awarded per row moved by a hard drop
	HardDropPoints = 2
)

// LineClearPoints is the base score by number of rows cleared at once, multiplied by level
var LineClearPoints = [5]int{0, 100, 300, 500, 800}

// Preview
const (
	// DefaultPreview is the number of upcoming pieces shown
	DefaultPreview = 5

	// MaxPreview bounds the preview queue length
	MaxPreview = 5

	// DefaultCountdown is the countdown length in steps before play starts
	DefaultCountdown = 3
)
