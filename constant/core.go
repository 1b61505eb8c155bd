package constant

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// IntentQueueSize is the capacity of the input producer channel
	IntentQueueSize = 64

	// MaxReadErrors is the number of consecutive input read errors treated as a lost terminal
	MaxReadErrors = 8

	// ReaderShutdownTimeout bounds the wait for the input goroutine after the loop ends
	ReaderShutdownTimeout = 250 * time.Millisecond

	// CountdownStep is the duration of one countdown number
	CountdownStep = time.Second
)

// Board Geometry
const (
	// BoardWidth is the canonical number of columns
	BoardWidth = 10

	// BoardHeight is the canonical number of rows
	BoardHeight = 20

	// MinBoardSize bounds both dimensions from below so every shape fits at spawn
	MinBoardSize = 4

	// MaxBoardWidth and MaxBoardHeight keep the board renderable on ordinary terminals
	MaxBoardWidth  = 40
	MaxBoardHeight = 60
)

// Version is reported by --version
const Version = "0.3.0"
