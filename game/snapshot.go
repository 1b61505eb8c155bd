package game

import "time"

// Snapshot is an immutable copy of everything needed to draw one frame
type Snapshot struct {
	Width  int
	Height int
	Cells  []Cell // row-major, Width*Height

	Active    ActivePiece
	HasActive bool
	Ghost     ActivePiece
	HasGhost  bool

	Next    []Shape
	Hold    Shape
	CanHold bool

	Score int
	Level int
	Lines int
	Goal  int // sprint line goal, 0 in marathon

	Mode      Mode
	Phase     Phase
	Paused    bool
	Countdown int
	Elapsed   time.Duration
}

// At returns the locked cell at (row, col), CellEmpty outside the grid
func (s *Snapshot) At(row, col int) Cell {
	if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
		return CellEmpty
	}
	return s.Cells[row*s.Width+col]
}

// LinesRemaining returns the sprint lines still to clear, 0 in marathon
func (s *Snapshot) LinesRemaining() int {
	if s.Goal == 0 || s.Lines >= s.Goal {
		return 0
	}
	return s.Goal - s.Lines
}
