package game

import (
	"time"

	"github.com/lixenwraith/tstris/constant"
)

// Options configures a game
type Options struct {
	Width       int
	Height      int
	Mode        Mode
	StartLevel  int
	SprintLines int
	Preview     int
	Randomizer  RandomizerKind
	WallKicks   bool
	Ghost       bool
	LockDelay   time.Duration
	Countdown   int
	Seed        uint64

	// WaitForStart holds each new game in PhaseReady until Start
	WaitForStart bool
}

// DefaultOptions returns the canonical 10x20 marathon setup
func DefaultOptions() Options {
	return Options{
		Width:       constant.BoardWidth,
		Height:      constant.BoardHeight,
		Mode:        ModeMarathon,
		StartLevel:  constant.MinLevel,
		SprintLines: constant.DefaultSprintLines,
		Preview:     constant.DefaultPreview,
		Randomizer:  RandomizerBag,
		Ghost:       true,
		LockDelay:   constant.DefaultLockDelay,
		Countdown:   constant.DefaultCountdown,
	}
}

// normalized clamps options into playable ranges
func (o Options) normalized() Options {
	if o.Width < constant.MinBoardSize {
		o.Width = constant.MinBoardSize
	}
	if o.Height < constant.MinBoardSize {
		o.Height = constant.MinBoardSize
	}
	if o.StartLevel < constant.MinLevel {
		o.StartLevel = constant.MinLevel
	}
	if o.SprintLines <= 0 {
		o.SprintLines = constant.DefaultSprintLines
	}
	if o.Preview < 0 {
		o.Preview = 0
	}
	if o.Preview > constant.MaxPreview {
		o.Preview = constant.MaxPreview
	}
	if o.LockDelay < 0 {
		o.LockDelay = 0
	}
	if o.Countdown < 0 {
		o.Countdown = 0
	}
	return o
}

// Game owns the board, the falling piece and all scoring state
// It is driven by a single goroutine: Update advances time, command methods apply input
type Game struct {
	opts   Options
	random Randomizer
	board  *Board

	active    ActivePiece
	hasActive bool
	queue     []Shape
	hold      Shape
	canHold   bool

	score int
	level int
	lines int

	phase     Phase
	paused    bool
	countdown int

	now          time.Time
	gravityAcc   time.Duration
	lockAcc      time.Duration
	countdownAcc time.Duration
	elapsed      time.Duration
	grounded     bool
	lockResets   int

	events []Event
}

// New creates a game seeded from opts.Seed and enters the countdown (or the first spawn)
func New(opts Options) *Game {
	opts = opts.normalized()
	return NewWithRandomizer(opts, NewRandomizer(opts.Randomizer, NewRand(opts.Seed)))
}

// NewWithRandomizer creates a game drawing shapes from r
func NewWithRandomizer(opts Options, r Randomizer) *Game {
	opts = opts.normalized()
	g := &Game{
		opts:   opts,
		random: r,
		board:  NewBoard(opts.Width, opts.Height),
		queue:  make([]Shape, 0, constant.MaxPreview),
	}
	g.reset()
	return g
}

// reset starts a fresh game on the current randomizer
func (g *Game) reset() {
	g.board.Reset()
	g.queue = g.queue[:0]
	for len(g.queue) < constant.MaxPreview {
		g.queue = append(g.queue, g.random.Next())
	}
	g.hasActive = false
	g.hold = ShapeNone
	g.canHold = true
	g.score = 0
	g.level = g.opts.StartLevel
	g.lines = 0
	g.paused = false
	g.gravityAcc = 0
	g.lockAcc = 0
	g.countdownAcc = 0
	g.elapsed = 0
	g.grounded = false
	g.lockResets = 0

	g.countdown = g.opts.Countdown
	if g.opts.WaitForStart {
		g.phase = PhaseReady
		return
	}
	g.beginCountdown()
}

// beginCountdown enters the countdown, or spawns directly when it is zero
func (g *Game) beginCountdown() {
	g.phase = PhaseCountdown
	if g.countdown == 0 {
		g.spawn()
	}
}

// Start leaves PhaseReady; false in any other phase
func (g *Game) Start() bool {
	if g.phase != PhaseReady {
		return false
	}
	g.emit(Event{Kind: EventStart})
	g.beginCountdown()
	return true
}

// Restart discards the current game and starts a new one
func (g *Game) Restart() {
	g.reset()
	g.emit(Event{Kind: EventRestart})
}

// Update advances game time to now, running countdown, gravity and lock delay
// The first call only establishes the time base
func (g *Game) Update(now time.Time) {
	if g.now.IsZero() {
		g.now = now
		return
	}
	dt := now.Sub(g.now)
	g.now = now
	if dt <= 0 || g.paused || g.phase.Terminal() {
		return
	}

	switch g.phase {
	case PhaseCountdown:
		g.countdownAcc += dt
		for g.countdown > 0 && g.countdownAcc >= constant.CountdownStep {
			g.countdownAcc -= constant.CountdownStep
			g.countdown--
		}
		if g.countdown == 0 {
			g.spawn()
		}
	case PhaseFalling:
		g.elapsed += dt
		g.applyGravity(dt)
	}
}

// applyGravity drops the piece once per elapsed gravity interval and handles lock-in
func (g *Game) applyGravity(dt time.Duration) {
	interval := g.GravityInterval()
	wasGrounded := g.grounded
	g.gravityAcc += dt
	for steps := 0; g.gravityAcc >= interval && steps < g.board.Height(); steps++ {
		g.gravityAcc -= interval
		if g.tryMove(1, 0) {
			continue
		}
		if g.opts.LockDelay == 0 {
			g.lockPiece()
			return
		}
		break
	}

	// A piece grounded by this update has only rested since its last gravity step
	if g.grounded && g.opts.LockDelay > 0 {
		if wasGrounded {
			g.lockAcc += dt
		} else {
			g.lockAcc += g.gravityAcc
		}
		if g.lockAcc >= g.opts.LockDelay {
			g.lockPiece()
			return
		}
	}
	if g.gravityAcc > interval {
		g.gravityAcc = interval
	}
}

// GravityInterval returns the current drop interval
func (g *Game) GravityInterval() time.Duration {
	return GravityInterval(g.level)
}

// playable reports whether piece commands are accepted
func (g *Game) playable() bool {
	return g.phase == PhaseFalling && g.hasActive && !g.paused
}

// tryMove displaces the active piece if the target fits
func (g *Game) tryMove(dRow, dCol int) bool {
	next := g.active.Moved(dRow, dCol)
	if !g.board.Fits(next) {
		return false
	}
	g.active = next
	g.refreshGrounded()
	return true
}

// refreshGrounded recomputes whether the piece rests on something
func (g *Game) refreshGrounded() {
	g.grounded = !g.board.Fits(g.active.Moved(1, 0))
	if !g.grounded {
		g.lockAcc = 0
	}
}

// extendLock restarts the lock delay after a successful adjustment on the ground
func (g *Game) extendLock() {
	if g.grounded && g.lockResets < constant.MaxLockResets {
		g.lockAcc = 0
		g.lockResets++
	}
}

// MoveLeft shifts the piece one column left; rejected silently when blocked
func (g *Game) MoveLeft() bool {
	return g.shift(-1)
}

// MoveRight shifts the piece one column right; rejected silently when blocked
func (g *Game) MoveRight() bool {
	return g.shift(1)
}

func (g *Game) shift(dCol int) bool {
	if !g.playable() || !g.tryMove(0, dCol) {
		return false
	}
	g.extendLock()
	return true
}

// RotateCW turns the piece clockwise
func (g *Game) RotateCW() bool {
	return g.rotate(g.active.Rotation.CW())
}

// RotateCCW turns the piece counter-clockwise
func (g *Game) RotateCCW() bool {
	return g.rotate(g.active.Rotation.CCW())
}

// Rotate180 turns the piece half a turn
func (g *Game) Rotate180() bool {
	return g.rotate(g.active.Rotation.Flip())
}

func (g *Game) rotate(r Rotation) bool {
	if !g.playable() {
		return false
	}
	cand := g.active.Rotated(r)
	switch {
	case g.board.Fits(cand):
		g.active = cand
	case g.opts.WallKicks:
		kicked := false
		for _, k := range kicksFor(cand.Shape) {
			if c := cand.Moved(k.Row, k.Col); g.board.Fits(c) {
				g.active = c
				kicked = true
				break
			}
		}
		if !kicked {
			return false
		}
	default:
		return false
	}
	g.refreshGrounded()
	g.extendLock()
	return true
}

// SoftDrop moves the piece down one row and scores it
func (g *Game) SoftDrop() bool {
	if !g.playable() || !g.tryMove(1, 0) {
		return false
	}
	g.score += constant.SoftDropPoints
	g.gravityAcc = 0
	return true
}

// HardDrop drops the piece to its resting row and locks it immediately
func (g *Game) HardDrop() bool {
	if !g.playable() {
		return false
	}
	d := g.board.DropDistance(g.active)
	g.active = g.active.Moved(d, 0)
	g.score += constant.HardDropPoints * d
	g.emit(Event{Kind: EventHardDrop, Shape: g.active.Shape, Lines: d})
	g.lockPiece()
	return true
}

// Hold swaps the active piece with the hold slot, once per spawn
func (g *Game) Hold() bool {
	if !g.playable() || !g.canHold {
		return false
	}
	cur := g.active.Shape
	next := g.hold
	g.hold = cur
	if next == ShapeNone {
		next = g.popNext()
	}
	g.spawnShape(next)
	g.canHold = false
	g.emit(Event{Kind: EventHold, Shape: cur})
	return true
}

// TogglePause freezes or resumes play; ignored before start and once the game has ended
func (g *Game) TogglePause() bool {
	if g.phase.Terminal() || g.phase == PhaseReady {
		return false
	}
	g.paused = !g.paused
	if g.paused {
		g.emit(Event{Kind: EventPause})
	} else {
		g.emit(Event{Kind: EventResume})
	}
	return true
}

// lockPiece runs Locking and Clearing, then spawns the next piece
func (g *Game) lockPiece() {
	g.phase = PhaseLocking
	g.board.Lock(g.active)
	g.hasActive = false
	g.emit(Event{Kind: EventLock, Shape: g.active.Shape})

	g.phase = PhaseClearing
	n := g.board.ClearCompletedRows()
	if n > 0 {
		g.score += LineClearScore(n, g.level)
		g.lines += n
		g.emit(Event{Kind: EventClear, Lines: n, Level: g.level, Score: g.score})

		switch g.opts.Mode {
		case ModeMarathon:
			if lvl := LevelForLines(g.opts.StartLevel, g.lines); lvl > g.level {
				g.level = lvl
				g.emit(Event{Kind: EventLevelUp, Level: lvl})
			}
		case ModeSprint:
			if g.lines >= g.opts.SprintLines {
				g.phase = PhaseFinished
				g.emit(Event{Kind: EventFinished, Lines: g.lines, Score: g.score})
				return
			}
		}
	}
	g.spawn()
}

// spawn places the next queued shape
func (g *Game) spawn() {
	g.spawnShape(g.popNext())
	g.canHold = true
}

// spawnShape places s at the spawn point; a collision there ends the game
func (g *Game) spawnShape(s Shape) {
	g.phase = PhaseSpawning
	g.gravityAcc = 0
	g.lockAcc = 0
	g.lockResets = 0

	p := SpawnPiece(s, g.board.Width())
	if !g.board.Fits(p) {
		g.hasActive = false
		g.phase = PhaseGameOver
		g.emit(Event{Kind: EventGameOver, Shape: s, Lines: g.lines, Score: g.score})
		return
	}
	g.active = p
	g.hasActive = true
	g.phase = PhaseFalling
	g.refreshGrounded()
	g.emit(Event{Kind: EventSpawn, Shape: s})
}

// popNext takes the head of the queue and refills it
func (g *Game) popNext() Shape {
	s := g.queue[0]
	g.queue = append(g.queue[:0], g.queue[1:]...)
	g.queue = append(g.queue, g.random.Next())
	return s
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// DrainEvents returns and clears the pending events
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := g.events
	g.events = nil
	return out
}

// Phase returns the state machine phase
func (g *Game) Phase() Phase { return g.phase }

// Running reports whether the game still accepts play
func (g *Game) Running() bool { return !g.phase.Terminal() }

// Paused reports whether play is frozen
func (g *Game) Paused() bool { return g.paused }

// Score returns the current score
func (g *Game) Score() int { return g.score }

// Level returns the current level
func (g *Game) Level() int { return g.level }

// Lines returns the total cleared rows
func (g *Game) Lines() int { return g.lines }

// Active returns the falling piece and whether one exists
func (g *Game) Active() (ActivePiece, bool) { return g.active, g.hasActive }

// Next returns the upcoming shape
func (g *Game) Next() Shape { return g.queue[0] }

// Options returns the normalized options in use
func (g *Game) Options() Options { return g.opts }

// Snapshot copies the state the renderer needs
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Width:     g.board.Width(),
		Height:    g.board.Height(),
		Cells:     make([]Cell, len(g.board.cells)),
		Active:    g.active,
		HasActive: g.hasActive,
		Next:      make([]Shape, g.opts.Preview),
		Hold:      g.hold,
		CanHold:   g.canHold,
		Score:     g.score,
		Level:     g.level,
		Lines:     g.lines,
		Mode:      g.opts.Mode,
		Phase:     g.phase,
		Paused:    g.paused,
		Elapsed:   g.elapsed,
	}
	copy(s.Cells, g.board.cells)
	copy(s.Next, g.queue)
	if g.opts.Mode == ModeSprint {
		s.Goal = g.opts.SprintLines
	}
	if g.phase == PhaseCountdown {
		s.Countdown = g.countdown
	}
	if g.opts.Ghost && g.hasActive {
		if d := g.board.DropDistance(g.active); d > 0 {
			s.Ghost = g.active.Moved(d, 0)
			s.HasGhost = true
		}
	}
	return s
}
