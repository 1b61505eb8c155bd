package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seqRandomizer cycles through a fixed shape sequence
type seqRandomizer struct {
	shapes []Shape
	i      int
}

func (s *seqRandomizer) Next() Shape {
	sh := s.shapes[s.i%len(s.shapes)]
	s.i++
	return sh
}

// newTestGame builds a game with no countdown and no lock delay on a fixed sequence
func newTestGame(t *testing.T, mutate func(*Options), shapes ...Shape) *Game {
	t.Helper()
	opts := DefaultOptions()
	opts.Countdown = 0
	opts.LockDelay = 0
	if mutate != nil {
		mutate(&opts)
	}
	g := NewWithRandomizer(opts, &seqRandomizer{shapes: shapes})
	g.Update(t0)
	return g
}

func at(d time.Duration) time.Time { return t0.Add(d) }

func TestNewGame_SpawnsTopCenter(t *testing.T) {
	g := newTestGame(t, nil, ShapeT, ShapeO)

	p, ok := g.Active()
	require.True(t, ok)
	assert.Equal(t, PhaseFalling, g.Phase())
	assert.Equal(t, ShapeT, p.Shape)
	assert.Equal(t, Position{Row: 0, Col: 3}, p.Anchor)
	assert.Equal(t, ShapeO, g.Next())
	assert.Equal(t, 1, g.Level())
	assert.True(t, g.Running())
}

// TestGravity_OneRowPerInterval verifies the elapsed-time tick at level 1
func TestGravity_OneRowPerInterval(t *testing.T) {
	g := newTestGame(t, nil, ShapeT)
	require.Equal(t, time.Second, g.GravityInterval())

	g.Update(at(999 * time.Millisecond))
	p, _ := g.Active()
	assert.Equal(t, 0, p.Anchor.Row)

	g.Update(at(time.Second))
	p, _ = g.Active()
	assert.Equal(t, 1, p.Anchor.Row)

	g.Update(at(3 * time.Second))
	p, _ = g.Active()
	assert.Equal(t, 3, p.Anchor.Row)
}

// TestGravity_LocksOnFailedTick verifies lock-in without lock delay
func TestGravity_LocksOnFailedTick(t *testing.T) {
	g := newTestGame(t, func(o *Options) { o.Height = 4 }, ShapeO)

	g.Update(at(2 * time.Second))
	p, _ := g.Active()
	require.Equal(t, 2, p.Anchor.Row)
	assert.Equal(t, 0, g.board.OccupiedCount())

	g.Update(at(3 * time.Second))
	assert.Equal(t, 4, g.board.OccupiedCount())
	p, ok := g.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p.Anchor.Row)

	kinds := eventKinds(g.DrainEvents())
	assert.Contains(t, kinds, EventLock)
	assert.Contains(t, kinds, EventSpawn)
}

func TestLockDelay_HoldsGroundedPiece(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.Height = 4
		o.LockDelay = 500 * time.Millisecond
	}, ShapeO)

	g.Update(at(2 * time.Second))
	require.True(t, g.grounded)
	assert.Equal(t, 0, g.board.OccupiedCount())

	g.Update(at(2400 * time.Millisecond))
	assert.Equal(t, 0, g.board.OccupiedCount())

	// Moving on the ground restarts the delay
	require.True(t, g.MoveLeft())
	g.Update(at(2800 * time.Millisecond))
	assert.Equal(t, 0, g.board.OccupiedCount())

	g.Update(at(2900 * time.Millisecond))
	assert.Equal(t, 4, g.board.OccupiedCount())
}

// TestRotation_RejectedAtLeftWall verifies a rotation needing a cell left of column 0 is rejected
func TestRotation_RejectedAtLeftWall(t *testing.T) {
	g := newTestGame(t, nil, ShapeI)
	g.active = ActivePiece{Shape: ShapeI, Rotation: 1, Anchor: Position{Row: 4, Col: -2}}
	require.True(t, g.board.Fits(g.active))
	before := g.active

	assert.False(t, g.board.CanPlace(ShapeI, 2, before.Anchor))
	assert.False(t, g.RotateCW())
	assert.Equal(t, before, g.active)

	assert.False(t, g.RotateCCW())
	assert.Equal(t, before, g.active)
}

func TestRotation_WallKickWhenEnabled(t *testing.T) {
	g := newTestGame(t, func(o *Options) { o.WallKicks = true }, ShapeI)
	g.active = ActivePiece{Shape: ShapeI, Rotation: 1, Anchor: Position{Row: 4, Col: -2}}

	require.True(t, g.RotateCW())
	assert.Equal(t, Rotation(2), g.active.Rotation)
	assert.Equal(t, Position{Row: 4, Col: 0}, g.active.Anchor)
	assert.True(t, g.board.Fits(g.active))
}

func TestMoves_RejectedSilentlyAtWalls(t *testing.T) {
	g := newTestGame(t, nil, ShapeO)
	moved := 0
	for g.MoveLeft() {
		moved++
	}
	assert.Equal(t, 4, moved)
	p, _ := g.Active()
	assert.Equal(t, -1, p.Anchor.Col, "O occupies box columns 1-2")

	moved = 0
	for g.MoveRight() {
		moved++
	}
	assert.Equal(t, 8, moved)
}

// TestHardDrop_TetrisScoring drops a vertical I into a four-row well
func TestHardDrop_TetrisScoring(t *testing.T) {
	g := newTestGame(t, nil, ShapeI, ShapeO)
	for row := 16; row < 20; row++ {
		fillRow(g.board, row, ShapeJ)
		g.board.set(row, 5, CellEmpty)
	}

	require.True(t, g.RotateCW())
	require.True(t, g.HardDrop())

	assert.Equal(t, 4, g.Lines())
	assert.Equal(t, 2*16+800, g.Score())
	assert.Equal(t, 0, g.board.OccupiedCount())

	p, _ := g.Active()
	assert.Equal(t, ShapeO, p.Shape)

	var clear *Event
	for _, e := range g.DrainEvents() {
		if e.Kind == EventClear {
			clear = &e
		}
	}
	require.NotNil(t, clear)
	assert.Equal(t, 4, clear.Lines)
}

func TestSoftDrop_ScoresPerRow(t *testing.T) {
	g := newTestGame(t, nil, ShapeT)
	for i := 0; i < 3; i++ {
		require.True(t, g.SoftDrop())
	}
	assert.Equal(t, 3, g.Score())
	p, _ := g.Active()
	assert.Equal(t, 3, p.Anchor.Row)
}

func TestLevelUp_EveryTenLines(t *testing.T) {
	g := newTestGame(t, nil, ShapeI, ShapeO)
	g.lines = 8
	for row := 16; row < 20; row++ {
		fillRow(g.board, row, ShapeL)
		g.board.set(row, 5, CellEmpty)
	}
	require.True(t, g.RotateCW())
	require.True(t, g.HardDrop())

	assert.Equal(t, 12, g.Lines())
	assert.Equal(t, 2, g.Level())
	assert.Less(t, g.GravityInterval(), time.Second)
	assert.Contains(t, eventKinds(g.DrainEvents()), EventLevelUp)
}

func TestSprint_FinishesAtGoal(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.Mode = ModeSprint
		o.SprintLines = 4
	}, ShapeI)
	for row := 16; row < 20; row++ {
		fillRow(g.board, row, ShapeS)
		g.board.set(row, 5, CellEmpty)
	}
	require.True(t, g.RotateCW())
	require.True(t, g.HardDrop())

	assert.Equal(t, PhaseFinished, g.Phase())
	assert.False(t, g.Running())
	assert.Equal(t, 1, g.Level(), "sprint keeps the level fixed")
	assert.False(t, g.MoveLeft())
	assert.False(t, g.TogglePause())

	snap := g.Snapshot()
	assert.Equal(t, 4, snap.Goal)
	assert.Equal(t, 0, snap.LinesRemaining())
}

// TestGameOver_WhenSpawnCollides verifies game over on a blocked spawn point
func TestGameOver_WhenSpawnCollides(t *testing.T) {
	opts := DefaultOptions()
	opts.Countdown = 1
	g := NewWithRandomizer(opts, &seqRandomizer{shapes: []Shape{ShapeT}})
	g.Update(t0)
	require.Equal(t, PhaseCountdown, g.Phase())

	g.board.set(1, 4, Occupied(ShapeZ))
	g.Update(at(time.Second))

	assert.Equal(t, PhaseGameOver, g.Phase())
	_, ok := g.Active()
	assert.False(t, ok)
	assert.Contains(t, eventKinds(g.DrainEvents()), EventGameOver)

	// Terminal: only restart gets out
	g.Update(at(10 * time.Second))
	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.False(t, g.HardDrop())

	g.Restart()
	assert.Equal(t, PhaseCountdown, g.Phase())
	assert.Equal(t, 0, g.board.OccupiedCount())
	g.Update(at(11 * time.Second))
	assert.Equal(t, PhaseFalling, g.Phase())
}

// TestGameOver_OnlyFromSpawnCollision plays random games and checks every game over
// coincides with a colliding spawn, and every non-colliding spawn keeps the game running
func TestGameOver_OnlyFromSpawnCollision(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		opts := DefaultOptions()
		opts.Countdown = 0
		opts.LockDelay = 0
		opts.Seed = seed
		g := New(opts)
		rng := rand.New(rand.NewPCG(seed, 7))

		for step := 0; step < 400 && g.Running(); step++ {
			for i := rng.IntN(4); i > 0; i-- {
				if rng.IntN(2) == 0 {
					g.MoveLeft()
				} else {
					g.MoveRight()
				}
			}
			g.RotateCW()
			g.HardDrop()

			for _, e := range g.DrainEvents() {
				switch e.Kind {
				case EventGameOver:
					assert.False(t, g.board.Fits(SpawnPiece(e.Shape, g.board.Width())), "seed %d", seed)
				case EventSpawn:
					assert.Equal(t, PhaseFalling, g.Phase(), "seed %d", seed)
				}
			}
		}
	}
}

// TestScore_MonotonicUnderRandomPlay drives random commands and ticks
func TestScore_MonotonicUnderRandomPlay(t *testing.T) {
	opts := DefaultOptions()
	opts.Countdown = 0
	opts.Seed = 99
	g := New(opts)
	g.Update(t0)
	rng := rand.New(rand.NewPCG(3, 4))

	now := t0
	prevScore, prevLevel := g.Score(), g.Level()
	for i := 0; i < 5000 && g.Running(); i++ {
		switch rng.IntN(8) {
		case 0:
			g.MoveLeft()
		case 1:
			g.MoveRight()
		case 2:
			g.RotateCW()
		case 3:
			g.RotateCCW()
		case 4:
			g.SoftDrop()
		case 5:
			if rng.IntN(4) == 0 {
				g.HardDrop()
			}
		case 6:
			g.Hold()
		}
		now = now.Add(time.Duration(rng.IntN(200)) * time.Millisecond)
		g.Update(now)

		require.GreaterOrEqual(t, g.Score(), prevScore)
		require.GreaterOrEqual(t, g.Level(), prevLevel)
		prevScore, prevLevel = g.Score(), g.Level()
	}
}

func TestHold_OncePerSpawn(t *testing.T) {
	g := newTestGame(t, nil, ShapeT, ShapeO, ShapeI)

	require.True(t, g.Hold())
	p, _ := g.Active()
	assert.Equal(t, ShapeO, p.Shape)
	assert.Equal(t, ShapeT, g.Snapshot().Hold)
	assert.False(t, g.Hold(), "second hold before lock")

	require.True(t, g.HardDrop())
	require.True(t, g.Hold())
	p, _ = g.Active()
	assert.Equal(t, ShapeT, p.Shape, "held piece comes back")
	assert.Equal(t, Position{Row: 0, Col: 3}, p.Anchor)
	assert.Equal(t, ShapeI, g.Snapshot().Hold)
}

func TestPause_FreezesGravityAndInput(t *testing.T) {
	g := newTestGame(t, nil, ShapeT)

	require.True(t, g.TogglePause())
	g.Update(at(5 * time.Second))
	p, _ := g.Active()
	assert.Equal(t, 0, p.Anchor.Row)
	assert.False(t, g.MoveLeft())
	assert.True(t, g.Snapshot().Paused)

	require.True(t, g.TogglePause())
	g.Update(at(5500 * time.Millisecond))
	p, _ = g.Active()
	assert.Equal(t, 0, p.Anchor.Row)

	g.Update(at(6 * time.Second))
	p, _ = g.Active()
	assert.Equal(t, 1, p.Anchor.Row)
	assert.Equal(t, time.Second, g.Snapshot().Elapsed)
}

func TestCountdown_ThenSpawn(t *testing.T) {
	opts := DefaultOptions()
	g := NewWithRandomizer(opts, &seqRandomizer{shapes: []Shape{ShapeL}})
	g.Update(t0)

	assert.Equal(t, PhaseCountdown, g.Phase())
	assert.Equal(t, 3, g.Snapshot().Countdown)
	assert.False(t, g.HardDrop())

	g.Update(at(time.Second))
	assert.Equal(t, 2, g.Snapshot().Countdown)

	g.Update(at(3 * time.Second))
	assert.Equal(t, PhaseFalling, g.Phase())
	p, ok := g.Active()
	require.True(t, ok)
	assert.Equal(t, ShapeL, p.Shape)
}

func TestWaitForStart_HoldsUntilStart(t *testing.T) {
	opts := DefaultOptions()
	opts.WaitForStart = true
	opts.Countdown = 1
	g := NewWithRandomizer(opts, &seqRandomizer{shapes: []Shape{ShapeJ}})
	g.Update(t0)

	assert.Equal(t, PhaseReady, g.Phase())
	assert.True(t, g.Running())
	_, ok := g.Active()
	assert.False(t, ok)

	// Time and commands do nothing while ready
	g.Update(at(10 * time.Second))
	assert.Equal(t, PhaseReady, g.Phase())
	assert.Zero(t, g.Snapshot().Elapsed)
	assert.False(t, g.HardDrop())
	assert.False(t, g.TogglePause())

	require.True(t, g.Start())
	assert.False(t, g.Start())
	assert.Equal(t, PhaseCountdown, g.Phase())
	assert.Equal(t, 1, g.Snapshot().Countdown)

	g.Update(at(11 * time.Second))
	assert.Equal(t, PhaseFalling, g.Phase())

	kinds := []EventKind{}
	for _, e := range g.DrainEvents() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventStart, EventSpawn}, kinds)
}

func TestWaitForStart_RestartReturnsToReady(t *testing.T) {
	g := newTestGame(t, func(o *Options) { o.WaitForStart = true }, ShapeT)
	require.Equal(t, PhaseReady, g.Phase())

	require.True(t, g.Start())
	assert.Equal(t, PhaseFalling, g.Phase())

	g.Restart()
	assert.Equal(t, PhaseReady, g.Phase())
	assert.Equal(t, "ready", g.Phase().String())
}

func TestSnapshot_GhostAndPreview(t *testing.T) {
	g := newTestGame(t, func(o *Options) { o.Preview = 3 }, ShapeO, ShapeT, ShapeI, ShapeS, ShapeZ)

	s := g.Snapshot()
	require.True(t, s.HasGhost)
	assert.Equal(t, 18, s.Ghost.Anchor.Row)
	assert.Equal(t, []Shape{ShapeT, ShapeI, ShapeS}, s.Next)

	// The snapshot owns its cells
	s.Cells[0] = Occupied(ShapeI)
	assert.True(t, g.board.At(0, 0).IsEmpty())

	g2 := newTestGame(t, func(o *Options) { o.Ghost = false }, ShapeO)
	assert.False(t, g2.Snapshot().HasGhost)
}

func TestBagRandomizer_DealsEveryShapePerBag(t *testing.T) {
	r := NewRandomizer(RandomizerBag, NewRand(42))
	for bag := 0; bag < 20; bag++ {
		seen := map[Shape]int{}
		for i := 0; i < ShapeCount; i++ {
			seen[r.Next()]++
		}
		assert.Len(t, seen, ShapeCount, "bag %d", bag)
	}
}

func TestRandomizer_DeterministicPerSeed(t *testing.T) {
	a := NewRandomizer(RandomizerUniform, NewRand(5))
	b := NewRandomizer(RandomizerUniform, NewRand(5))
	for i := 0; i < 50; i++ {
		s := a.Next()
		assert.True(t, s.Valid())
		assert.Equal(t, s, b.Next())
	}
}

func TestParseNames(t *testing.T) {
	k, err := ParseRandomizer("uniform")
	require.NoError(t, err)
	assert.Equal(t, RandomizerUniform, k)
	_, err = ParseRandomizer("dice")
	assert.Error(t, err)

	m, err := ParseMode("sprint")
	require.NoError(t, err)
	assert.Equal(t, ModeSprint, m)
	_, err = ParseMode("zen")
	assert.Error(t, err)
}

func eventKinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}
