package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tstris/audio"
	"github.com/lixenwraith/tstris/game"
	"github.com/lixenwraith/tstris/input"
	"github.com/lixenwraith/tstris/status"
	"github.com/lixenwraith/tstris/terminal"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type recordingSound struct {
	cues  []audio.Cue
	muted bool
}

func (r *recordingSound) Play(c audio.Cue) { r.cues = append(r.cues, c) }
func (r *recordingSound) ToggleMute() bool { r.muted = !r.muted; return r.muted }
func (r *recordingSound) Muted() bool      { return r.muted }

type harness struct {
	loop    *Loop
	sim     *terminal.Simulation
	clock   *MockTimeProvider
	sound   *recordingSound
	intents chan input.Intent
}

func newHarness(t *testing.T, mutate func(*game.Options)) *harness {
	t.Helper()
	opts := game.DefaultOptions()
	opts.Countdown = 0
	opts.LockDelay = 0
	opts.Seed = 1
	if mutate != nil {
		mutate(&opts)
	}

	sim, err := terminal.NewSimulation(80, 24)
	require.NoError(t, err)
	t.Cleanup(sim.Fini)

	h := &harness{
		sim:     sim,
		clock:   NewMockTimeProvider(t0),
		sound:   &recordingSound{},
		intents: make(chan input.Intent, 8),
	}
	h.loop = NewLoop(game.New(opts), sim, h.intents, WithClock(h.clock), WithSound(h.sound))
	h.loop.Tick()
	return h
}

func (h *harness) command(c input.Command) bool {
	return h.loop.Handle(input.Intent{Type: input.IntentCommand, Command: c})
}

func (h *harness) active(t *testing.T) game.ActivePiece {
	t.Helper()
	p, ok := h.loop.Game().Active()
	require.True(t, ok)
	return p
}

func TestTickAppliesGravity(t *testing.T) {
	h := newHarness(t, nil)
	start := h.active(t)

	h.clock.Advance(h.loop.Game().GravityInterval())
	h.loop.Tick()
	assert.Equal(t, start.Anchor.Row+1, h.active(t).Anchor.Row)
}

func TestHandleMovesPiece(t *testing.T) {
	h := newHarness(t, nil)
	start := h.active(t)

	assert.True(t, h.command(input.CommandMoveLeft))
	assert.Equal(t, start.Anchor.Col-1, h.active(t).Anchor.Col)

	assert.True(t, h.command(input.CommandMoveRight))
	assert.True(t, h.command(input.CommandMoveRight))
	assert.Equal(t, start.Anchor.Col+1, h.active(t).Anchor.Col)

	assert.True(t, h.command(input.CommandSoftDrop))
	assert.Equal(t, start.Anchor.Row+1, h.active(t).Anchor.Row)
	assert.Equal(t, 1, h.loop.Game().Score())
}

func TestHardDropCues(t *testing.T) {
	h := newHarness(t, nil)
	assert.True(t, h.command(input.CommandHardDrop))
	h.loop.Tick()

	assert.Equal(t, []audio.Cue{audio.CueHardDrop}, h.sound.cues)
	assert.Greater(t, h.loop.Game().Score(), 0)
}

func TestStatsCounters(t *testing.T) {
	h := newHarness(t, nil)
	reg := status.NewRegistry()
	h.loop = NewLoop(h.loop.Game(), h.sim, h.intents, WithClock(h.clock), WithStats(reg))
	require.Same(t, reg, h.loop.Stats())

	h.command(input.CommandHold)
	h.command(input.CommandHardDrop)
	h.loop.Tick()
	h.command(input.CommandRestart)
	h.loop.Tick()

	assert.Equal(t, int64(3), reg.Ints.Get(status.Intents).Load())
	assert.Equal(t, int64(2), reg.Ints.Get(status.Frames).Load())
	assert.Equal(t, int64(1), reg.Ints.Get(status.Pieces).Load())
	assert.Equal(t, int64(1), reg.Ints.Get(status.Holds).Load())
	assert.Equal(t, int64(1), reg.Ints.Get(status.Restarts).Load())
	assert.Equal(t, int64(0), reg.Ints.Get(status.Lines).Load())
	assert.GreaterOrEqual(t, reg.Floats.Get(status.MaxFrameMs).Get(), 0.0)
}

func TestReadyWaitsForHardDrop(t *testing.T) {
	h := newHarness(t, func(o *game.Options) { o.WaitForStart = true })
	g := h.loop.Game()
	require.Equal(t, game.PhaseReady, g.Phase())
	assert.Contains(t, h.sim.Screen(), "READY")

	h.command(input.CommandMoveLeft)
	h.command(input.CommandPause)
	assert.Equal(t, game.PhaseReady, g.Phase())
	assert.False(t, g.Paused())

	h.command(input.CommandHardDrop)
	h.loop.Tick()
	assert.Equal(t, game.PhaseFalling, g.Phase())
	assert.Zero(t, g.Score(), "the starting key does not drop a piece")
	assert.Empty(t, h.sound.cues)
}

func TestPauseFreezesTime(t *testing.T) {
	h := newHarness(t, nil)
	start := h.active(t)

	h.command(input.CommandPause)
	require.True(t, h.loop.Game().Paused())

	h.clock.Advance(10 * time.Second)
	h.loop.Tick()
	assert.Equal(t, start, h.active(t))
	assert.Contains(t, h.sim.Screen(), "PAUSED")

	// Piece commands are ignored while paused
	h.command(input.CommandMoveLeft)
	assert.Equal(t, start, h.active(t))

	h.command(input.CommandPause)
	require.False(t, h.loop.Game().Paused())
	h.loop.Tick()
	assert.Equal(t, start, h.active(t), "paused time is not replayed as gravity")
}

func TestToggleMute(t *testing.T) {
	h := newHarness(t, nil)
	h.command(input.CommandToggleMute)
	assert.True(t, h.sound.muted)
	h.loop.Tick()
	assert.Contains(t, h.sim.Screen(), "sound off")

	h.command(input.CommandToggleMute)
	h.loop.Tick()
	assert.NotContains(t, h.sim.Screen(), "sound off")
}

func TestRestart(t *testing.T) {
	h := newHarness(t, nil)
	h.command(input.CommandHardDrop)
	require.Greater(t, h.loop.Game().Score(), 0)

	h.command(input.CommandRestart)
	assert.Equal(t, 0, h.loop.Game().Score())
	assert.Equal(t, game.PhaseFalling, h.loop.Game().Phase())
}

func TestQuitAndClose(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.command(input.CommandQuit))
	assert.False(t, h.loop.Handle(input.Intent{Type: input.IntentClosed}))
	assert.True(t, h.loop.Handle(input.Intent{}))
}

func TestResizeRedraws(t *testing.T) {
	h := newHarness(t, nil)
	require.Contains(t, h.sim.Screen(), "NEXT")

	h.sim.Resize(30, 10)
	assert.True(t, h.loop.Handle(input.Intent{Type: input.IntentResize, Width: 30, Height: 10}))
	h.loop.Tick()
	assert.Contains(t, h.sim.Screen(), "terminal too small")
}

// onlyO deals O pieces forever
type onlyO struct{}

func (onlyO) Next() game.Shape { return game.ShapeO }

func TestGameOverCue(t *testing.T) {
	h := newHarness(t, nil)
	opts := game.DefaultOptions()
	opts.Width, opts.Height = 4, 4
	opts.Countdown = 0
	h.loop = NewLoop(game.NewWithRandomizer(opts, onlyO{}), h.sim, h.intents, WithClock(h.clock), WithSound(h.sound))
	h.loop.Tick()

	// O blocks stack in the middle columns and never complete a row
	h.command(input.CommandHardDrop)
	h.command(input.CommandHardDrop)
	h.loop.Tick()
	require.Equal(t, game.PhaseGameOver, h.loop.Game().Phase())
	assert.Contains(t, h.sound.cues, audio.CueGameOver)
	assert.Contains(t, h.sim.Screen(), "GAME OVER")
}

func TestRunStopsOnQuit(t *testing.T) {
	h := newHarness(t, nil)
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(context.Background()) }()

	h.intents <- input.Intent{Type: input.IntentCommand, Command: input.CommandMoveLeft}
	h.intents <- input.Intent{Type: input.IntentCommand, Command: input.CommandQuit}

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on quit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}

func TestCueFor(t *testing.T) {
	lock := game.Event{Kind: game.EventLock}
	clear1 := game.Event{Kind: game.EventClear, Lines: 1}
	clear4 := game.Event{Kind: game.EventClear, Lines: 4}
	drop := game.Event{Kind: game.EventHardDrop}

	cue, ok := cueFor([]game.Event{lock}, 0)
	assert.True(t, ok)
	assert.Equal(t, audio.CueLock, cue)

	_, ok = cueFor([]game.Event{lock, clear1}, 0)
	assert.False(t, ok)
	cue, _ = cueFor([]game.Event{lock, clear1}, 1)
	assert.Equal(t, audio.CueClear, cue)
	cue, _ = cueFor([]game.Event{lock, clear4}, 1)
	assert.Equal(t, audio.CueTetris, cue)

	_, ok = cueFor([]game.Event{drop, lock}, 1)
	assert.False(t, ok)

	_, ok = cueFor([]game.Event{{Kind: game.EventSpawn}}, 0)
	assert.False(t, ok)
	cue, _ = cueFor([]game.Event{{Kind: game.EventLevelUp}}, 0)
	assert.Equal(t, audio.CueLevelUp, cue)
	cue, _ = cueFor([]game.Event{{Kind: game.EventFinished}}, 0)
	assert.Equal(t, audio.CueFinished, cue)
}

func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(t0)
	assert.Equal(t, t0, mock.Now())

	mock.Advance(time.Hour)
	assert.Equal(t, t0.Add(time.Hour), mock.Now())

	next := t0.Add(48 * time.Hour)
	mock.SetTime(next)
	assert.Equal(t, next, mock.Now())
}

func TestMonotonicTimeProvider(t *testing.T) {
	p := NewMonotonicTimeProvider()
	t1 := p.Now()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, p.Now().After(t1))
}
