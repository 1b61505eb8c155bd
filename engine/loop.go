// Package engine runs the single-goroutine game loop that wires input, game, renderer and sound
package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tstris/audio"
	"github.com/lixenwraith/tstris/constant"
	"github.com/lixenwraith/tstris/game"
	"github.com/lixenwraith/tstris/input"
	"github.com/lixenwraith/tstris/render"
	"github.com/lixenwraith/tstris/status"
	"github.com/lixenwraith/tstris/terminal"
)

// Sound is the cue sink the loop drives; *audio.SoundManager satisfies it
type Sound interface {
	Play(c audio.Cue)
	ToggleMute() bool
	Muted() bool
}

// Loop owns the game state and is its only writer
type Loop struct {
	game     *game.Game
	term     terminal.Terminal
	renderer *render.Renderer
	sound    Sound
	clock    TimeProvider
	intents  <-chan input.Intent
	frame    time.Duration
	stats    loopStats
}

// loopStats caches registry pointers so per-frame updates skip the map
type loopStats struct {
	registry *status.Registry
	frames   *atomic.Int64
	intents  *atomic.Int64
	pieces   *atomic.Int64
	lines    *atomic.Int64
	tetrises *atomic.Int64
	holds    *atomic.Int64
	restarts *atomic.Int64
	maxFrame *status.AtomicFloat
}

func newLoopStats(r *status.Registry) loopStats {
	return loopStats{
		registry: r,
		frames:   r.Ints.Get(status.Frames),
		intents:  r.Ints.Get(status.Intents),
		pieces:   r.Ints.Get(status.Pieces),
		lines:    r.Ints.Get(status.Lines),
		tetrises: r.Ints.Get(status.Tetrises),
		holds:    r.Ints.Get(status.Holds),
		restarts: r.Ints.Get(status.Restarts),
		maxFrame: r.Floats.Get(status.MaxFrameMs),
	}
}

// Option customizes a Loop
type Option func(*Loop)

// WithSound routes game events to s
func WithSound(s Sound) Option {
	return func(l *Loop) { l.sound = s }
}

// WithClock replaces the wall clock
func WithClock(c TimeProvider) Option {
	return func(l *Loop) { l.clock = c }
}

// WithStats records session counters into r
func WithStats(r *status.Registry) Option {
	return func(l *Loop) {
		if r != nil {
			l.stats = newLoopStats(r)
		}
	}
}

// WithFrameInterval overrides the frame ticker period
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.frame = d
		}
	}
}

// NewLoop creates a loop drawing g onto term and consuming intents
func NewLoop(g *game.Game, term terminal.Terminal, intents <-chan input.Intent, opts ...Option) *Loop {
	l := &Loop{
		game:     g,
		term:     term,
		renderer: render.NewRenderer(term),
		clock:    NewMonotonicTimeProvider(),
		intents:  intents,
		frame:    constant.FrameUpdateInterval,
		stats:    newLoopStats(status.NewRegistry()),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sound != nil {
		l.renderer.SetMuted(l.sound.Muted())
	}
	return l
}

// Run drives the game until Quit, input close or ctx cancellation
// Quit and input close return nil; cancellation returns ctx.Err()
// Each iteration drains one intent or one frame tick, then advances time and redraws
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()

	log.Printf("loop: start mode=%s level=%d", l.game.Options().Mode, l.game.Level())
	l.Tick()

	for {
		select {
		case <-ctx.Done():
			log.Printf("loop: stopped: %v", ctx.Err())
			log.Printf("loop: stats %s", l.stats.registry)
			return ctx.Err()
		case in := <-l.intents:
			if !l.Handle(in) {
				log.Printf("loop: quit score=%d lines=%d level=%d", l.game.Score(), l.game.Lines(), l.game.Level())
				log.Printf("loop: stats %s", l.stats.registry)
				return nil
			}
		case <-ticker.C:
		}
		l.Tick()
	}
}

// Handle applies one intent; false means the loop must stop
func (l *Loop) Handle(in input.Intent) bool {
	l.stats.intents.Add(1)
	switch in.Type {
	case input.IntentClosed:
		return false
	case input.IntentResize:
		l.renderer.Resize(in.Width, in.Height)
		return true
	case input.IntentCommand:
		return l.apply(in.Command)
	}
	return true
}

func (l *Loop) apply(cmd input.Command) bool {
	g := l.game
	switch cmd {
	case input.CommandQuit:
		return false
	case input.CommandRestart:
		g.Restart()
		l.stats.restarts.Add(1)
		return true
	case input.CommandToggleMute:
		if l.sound != nil {
			l.renderer.SetMuted(l.sound.ToggleMute())
		}
		return true
	case input.CommandPause:
		// Time spent paused must not reach the game on resume
		g.Update(l.clock.Now())
		g.TogglePause()
		return true
	}

	if !cmd.Gameplay() || g.Paused() {
		return true
	}
	if g.Phase() == game.PhaseReady {
		if cmd == input.CommandHardDrop {
			g.Update(l.clock.Now())
			g.Start()
		}
		return true
	}
	// Bring gravity up to date so the command sees the current piece position
	g.Update(l.clock.Now())
	switch cmd {
	case input.CommandMoveLeft:
		g.MoveLeft()
	case input.CommandMoveRight:
		g.MoveRight()
	case input.CommandRotateCW:
		g.RotateCW()
	case input.CommandRotateCCW:
		g.RotateCCW()
	case input.CommandRotate180:
		g.Rotate180()
	case input.CommandSoftDrop:
		g.SoftDrop()
	case input.CommandHardDrop:
		g.HardDrop()
	case input.CommandHold:
		g.Hold()
	}
	return true
}

// Tick advances game time, dispatches pending events and redraws
func (l *Loop) Tick() {
	start := time.Now()
	l.game.Update(l.clock.Now())
	l.dispatch(l.game.DrainEvents())
	snap := l.game.Snapshot()
	l.renderer.Draw(&snap)
	l.stats.frames.Add(1)
	l.stats.maxFrame.Max(float64(time.Since(start).Microseconds()) / 1000)
}

// dispatch logs events and turns them into sound cues
func (l *Loop) dispatch(events []game.Event) {
	for i, ev := range events {
		switch ev.Kind {
		case game.EventSpawn:
			continue
		case game.EventHold:
			l.stats.holds.Add(1)
			continue
		case game.EventLock:
			l.stats.pieces.Add(1)
			log.Printf("game: %s", ev.Kind)
		case game.EventClear:
			l.stats.lines.Add(int64(ev.Lines))
			if ev.Lines >= 4 {
				l.stats.tetrises.Add(1)
			}
			log.Printf("game: cleared %d line(s) score=%d", ev.Lines, ev.Score)
		case game.EventLevelUp:
			log.Printf("game: level %d", ev.Level)
		case game.EventGameOver:
			log.Printf("game: over score=%d lines=%d", ev.Score, ev.Lines)
		case game.EventFinished:
			log.Printf("game: finished lines=%d score=%d", ev.Lines, ev.Score)
		default:
			log.Printf("game: %s", ev.Kind)
		}

		if l.sound == nil {
			continue
		}
		if cue, ok := cueFor(events, i); ok {
			l.sound.Play(cue)
		}
	}
}

// cueFor maps events[i] to its sound
// A lock directly after a hard drop or before a clear is covered by that cue
func cueFor(events []game.Event, i int) (audio.Cue, bool) {
	ev := events[i]
	switch ev.Kind {
	case game.EventLock:
		if i > 0 && events[i-1].Kind == game.EventHardDrop {
			return 0, false
		}
		if i+1 < len(events) && events[i+1].Kind == game.EventClear {
			return 0, false
		}
		return audio.CueLock, true
	case game.EventHardDrop:
		return audio.CueHardDrop, true
	case game.EventClear:
		if ev.Lines >= 4 {
			return audio.CueTetris, true
		}
		return audio.CueClear, true
	case game.EventLevelUp:
		return audio.CueLevelUp, true
	case game.EventGameOver:
		return audio.CueGameOver, true
	case game.EventFinished:
		return audio.CueFinished, true
	}
	return 0, false
}

// Stats returns the registry the loop records into
func (l *Loop) Stats() *status.Registry {
	return l.stats.registry
}

// Game returns the loop's game
func (l *Loop) Game() *game.Game {
	return l.game
}
