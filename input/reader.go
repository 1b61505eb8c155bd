package input

import (
	"context"
	"log"

	"github.com/lixenwraith/tstris/constant"
	"github.com/lixenwraith/tstris/terminal"
)

// EventSource is the blocking half of terminal.Terminal the reader needs
type EventSource interface {
	PollEvent() terminal.Event
}

// Reader is the single producer of Intents; it never touches game state
type Reader struct {
	src     EventSource
	machine *Machine
}

// NewReader creates a reader over src decoding with kt (default bindings when nil)
func NewReader(src EventSource, kt *KeyTable) *Reader {
	m := NewMachine()
	m.SetKeyTable(kt)
	return &Reader{src: src, machine: m}
}

// Run polls events until the source closes, ctx is cancelled or reads keep failing
// The final Intent on source close or read failure is IntentClosed; out is never closed by Run
// A blocked PollEvent only observes cancellation once the source posts an event (EventInterrupt)
func (r *Reader) Run(ctx context.Context, out chan<- Intent) {
	failures := 0
	for {
		ev := r.src.PollEvent()

		select {
		case <-ctx.Done():
			return
		default:
		}

		if ev.Type == terminal.EventError {
			failures++
			log.Printf("input: read error (%d/%d): %v", failures, constant.MaxReadErrors, ev.Err)
			if failures >= constant.MaxReadErrors {
				r.send(ctx, out, Intent{Type: IntentClosed})
				return
			}
			continue
		}
		failures = 0

		if intent, ok := r.machine.Process(ev); ok {
			if !r.send(ctx, out, intent) {
				return
			}
		}
		if ev.Type == terminal.EventClosed {
			return
		}
	}
}

// send delivers in unless ctx ends first
func (r *Reader) send(ctx context.Context, out chan<- Intent, in Intent) bool {
	select {
	case out <- in:
		return true
	case <-ctx.Done():
		return false
	}
}
