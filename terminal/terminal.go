package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when stdin is not an interactive terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Style and Color are the tcell cell attributes; aliased so callers need not import tcell
type (
	Style = tcell.Style
	Color = tcell.Color
)

// StyleDefault is the terminal's default foreground and background
var StyleDefault = tcell.StyleDefault

// Basic palette used by the renderer
const (
	ColorDefault = tcell.ColorDefault
	ColorBlack   = tcell.ColorBlack
	ColorWhite   = tcell.ColorWhite
	ColorGray    = tcell.ColorGray
	ColorDimGray = tcell.ColorDimGray
	ColorRed     = tcell.ColorRed
	ColorYellow  = tcell.ColorYellow
)

// RGBColor builds a true-color value
func RGBColor(r, g, b uint8) Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Terminal provides the screen operations the game needs
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// SetCell writes one rune; coordinates outside the screen are ignored
	SetCell(x, y int, r rune, style Style)

	// Clear blanks the back buffer
	Clear()

	// Show flushes the back buffer to the terminal
	Show()

	// Sync forces a full redraw
	Sync()

	// PollEvent blocks until next input event; EventClosed after Fini
	PollEvent() Event

	// PostInterrupt wakes a blocked PollEvent with an EventInterrupt
	PostInterrupt()
}

// savedState is the cooked-mode termios captured before raw mode, for EmergencyReset
var savedState atomic.Pointer[term.State]

// screenTerminal implements Terminal on a tcell.Screen
type screenTerminal struct {
	screen tcell.Screen
	ttyFd  int // -1 for simulations

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal bound to the process's controlling terminal
func New() (Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &screenTerminal{screen: screen, ttyFd: fd}, nil
}

func (t *screenTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		return nil
	}

	if t.ttyFd >= 0 {
		if st, err := term.GetState(t.ttyFd); err == nil {
			savedState.Store(st)
		}
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.screen.Clear()
	t.initialized = true
	return nil
}

func (t *screenTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}
	t.finalized = true
	t.screen.Fini()
	if t.ttyFd >= 0 {
		if st := savedState.Swap(nil); st != nil {
			term.Restore(t.ttyFd, st)
		}
	}
}

func (t *screenTerminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *screenTerminal) SetCell(x, y int, r rune, style Style) {
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *screenTerminal) Clear() {
	t.screen.Clear()
}

func (t *screenTerminal) Show() {
	t.screen.Show()
}

func (t *screenTerminal) Sync() {
	t.screen.Sync()
}

func (t *screenTerminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

func (t *screenTerminal) PostInterrupt() {
	t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// EmergencyReset restores the terminal after a crash without access to the Terminal
// Best-effort: writes reset sequences to w, restores the saved termios, then forces cooked mode
func EmergencyReset(w io.Writer) {
	io.WriteString(w, "\x1b[?25h")   // show cursor
	io.WriteString(w, "\x1b[?1049l") // leave alternate screen
	io.WriteString(w, "\x1b[0m")     // reset attributes
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	if st := savedState.Swap(nil); st != nil {
		if err := term.Restore(int(os.Stdin.Fd()), st); err == nil {
			return
		}
	}
	resetTerminalMode()
}
