package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Simulation is an in-memory Terminal for tests
type Simulation struct {
	*screenTerminal
	sim tcell.SimulationScreen
}

// NewSimulation creates and initializes an in-memory terminal of the given size
func NewSimulation(width, height int) (*Simulation, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s := &Simulation{
		screenTerminal: &screenTerminal{screen: sim, ttyFd: -1},
		sim:            sim,
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	sim.SetSize(width, height)
	return s, nil
}

// InjectKey queues a key event as if typed
func (s *Simulation) InjectKey(k Key, r rune) {
	switch k {
	case KeyRune, KeySpace:
		if k == KeySpace {
			r = ' '
		}
		s.sim.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	default:
		if tk, ok := toTcellKey[k]; ok {
			s.sim.InjectKey(tk, 0, tcell.ModNone)
		}
	}
}

// Resize changes the simulated screen size and posts a resize event
func (s *Simulation) Resize(width, height int) {
	s.sim.SetSize(width, height)
	s.sim.PostEvent(tcell.NewEventResize(width, height))
}

// CellAt returns the rune and style last shown at (x, y)
func (s *Simulation) CellAt(x, y int) (rune, Style) {
	cells, w, h := s.sim.GetContents()
	if x < 0 || y < 0 || x >= w || y >= h {
		return ' ', StyleDefault
	}
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

// Row returns the shown text of row y with trailing spaces trimmed
func (s *Simulation) Row(y int) string {
	cells, w, h := s.sim.GetContents()
	if y < 0 || y >= h {
		return ""
	}
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

// Screen returns all shown rows joined by newlines
func (s *Simulation) Screen() string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
