package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/tstris/terminal"
)

// wideTail marks the second column of a double-width rune
const wideTail rune = -1

// Cell is one composited screen position
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

var emptyCell = Cell{Rune: ' ', Fg: RgbText, Bg: RgbBackground}

// Buffer is a full-screen compositor flushed to the terminal once per frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to the background using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y), the empty cell outside the buffer
func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// Set writes a cell with explicit fg and bg colors
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg}
}

// SetFg writes rune and foreground while preserving the existing background
func (b *Buffer) SetFg(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	c.Rune = r
	c.Fg = fg
}

// Text writes s from (x, y) keeping backgrounds and returns the display width written
// Double-width runes take two columns; zero-width runes are dropped
func (b *Buffer) Text(x, y int, s string, fg RGB) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetFg(x, y, r, fg)
		if w == 2 {
			b.SetFg(x+1, y, wideTail, fg)
		}
		x += w
	}
	return x - start
}

// TextCentered writes s centered on column cx
func (b *Buffer) TextCentered(cx, y int, s string, fg RGB) {
	b.Text(cx-runewidth.StringWidth(s)/2, y, s, fg)
}

// Dim blends every color in a rectangle toward the background
func (b *Buffer) Dim(x, y, w, h int, amount float64) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if !b.inBounds(col, row) {
				continue
			}
			c := &b.cells[row*b.width+col]
			c.Fg = Blend(c.Fg, RgbBackground, amount)
			c.Bg = Blend(c.Bg, RgbBackground, amount)
		}
	}
}

// Flush writes the buffer to the terminal and shows it
func (b *Buffer) Flush(term terminal.Terminal) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			if c.Rune == wideTail {
				continue
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := terminal.StyleDefault.Foreground(c.Fg.Color()).Background(c.Bg.Color())
			term.SetCell(x, y, r, style)
		}
	}
	term.Show()
}
