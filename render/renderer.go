// Package render draws game snapshots onto a terminal
package render

import (
	"fmt"
	"time"

	"github.com/lixenwraith/tstris/constant"
	"github.com/lixenwraith/tstris/game"
	"github.com/lixenwraith/tstris/terminal"
)

// Renderer is a read-only consumer of game.Snapshot
type Renderer struct {
	term  terminal.Terminal
	buf   *Buffer
	muted bool
}

// NewRenderer creates a renderer sized to the terminal
func NewRenderer(term terminal.Terminal) *Renderer {
	w, h := term.Size()
	return &Renderer{term: term, buf: NewBuffer(w, h)}
}

// SetMuted toggles the sound-off indicator
func (r *Renderer) SetMuted(muted bool) {
	r.muted = muted
}

// Resize reallocates the frame buffer and forces a full repaint on the next Draw
func (r *Renderer) Resize(w, h int) {
	r.buf.Resize(w, h)
	r.term.Clear()
	r.term.Sync()
}

// Draw composes and shows one frame
func (r *Renderer) Draw(s *game.Snapshot) {
	w, h := r.term.Size()
	if bw, bh := r.buf.Size(); bw != w || bh != h {
		r.buf.Resize(w, h)
	} else {
		r.buf.Clear()
	}

	l := ComputeLayout(w, h, s.Width, s.Height)
	if !l.Fits {
		r.drawTooSmall(w, h, l)
	} else {
		r.drawBoard(s, l)
		r.drawHoldPanel(s, l)
		r.drawNextPanel(s, l)
		r.drawOverlay(s, l)
	}
	r.buf.Flush(r.term)
}

func (r *Renderer) drawTooSmall(w, h int, l Layout) {
	y := h/2 - 1
	r.buf.TextCentered(w/2, y, "terminal too small", RgbAlert)
	r.buf.TextCentered(w/2, y+1, fmt.Sprintf("need %dx%d, have %dx%d", l.NeedW, l.NeedH, w, h), RgbMuted)
}

func (r *Renderer) drawBoard(s *game.Snapshot, l Layout) {
	b := r.buf
	right := l.BoardX + l.BoardW - 1
	bottom := l.BoardY + l.BoardH - 1

	b.Set(l.BoardX, l.BoardY, '┌', RgbBorder, RgbBackground)
	b.Set(right, l.BoardY, '┐', RgbBorder, RgbBackground)
	b.Set(l.BoardX, bottom, '└', RgbBorder, RgbBackground)
	b.Set(right, bottom, '┘', RgbBorder, RgbBackground)
	for x := l.BoardX + 1; x < right; x++ {
		b.Set(x, l.BoardY, '─', RgbBorder, RgbBackground)
		b.Set(x, bottom, '─', RgbBorder, RgbBackground)
	}
	for y := l.BoardY + 1; y < bottom; y++ {
		b.Set(l.BoardX, y, '│', RgbBorder, RgbBackground)
		b.Set(right, y, '│', RgbBorder, RgbBackground)
	}

	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			bg := RgbCheckerA
			if (row+col)%2 == 1 {
				bg = RgbCheckerB
			}
			cell := s.At(row, col)
			if cell.IsEmpty() {
				r.setCell(l, row, col, ' ', RgbText, bg)
				continue
			}
			r.setCell(l, row, col, constant.GlyphBlock, ShapeColor(cell.Shape()), bg)
		}
	}

	if s.HasGhost {
		ghost := Blend(ShapeColor(s.Ghost.Shape), RgbBackground, constant.GhostBlend)
		for _, p := range s.Ghost.Cells() {
			bg := b.At(l.CellX(p.Col), l.CellY(p.Row)).Bg
			r.setCell(l, p.Row, p.Col, constant.GlyphGhost, ghost, bg)
		}
	}
	if s.HasActive {
		color := ShapeColor(s.Active.Shape)
		for _, p := range s.Active.Cells() {
			if p.Row < 0 || p.Row >= s.Height || p.Col < 0 || p.Col >= s.Width {
				continue
			}
			bg := b.At(l.CellX(p.Col), l.CellY(p.Row)).Bg
			r.setCell(l, p.Row, p.Col, constant.GlyphBlock, color, bg)
		}
	}
}

// setCell paints both terminal columns of a board cell
func (r *Renderer) setCell(l Layout, row, col int, glyph rune, fg, bg RGB) {
	x, y := l.CellX(col), l.CellY(row)
	for i := 0; i < constant.CellWidth; i++ {
		r.buf.Set(x+i, y, glyph, fg, bg)
	}
}

// drawMini draws shape s in spawn rotation with its top row at y
func (r *Renderer) drawMini(x, y int, s game.Shape, color RGB) {
	if !s.Valid() {
		return
	}
	offsets := game.Offsets(s, 0)
	minRow := offsets[0].Row
	for _, o := range offsets {
		minRow = min(minRow, o.Row)
	}
	for _, o := range offsets {
		cx := x + o.Col*constant.CellWidth
		for i := 0; i < constant.CellWidth; i++ {
			r.buf.SetFg(cx+i, y+o.Row-minRow, constant.GlyphBlock, color)
		}
	}
}

func (r *Renderer) drawHoldPanel(s *game.Snapshot, l Layout) {
	x, y := l.LeftX+1, l.BoardY+1

	r.buf.Text(x, y, "HOLD", RgbLabel)
	holdColor := ShapeColor(s.Hold)
	if !s.CanHold {
		holdColor = RgbMuted
	}
	r.drawMini(x, y+1, s.Hold, holdColor)
	y += 1 + constant.PreviewRows

	stat := func(label, value string) {
		r.buf.Text(x, y, label, RgbLabel)
		r.buf.Text(x, y+1, value, RgbText)
		y += 3
	}
	stat("SCORE", fmt.Sprintf("%d", s.Score))
	stat("LEVEL", fmt.Sprintf("%d", s.Level))
	if s.Goal > 0 {
		stat("LINES", fmt.Sprintf("%d/%d", s.Lines, s.Goal))
	} else {
		stat("LINES", fmt.Sprintf("%d", s.Lines))
	}
	stat("TIME", FormatElapsed(s.Elapsed))

	if r.muted {
		r.buf.Text(x, l.BoardY+l.BoardH-2, "sound off", RgbMuted)
	}
}

func (r *Renderer) drawNextPanel(s *game.Snapshot, l Layout) {
	x, y := l.RightX+1, l.BoardY+1
	bottom := l.BoardY + l.BoardH - 1

	r.buf.Text(x, y, "NEXT", RgbLabel)
	y++
	for i, shape := range s.Next {
		if y+constant.PreviewRows-1 > bottom {
			break
		}
		color := ShapeColor(shape)
		if i > 0 {
			color = Blend(color, RgbBackground, 0.35)
		}
		r.drawMini(x, y, shape, color)
		y += constant.PreviewRows
	}
}

func (r *Renderer) drawOverlay(s *game.Snapshot, l Layout) {
	var title, hint string
	titleColor := RgbHighlight

	switch {
	case s.Phase == game.PhaseGameOver:
		title, hint = "GAME OVER", "r restart  q quit"
		titleColor = RgbAlert
	case s.Phase == game.PhaseFinished:
		title, hint = "FINISHED", FormatElapsed(s.Elapsed)
		titleColor = RgbSuccess
	case s.Paused:
		title, hint = "PAUSED", "p resume"
	case s.Phase == game.PhaseReady:
		title, hint = "READY", "space to start"
	case s.Phase == game.PhaseCountdown:
		title = fmt.Sprintf("%d", s.Countdown)
		if s.Countdown <= 0 {
			title = "GO"
		}
	default:
		return
	}

	r.buf.Dim(l.BoardX+1, l.BoardY+1, l.BoardW-2, l.BoardH-2, constant.PauseDim)
	cx, cy := l.CenterX(), l.CenterY()
	r.buf.TextCentered(cx, cy-1, title, titleColor)
	if hint != "" {
		r.buf.TextCentered(cx, cy+1, hint, RgbText)
	}
}

// FormatElapsed renders a play clock as m:ss.t
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}
