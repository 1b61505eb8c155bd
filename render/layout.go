package render

import "github.com/lixenwraith/tstris/constant"

// Layout positions the board and panels on a screen
type Layout struct {
	// Board border top-left corner
	BoardX, BoardY int
	// Board border outer size
	BoardW, BoardH int

	LeftX  int
	RightX int

	// Minimum screen size for the full layout
	NeedW, NeedH int
	Fits         bool
}

// ComputeLayout centers a cols x rows board with side panels on a w x h screen
func ComputeLayout(w, h, cols, rows int) Layout {
	l := Layout{
		BoardW: cols*constant.CellWidth + 2,
		BoardH: rows + 2,
	}
	l.NeedW = 2*(constant.PanelWidth+constant.PanelGap) + l.BoardW
	l.NeedH = l.BoardH
	l.Fits = w >= l.NeedW && h >= l.NeedH

	originX := max((w-l.NeedW)/2, 0)
	l.LeftX = originX
	l.BoardX = originX + constant.PanelWidth + constant.PanelGap
	l.BoardY = max((h-l.NeedH)/2, 0)
	l.RightX = l.BoardX + l.BoardW + constant.PanelGap
	return l
}

// CellX returns the screen column of board column col
func (l Layout) CellX(col int) int {
	return l.BoardX + 1 + col*constant.CellWidth
}

// CellY returns the screen row of board row row
func (l Layout) CellY(row int) int {
	return l.BoardY + 1 + row
}

// CenterX returns the screen column at the middle of the board
func (l Layout) CenterX() int {
	return l.BoardX + l.BoardW/2
}

// CenterY returns the screen row at the middle of the board
func (l Layout) CenterY() int {
	return l.BoardY + l.BoardH/2
}
