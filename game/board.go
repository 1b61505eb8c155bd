package game

// Cell is one board square: CellEmpty or the Shape that occupies it
type Cell uint8

// CellEmpty marks an unoccupied square
const CellEmpty Cell = 0

// Occupied returns the cell value for a square filled by shape s
func Occupied(s Shape) Cell { return Cell(s) }

// IsEmpty reports whether the cell is unoccupied
func (c Cell) IsEmpty() bool { return c == CellEmpty }

// Shape returns the color tag of an occupied cell, ShapeNone when empty
func (c Cell) Shape() Shape { return Shape(c) }

// Position is a board coordinate; row 0 is the top row
type Position struct {
	Row, Col int
}

// Add returns p displaced by o
func (p Position) Add(o Offset) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Board is a fixed-size grid of cells stored row-major
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns
func (b *Board) Width() int { return b.width }

// Height returns the number of rows
func (b *Board) Height() int { return b.height }

// InBounds reports whether (row, col) lies on the grid
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// At returns the cell at (row, col); out-of-bounds reads return CellEmpty
func (b *Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return CellEmpty
	}
	return b.cells[row*b.width+col]
}

// set writes a cell; out-of-bounds writes are ignored so the bounds invariant holds
func (b *Board) set(row, col int, c Cell) {
	if !b.InBounds(row, col) {
		return
	}
	b.cells[row*b.width+col] = c
}

// CanPlace reports whether shape s in rotation r anchored at pos lies fully inside the grid
// and covers only empty cells
func (b *Board) CanPlace(s Shape, r Rotation, pos Position) bool {
	if !s.Valid() {
		return false
	}
	for _, o := range Offsets(s, r) {
		p := pos.Add(o)
		if !b.InBounds(p.Row, p.Col) {
			return false
		}
		if !b.cells[p.Row*b.width+p.Col].IsEmpty() {
			return false
		}
	}
	return true
}

// Fits is CanPlace for an ActivePiece
func (b *Board) Fits(p ActivePiece) bool {
	return b.CanPlace(p.Shape, p.Rotation, p.Anchor)
}

// Lock writes the piece's cells into the board
// Cells falling outside the grid are dropped
func (b *Board) Lock(p ActivePiece) {
	tag := Occupied(p.Shape)
	for _, c := range p.Cells() {
		b.set(c.Row, c.Col, tag)
	}
}

// rowFull reports whether every cell in row is occupied
func (b *Board) rowFull(row int) bool {
	base := row * b.width
	for col := 0; col < b.width; col++ {
		if b.cells[base+col].IsEmpty() {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes every full row, shifts the rows above each removed row
// down by one, fills the vacated top rows with empty cells and returns the number removed
func (b *Board) ClearCompletedRows() int {
	write := b.height - 1
	cleared := 0
	for read := b.height - 1; read >= 0; read-- {
		if b.rowFull(read) {
			cleared++
			continue
		}
		if read != write {
			copy(b.cells[write*b.width:(write+1)*b.width], b.cells[read*b.width:(read+1)*b.width])
		}
		write--
	}
	for row := write; row >= 0; row-- {
		clear(b.cells[row*b.width : (row+1)*b.width])
	}
	return cleared
}

// DropDistance returns how many rows p can fall before it would collide
// Returns 0 when p does not fit where it is
func (b *Board) DropDistance(p ActivePiece) int {
	if !b.Fits(p) {
		return 0
	}
	d := 0
	for b.CanPlace(p.Shape, p.Rotation, Position{Row: p.Anchor.Row + d + 1, Col: p.Anchor.Col}) {
		d++
	}
	return d
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := &Board{width: b.width, height: b.height, cells: make([]Cell, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Reset empties every cell
func (b *Board) Reset() {
	clear(b.cells)
}

// OccupiedCount returns the number of occupied cells
func (b *Board) OccupiedCount() int {
	n := 0
	for _, c := range b.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}
