package game

// ActivePiece is the falling piece: a shape, its rotation and the anchor of its rotation box
type ActivePiece struct {
	Shape    Shape
	Rotation Rotation
	Anchor   Position
}

// SpawnPiece places shape s at the top-center of a board width columns wide
func SpawnPiece(s Shape, width int) ActivePiece {
	return ActivePiece{
		Shape:  s,
		Anchor: Position{Row: 0, Col: (width - 4) / 2},
	}
}

// Cells returns the absolute board coordinates the piece covers
func (p ActivePiece) Cells() [4]Position {
	var out [4]Position
	for i, o := range Offsets(p.Shape, p.Rotation) {
		out[i] = p.Anchor.Add(o)
	}
	return out
}

// Moved returns a copy displaced by (dRow, dCol)
func (p ActivePiece) Moved(dRow, dCol int) ActivePiece {
	p.Anchor.Row += dRow
	p.Anchor.Col += dCol
	return p
}

// Rotated returns a copy with rotation r
func (p ActivePiece) Rotated(r Rotation) ActivePiece {
	p.Rotation = r
	return p
}
