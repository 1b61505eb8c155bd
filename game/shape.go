package game

// Shape identifies one of the seven tetrominoes
// Zero is reserved so a Shape doubles as the color tag of an occupied Cell
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeI
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// ShapeCount is the number of playable shapes
const ShapeCount = 7

// Shapes lists the playable shapes in table order
var Shapes = [ShapeCount]Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}

var shapeNames = [...]string{"none", "I", "O", "T", "S", "Z", "J", "L"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "invalid"
}

// Valid reports whether s is one of the seven playable shapes
func (s Shape) Valid() bool {
	return s >= ShapeI && s <= ShapeL
}

// Rotation is a clockwise quarter-turn index in [0,3]
type Rotation uint8

const RotationCount = 4

// CW returns the next clockwise rotation
func (r Rotation) CW() Rotation { return (r + 1) % RotationCount }

// CCW returns the next counter-clockwise rotation
func (r Rotation) CCW() Rotation { return (r + RotationCount - 1) % RotationCount }

// Flip returns the rotation turned by 180 degrees
func (r Rotation) Flip() Rotation { return (r + 2) % RotationCount }

// Offset is a (row, col) displacement from a piece anchor; rows grow downward
type Offset struct {
	Row, Col int
}

// rotationTable holds the occupied offsets for every shape and rotation inside a 4x4 box
// Indexed by [Shape-1][Rotation]
var rotationTable = [ShapeCount][RotationCount][4]Offset{
	// I
	{
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	// O
	{
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
	},
	// T
	{
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	// S
	{
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	// Z
	{
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	// J
	{
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
	// L
	{
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
}

// boxSize is the edge of the rotation box each shape turns in
var boxSize = [ShapeCount]int{4, 4, 3, 3, 3, 3, 3}

// Offsets returns the four occupied offsets of shape s in rotation r
// Invalid shapes yield the zero array; callers validate before use
func Offsets(s Shape, r Rotation) [4]Offset {
	if !s.Valid() {
		return [4]Offset{}
	}
	return rotationTable[s-1][r%RotationCount]
}

// BoxSize returns the rotation box edge for shape s
func BoxSize(s Shape) int {
	if !s.Valid() {
		return 0
	}
	return boxSize[s-1]
}

// Kick tables: anchor nudges tried in order after a blocked rotation
var (
	kicksI       = []Offset{{0, 1}, {0, -1}, {0, 2}, {0, -2}, {-1, 0}}
	kicksDefault = []Offset{{0, 1}, {0, -1}, {-1, 0}, {-1, 1}, {-1, -1}}
)

func kicksFor(s Shape) []Offset {
	if s == ShapeI {
		return kicksI
	}
	return kicksDefault
}
