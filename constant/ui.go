package constant

// Layout
const (
	// CellWidth is the number of terminal columns used per board cell
	CellWidth = 2

	// PanelWidth is the width of the side panels in terminal columns
	PanelWidth = 14

	// PanelGap separates panels from the board border
	PanelGap = 1

	// PreviewRows is the number of terminal rows used by one preview slot
	PreviewRows = 3
)

// Glyphs
const (
	GlyphBlock = '█'
	GlyphGhost = '▒'
)

// GhostBlend is the fraction a ghost cell color is blended toward the background
const GhostBlend = 0.6

// PauseDim is the fraction colors are blended toward the background behind an overlay
const PauseDim = 0.5
