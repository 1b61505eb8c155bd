package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tstris/game"
	"github.com/lixenwraith/tstris/terminal"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Color converts to a terminal true-color value
func (c RGB) Color() terminal.Color {
	return terminal.RGBColor(c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes src over dst in Lab space: result = src*alpha + dst*(1-alpha)
func Blend(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	r, g, b := dst.colorful().BlendLab(src.colorful(), alpha).Clamped().RGB255()
	return RGB{r, g, b}
}

// Palette (Tokyo Night)
var (
	RgbBackground = RGB{26, 27, 38}
	RgbCheckerA   = RGB{31, 33, 46}
	RgbCheckerB   = RGB{36, 39, 54}
	RgbBorder     = RGB{86, 95, 137}
	RgbText       = RGB{192, 202, 245}
	RgbLabel      = RGB{122, 162, 247}
	RgbMuted      = RGB{86, 95, 137}
	RgbAlert      = RGB{247, 118, 142}
	RgbSuccess    = RGB{158, 206, 106}
	RgbHighlight  = RGB{224, 175, 104}
)

// shapeColors indexed by game.Shape; index 0 unused
var shapeColors = [...]RGB{
	game.ShapeNone: RgbText,
	game.ShapeI:    {125, 207, 255},
	game.ShapeO:    {224, 175, 104},
	game.ShapeT:    {187, 154, 247},
	game.ShapeS:    {158, 206, 106},
	game.ShapeZ:    {247, 118, 142},
	game.ShapeJ:    {122, 162, 247},
	game.ShapeL:    {255, 158, 100},
}

// ShapeColor returns the block color of a shape
func ShapeColor(s game.Shape) RGB {
	if int(s) >= len(shapeColors) {
		return RgbText
	}
	return shapeColors[s]
}
