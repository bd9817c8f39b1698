package core

import (
	"fmt"
	"image/color"
)

// Named colors used by the sandbox. Values follow the usual game palette
// so levels written against it look the same on every platform.
var (
	ColorWhite    = color.RGBA{255, 255, 255, 255}
	ColorBlack    = color.RGBA{0, 0, 0, 255}
	ColorRed      = color.RGBA{230, 41, 55, 255}
	ColorOrange   = color.RGBA{255, 161, 0, 255}
	ColorYellow   = color.RGBA{253, 249, 0, 255}
	ColorGreen    = color.RGBA{0, 228, 48, 255}
	ColorSkyBlue  = color.RGBA{102, 191, 255, 255}
	ColorGray     = color.RGBA{130, 130, 130, 255}
	ColorDarkGray = color.RGBA{80, 80, 80, 255}
	ColorLime     = color.RGBA{0, 158, 47, 255}
)

// Hex formats a color as #rrggbb, dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale multiplies the RGB channels by f, clamped to [0, 255].
func Scale(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(ClampF(float64(v)*f, 0, 255))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}

// Modulate multiplies two colors channel by channel, as a tint does.
func Modulate(a, b color.RGBA) color.RGBA {
	mul := func(x, y uint8) uint8 {
		return uint8(uint16(x) * uint16(y) / 255)
	}
	return color.RGBA{mul(a.R, b.R), mul(a.G, b.G), mul(a.B, b.B), mul(a.A, b.A)}
}
