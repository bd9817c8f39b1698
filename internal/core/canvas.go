package core

import (
	"image"
	"image/color"
)

// Texture is an opaque image handle handed out by a texture loader.
// Key identifies the texture so platforms can cache converted copies.
type Texture interface {
	Key() string
	Image() image.Image
}

// Canvas is the drawing surface render hooks write to. All coordinates are
// display pixels; angles are radians, clockwise with +y pointing down.
type Canvas interface {
	// FillBox draws a solid rectangle centered at center with half-size half.
	// Roundness in [0, 1] rounds the corners where the platform supports it.
	FillBox(center, half Vec2, angle, roundness float64, c color.RGBA)

	// DrawTexture stretches tex over the rectangle, modulated by tint.
	DrawTexture(tex Texture, center, half Vec2, angle float64, tint color.RGBA)

	FillCircle(center Vec2, radius float64, c color.RGBA)
	StrokeCircle(center Vec2, radius, width float64, c color.RGBA)
	FillTriangle(a, b, c Vec2, col color.RGBA)
	Line(a, b Vec2, width float64, c color.RGBA)

	// Text draws a short label with its top-left corner at at.
	Text(at Vec2, s string, c color.RGBA)
}

// BoxCorners returns the four corners of a rotated box in clockwise order,
// starting top-left.
func BoxCorners(center, half Vec2, angle float64) [4]Vec2 {
	local := [4]Vec2{
		{-half.X, -half.Y},
		{half.X, -half.Y},
		{half.X, half.Y},
		{-half.X, half.Y},
	}
	var out [4]Vec2
	for i, p := range local {
		out[i] = center.Add(p.Rotate(angle))
	}
	return out
}
