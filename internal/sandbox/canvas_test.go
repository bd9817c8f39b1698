package sandbox

import (
	"image/color"

	"github.com/vovakirdan/hookshot/internal/core"
)

type countCanvas struct {
	calls int
	text  int
}

func (c *countCanvas) FillBox(_, _ core.Vec2, _, _ float64, _ color.RGBA) { c.calls++ }
func (c *countCanvas) DrawTexture(core.Texture, core.Vec2, core.Vec2, float64, color.RGBA) {
	c.calls++
}
func (c *countCanvas) FillCircle(core.Vec2, float64, color.RGBA)            { c.calls++ }
func (c *countCanvas) StrokeCircle(core.Vec2, float64, float64, color.RGBA) { c.calls++ }
func (c *countCanvas) FillTriangle(_, _, _ core.Vec2, _ color.RGBA)         { c.calls++ }
func (c *countCanvas) Line(_, _ core.Vec2, _ float64, _ color.RGBA)         { c.calls++ }
func (c *countCanvas) Text(core.Vec2, string, color.RGBA)                   { c.calls++; c.text++ }
