// Package window provides the desktop platform for the sandbox on top of
// ebiten: frame timing, key and mouse edges, texture upload and vector
// drawing.
package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/hookshot/internal/core"
)

// Canvas draws onto an ebiten image in display pixels.
type Canvas struct {
	dst    *ebiten.Image
	white  *ebiten.Image
	images map[string]*ebiten.Image
}

// NewCanvas creates a canvas with an empty texture cache.
func NewCanvas() *Canvas {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Canvas{
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		images: make(map[string]*ebiten.Image),
	}
}

// Target sets the image the next drawing calls write to.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

// image returns the GPU copy of tex, uploading it on first use.
func (c *Canvas) image(tex core.Texture) *ebiten.Image {
	if img, ok := c.images[tex.Key()]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(tex.Image())
	c.images[tex.Key()] = img
	return img
}

// fillPolygon draws a convex polygon as a triangle fan.
func (c *Canvas) fillPolygon(pts []core.Vec2, col color.RGBA) {
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	vs := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r * a, ColorG: g * a, ColorB: b * a, ColorA: a,
		}
	}
	is := make([]uint16, 0, 3*(len(pts)-2))
	for i := 1; i+1 < len(pts); i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	c.dst.DrawTriangles(vs, is, c.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// FillBox draws a solid rotated rectangle. Roundness is only honoured for
// axis-aligned boxes.
func (c *Canvas) FillBox(center, half core.Vec2, angle, roundness float64, col color.RGBA) {
	if roundness > 0 && angle == 0 {
		c.fillRounded(center, half, roundness, col)
		return
	}
	pts := core.BoxCorners(center, half, angle)
	c.fillPolygon(pts[:], col)
}

func (c *Canvas) fillRounded(center, half core.Vec2, roundness float64, col color.RGBA) {
	r := core.ClampF(roundness, 0, 1) * min(half.X, half.Y)
	x0, y0 := float32(center.X-half.X), float32(center.Y-half.Y)
	w, h := float32(2*half.X), float32(2*half.Y)
	rr := float32(r)

	var path vector.Path
	path.MoveTo(x0+rr, y0)
	path.LineTo(x0+w-rr, y0)
	path.ArcTo(x0+w, y0, x0+w, y0+rr, rr)
	path.LineTo(x0+w, y0+h-rr)
	path.ArcTo(x0+w, y0+h, x0+w-rr, y0+h, rr)
	path.LineTo(x0+rr, y0+h)
	path.ArcTo(x0, y0+h, x0, y0+h-rr, rr)
	path.LineTo(x0, y0+rr)
	path.ArcTo(x0, y0, x0+rr, y0, rr)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = cr*ca, cg*ca, cb*ca, ca
	}
	c.dst.DrawTriangles(vs, is, c.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// DrawTexture stretches tex over the rotated rectangle, modulated by tint.
func (c *Canvas) DrawTexture(tex core.Texture, center, half core.Vec2, angle float64, tint color.RGBA) {
	if tex == nil || tex.Image() == nil {
		c.FillBox(center, half, angle, 0, tint)
		return
	}
	img := c.image(tex)
	b := img.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*half.X/float64(b.Dx()), 2*half.Y/float64(b.Dy()))
	op.GeoM.Translate(-half.X, -half.Y)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleWithColor(tint)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(img, op)
}

// FillCircle draws a solid disc.
func (c *Canvas) FillCircle(center core.Vec2, radius float64, col color.RGBA) {
	vector.DrawFilledCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), col, true)
}

// StrokeCircle draws a ring.
func (c *Canvas) StrokeCircle(center core.Vec2, radius, width float64, col color.RGBA) {
	vector.StrokeCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), float32(width), col, true)
}

// FillTriangle draws a solid triangle.
func (c *Canvas) FillTriangle(a, b, p core.Vec2, col color.RGBA) {
	c.fillPolygon([]core.Vec2{a, b, p}, col)
}

// Line draws a segment of the given width.
func (c *Canvas) Line(a, b core.Vec2, width float64, col color.RGBA) {
	vector.StrokeLine(c.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), col, true)
}

// Text prints a label with the debug font. The font has a fixed color.
func (c *Canvas) Text(at core.Vec2, s string, _ color.RGBA) {
	ebitenutil.DebugPrintAt(c.dst, s, int(at.X), int(at.Y))
}

var _ core.Canvas = (*Canvas)(nil)
