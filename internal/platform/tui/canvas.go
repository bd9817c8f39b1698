package tui

import (
	"image"
	"image/color"
	"math"

	"github.com/vovakirdan/hookshot/internal/core"
)

// Half-block glyphs. Every terminal cell holds two vertically stacked
// subpixels.
const (
	glyphFull  = '█'
	glyphUpper = '▀'
	glyphLower = '▄'
)

// thumbnailer is implemented by textures that can hand out a pre-scaled
// copy of themselves.
type thumbnailer interface {
	Thumbnail(w, h int) *image.RGBA
}

type label struct {
	col, row int
	text     string
	fg       color.RGBA
}

// CellCanvas rasterizes display-pixel drawing calls onto a grid of
// half-block subpixels and flushes them into a core.Screen.
type CellCanvas struct {
	cols, rows   int
	viewW, viewH float64

	px     []color.RGBA // cols × 2·rows, zero alpha is empty
	labels []label
}

// NewCellCanvas creates a canvas that maps a viewW×viewH display onto
// cols×rows terminal cells.
func NewCellCanvas(cols, rows int, viewW, viewH float64) *CellCanvas {
	c := &CellCanvas{viewW: viewW, viewH: viewH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell grid and clears the canvas.
func (c *CellCanvas) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
	c.px = make([]color.RGBA, c.cols*c.rows*2)
	c.labels = c.labels[:0]
}

// Reset clears every subpixel and label.
func (c *CellCanvas) Reset() {
	clear(c.px)
	c.labels = c.labels[:0]
}

// Cols returns the width in cells.
func (c *CellCanvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *CellCanvas) Rows() int { return c.rows }

// At returns the subpixel at column i, subpixel row j.
func (c *CellCanvas) At(i, j int) color.RGBA {
	if i < 0 || j < 0 || i >= c.cols || j >= c.rows*2 {
		return color.RGBA{}
	}
	return c.px[j*c.cols+i]
}

// ToDisplay maps a terminal cell to the display pixel at its center.
func (c *CellCanvas) ToDisplay(col, row int) core.Vec2 {
	return core.V(
		(float64(col)+0.5)*c.viewW/float64(c.cols),
		(float64(row)+0.5)*c.viewH/float64(c.rows),
	)
}

func (c *CellCanvas) subW() float64 { return c.viewW / float64(c.cols) }
func (c *CellCanvas) subH() float64 { return c.viewH / float64(c.rows*2) }

// center returns the display position of subpixel (i, j).
func (c *CellCanvas) center(i, j int) core.Vec2 {
	return core.V((float64(i)+0.5)*c.subW(), (float64(j)+0.5)*c.subH())
}

// sub returns the subpixel containing display point p.
func (c *CellCanvas) sub(p core.Vec2) (int, int) {
	return int(math.Floor(p.X / c.subW())), int(math.Floor(p.Y / c.subH()))
}

// span returns the clamped subpixel range covering [lo, hi].
func (c *CellCanvas) span(lo, hi core.Vec2) (i0, j0, i1, j1 int) {
	i0, j0 = c.sub(lo)
	i1, j1 = c.sub(hi)
	return max(i0, 0), max(j0, 0), min(i1, c.cols-1), min(j1, c.rows*2-1)
}

func (c *CellCanvas) plot(i, j int, col color.RGBA) {
	if col.A == 0 || i < 0 || j < 0 || i >= c.cols || j >= c.rows*2 {
		return
	}
	idx := j*c.cols + i
	if col.A == 255 || c.px[idx].A == 0 {
		c.px[idx] = col
		return
	}
	dst := c.px[idx]
	a := float64(col.A) / 255
	mix := func(s, d uint8) uint8 { return uint8(float64(s)*a + float64(d)*(1-a)) }
	c.px[idx] = color.RGBA{mix(col.R, dst.R), mix(col.G, dst.G), mix(col.B, dst.B), 255}
}

// plotAt marks the subpixel under p, so shapes smaller than a subpixel
// stay visible.
func (c *CellCanvas) plotAt(p core.Vec2, col color.RGBA) {
	i, j := c.sub(p)
	c.plot(i, j, col)
}

func bounds(pts ...core.Vec2) (lo, hi core.Vec2) {
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

func cross(a, b, p core.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// insideConvex reports whether p lies in the convex polygon pts, in
// either winding.
func insideConvex(p core.Vec2, pts []core.Vec2) bool {
	var pos, neg bool
	for k := range pts {
		d := cross(pts[k], pts[(k+1)%len(pts)], p)
		pos = pos || d > 0
		neg = neg || d < 0
		if pos && neg {
			return false
		}
	}
	return true
}

func (c *CellCanvas) fillConvex(pts []core.Vec2, col color.RGBA, shade func(core.Vec2) color.RGBA) {
	lo, hi := bounds(pts...)
	i0, j0, i1, j1 := c.span(lo, hi)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			p := c.center(i, j)
			if !insideConvex(p, pts) {
				continue
			}
			if shade != nil {
				c.plot(i, j, shade(p))
			} else {
				c.plot(i, j, col)
			}
		}
	}
}

// FillBox draws a solid rotated rectangle. Roundness is ignored at cell
// resolution.
func (c *CellCanvas) FillBox(center, half core.Vec2, angle, _ float64, col color.RGBA) {
	pts := core.BoxCorners(center, half, angle)
	c.fillConvex(pts[:], col, nil)
	c.plotAt(center, col)
}

// DrawTexture samples tex over the rotated rectangle, modulated by tint.
func (c *CellCanvas) DrawTexture(tex core.Texture, center, half core.Vec2, angle float64, tint color.RGBA) {
	if tex == nil || tex.Image() == nil {
		c.FillBox(center, half, angle, 0, tint)
		return
	}

	w := max(int(math.Ceil(2*half.X/c.subW())), 1)
	h := max(int(math.Ceil(2*half.Y/c.subH())), 1)
	var img image.Image = tex.Image()
	if t, ok := tex.(thumbnailer); ok {
		img = t.Thumbnail(w, h)
	}
	b := img.Bounds()

	sample := func(p core.Vec2) color.RGBA {
		local := p.Sub(center).Rotate(-angle)
		u := core.ClampF((local.X+half.X)/(2*half.X), 0, 0.999999)
		v := core.ClampF((local.Y+half.Y)/(2*half.Y), 0, 0.999999)
		x := b.Min.X + int(u*float64(b.Dx()))
		y := b.Min.Y + int(v*float64(b.Dy()))
		px := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		return core.Modulate(px, tint)
	}

	pts := core.BoxCorners(center, half, angle)
	c.fillConvex(pts[:], tint, sample)
	c.plotAt(center, sample(center))
}

// FillCircle draws a solid disc.
func (c *CellCanvas) FillCircle(center core.Vec2, radius float64, col color.RGBA) {
	r := core.V(radius, radius)
	i0, j0, i1, j1 := c.span(center.Sub(r), center.Add(r))
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			if c.center(i, j).Sub(center).Len() <= radius {
				c.plot(i, j, col)
			}
		}
	}
	c.plotAt(center, col)
}

// StrokeCircle draws a ring at least one subpixel wide.
func (c *CellCanvas) StrokeCircle(center core.Vec2, radius, width float64, col color.RGBA) {
	tol := math.Max(width/2, math.Max(c.subW(), c.subH())/2)
	r := core.V(radius+tol, radius+tol)
	i0, j0, i1, j1 := c.span(center.Sub(r), center.Add(r))
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			if math.Abs(c.center(i, j).Sub(center).Len()-radius) <= tol {
				c.plot(i, j, col)
			}
		}
	}
}

// FillTriangle draws a solid triangle.
func (c *CellCanvas) FillTriangle(a, b, p core.Vec2, col color.RGBA) {
	c.fillConvex([]core.Vec2{a, b, p}, col, nil)
}

// Line draws a one-subpixel line from a to b. Width is ignored at cell
// resolution.
func (c *CellCanvas) Line(a, b core.Vec2, _ float64, col color.RGBA) {
	ai, aj := c.sub(a)
	bi, bj := c.sub(b)
	steps := max(abs(bi-ai), abs(bj-aj), 1)
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		c.plotAt(a.Add(b.Sub(a).Scale(t)), col)
	}
}

// Text places a label at the cell containing at. Labels are drawn over
// the subpixels when the canvas is flushed.
func (c *CellCanvas) Text(at core.Vec2, s string, col color.RGBA) {
	c.labels = append(c.labels, label{
		col:  int(at.X * float64(c.cols) / c.viewW),
		row:  int(at.Y * float64(c.rows) / c.viewH),
		text: s,
		fg:   col,
	})
}

// Flush writes the canvas into the top rows of dst.
func (c *CellCanvas) Flush(dst *core.Screen) {
	for y := 0; y < c.rows && y < dst.Height(); y++ {
		for x := 0; x < c.cols && x < dst.Width(); x++ {
			dst.SetCell(x, y, halfBlock(c.At(x, 2*y), c.At(x, 2*y+1)))
		}
	}
	for _, l := range c.labels {
		x := l.col
		for _, r := range l.text {
			bg := dst.GetCell(x, l.row).Bg
			dst.SetCell(x, l.row, core.Cell{Rune: r, Fg: l.fg, Bg: bg})
			x++
		}
	}
}

func halfBlock(top, bottom color.RGBA) core.Cell {
	switch {
	case top.A == 0 && bottom.A == 0:
		return core.Cell{Rune: ' '}
	case top == bottom:
		return core.Cell{Rune: glyphFull, Fg: top}
	case top.A == 0:
		return core.Cell{Rune: glyphLower, Fg: bottom}
	case bottom.A == 0:
		return core.Cell{Rune: glyphUpper, Fg: top}
	default:
		return core.Cell{Rune: glyphUpper, Fg: top, Bg: bottom}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var _ core.Canvas = (*CellCanvas)(nil)
