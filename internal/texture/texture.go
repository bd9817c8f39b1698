// Package texture loads and memoises sprite images by path.
package texture

import (
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Texture is a decoded image with its lookup key.
type Texture struct {
	key string
	img image.Image

	mu     sync.Mutex
	thumbs map[image.Point]*image.RGBA
	avg    *color.RGBA
}

// New wraps an already decoded image.
func New(key string, img image.Image) *Texture {
	return &Texture{key: key, img: img}
}

// Key returns the path the texture was loaded from.
func (t *Texture) Key() string { return t.key }

// Image returns the decoded image.
func (t *Texture) Image() image.Image { return t.img }

// Size returns the image size in pixels.
func (t *Texture) Size() image.Point { return t.img.Bounds().Size() }

// Thumbnail returns the image scaled to w×h. Results are cached per size.
func (t *Texture) Thumbnail(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	size := image.Pt(w, h)
	if th, ok := t.thumbs[size]; ok {
		return th
	}
	if t.thumbs == nil {
		t.thumbs = make(map[image.Point]*image.RGBA)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler := xdraw.Interpolator(xdraw.CatmullRom)
	if w*h < 64 {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), t.img, t.img.Bounds(), xdraw.Src, nil)
	t.thumbs[size] = dst
	return dst
}

// Average returns the mean colour of the image.
func (t *Texture) Average() color.RGBA {
	t.mu.Lock()
	if t.avg != nil {
		c := *t.avg
		t.mu.Unlock()
		return c
	}
	t.mu.Unlock()

	b := t.img.Bounds()
	var r, g, bl, a, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(t.img.At(x, y)).(color.RGBA)
			r += uint64(c.R)
			g += uint64(c.G)
			bl += uint64(c.B)
			a += uint64(c.A)
			n++
		}
	}

	avg := color.RGBA{}
	if n > 0 {
		avg = color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), uint8(a / n)}
	}

	t.mu.Lock()
	t.avg = &avg
	t.mu.Unlock()
	return avg
}
