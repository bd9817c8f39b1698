package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func TestCacheMemoisesByPath(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/red.png": {Data: encodePNG(t, 8, 4, color.RGBA{255, 0, 0, 255})},
	}
	c := NewCache(fsys, nil)

	a, err := c.Load("sprites/red.png")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	b, err := c.Load("sprites/./red.png")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if a != b {
		t.Error("same path should return the same handle")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}
	if got := a.Image().Bounds().Size(); got != image.Pt(8, 4) {
		t.Errorf("size = %v, expected 8x4", got)
	}
}

func TestCacheBuiltins(t *testing.T) {
	c := NewCache(nil, nil)

	for _, name := range []string{Ground, Box} {
		tex, err := c.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", name, err)
		}
		if tex.Key() != name {
			t.Errorf("Key() = %q, expected %q", tex.Key(), name)
		}
		if tex.Size() != image.Pt(proceduralSize, proceduralSize) {
			t.Errorf("%s size = %v", name, tex.Size())
		}
	}
}

func TestCacheFileOverridesBuiltin(t *testing.T) {
	fsys := fstest.MapFS{
		Box: {Data: encodePNG(t, 2, 2, color.RGBA{0, 0, 255, 255})},
	}
	c := NewCache(fsys, nil)

	tex, err := c.Get(Box)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if tex.Size() != image.Pt(2, 2) {
		t.Errorf("expected file texture, got size %v", tex.Size())
	}
}

func TestCacheErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.png": {Data: []byte("not a png")},
	}
	c := NewCache(fsys, nil)

	if _, err := c.Load("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, expected ErrNotFound", err)
	}
	if _, err := c.Load("broken.png"); err == nil {
		t.Error("Load(broken) should fail")
	}
	if c.Len() != 0 {
		t.Errorf("failed loads should not be memoised, Len() = %d", c.Len())
	}
}

func TestThumbnailAndAverage(t *testing.T) {
	c := NewCache(fstest.MapFS{
		"green.png": {Data: encodePNG(t, 16, 16, color.RGBA{0, 200, 0, 255})},
	}, nil)
	tex, err := c.Get("green.png")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	th := tex.Thumbnail(4, 2)
	if th.Bounds().Size() != image.Pt(4, 2) {
		t.Fatalf("thumbnail size = %v", th.Bounds().Size())
	}
	if th != tex.Thumbnail(4, 2) {
		t.Error("thumbnail should be cached per size")
	}
	if got := th.RGBAAt(1, 1); got.G < 190 || got.R > 10 {
		t.Errorf("thumbnail pixel = %v, expected green", got)
	}

	if avg := tex.Average(); avg != (color.RGBA{0, 200, 0, 255}) {
		t.Errorf("Average() = %v", avg)
	}
}
