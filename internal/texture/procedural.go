package texture

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// Names of the built-in textures used when a level names none.
const (
	Ground = "ground.png"
	Box    = "box.png"
)

const proceduralSize = 64

// procedural returns the generated image for a built-in name.
func procedural(name string) (image.Image, bool) {
	switch name {
	case Ground:
		return generate(1, func(x, y int, rng *rand.Rand) color.RGBA {
			// Grass strip over packed dirt.
			if y < 10 {
				v := 120.0 + rng.Float64()*20 - 10
				return color.RGBA{uint8(v * 0.45), uint8(v * 1.2), uint8(v * 0.35), 255}
			}
			base := 120.0
			noise := rng.Float64()*20 - 10
			grain := 5.0 * math.Sin(float64(x)*0.8+float64(y)*0.3)
			v := base + noise + grain
			return color.RGBA{uint8(v * 1.05), uint8(v * 0.82), uint8(v * 0.55), 255}
		}), true
	case Box:
		return generate(2, func(x, y int, rng *rand.Rand) color.RGBA {
			base := 150.0
			edge := x < 4 || y < 4 || x >= proceduralSize-4 || y >= proceduralSize-4
			diag := x-y < 3 && y-x < 3
			if edge || diag {
				return color.RGBA{uint8(base * 0.55), uint8(base * 0.4), uint8(base * 0.2), 255}
			}
			plank := 3.0 * math.Sin(float64(y)*0.9)
			v := base + rng.Float64()*8 - 4 + plank
			return color.RGBA{uint8(v * 1.0), uint8(v * 0.78), uint8(v * 0.45), 255}
		}), true
	default:
		return nil, false
	}
}

func generate(seed int64, colorFn func(x, y int, rng *rand.Rand) color.RGBA) image.Image {
	rng := rand.New(rand.NewSource(seed * 12345))
	img := image.NewRGBA(image.Rect(0, 0, proceduralSize, proceduralSize))
	for y := 0; y < proceduralSize; y++ {
		for x := 0; x < proceduralSize; x++ {
			img.SetRGBA(x, y, colorFn(x, y, rng))
		}
	}
	return img
}
