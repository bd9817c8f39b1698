package factory

import "image"

type stubTexture string

func (s stubTexture) Key() string        { return string(s) }
func (s stubTexture) Image() image.Image { return image.NewRGBA(image.Rect(0, 0, 1, 1)) }
