package material

import (
	"hash/fnv"
	"image/color"

	"gioui.org/layout"
	"github.com/lucasb-eyer/go-colorful"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// ToNRGBA converts a colorful.Color to the nearest representable color.NRGBA.
func ToNRGBA(c colorful.Color) color.NRGBA {
	r, g, b, a := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// AuthorColor returns the color representing an author. The same name
// always maps to the same color.
func AuthorColor(name string) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := float64(h.Sum32() % 360)
	return ToNRGBA(colorful.Hcl(hue, 0.6, 0.45).Clamped())
}

// Fade scales the alpha of c by opacity.
func Fade(c color.NRGBA, opacity float32) color.NRGBA {
	switch {
	case opacity <= 0:
		c.A = 0
	case opacity < 1:
		c.A = uint8(float32(c.A) * opacity)
	}
	return c
}
