// Package stitchchart turns raster images into needlepoint and cross-stitch
// charts: a reduced color grid, a symbol legend matched against a thread
// catalog, and printable page sequences.
package stitchchart

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB triple. Two colors are equal only when every
// channel is equal, so Color is safe to use as a map key.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. The result is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the color as an uppercase "#RRGGBB" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Compare orders colors by R, then G, then B.
func (c Color) Compare(o Color) int {
	switch {
	case c.R != o.R:
		return int(c.R) - int(o.R)
	case c.G != o.G:
		return int(c.G) - int(o.G)
	default:
		return int(c.B) - int(o.B)
	}
}

// DistanceSq is the squared Euclidean distance in RGB space.
func (c Color) DistanceSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Colorful converts to go-colorful's float representation.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// DistanceLab is the CIE76 delta-E between two colors.
func (c Color) DistanceLab(o Color) float64 {
	return c.Colorful().DistanceLab(o.Colorful())
}

// ColorOf converts any color.Color to Color, compositing nothing: alpha is
// dropped after un-premultiplying.
func ColorOf(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}
