package stitchchart

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Typeface produces sized faces for chart text. A Typeface without an
// outline font falls back to the fixed 7x13 bitmap face.
type Typeface struct {
	ttf *truetype.Font
}

var goRegular = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// DefaultTypeface is the embedded Go Regular font.
func DefaultTypeface() Typeface {
	ttf, err := goRegular()
	if err != nil {
		return Typeface{}
	}
	return Typeface{ttf: ttf}
}

// LoadTypeface parses a TrueType file.
func LoadTypeface(path string) (Typeface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Typeface{}, errors.Wrapf(err, "read font %s", path)
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return Typeface{}, errors.Wrapf(err, "parse font %s", path)
	}
	return Typeface{ttf: ttf}, nil
}

// Face returns a face of the given pixel size.
func (t Typeface) Face(size float64) font.Face {
	if t.ttf == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(t.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// HasGlyph reports whether the outline font maps r to a real glyph.
func (t Typeface) HasGlyph(r rune) bool {
	if t.ttf == nil {
		return r < utf8.RuneSelf
	}
	return t.ttf.Index(r) != 0
}

// textBox is the ink box of s relative to the drawing dot.
type textBox struct {
	minX, minY, maxX, maxY int
	estimated              bool
}

func (b textBox) width() int  { return b.maxX - b.minX }
func (b textBox) height() int { return b.maxY - b.minY }

// measure uses the face's glyph bounds when it has them and otherwise
// estimates from the nominal size: 0.6em advance per rune, cap height 0.7em.
func measure(face font.Face, s string, size float64) textBox {
	if face != nil {
		bounds, advance := font.BoundString(face, s)
		if advance > 0 && bounds.Max.X > bounds.Min.X {
			return textBox{
				minX: bounds.Min.X.Floor(),
				minY: bounds.Min.Y.Floor(),
				maxX: bounds.Max.X.Ceil(),
				maxY: bounds.Max.Y.Ceil(),
			}
		}
	}
	n := utf8.RuneCountInString(s)
	return textBox{
		maxX:      int(0.6*size*float64(n) + 0.5),
		minY:      -int(0.7*size + 0.5),
		estimated: true,
	}
}

// drawText draws s with its top-left ink corner at (x, y).
func drawText(dst draw.Image, face font.Face, size float64, s string, x, y int, c color.Color) {
	box := measure(face, s, size)
	drawAt(dst, face, s, x-box.minX, y-box.minY, c)
}

// drawCentered centers the ink box of s inside r.
func drawCentered(dst draw.Image, face font.Face, size float64, s string, r image.Rectangle, c color.Color) {
	box := measure(face, s, size)
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	dotX := cx - box.minX - box.width()/2
	dotY := cy - box.minY - box.height()/2
	drawAt(dst, face, s, dotX, dotY, c)
}

func drawAt(dst draw.Image, face font.Face, s string, dotX, dotY int, c color.Color) {
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(dotX, dotY),
	}
	d.DrawString(s)
}
