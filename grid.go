package stitchchart

import (
	"image"
	"image/color"
	"math"
)

// Grid is a row-major array of stitch colors.
type Grid struct {
	W, H  int
	Cells []Color // len = W*H
}

// NewGrid returns a w*h grid filled with the zero color.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Cells: make([]Color, w*h)}
}

// GridFromImage copies every pixel of img into a grid, one cell per pixel.
func GridFromImage(img image.Image) *Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := range g.H {
		for x := range g.W {
			g.Cells[y*g.W+x] = ColorOf(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return g
}

func (g *Grid) At(x, y int) Color {
	return g.Cells[y*g.W+x]
}

func (g *Grid) Set(x, y int, c Color) {
	g.Cells[y*g.W+x] = c
}

// Distinct returns the number of distinct colors in the grid.
func (g *Grid) Distinct() int {
	seen := make(map[Color]struct{})
	for _, c := range g.Cells {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// Image renders the grid one pixel per cell.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for y := range g.H {
		for x := range g.W {
			c := g.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// GridSize computes the stitch dimensions for a w*h source. With keepAspect
// the longer side becomes longSide and the shorter side is scaled and
// rounded, never below 1. Without it the grid is forced square.
func GridSize(w, h, longSide int, keepAspect bool) (int, int, error) {
	if w <= 0 || h <= 0 {
		return 0, 0, invalidf("source size %dx%d", w, h)
	}
	if longSide <= 0 {
		return 0, 0, invalidf("long side %d must be positive", longSide)
	}
	if !keepAspect {
		return longSide, longSide, nil
	}
	if w >= h {
		return longSide, scaleSide(h, w, longSide), nil
	}
	return scaleSide(w, h, longSide), longSide, nil
}

func scaleSide(short, long, target int) int {
	v := int(math.Round(float64(short) * float64(target) / float64(long)))
	return max(1, v)
}
