package stitchchart

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/cockroachdb/errors"
	"golang.org/x/image/font"
)

// LandmarkInterval is the spacing, in stitches, of bold separators and
// coordinate labels.
const LandmarkInterval = 10

const (
	chartBorder    = 40
	chartTitleBand = 28
	labelSize      = 14.0
	titleSize      = 20.0
)

var (
	inkColor        = color.RGBA{0, 0, 0, 255}
	paperColor      = color.RGBA{255, 255, 255, 255}
	symbolCellColor = color.RGBA{252, 252, 252, 255}
)

type ChartMode int

const (
	// ModeColor fills each cell with its stitch color.
	ModeColor ChartMode = iota
	// ModeSymbol draws the palette glyph on a neutral cell.
	ModeSymbol
)

func (m ChartMode) String() string {
	if m == ModeSymbol {
		return "symbols"
	}
	return "color"
}

type RenderOptions struct {
	// Pixels per stitch.
	CellPx int
	Mode   ChartMode
	// Title drawn above the grid. Empty uses a per-mode default; NoTitle
	// suppresses it.
	Title   string
	NoTitle bool
	// Nil uses DefaultTypeface.
	Typeface *Typeface
}

func (o RenderOptions) title() string {
	switch {
	case o.NoTitle:
		return ""
	case o.Title != "":
		return o.Title
	case o.Mode == ModeSymbol:
		return "Needlepoint Pattern - Symbols (B/W)"
	default:
		return "Needlepoint Pattern - Color"
	}
}

// ChartSize is the pixel size RenderChart produces for a w*h grid.
func ChartSize(w, h, cellPx int) image.Point {
	return image.Pt(w*cellPx+2*chartBorder, h*cellPx+2*chartBorder+chartTitleBand)
}

// GridOrigin is the top-left pixel of stitch (0, 0) in a rendered chart.
func GridOrigin() image.Point {
	return image.Pt(chartBorder, chartBorder+chartTitleBand)
}

// RenderChart draws the grid as a color or symbol chart with a gridline at
// every stitch boundary, a bold line and a coordinate label every
// LandmarkInterval stitches. Symbol mode requires p to contain every grid
// color.
func RenderChart(g *Grid, p *Palette, opts RenderOptions) (*image.RGBA, error) {
	if opts.CellPx <= 0 {
		return nil, invalidf("cell size %d must be positive", opts.CellPx)
	}
	if g == nil || g.W == 0 || g.H == 0 {
		return nil, errors.Wrap(ErrNoGrid, "render")
	}
	if opts.Mode == ModeSymbol && p == nil {
		return nil, invalidf("symbol chart needs a palette")
	}
	tf := DefaultTypeface()
	if opts.Typeface != nil {
		tf = *opts.Typeface
	}

	c := opts.CellPx
	size := ChartSize(g.W, g.H, c)
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	fill(out, out.Bounds(), paperColor)
	origin := GridOrigin()

	var symFace fontFace
	if opts.Mode == ModeSymbol {
		symSize := symbolSize(c)
		symFace = fontFace{tf.Face(symSize), symSize}
	}

	for y := range g.H {
		for x := range g.W {
			cell := image.Rect(0, 0, c, c).Add(origin).Add(image.Pt(x*c, y*c))
			col := g.At(x, y)
			switch opts.Mode {
			case ModeSymbol:
				sym, ok := p.Symbol(col)
				if !ok {
					return nil, errors.AssertionFailedf("stitch (%d,%d) color %s missing from palette", x, y, col)
				}
				fill(out, cell, symbolCellColor)
				drawCentered(out, symFace.face, symFace.size, sym, cell, inkColor)
			default:
				fill(out, cell, color.RGBA{R: col.R, G: col.G, B: col.B, A: 255})
			}
		}
	}

	drawGridlines(out, origin, g.W, g.H, c)

	label := fontFace{tf.Face(labelSize), labelSize}
	for x := 0; x <= g.W; x += LandmarkInterval {
		xg := origin.X + x*c
		drawText(out, label.face, label.size, strconv.Itoa(x), xg+2, origin.Y-18, inkColor)
	}
	for y := 0; y <= g.H; y += LandmarkInterval {
		yg := origin.Y + y*c
		drawText(out, label.face, label.size, strconv.Itoa(y), origin.X-28, yg-10, inkColor)
	}

	if t := opts.title(); t != "" {
		drawText(out, tf.Face(titleSize), titleSize, t, chartBorder, 8, inkColor)
	}
	return out, nil
}

type fontFace struct {
	face font.Face
	size float64
}

// drawGridlines draws a 1px line on every stitch boundary and a 2px line on
// every LandmarkInterval-th one, including the outer frame.
func drawGridlines(dst *image.RGBA, origin image.Point, w, h, c int) {
	chartW, chartH := w*c, h*c
	for x := 0; x <= w; x++ {
		lw := lineWidth(x)
		xg := origin.X + x*c - lw/2
		fill(dst, image.Rect(xg, origin.Y, xg+lw, origin.Y+chartH+1), inkColor)
	}
	for y := 0; y <= h; y++ {
		lw := lineWidth(y)
		yg := origin.Y + y*c - lw/2
		fill(dst, image.Rect(origin.X, yg, origin.X+chartW+1, yg+lw), inkColor)
	}
}

func lineWidth(i int) int {
	if i%LandmarkInterval == 0 {
		return 2
	}
	return 1
}

// minSymbolSize keeps symbols legible on small cells; they may overhang.
const minSymbolSize = 12.0

// symbolSize is the glyph size for a cell, 80% of its side.
func symbolSize(cellPx int) float64 {
	return max(minSymbolSize, float64(cellPx)*0.8)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}
