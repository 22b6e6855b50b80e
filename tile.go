package stitchchart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
)

// PaperSize is a physical sheet size in inches, portrait.
type PaperSize struct {
	Name     string
	WidthIn  float64
	HeightIn float64
}

var (
	PaperLetter = PaperSize{"Letter", 8.5, 11}
	PaperLegal  = PaperSize{"Legal", 8.5, 14}
	PaperA4     = PaperSize{"A4", 8.27, 11.69}
	PaperA3     = PaperSize{"A3", 11.69, 16.54}
)

// ParsePaper looks up a named paper size, case-insensitively.
func ParsePaper(name string) (PaperSize, error) {
	for _, p := range []PaperSize{PaperLetter, PaperLegal, PaperA4, PaperA3} {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return PaperSize{}, invalidf("unknown paper size %q", name)
}

type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	// AutoOrientation picks landscape when the chart is at least as wide as
	// it is tall.
	AutoOrientation
)

func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "", "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	case "auto":
		return AutoOrientation, nil
	}
	return 0, invalidf("unknown orientation %q", s)
}

// TileMode selects how a chart is laid out on pages.
type TileMode int

const (
	// TileMulti crops the chart into page-sized tiles at full resolution.
	TileMulti TileMode = iota
	// TileFit scales the whole chart down onto a single page.
	TileFit
)

func ParseTileMode(s string) (TileMode, error) {
	switch strings.ToLower(s) {
	case "", "tile":
		return TileMulti, nil
	case "fit":
		return TileFit, nil
	}
	return 0, invalidf("unknown tiling mode %q", s)
}

// Layout is the physical page setup.
type Layout struct {
	Paper       PaperSize
	Orientation Orientation
	MarginIn    float64
	// OverlapIn is the strip shared by adjacent tiles.
	OverlapIn float64
	DPI       int
}

func DefaultLayout() Layout {
	return Layout{
		Paper:       PaperLetter,
		Orientation: Portrait,
		MarginIn:    0.5,
		OverlapIn:   0.25,
		DPI:         300,
	}
}

// PageGeometry is a Layout resolved to pixels for one chart.
type PageGeometry struct {
	PageW, PageH int
	Margin       int
	Overlap      int
	// Physical page size after orientation, for document export.
	WidthIn, HeightIn float64
}

const minPagePx = 3

// Geometry converts the layout to pixels. chart is the chart size and is
// only consulted for AutoOrientation.
func (l Layout) Geometry(chart image.Point) (PageGeometry, error) {
	if l.DPI <= 0 {
		return PageGeometry{}, invalidf("dpi %d must be positive", l.DPI)
	}
	if l.Paper.WidthIn <= 0 || l.Paper.HeightIn <= 0 {
		return PageGeometry{}, invalidf("paper %gx%g in", l.Paper.WidthIn, l.Paper.HeightIn)
	}
	if l.MarginIn < 0 || l.OverlapIn < 0 {
		return PageGeometry{}, invalidf("negative margin or overlap")
	}
	wIn, hIn := l.Paper.WidthIn, l.Paper.HeightIn
	landscape := l.Orientation == Landscape ||
		(l.Orientation == AutoOrientation && chart.Y > 0 && chart.X >= chart.Y)
	if landscape {
		wIn, hIn = max(wIn, hIn), min(wIn, hIn)
	} else {
		wIn, hIn = min(wIn, hIn), max(wIn, hIn)
	}
	g := PageGeometry{
		PageW:    int(wIn * float64(l.DPI)),
		PageH:    int(hIn * float64(l.DPI)),
		Margin:   int(l.MarginIn * float64(l.DPI)),
		Overlap:  int(l.OverlapIn * float64(l.DPI)),
		WidthIn:  wIn,
		HeightIn: hIn,
	}
	if g.PageW < minPagePx || g.PageH < minPagePx {
		return PageGeometry{}, invalidf("page %dx%d px too small", g.PageW, g.PageH)
	}
	return g, nil
}

// Usable is the printable area inside the margins. When the margins leave
// no room the whole page is usable.
func (g PageGeometry) Usable() image.Rectangle {
	r := image.Rect(g.Margin, g.Margin, g.PageW-g.Margin, g.PageH-g.Margin)
	if g.Margin < 0 || r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rect(0, 0, g.PageW, g.PageH)
	}
	return r
}

// effectiveOverlap keeps the tiling step positive.
func (g PageGeometry) effectiveOverlap() int {
	u := g.Usable()
	return max(0, min(g.Overlap, u.Dx()-1, u.Dy()-1))
}

// Page is one printable sheet.
type Page struct {
	Number   int
	Row, Col int
	Image    *image.NRGBA
	// Source is the region of the chart shown on this page, in chart
	// coordinates. For a fitted page it is the whole chart.
	Source image.Rectangle
	// Content is where that region sits on the page.
	Content image.Rectangle
}

type span struct{ start, end int }

// spans covers [0, total) with windows of size, each starting overlap
// before the previous one ended.
func spans(total, size, overlap int) []span {
	var out []span
	start := 0
	for {
		end := min(start+size, total)
		out = append(out, span{start, end})
		if end >= total {
			return out
		}
		start = end - overlap
	}
}

// TilePages crops chart into usable-area tiles and places each on its own
// page, row-major. A chart smaller than one usable area yields one page.
func TilePages(chart image.Image, g PageGeometry, footer string) []Page {
	b := chart.Bounds()
	u := g.Usable()
	ov := g.effectiveOverlap()
	rows := spans(b.Dy(), u.Dy(), ov)
	cols := spans(b.Dx(), u.Dx(), ov)

	pages := make([]Page, 0, len(rows)*len(cols))
	for ri, ry := range rows {
		for ci, cx := range cols {
			src := image.Rect(cx.start, ry.start, cx.end, ry.end).Add(b.Min)
			tile := imaging.Crop(chart, src)
			content := image.Rectangle{Min: u.Min, Max: u.Min.Add(tile.Bounds().Size())}
			n := len(pages) + 1
			pages = append(pages, Page{
				Number:  n,
				Row:     ri,
				Col:     ci,
				Image:   composePage(g, tile, content, n, footer),
				Source:  src,
				Content: content,
			})
		}
	}
	return pages
}

// fitShrink keeps a fitted chart clear of the usable-area edges.
const fitShrink = 0.95

// FitPage scales chart down, never up, to fit one page's usable area and
// centers it. The content box never touches the page edge.
func FitPage(chart image.Image, g PageGeometry, footer string) Page {
	b := chart.Bounds()
	u := g.Usable()
	cw, ch := b.Dx(), b.Dy()
	scale := min(float64(u.Dx())/float64(cw), float64(u.Dy())/float64(ch), 1.0) * fitShrink
	nw := min(max(1, int(float64(cw)*scale)), g.PageW-2)
	nh := min(max(1, int(float64(ch)*scale)), g.PageH-2)

	scaled := imaging.Resize(chart, nw, nh, imaging.Lanczos)
	x0 := (g.PageW - nw) / 2
	y0 := (g.PageH - nh) / 2
	content := image.Rect(x0, y0, x0+nw, y0+nh)
	return Page{
		Number:  1,
		Image:   composePage(g, scaled, content, 1, footer),
		Source:  b,
		Content: content,
	}
}

// Paginate lays chart out according to mode and layout.
func Paginate(chart image.Image, l Layout, mode TileMode, footer string) ([]Page, PageGeometry, error) {
	g, err := l.Geometry(chart.Bounds().Size())
	if err != nil {
		return nil, PageGeometry{}, err
	}
	if mode == TileFit {
		return []Page{FitPage(chart, g, footer)}, g, nil
	}
	return TilePages(chart, g, footer), g, nil
}

var borderColor = color.NRGBA{0, 0, 0, 255}

func composePage(g PageGeometry, content image.Image, at image.Rectangle, n int, footer string) *image.NRGBA {
	page := imaging.New(g.PageW, g.PageH, color.White)
	page = imaging.Paste(page, content, at.Min)
	strokeRect(page, at.Inset(-2), 2, borderColor)

	text := fmt.Sprintf("Page %d", n)
	if footer != "" {
		text += "  " + footer
	}
	face := DefaultTypeface().Face(labelSize)
	box := measure(face, text, labelSize)
	y := at.Max.Y + 6
	if g.Margin > 0 && g.Margin > box.height()+8 {
		y = g.PageH - g.Margin + (g.Margin-box.height())/2
	}
	y = min(y, g.PageH-box.height()-1)
	x := max(g.Usable().Min.X, 1)
	drawText(page, face, labelSize, text, x, y, inkColor)
	return page
}

// strokeRect outlines r with lines of width w, clipped to dst.
func strokeRect(dst draw.Image, r image.Rectangle, w int, c color.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}
