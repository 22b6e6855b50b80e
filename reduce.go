package stitchchart

import (
	"image"
	"image/color"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/esimov/colorquant"
	"github.com/setanarut/stitchchart/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxColors is the largest accepted color budget.
const MaxColors = 256

type ReduceOptions struct {
	// Stitch count along the longer side.
	LongSide int
	// When false the grid is LongSide x LongSide regardless of the source
	// aspect ratio.
	KeepAspect bool
	// Color budget K, 1..MaxColors.
	Colors int
	// Palette selection method. Median cut is closest to an adaptive
	// palette and is the default.
	Method utils.PaletteMethod
	// Dither diffuses quantization error across neighboring stitches
	// instead of snapping each stitch independently.
	Dither bool
}

func DefaultReduceOptions() ReduceOptions {
	return ReduceOptions{
		LongSide:   160,
		KeepAspect: true,
		Colors:     40,
		Method:     utils.PaletteMethodMedianCut,
	}
}

func (o ReduceOptions) Validate() error {
	if o.LongSide <= 0 {
		return invalidf("long side %d must be positive", o.LongSide)
	}
	if o.Colors <= 0 || o.Colors > MaxColors {
		return invalidf("color budget %d outside 1..%d", o.Colors, MaxColors)
	}
	return nil
}

// ReductionStats summarizes per-stitch CIE76 delta-E between the resized
// source and the reduced grid.
type ReductionStats struct {
	MeanDeltaE   float64
	StdDevDeltaE float64
	MaxDeltaE    float64
}

// Reduction is the result of Reduce.
type Reduction struct {
	Grid *Grid
	// Palette chosen at quantization time. Every grid cell is one of these.
	Palette []Color
	Method  utils.PaletteMethod
	// FellBack is set when the requested method produced no colors and
	// median cut was used instead.
	FellBack bool
	Stats    ReductionStats
}

// errorDiffusion is a Jarvis-Judice-Ninke kernel in colorquant's layout.
var errorDiffusion = colorquant.Dither{
	Filter: [][]float32{
		{0.0, 0.0, 0.0, 7.0 / 48.0, 5.0 / 48.0},
		{3.0 / 48.0, 5.0 / 48.0, 7.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0},
		{1.0 / 48.0, 3.0 / 48.0, 5.0 / 48.0, 3.0 / 48.0, 1.0 / 48.0},
	},
}

// Reduce resizes img to the grid size and then reduces it to at most
// opts.Colors colors. The order matters: resampling averages neighboring
// pixels first, and those averaged colors are what gets quantized.
func Reduce(img image.Image, opts ReduceOptions) (*Reduction, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h, err := GridSize(b.Dx(), b.Dy(), opts.LongSide, opts.KeepAspect)
	if err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	for i := 3; i < len(resized.Pix); i += 4 {
		resized.Pix[i] = 0xff
	}

	res := &Reduction{Method: opts.Method}
	cols, err := utils.ExtractPalette(resized, opts.Colors, opts.Method)
	if errors.Is(err, utils.ErrEmptyPalette) && opts.Method != utils.PaletteMethodMedianCut {
		res.FellBack = true
		res.Method = utils.PaletteMethodMedianCut
		cols, err = utils.ExtractPalette(resized, opts.Colors, utils.PaletteMethodMedianCut)
	}
	if err != nil {
		return nil, errors.Wrap(err, "palette extraction")
	}

	seen := make(map[Color]bool, len(cols))
	for _, c := range cols {
		r, g, bb := c.Clamped().RGB255()
		pc := Color{R: r, G: g, B: bb}
		if seen[pc] || len(res.Palette) == opts.Colors {
			continue
		}
		seen[pc] = true
		res.Palette = append(res.Palette, pc)
	}

	src := GridFromImage(resized)
	var mapped image.Image = resized
	if opts.Dither && len(res.Palette) > 1 {
		pal := make(color.Palette, len(res.Palette))
		for i, c := range res.Palette {
			pal[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
		}
		dst := image.NewPaletted(resized.Bounds(), pal)
		mapped = errorDiffusion.Quantize(resized, dst, len(pal), true, false)
	}

	res.Grid = snapToPalette(GridFromImage(mapped), res.Palette)
	res.Stats = reductionStats(src, res.Grid)
	return res, nil
}

// snapToPalette replaces every cell with its nearest palette color.
func snapToPalette(g *Grid, palette []Color) *Grid {
	cache := make(map[Color]Color)
	for i, c := range g.Cells {
		if m, ok := cache[c]; ok {
			g.Cells[i] = m
			continue
		}
		m := nearestColor(c, palette)
		cache[c] = m
		g.Cells[i] = m
	}
	return g
}

func nearestColor(c Color, palette []Color) Color {
	best, bestD := palette[0], c.DistanceSq(palette[0])
	for _, p := range palette[1:] {
		if d := c.DistanceSq(p); d < bestD {
			best, bestD = p, d
		}
	}
	return best
}

func reductionStats(src, dst *Grid) ReductionStats {
	if len(src.Cells) == 0 {
		return ReductionStats{}
	}
	de := make([]float64, len(src.Cells))
	for i := range src.Cells {
		de[i] = src.Cells[i].DistanceLab(dst.Cells[i])
	}
	mean, std := stat.MeanStdDev(de, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return ReductionStats{MeanDeltaE: mean, StdDevDeltaE: std, MaxDeltaE: floats.Max(de)}
}
