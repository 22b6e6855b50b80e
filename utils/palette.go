package utils

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/cockroachdb/errors"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ErrEmptyPalette is returned when a method could not produce any color.
var ErrEmptyPalette = errors.New("empty palette")

type PaletteMethod int

const (
	PaletteMethodMedianCut PaletteMethod = iota
	PaletteMethodKMeans
	PaletteMethodDominantColor
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	case PaletteMethodDominantColor:
		return "dominant"
	default:
		return "median"
	}
}

// ParsePaletteMethod accepts the names produced by String.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "median":
		return PaletteMethodMedianCut, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	case "dominant":
		return PaletteMethodDominantColor, nil
	}
	return 0, errors.Newf("unknown palette method %q", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		ya, yb := luminance(a), luminance(b)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ExtractPalette picks at most k representative colors from img. An image
// with k or fewer distinct colors yields exactly those colors, most frequent
// first, whatever the method.
func ExtractPalette(img image.Image, k int, method PaletteMethod) ([]colorful.Color, error) {
	if k <= 0 {
		return nil, errors.Newf("palette size %d must be positive", k)
	}
	if p, ok := ExactPalette(img, k); ok {
		return p, nil
	}
	var p []colorful.Color
	switch method {
	case PaletteMethodKMeans:
		p = KMeansPalette(img, k)
	case PaletteMethodDominantColor:
		p = DominantPalette(img, k)
	default:
		p = MedianCutPalette(img, k)
	}
	if len(p) == 0 {
		return nil, errors.Wrapf(ErrEmptyPalette, "method %s", method)
	}
	return p, nil
}

// ExactPalette returns the distinct colors of img, alpha ignored, ordered by
// descending pixel count then ascending (R, G, B). ok is false when img is
// empty or has more than k colors.
func ExactPalette(img image.Image, k int) ([]colorful.Color, bool) {
	b := img.Bounds()
	if b.Empty() {
		return nil, false
	}
	counts := make(map[[3]uint8]int, k+1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := opaque(img.At(x, y)).(color.NRGBA)
			key := [3]uint8{n.R, n.G, n.B}
			if _, seen := counts[key]; !seen && len(counts) == k {
				return nil, false
			}
			counts[key]++
		}
	}
	keys := make([][3]uint8, 0, len(counts))
	for c := range counts {
		keys = append(keys, c)
	}
	slices.SortFunc(keys, func(a, b [3]uint8) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return slices.Compare(a[:], b[:])
	})
	out := make([]colorful.Color, len(keys))
	for i, c := range keys {
		out[i], _ = colorful.MakeColor(color.NRGBA{c[0], c[1], c[2], 0xff})
	}
	return out, true
}

// MedianCutPalette splits the color cube at channel medians until k boxes
// exist, averaging each box.
func MedianCutPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 || img.Bounds().Empty() {
		return nil
	}
	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	cp := q.Quantize(make(color.Palette, 0, k), img)
	out := make([]colorful.Color, 0, len(cp))
	for _, c := range cp {
		col, _ := colorful.MakeColor(opaque(c))
		out = append(out, col.Clamped())
	}
	return out
}

// DominantPalette draws weighted candidates from dominantcolor and keeps the
// k most mutually distinct ones.
func DominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, max(24, k*8))
	cands := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(opaque(c.RGBA))
		cands = append(cands, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return selectDiverse(cands, k)
}

// kmeansSamples caps the pixels handed to the clusterer.
const kmeansSamples = 12000

// KMeansPalette clusters a strided sample of pixels in RGB into 4k groups
// and keeps k diverse centers weighted by group size. muesli/kmeans seeds
// randomly, so two runs on the same image may differ.
func KMeansPalette(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	if k <= 0 || b.Empty() {
		return nil
	}
	stride := 1
	if n := b.Dx() * b.Dy(); n > kmeansSamples {
		stride = int(math.Ceil(math.Sqrt(float64(n) / kmeansSamples)))
	}
	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			c, _ := colorful.MakeColor(opaque(img.At(x, y)))
			obs = append(obs, clusters.Coordinates{c.R, c.G, c.B})
		}
	}

	groups, err := kmeans.New().Partition(obs, min(4*k, len(obs)))
	if err != nil {
		return nil
	}
	cands := make([]weightedColor, 0, len(groups))
	for _, g := range groups {
		if len(g.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: g.Center[0], G: g.Center[1], B: g.Center[2]}
		cands = append(cands, weightedColor{Col: col.Clamped(), Weight: float64(len(g.Observations))})
	}
	return selectDiverse(cands, k)
}

// selectDiverse starts from the heaviest candidate and repeatedly adds the
// one farthest in Lab from everything chosen, the distance scaled up to 1.45x
// for heavy candidates so large areas are not lost to rare outliers.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	k = min(k, len(cands))
	if k <= 0 {
		return nil
	}
	heaviest := 0.0
	for _, c := range cands {
		heaviest = max(heaviest, c.Weight)
	}
	bias := make([]float64, len(cands))
	for i, c := range cands {
		w := 1.0
		if heaviest > 0 {
			w = max(c.Weight, 0) / heaviest
		}
		bias[i] = 1 + 0.45*math.Sqrt(w)
	}

	// nearest[i] is the Lab distance from candidate i to the closest pick;
	// -1 marks picked candidates.
	nearest := make([]float64, len(cands))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	out := make([]colorful.Color, 0, k)
	pick := func(i int) {
		out = append(out, cands[i].Col)
		nearest[i] = -1
		for j := range cands {
			if nearest[j] >= 0 {
				nearest[j] = min(nearest[j], cands[j].Col.DistanceLab(cands[i].Col))
			}
		}
	}

	first := 0
	for i, c := range cands {
		if c.Weight > cands[first].Weight {
			first = i
		}
	}
	pick(first)
	for len(out) < k {
		best, bestScore := -1, -1.0
		for j, d := range nearest {
			if d < 0 {
				continue
			}
			if score := d * bias[j]; score > bestScore {
				best, bestScore = j, score
			}
		}
		pick(best)
	}
	return out
}

func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
