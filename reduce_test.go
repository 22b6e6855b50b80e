package stitchchart

import (
	"image"
	"image/color"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/stitchchart/utils"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(1, w-1)),
				G: uint8(y * 255 / max(1, h-1)),
				B: uint8((x + y) * 127 / max(1, w+h-2)),
				A: 255,
			})
		}
	}
	return img
}

func TestReduce_TwoByTwo(t *testing.T) {
	want := []Color{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {250, 250, 250}}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i, c := range want {
		img.SetNRGBA(i%2, i/2, color.NRGBA{c.R, c.G, c.B, 255})
	}

	for _, m := range []utils.PaletteMethod{utils.PaletteMethodKMeans, utils.PaletteMethodDominantColor} {
		for _, dither := range []bool{false, true} {
			for range 10 {
				red, err := Reduce(img, ReduceOptions{LongSide: 2, KeepAspect: true, Colors: 4, Method: m, Dither: dither})
				require.NoError(t, err)
				for i, c := range want {
					require.Equal(t, c, red.Grid.At(i%2, i/2), "%s dither=%v", m, dither)
				}
			}
		}
	}

	red, err := Reduce(img, ReduceOptions{LongSide: 2, KeepAspect: true, Colors: 4})
	require.NoError(t, err)
	require.Equal(t, 2, red.Grid.W)
	require.Equal(t, 2, red.Grid.H)
	for i, c := range want {
		assert.Equal(t, c, red.Grid.At(i%2, i/2))
	}
	assert.ElementsMatch(t, want, red.Palette)
	assert.InDelta(t, 0, red.Stats.MaxDeltaE, 1e-9)

	p, err := IndexPalette(red.Grid, OverflowFail)
	require.NoError(t, err)
	require.Equal(t, 4, p.Len())
	// All counts tie at 1, so entries follow (R, G, B) order.
	assert.Equal(t, []Color{{0, 0, 255}, {0, 255, 0}, {250, 250, 250}, {255, 0, 0}}, p.Colors())
	for _, e := range p.Entries {
		assert.Equal(t, 1, e.Count)
	}
}

func TestReduce_AtMostKColors(t *testing.T) {
	img := gradientImage(90, 60)
	methods := []utils.PaletteMethod{
		utils.PaletteMethodMedianCut,
		utils.PaletteMethodKMeans,
		utils.PaletteMethodDominantColor,
	}
	for _, m := range methods {
		for _, dither := range []bool{false, true} {
			for _, k := range []int{1, 2, 6, 16} {
				red, err := Reduce(img, ReduceOptions{LongSide: 30, KeepAspect: true, Colors: k, Method: m, Dither: dither})
				require.NoError(t, err, "%s k=%d", m, k)
				assert.Equal(t, 30, red.Grid.W)
				assert.Equal(t, 20, red.Grid.H)
				assert.LessOrEqual(t, red.Grid.Distinct(), k, "%s dither=%v k=%d", m, dither, k)
				assert.LessOrEqual(t, len(red.Palette), k)

				inPalette := make(map[Color]bool)
				for _, c := range red.Palette {
					inPalette[c] = true
				}
				for _, c := range red.Grid.Cells {
					require.True(t, inPalette[c], "cell %v not in palette", c)
				}
			}
		}
	}
}

func TestReduce_ForcedSquare(t *testing.T) {
	red, err := Reduce(gradientImage(40, 10), ReduceOptions{LongSide: 12, Colors: 3})
	require.NoError(t, err)
	assert.Equal(t, 12, red.Grid.W)
	assert.Equal(t, 12, red.Grid.H)
}

func TestReduce_Stats(t *testing.T) {
	red, err := Reduce(gradientImage(64, 64), ReduceOptions{LongSide: 32, KeepAspect: true, Colors: 2})
	require.NoError(t, err)
	assert.Greater(t, red.Stats.MeanDeltaE, 0.0)
	assert.GreaterOrEqual(t, red.Stats.MaxDeltaE, red.Stats.MeanDeltaE)
	assert.GreaterOrEqual(t, red.Stats.StdDevDeltaE, 0.0)
}

func TestReduce_InvalidOptions(t *testing.T) {
	img := gradientImage(4, 4)
	for _, o := range []ReduceOptions{
		{LongSide: 0, Colors: 4},
		{LongSide: 4, Colors: 0},
		{LongSide: 4, Colors: MaxColors + 1},
	} {
		_, err := Reduce(img, o)
		assert.True(t, errors.Is(err, ErrInvalidOptions), "%+v", o)
	}
}
