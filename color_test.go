package stitchchart

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#000000", Color{}.Hex())
	assert.Equal(t, "#0AFF7F", Color{10, 255, 127}.Hex())
}

func TestColorCompare(t *testing.T) {
	tests := []struct {
		a, b Color
		want int
	}{
		{Color{1, 0, 0}, Color{0, 255, 255}, 1},
		{Color{0, 1, 0}, Color{0, 2, 0}, -1},
		{Color{5, 5, 4}, Color{5, 5, 9}, -1},
		{Color{7, 7, 7}, Color{7, 7, 7}, 0},
	}
	for _, tt := range tests {
		got := tt.a.Compare(tt.b)
		switch {
		case tt.want < 0:
			assert.Negative(t, got, "%v vs %v", tt.a, tt.b)
		case tt.want > 0:
			assert.Positive(t, got, "%v vs %v", tt.a, tt.b)
		default:
			assert.Zero(t, got)
		}
	}
}

func TestColorDistance(t *testing.T) {
	assert.Equal(t, 3*255*255, Color{}.DistanceSq(Color{255, 255, 255}))
	assert.Equal(t, 0, Color{9, 8, 7}.DistanceSq(Color{9, 8, 7}))
	assert.InDelta(t, 0, Color{9, 8, 7}.DistanceLab(Color{9, 8, 7}), 1e-9)
	assert.Greater(t, Color{}.DistanceLab(Color{255, 255, 255}), 0.9)
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, Color{1, 2, 3}, ColorOf(Color{1, 2, 3}))
	assert.Equal(t, Color{200, 100, 50}, ColorOf(color.RGBA{200, 100, 50, 255}))
	assert.Equal(t, Color{200, 100, 50}, ColorOf(color.NRGBA{200, 100, 50, 255}))
	assert.Equal(t, Color{128, 128, 128}, ColorOf(color.Gray{128}))

	r, g, b, a := Color{255, 0, 1}.RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0x0101, 0xffff}, []uint32{r, g, b, a})
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#A0522D")
	require.NoError(t, err)
	assert.Equal(t, Color{160, 82, 45}, c)

	c, err = ParseHex("a0522d")
	require.NoError(t, err)
	assert.Equal(t, Color{160, 82, 45}, c)

	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}
