package utils

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stripes.png")
	require.NoError(t, SaveImage(bands(12, 5, stripes...), path))

	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 5), img.Bounds())
}

func TestReadImage_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadImage(filepath.Join(dir, "nope.png"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ReadImage(dir)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	junk := filepath.Join(dir, "junk.jpg")
	require.NoError(t, os.WriteFile(junk, []byte("garbage"), 0o644))
	_, err = ReadImage(junk)
	assert.True(t, errors.Is(err, ErrUndecodable))
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestPaletteStrip(t *testing.T) {
	p := []colorful.Color{{R: 1}, {G: 1}, {B: 1}}
	img := PaletteStrip(p, 8)
	assert.Equal(t, image.Rect(0, 0, 24, 8), img.Bounds())
	assert.Equal(t, uint8(255), img.NRGBAAt(3, 3).R)
	assert.Equal(t, uint8(255), img.NRGBAAt(11, 3).G)
	assert.Equal(t, uint8(255), img.NRGBAAt(23, 7).B)
}

func TestSavePalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.png")
	require.NoError(t, SavePalette([]colorful.Color{{R: 1}}, 0, path))
	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	err = SavePalette(nil, 8, path)
	assert.True(t, errors.Is(err, ErrEmptyPalette))
}
