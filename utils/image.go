package utils

import (
	"image"
	"image/color"
	"io"
	"os"

	// Decoders beyond imaging's defaults.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrUndecodable wraps decoder failures so callers can tell a bad file from a
// missing one.
var ErrUndecodable = errors.New("undecodable image")

// ReadImage opens and decodes an image, applying EXIF orientation. A missing
// path yields an error satisfying errors.Is(err, os.ErrNotExist).
func ReadImage(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(os.ErrNotExist, "%s is a directory", path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(ErrUndecodable, "%s: %v", path, err)
	}
	return img, nil
}

// SaveImage writes img to filename; the format follows the extension.
func SaveImage(img image.Image, filename string) error {
	if err := imaging.Save(img, filename); err != nil {
		return errors.Wrapf(err, "save %s", filename)
	}
	return nil
}

// SavePalette writes a horizontal strip of tileSize squares, one per color.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return ErrEmptyPalette
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	return SaveImage(PaletteStrip(palette, tileSize), filename)
}

// PaletteStrip renders palette as adjacent tileSize squares.
func PaletteStrip(palette []colorful.Color, tileSize int) *image.NRGBA {
	img := imaging.New(tileSize*len(palette), tileSize, color.White)
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		swatch := imaging.New(tileSize, tileSize, color.NRGBA{R: r, G: g, B: b, A: 255})
		img = imaging.Paste(img, swatch, image.Pt(i*tileSize, 0))
	}
	return img
}

// Enlarge scales img up by an integer factor with nearest-neighbor sampling.
func Enlarge(img image.Image, scale int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(imaging.Encode(w, img, imaging.PNG), "encode png")
}
