package stitchchart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/setanarut/stitchchart/utils"
)

// ThreadLayers returns one stitch-sized image per palette entry, in palette
// order. A layer is opaque in the entry's color where the grid uses it and
// transparent elsewhere.
func ThreadLayers(g *Grid, p *Palette) ([]*image.NRGBA, error) {
	if g == nil || g.W == 0 || g.H == 0 {
		return nil, errors.Wrap(ErrNoGrid, "layers")
	}
	out := make([]*image.NRGBA, p.Len())
	for i := range out {
		out[i] = image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	}
	for y := range g.H {
		for x := range g.W {
			c := g.At(x, y)
			i := p.Index(c)
			if i < 0 {
				return nil, errors.AssertionFailedf("color %s at (%d,%d) missing from palette", c, x, y)
			}
			out[i].SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return out, nil
}

// LayerMasks reduces layers to their coverage: 255 where stitched, 0 where not.
func LayerMasks(layers []*image.NRGBA) []*image.Gray {
	out := make([]*image.Gray, len(layers))
	for i, l := range layers {
		b := l.Bounds()
		m := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				m.SetGray(x, y, color.Gray{Y: l.NRGBAAt(x, y).A})
			}
		}
		out[i] = m
	}
	return out
}

// Reconstruct composites layers bottom to top over white. Thread layers of
// one grid never overlap, so the result equals the grid image.
func Reconstruct(layers []*image.NRGBA) *image.RGBA {
	if len(layers) == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	b := layers[0].Bounds()
	out := image.NewRGBA(b)
	fill(out, b, color.White)
	for _, l := range layers {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := l.NRGBAAt(x, y)
				if c.A == 0 {
					continue
				}
				a := float64(c.A) / 255
				d := out.RGBAAt(x, y)
				out.SetRGBA(x, y, color.RGBA{
					R: blend(c.R, d.R, a),
					G: blend(c.G, d.G, a),
					B: blend(c.B, d.B, a),
					A: 0xff,
				})
			}
		}
	}
	return out
}

func blend(src, dst uint8, a float64) uint8 {
	return uint8(max(0, min(255, a*float64(src)+(1-a)*float64(dst)+0.5)))
}

// layerFiles encodes each thread layer enlarged by scale, to be written under
// dir as <index>_u<symbol code point>_<hex>.png. The layers are checked
// against the grid first: each mask must cover exactly the entry's stitches
// and the composite must reproduce the grid.
func layerFiles(dir string, g *Grid, p *Palette, scale int) ([]outputFile, error) {
	layers, err := ThreadLayers(g, p)
	if err != nil {
		return nil, err
	}
	if err := checkLayers(g, p, layers); err != nil {
		return nil, err
	}
	scale = max(scale, 1)
	files := make([]outputFile, 0, len(layers))
	for i, l := range layers {
		e := p.Entries[i]
		name := fmt.Sprintf("%02d_u%04X_%s.png", i+1, []rune(e.Symbol)[0], e.Color.Hex()[1:])
		var buf bytes.Buffer
		if err := utils.EncodePNG(&buf, utils.Enlarge(l, scale)); err != nil {
			return nil, errors.Wrapf(err, "layer %s", name)
		}
		files = append(files, outputFile{path: filepath.Join(dir, name), data: buf.Bytes()})
	}
	return files, nil
}

func checkLayers(g *Grid, p *Palette, layers []*image.NRGBA) error {
	for i, m := range LayerMasks(layers) {
		n := 0
		for _, v := range m.Pix {
			if v != 0 {
				n++
			}
		}
		if n != p.Entries[i].Count {
			return errors.AssertionFailedf("layer %d covers %d stitches, palette counts %d", i, n, p.Entries[i].Count)
		}
	}
	if !bytes.Equal(Reconstruct(layers).Pix, g.Image().Pix) {
		return errors.AssertionFailedf("thread layers do not reproduce the grid")
	}
	return nil
}
