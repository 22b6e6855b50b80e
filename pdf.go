package stitchchart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-pdf/fpdf"
	"github.com/setanarut/stitchchart/utils"
)

// WritePDF writes pages as a document, one image per page, each filling a
// sheet of the geometry's physical size.
func WritePDF(w io.Writer, pages []Page, geom PageGeometry, title string) error {
	if len(pages) == 0 {
		return invalidf("no pages to write")
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: geom.WidthIn, Ht: geom.HeightIn},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("stitchchart", true)
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	if title != "" {
		doc.SetTitle(title, true)
	}

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	var buf bytes.Buffer
	for _, p := range pages {
		buf.Reset()
		if err := utils.EncodePNG(&buf, p.Image); err != nil {
			return errors.Wrapf(err, "encode page %d", p.Number)
		}
		name := fmt.Sprintf("page-%d", p.Number)
		doc.RegisterImageOptionsReader(name, opt, &buf)
		doc.AddPage()
		doc.ImageOptions(name, 0, 0, geom.WidthIn, geom.HeightIn, false, opt, 0, "")
		if doc.Err() {
			return errors.Wrapf(doc.Error(), "page %d", p.Number)
		}
	}
	return errors.Wrap(doc.Output(w), "write pdf")
}

// PreviewGuideColor is drawn every LandmarkInterval stitches in previews.
var PreviewGuideColor = color.NRGBA{0, 0, 0, 255}

// Preview enlarges the grid scale times with nearest-neighbor sampling and
// overlays a 1px guide line every LandmarkInterval stitches.
func Preview(g *Grid, scale int) (*image.NRGBA, error) {
	if g == nil || g.W == 0 || g.H == 0 {
		return nil, errors.Wrap(ErrNoGrid, "preview")
	}
	if scale <= 0 {
		return nil, invalidf("preview scale %d must be positive", scale)
	}
	out := utils.Enlarge(g.Image(), scale)
	b := out.Bounds()
	for x := LandmarkInterval; x < g.W; x += LandmarkInterval {
		fill(out, image.Rect(x*scale, 0, x*scale+1, b.Dy()), PreviewGuideColor)
	}
	for y := LandmarkInterval; y < g.H; y += LandmarkInterval {
		fill(out, image.Rect(0, y*scale, b.Dx(), y*scale+1), PreviewGuideColor)
	}
	return out, nil
}
