package stitchchart

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/setanarut/stitchchart/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), 90, 255})
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, utils.SaveImage(img, path))
	return path
}

func smallReduce() ReduceOptions {
	o := DefaultReduceOptions()
	o.LongSide = 20
	o.Colors = 4
	return o
}

func smallExport(dir string) ExportOptions {
	o := DefaultExportOptions()
	o.OutputDir = dir
	o.CellPx = 8
	o.Layout = Layout{Paper: PaperLetter, MarginIn: 0.5, OverlapIn: 0.25, DPI: 40}
	o.Preview = true
	o.PreviewScale = 2
	return o
}

func TestSession_NoGrid(t *testing.T) {
	s := NewSession(DefaultReferenceTable(), nil)
	_, err := s.Grid()
	assert.True(t, errors.Is(err, ErrNoGrid))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = s.Export(smallExport(t.TempDir()))
	assert.True(t, errors.Is(err, ErrNoGrid))
}

func TestSession_Generate(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "photo.png", 60, 40)

	core, logs := observer.New(zap.InfoLevel)
	s := NewSession(DefaultReferenceTable(), zap.New(core).Sugar())
	gen, err := s.Generate(path, smallReduce())
	require.NoError(t, err)
	assert.Equal(t, path, gen.Source)

	g, err := s.Grid()
	require.NoError(t, err)
	assert.Equal(t, 20, g.W)
	assert.Equal(t, 13, g.H)
	assert.LessOrEqual(t, g.Distinct(), 4)
	assert.Equal(t, 1, logs.FilterMessage("grid generated").Len())
}

func TestSession_GenerateFailureKeepsGrid(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "photo.png", 30, 30)
	s := NewSession(nil, nil)
	_, err := s.Generate(path, smallReduce())
	require.NoError(t, err)
	before, _ := s.Grid()

	_, err = s.Generate(filepath.Join(dir, "missing.png"), smallReduce())
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.False(t, errors.Is(err, ErrDecode))

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = s.Generate(junk, smallReduce())
	assert.True(t, errors.Is(err, ErrDecode))

	bad := smallReduce()
	bad.Colors = 0
	_, err = s.Generate(path, bad)
	assert.True(t, errors.Is(err, ErrInvalidOptions))

	after, err := s.Grid()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestSession_Export(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "rose.png", 60, 40)
	s := NewSession(DefaultReferenceTable(), nil)
	_, err := s.Generate(path, smallReduce())
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	res, err := s.Export(smallExport(out))
	require.NoError(t, err)

	base := filepath.Join(out, "rose_20x13_4c")
	assert.Equal(t, base, res.Base)
	assert.Equal(t, []string{
		base + "_legend.csv",
		base + "_color.pdf",
		base + "_symbols.pdf",
		base + "_preview.png",
	}, res.Files)
	for _, f := range res.Files {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		assert.Positive(t, info.Size(), f)
	}
	assert.Equal(t, 1, res.Pages[ModeColor])
	assert.Equal(t, 1, res.Pages[ModeSymbol])
	assert.Len(t, res.Rows, res.Palette.Len())

	total := 0
	for _, r := range res.Rows {
		total += r.Stitches
		assert.True(t, r.HasMatch)
	}
	assert.Equal(t, 20*13, total)

	preview, err := utils.ReadImage(base + "_preview.png")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 26), preview.Bounds().Size())
}

func TestSession_ExportNameAndModes(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "rose.png", 30, 30)
	s := NewSession(DefaultReferenceTable(), nil)
	_, err := s.Generate(path, smallReduce())
	require.NoError(t, err)

	opts := smallExport(dir)
	opts.Name = "custom"
	opts.Color = false
	opts.Preview = false
	opts.Layers = true
	res, err := s.Export(opts)
	require.NoError(t, err)
	require.Len(t, res.Files, 2+res.Palette.Len())
	assert.Equal(t, []string{
		filepath.Join(dir, "custom_20x20_4c_legend.csv"),
		filepath.Join(dir, "custom_20x20_4c_symbols.pdf"),
	}, res.Files[:2])
	for _, f := range res.Files[2:] {
		assert.Equal(t, filepath.Join(dir, "custom_20x20_4c_layers"), filepath.Dir(f))
	}
}

func TestSession_ExportCancelled(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(DefaultReferenceTable(), nil)
	_, err := s.Generate(writeTestImage(t, dir, "a.png", 10, 10), smallReduce())
	require.NoError(t, err)

	_, err = s.Export(smallExport("  "))
	assert.True(t, IsCancelled(err))
	assert.False(t, IsCancelled(nil))
}

func TestFooterText(t *testing.T) {
	opts := DefaultExportOptions()
	assert.Equal(t, "Color chart - Letter, 0.25 in overlap", footerText(ModeColor, opts))
	opts.Tiling = TileFit
	opts.Layout.Paper = PaperA4
	assert.Equal(t, "Symbols chart - A4, fit to page", footerText(ModeSymbol, opts))
}

func TestSession_ExportFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(DefaultReferenceTable(), nil)
	_, err := s.Generate(writeTestImage(t, dir, "a.png", 20, 20), smallReduce())
	require.NoError(t, err)

	badCell := smallExport(filepath.Join(dir, "cell"))
	badCell.CellPx = 0
	badLayout := smallExport(filepath.Join(dir, "layout"))
	badLayout.Layout.DPI = 0

	for _, opts := range []ExportOptions{badCell, badLayout} {
		_, err := s.Export(opts)
		assert.True(t, errors.Is(err, ErrInvalidOptions))
		_, err = os.Stat(opts.OutputDir)
		assert.True(t, os.IsNotExist(err), opts.OutputDir)
	}
}

func TestSession_ExportWriteFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	s := NewSession(DefaultReferenceTable(), nil)
	_, err := s.Generate(writeTestImage(t, dir, "a.png", 20, 20), smallReduce())
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	base := filepath.Join(out, "a_20x20_4c")
	require.NoError(t, os.MkdirAll(base+"_symbols.pdf", 0o755))

	_, err = s.Export(smallExport(out))
	require.Error(t, err)
	for _, suffix := range []string{"_legend.csv", "_color.pdf", "_preview.png"} {
		_, err := os.Stat(base + suffix)
		assert.True(t, os.IsNotExist(err), suffix)
	}
}

func TestSession_ExportWarnsMissingGlyphs(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	s := NewSession(DefaultReferenceTable(), zap.New(core).Sugar())
	_, err := s.Generate(writeTestImage(t, dir, "a.png", 20, 20), smallReduce())
	require.NoError(t, err)

	opts := smallExport(dir)
	opts.Color, opts.Preview = false, false
	_, err = s.Export(opts)
	require.NoError(t, err)
	assert.Zero(t, logs.Len())

	opts.Typeface = &Typeface{}
	_, err = s.Export(opts)
	require.NoError(t, err)
	warned := logs.FilterMessage("chart font has no glyph for some symbols").All()
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].ContextMap()["symbols"], "●")
}
