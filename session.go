package stitchchart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/setanarut/stitchchart/internal/logger"
	"github.com/setanarut/stitchchart/utils"
	"go.uber.org/zap"
)

// Generated is the most recent successful grid generation.
type Generated struct {
	Source    string
	Options   ReduceOptions
	Reduction *Reduction
}

// Session holds the reference table and the most recently generated grid.
// A Session is not safe for concurrent use.
type Session struct {
	refs *ReferenceTable
	log  *zap.SugaredLogger
	last *Generated
}

// NewSession returns a session using refs for legend lookups. A nil logger
// discards output.
func NewSession(refs *ReferenceTable, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{refs: refs, log: log}
}

func (s *Session) References() *ReferenceTable {
	return s.refs
}

// Generate reads and reduces the image at path. The stored grid is replaced
// only on success.
func (s *Session) Generate(path string, opts ReduceOptions) (*Generated, error) {
	start := time.Now()
	img, err := utils.ReadImage(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, errors.WithHint(errors.Wrapf(ErrInputNotFound, "%s", path), "check the image path")
	case errors.Is(err, utils.ErrUndecodable):
		return nil, errors.Mark(errors.Wrapf(err, "%s", path), ErrDecode)
	case err != nil:
		return nil, errors.Mark(errors.Wrapf(err, "read %s", path), ErrInputNotFound)
	}

	red, err := Reduce(img, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "reduce %s", path)
	}
	if red.FellBack {
		s.log.Warnw("palette method produced no colors, used median cut",
			logger.FieldFile, path, logger.FieldMethod, opts.Method.String())
	}
	s.last = &Generated{Source: path, Options: opts, Reduction: red}
	s.log.Infow("grid generated",
		logger.FieldFile, path,
		logger.FieldWidth, red.Grid.W,
		logger.FieldHeight, red.Grid.H,
		logger.FieldColors, len(red.Palette),
		"mean_delta_e", red.Stats.MeanDeltaE,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return s.last, nil
}

// Last returns the most recent generation or ErrNoGrid.
func (s *Session) Last() (*Generated, error) {
	if s.last == nil {
		return nil, errors.WithHint(ErrNoGrid, "generate a grid first")
	}
	return s.last, nil
}

// Grid returns the most recent grid or ErrNoGrid.
func (s *Session) Grid() (*Grid, error) {
	last, err := s.Last()
	if err != nil {
		return nil, err
	}
	return last.Reduction.Grid, nil
}

// ExportOptions controls Export.
type ExportOptions struct {
	// OutputDir receives every file. Empty means no location was chosen and
	// Export returns ErrSaveCancelled.
	OutputDir string
	// Name prefixes output files. Empty uses the source file name.
	Name string

	CellPx  int
	Color   bool
	Symbols bool
	// Title overrides the per-mode chart title.
	Title    string
	Typeface *Typeface
	Overflow OverflowPolicy

	Legend LegendOptions
	Layout Layout
	Tiling TileMode

	// Preview writes an enlarged PNG of the grid alongside the charts.
	Preview bool
	// Layers writes one PNG per thread color into <base>_layers.
	Layers       bool
	PreviewScale int
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		CellPx:       18,
		Color:        true,
		Symbols:      true,
		Legend:       LegendOptions{IncludeReference: true, Metric: MetricRGB},
		Layout:       DefaultLayout(),
		Tiling:       TileMulti,
		PreviewScale: 6,
	}
}

// ExportResult lists what Export wrote.
type ExportResult struct {
	Base    string
	Legend  string
	Files   []string
	Pages   map[ChartMode]int
	Palette *Palette
	Rows    []LegendRow
}

// Export writes the legend, the requested chart documents and optionally a
// preview and per-thread layers for the most recent grid. Files are named
// <name>_<w>x<h>_<k>c_legend.csv, _color.pdf, _symbols.pdf, _preview.png.
// Everything is rendered before the first file is written, and a failed
// write removes the files written before it.
func (s *Session) Export(opts ExportOptions) (*ExportResult, error) {
	last, err := s.Last()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, ErrSaveCancelled
	}
	g := last.Reduction.Grid

	p, err := IndexPalette(g, opts.Overflow)
	if err != nil {
		return nil, err
	}
	if p.Collisions > 0 {
		s.log.Warnw("symbols reused", logger.FieldColors, p.Len(), "collisions", p.Collisions)
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(last.Source), filepath.Ext(last.Source))
	}
	base := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%dx%d_%dc", name, g.W, g.H, last.Options.Colors))
	res := &ExportResult{Base: base, Pages: make(map[ChartMode]int), Palette: p}
	var files []outputFile

	res.Rows = BuildLegend(p, s.refs, opts.Legend)
	res.Legend = base + "_legend.csv"
	var buf bytes.Buffer
	if err := WriteLegend(&buf, res.Rows); err != nil {
		return nil, err
	}
	files = append(files, outputFile{res.Legend, buf.Bytes()})

	if opts.Symbols {
		s.warnMissingGlyphs(opts.Typeface, p)
	}
	for _, mode := range opts.modes() {
		path := base + "_" + mode.String() + ".pdf"
		data, n, err := s.renderChart(path, g, p, mode, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "%s chart", mode)
		}
		res.Pages[mode] = n
		files = append(files, outputFile{path, data})
	}

	if opts.Preview {
		img, err := Preview(g, opts.PreviewScale)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := utils.EncodePNG(&buf, img); err != nil {
			return nil, err
		}
		files = append(files, outputFile{base + "_preview.png", buf.Bytes()})
	}

	dirs := []string{opts.OutputDir}
	if opts.Layers {
		dir := base + "_layers"
		lf, err := layerFiles(dir, g, p, opts.PreviewScale)
		if err != nil {
			return nil, errors.Wrap(err, "thread layers")
		}
		s.log.Debugw("layers rendered", logger.FieldOutput, dir, logger.FieldCount, len(lf))
		dirs = append(dirs, dir)
		files = append(files, lf...)
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create %s", d)
		}
	}
	if err := writeAll(files); err != nil {
		return nil, err
	}
	for _, f := range files {
		res.Files = append(res.Files, f.path)
	}
	s.log.Infow("export complete", logger.FieldOutput, opts.OutputDir, logger.FieldCount, len(res.Files))
	return res, nil
}

func (o ExportOptions) modes() []ChartMode {
	var m []ChartMode
	if o.Color {
		m = append(m, ModeColor)
	}
	if o.Symbols {
		m = append(m, ModeSymbol)
	}
	return m
}

// warnMissingGlyphs logs the palette symbols the chart typeface cannot draw.
func (s *Session) warnMissingGlyphs(tf *Typeface, p *Palette) {
	face := DefaultTypeface()
	if tf != nil {
		face = *tf
	}
	var missing []string
	for _, e := range p.Entries {
		r, _ := utf8.DecodeRuneInString(e.Symbol)
		if !face.HasGlyph(r) && !slices.Contains(missing, e.Symbol) {
			missing = append(missing, e.Symbol)
		}
	}
	if len(missing) > 0 {
		s.log.Warnw("chart font has no glyph for some symbols",
			logger.FieldCount, len(missing), "symbols", strings.Join(missing, " "))
	}
}

func (s *Session) renderChart(path string, g *Grid, p *Palette, mode ChartMode, opts ExportOptions) ([]byte, int, error) {
	chart, err := RenderChart(g, p, RenderOptions{
		CellPx:   opts.CellPx,
		Mode:     mode,
		Title:    opts.Title,
		Typeface: opts.Typeface,
	})
	if err != nil {
		return nil, 0, err
	}
	pages, geom, err := Paginate(chart, opts.Layout, opts.Tiling, footerText(mode, opts))
	if err != nil {
		return nil, 0, err
	}
	var buf bytes.Buffer
	title := fmt.Sprintf("%s %s chart", filepath.Base(path), mode)
	if err := WritePDF(&buf, pages, geom, title); err != nil {
		return nil, 0, err
	}
	s.log.Debugw("chart rendered", logger.FieldFile, path, logger.FieldPages, len(pages),
		logger.FieldWidth, chart.Bounds().Dx(), logger.FieldHeight, chart.Bounds().Dy())
	return buf.Bytes(), len(pages), nil
}

// footerText describes the chart and layout, e.g.
// "Color chart - Letter, 0.25 in overlap".
func footerText(mode ChartMode, opts ExportOptions) string {
	kind := "Color"
	if mode == ModeSymbol {
		kind = "Symbols"
	}
	if opts.Tiling == TileFit {
		return fmt.Sprintf("%s chart - %s, fit to page", kind, opts.Layout.Paper.Name)
	}
	return fmt.Sprintf("%s chart - %s, %g in overlap", kind, opts.Layout.Paper.Name, opts.Layout.OverlapIn)
}

type outputFile struct {
	path string
	data []byte
}

// writeAll writes files in order. On failure the files already written are
// removed.
func writeAll(files []outputFile) error {
	for i, f := range files {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			for _, done := range files[:i] {
				_ = os.Remove(done.path)
			}
			return errors.Wrapf(err, "write %s", f.path)
		}
	}
	return nil
}
