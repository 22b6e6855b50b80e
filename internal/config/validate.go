package config

import (
	"github.com/cockroachdb/errors"

	"github.com/setanarut/stitchchart"
	"github.com/setanarut/stitchchart/utils"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(stitchchart.ErrInvalidOptions, format, args...)
}

// Validate checks ranges and enumerated values.
func (c *Config) Validate() error {
	if c.Grid.LongSide <= 0 {
		return invalid("grid.long_side must be > 0, got %d", c.Grid.LongSide)
	}
	if c.Grid.Colors <= 0 || c.Grid.Colors > stitchchart.MaxColors {
		return invalid("grid.colors must be in 1..%d, got %d", stitchchart.MaxColors, c.Grid.Colors)
	}
	if c.Chart.CellPx <= 0 {
		return invalid("chart.cell_px must be > 0, got %d", c.Chart.CellPx)
	}
	if c.Page.DPI <= 0 {
		return invalid("page.dpi must be > 0, got %d", c.Page.DPI)
	}
	if c.Page.MarginIn < 0 {
		return invalid("page.margin_in must be >= 0, got %g", c.Page.MarginIn)
	}
	if c.Page.OverlapIn < 0 {
		return invalid("page.overlap_in must be >= 0, got %g", c.Page.OverlapIn)
	}
	if c.Output.PreviewScale <= 0 {
		return invalid("output.preview_scale must be > 0, got %d", c.Output.PreviewScale)
	}
	if _, err := utils.ParsePaletteMethod(c.Grid.Quantizer); err != nil {
		return errors.Wrap(err, "grid.quantizer")
	}
	if _, err := stitchchart.ParseOverflowPolicy(c.Chart.Overflow); err != nil {
		return errors.Wrap(err, "chart.overflow")
	}
	if _, err := parseMetric(c.Reference.Metric); err != nil {
		return err
	}
	if _, err := stitchchart.ParsePaper(c.Page.Paper); err != nil {
		return errors.Wrap(err, "page.paper")
	}
	if _, err := stitchchart.ParseOrientation(c.Page.Orientation); err != nil {
		return errors.Wrap(err, "page.orientation")
	}
	if _, err := stitchchart.ParseTileMode(c.Page.Tiling); err != nil {
		return errors.Wrap(err, "page.tiling")
	}
	return nil
}

func parseMetric(s string) (stitchchart.Metric, error) {
	switch m := stitchchart.Metric(s); m {
	case "", stitchchart.MetricRGB:
		return stitchchart.MetricRGB, nil
	case stitchchart.MetricLab:
		return m, nil
	}
	return "", invalid("reference.metric must be rgb or lab, got %q", s)
}

// ReduceOptions converts the grid section.
func (c *Config) ReduceOptions() (stitchchart.ReduceOptions, error) {
	method, err := utils.ParsePaletteMethod(c.Grid.Quantizer)
	if err != nil {
		return stitchchart.ReduceOptions{}, err
	}
	return stitchchart.ReduceOptions{
		LongSide:   c.Grid.LongSide,
		KeepAspect: c.Grid.KeepAspect,
		Colors:     c.Grid.Colors,
		Method:     method,
		Dither:     c.Grid.Dither,
	}, nil
}

// Layout converts the page section.
func (c *Config) Layout() (stitchchart.Layout, error) {
	paper, err := stitchchart.ParsePaper(c.Page.Paper)
	if err != nil {
		return stitchchart.Layout{}, err
	}
	orient, err := stitchchart.ParseOrientation(c.Page.Orientation)
	if err != nil {
		return stitchchart.Layout{}, err
	}
	return stitchchart.Layout{
		Paper:       paper,
		Orientation: orient,
		MarginIn:    c.Page.MarginIn,
		OverlapIn:   c.Page.OverlapIn,
		DPI:         c.Page.DPI,
	}, nil
}

// ExportOptions converts the chart, reference, page and output sections.
// The typeface is loaded separately since it touches the filesystem.
func (c *Config) ExportOptions() (stitchchart.ExportOptions, error) {
	overflow, err := stitchchart.ParseOverflowPolicy(c.Chart.Overflow)
	if err != nil {
		return stitchchart.ExportOptions{}, err
	}
	metric, err := parseMetric(c.Reference.Metric)
	if err != nil {
		return stitchchart.ExportOptions{}, err
	}
	layout, err := c.Layout()
	if err != nil {
		return stitchchart.ExportOptions{}, err
	}
	tiling, err := stitchchart.ParseTileMode(c.Page.Tiling)
	if err != nil {
		return stitchchart.ExportOptions{}, err
	}
	return stitchchart.ExportOptions{
		OutputDir: c.Output.Dir,
		Name:      c.Output.Name,
		CellPx:    c.Chart.CellPx,
		Color:     c.Chart.Color,
		Symbols:   c.Chart.Symbols,
		Title:     c.Chart.Title,
		Overflow:  overflow,
		Legend: stitchchart.LegendOptions{
			IncludeReference: c.Reference.Include,
			RegularOnly:      c.Reference.RegularOnly,
			Metric:           metric,
		},
		Layout:       layout,
		Tiling:       tiling,
		Preview:      c.Output.Preview,
		PreviewScale: c.Output.PreviewScale,
		Layers:       c.Output.Layers,
	}, nil
}
