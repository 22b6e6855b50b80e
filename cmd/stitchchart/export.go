package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/stitchchart"
	"github.com/setanarut/stitchchart/internal/config"
	"github.com/setanarut/stitchchart/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export <image>",
	Short: "Write the legend and chart PDFs for an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, gen, err := generate(cfg, args[0])
		if err != nil {
			return err
		}
		opts, err := exportOptions(cfg)
		if err != nil {
			return err
		}
		res, err := s.Export(opts)
		if stitchchart.IsCancelled(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "export cancelled: no output directory")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		g := gen.Reduction.Grid
		fmt.Fprintf(out, "grid %dx%d, %d colors (%s), mean delta-E %.2f\n",
			g.W, g.H, res.Palette.Len(), gen.Reduction.Method, gen.Reduction.Stats.MeanDeltaE)
		for _, mode := range []stitchchart.ChartMode{stitchchart.ModeColor, stitchchart.ModeSymbol} {
			if n, ok := res.Pages[mode]; ok {
				fmt.Fprintf(out, "%s chart: %d pages\n", mode, n)
			}
		}
		for _, f := range res.Files {
			fmt.Fprintln(out, "wrote", f)
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <image>",
	Short: "Write an enlarged PNG of the reduced grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, _, err := generate(cfg, args[0])
		if err != nil {
			return err
		}
		opts, err := exportOptions(cfg)
		if err != nil {
			return err
		}
		opts.Color, opts.Symbols, opts.Preview = false, false, true
		opts.Layers = false
		res, err := s.Export(opts)
		if stitchchart.IsCancelled(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "preview cancelled: no output directory")
			return nil
		}
		if err != nil {
			return err
		}
		for _, e := range res.Palette.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d\n", e.Symbol, e.Color.Hex(), e.Count)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", res.Files[len(res.Files)-1])
		return nil
	},
}

func generate(cfg *config.Config, path string) (*stitchchart.Session, *stitchchart.Generated, error) {
	refs, err := loadReferences(cfg)
	if err != nil {
		return nil, nil, err
	}
	ro, err := cfg.ReduceOptions()
	if err != nil {
		return nil, nil, err
	}
	s := stitchchart.NewSession(refs, logger.ComponentLogger("session"))
	gen, err := s.Generate(path, ro)
	if err != nil {
		return nil, nil, err
	}
	return s, gen, nil
}

func exportOptions(cfg *config.Config) (stitchchart.ExportOptions, error) {
	opts, err := cfg.ExportOptions()
	if err != nil {
		return opts, err
	}
	if cfg.Chart.Font != "" {
		tf, err := stitchchart.LoadTypeface(cfg.Chart.Font)
		if err != nil {
			return opts, err
		}
		opts.Typeface = &tf
	}
	return opts, nil
}

func addGridFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("long-side", "s", 160, "stitches along the longer side")
	f.IntP("colors", "c", 40, "color budget")
	f.Bool("keep-aspect", true, "keep the image aspect ratio (false forces a square grid)")
	f.String("quantizer", "median", "palette method: median, kmeans or dominant")
	f.Bool("dither", false, "diffuse quantization error between stitches")
	f.String("refs", "", "reference table CSV (default: built-in DMC swatch)")
	f.Bool("dmc", true, "include nearest reference columns in the legend")
	f.Bool("regular-only", false, "skip specialty threads when matching")
	f.String("metric", "rgb", "reference match distance: rgb or lab")
	f.String("overflow", "fail", "when colors exceed symbols: fail or cycle")
	f.StringP("out", "o", ".", "output directory")
	f.String("name", "", "output file prefix (default: image file name)")
	f.Int("scale", 6, "preview pixels per stitch")
}

func init() {
	addGridFlags(exportCmd)
	f := exportCmd.Flags()
	f.Int("cell-px", 18, "chart pixels per stitch")
	f.Bool("color", true, "export the color chart")
	f.Bool("symbols", true, "export the symbol chart")
	f.String("title", "", "chart title (default per chart type)")
	f.String("font", "", "TrueType font for chart text")
	f.String("paper", "Letter", "paper size: Letter, Legal, A4 or A3")
	f.String("orientation", "portrait", "portrait, landscape or auto")
	f.Int("dpi", 300, "page resolution")
	f.Float64("margin", 0.5, "page margin in inches")
	f.Float64("overlap", 0.25, "overlap between adjacent tiles in inches")
	f.String("tiling", "tile", "tile across pages, or fit on one page")
	f.Bool("preview", false, "also write a preview PNG")
	f.Bool("layers", false, "also write one PNG per thread color")

	addGridFlags(previewCmd)
}
