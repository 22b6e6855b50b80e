package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/setanarut/stitchchart"
	"github.com/setanarut/stitchchart/internal/config"
	"github.com/setanarut/stitchchart/internal/logger"
)

// v is the configuration for the running command, built in
// PersistentPreRunE once flags are parsed.
var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "stitchchart",
	Short: "Turn images into needlepoint and cross-stitch charts",
	Long: `stitchchart reduces an image to a small stitch grid and palette, then
exports color and symbol charts as printable multi-page PDFs together with a
CSV legend matched against a thread color table.

Examples:
  stitchchart export photo.jpg                  # legend + color + symbol PDFs
  stitchchart export photo.jpg -c 24 -s 120     # 24 colors, 120 stitches wide
  stitchchart preview photo.jpg --scale 8       # enlarged PNG of the grid
  stitchchart refs threads.csv --lookup #A0522D # check a reference table
  stitchchart config stitchchart.toml           # validate a config file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		var err error
		if v, err = config.New(path); err != nil {
			return err
		}
		if err := bindFlags(cmd, v); err != nil {
			return err
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(v.GetBool("log.json"), verbosity); err != nil {
			return errors.Wrap(err, "initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"long-side":    "grid.long_side",
	"colors":       "grid.colors",
	"keep-aspect":  "grid.keep_aspect",
	"quantizer":    "grid.quantizer",
	"dither":       "grid.dither",
	"cell-px":      "chart.cell_px",
	"color":        "chart.color",
	"symbols":      "chart.symbols",
	"title":        "chart.title",
	"font":         "chart.font",
	"overflow":     "chart.overflow",
	"refs":         "reference.file",
	"dmc":          "reference.include",
	"regular-only": "reference.regular_only",
	"metric":       "reference.metric",
	"paper":        "page.paper",
	"orientation":  "page.orientation",
	"dpi":          "page.dpi",
	"margin":       "page.margin_in",
	"overlap":      "page.overlap_in",
	"tiling":       "page.tiling",
	"out":          "output.dir",
	"name":         "output.name",
	"preview":      "output.preview",
	"scale":        "output.preview_scale",
	"layers":       "output.layers",
	"json-log":     "log.json",
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (toml, yaml or json)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase output verbosity (-v, -vv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "log as JSON")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig unmarshals the bound configuration.
func loadConfig() (*config.Config, error) {
	return config.LoadWithViper(v)
}

// loadReferences returns the built-in swatch, or the configured file. A
// configured file that does not exist yields an empty table.
func loadReferences(cfg *config.Config) (*stitchchart.ReferenceTable, error) {
	log := logger.ComponentLogger("refs")
	if cfg.Reference.File == "" {
		return stitchchart.DefaultReferenceTable(), nil
	}
	t, report, err := stitchchart.LoadReferenceTable(cfg.Reference.File)
	if err != nil {
		return nil, err
	}
	switch {
	case report.Missing:
		log.Warnw("reference table not found, legend matches will be empty",
			logger.FieldFile, cfg.Reference.File)
	case report.Partial():
		log.Warnw("reference rows skipped",
			logger.FieldFile, cfg.Reference.File,
			logger.FieldSkipped, report.Skipped,
			logger.FieldCount, report.Loaded)
	default:
		log.Infow("reference table loaded", logger.FieldFile, cfg.Reference.File, logger.FieldCount, report.Loaded)
	}
	return t, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}
