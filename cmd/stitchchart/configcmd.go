package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/stitchchart/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <file>",
	Short: "Validate a config file and print the resolved settings",
	Long: `Load a config file on top of the defaults, ignoring the environment and
flags, validate it and print the settings an export would use.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		ro, err := cfg.ReduceOptions()
		if err != nil {
			return err
		}
		eo, err := cfg.ExportOptions()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "grid:   long side %d, %d colors, %s", ro.LongSide, ro.Colors, ro.Method)
		if ro.Dither {
			fmt.Fprint(out, ", dithered")
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "chart:  %d px cells, color=%v symbols=%v\n", eo.CellPx, eo.Color, eo.Symbols)
		fmt.Fprintf(out, "page:   %s, %d dpi, margin %g in, overlap %g in\n",
			eo.Layout.Paper.Name, eo.Layout.DPI, eo.Layout.MarginIn, eo.Layout.OverlapIn)
		fmt.Fprintf(out, "output: %s\n", eo.OutputDir)
		return nil
	},
}
