package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/stitchchart"
)

var refsCmd = &cobra.Command{
	Use:   "refs [file]",
	Short: "Load a reference table and report on it",
	Long: `Load a thread color reference table and print how many rows were
loaded and skipped. Without a file the built-in DMC swatch is used. With
--lookup the nearest entry for a hex color is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		table := stitchchart.DefaultReferenceTable()
		if len(args) == 1 {
			t, report, err := stitchchart.LoadReferenceTable(args[0])
			if err != nil {
				return err
			}
			if report.Missing {
				fmt.Fprintf(out, "%s: not found, using an empty table\n", args[0])
			} else {
				fmt.Fprintf(out, "%s: %d rows, %d loaded, %d skipped\n",
					args[0], report.Rows, report.Loaded, report.Skipped)
			}
			table = t
		} else {
			fmt.Fprintf(out, "built-in table: %d entries\n", table.Len())
		}

		hex, _ := cmd.Flags().GetString("lookup")
		if hex == "" {
			return nil
		}
		c, err := stitchchart.ParseHex(hex)
		if err != nil {
			return err
		}
		regular, _ := cmd.Flags().GetBool("regular-only")
		metric, _ := cmd.Flags().GetString("metric")
		e, ok := table.Nearest(c, stitchchart.LookupOptions{
			RegularOnly: regular,
			Metric:      stitchchart.Metric(metric),
		})
		if !ok {
			fmt.Fprintf(out, "%s: no match\n", c.Hex())
			return nil
		}
		fmt.Fprintf(out, "%s -> %s %s %s", c.Hex(), e.Code, e.Name, e.RGB.Hex())
		if f := e.Family.String(); f != "" {
			fmt.Fprintf(out, " (%s)", f)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	refsCmd.Flags().String("lookup", "", "hex color to match, e.g. #A0522D")
	refsCmd.Flags().Bool("regular-only", false, "skip specialty threads")
	refsCmd.Flags().String("metric", "rgb", "distance: rgb or lab")
}
