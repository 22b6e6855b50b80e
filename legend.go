package stitchchart

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

// LegendHeader is the fixed column set of a legend file.
var LegendHeader = []string{"symbol", "r", "g", "b", "hex", "dmc_code", "dmc_name", "dmc_type", "stitches"}

type LegendOptions struct {
	// IncludeReference fills the dmc_* columns with the nearest reference
	// entry. When false, or when nothing qualifies, they are empty.
	IncludeReference bool
	RegularOnly      bool
	Metric           Metric
}

// LegendRow is one palette entry with its reference match.
type LegendRow struct {
	Symbol   string
	Color    Color
	Match    ReferenceEntry
	HasMatch bool
	Stitches int
}

// Record formats the row in LegendHeader column order.
func (r LegendRow) Record() []string {
	rec := []string{
		r.Symbol,
		strconv.Itoa(int(r.Color.R)),
		strconv.Itoa(int(r.Color.G)),
		strconv.Itoa(int(r.Color.B)),
		r.Color.Hex(),
		"", "", "",
		strconv.Itoa(r.Stitches),
	}
	if r.HasMatch {
		rec[5] = r.Match.Code
		rec[6] = r.Match.Name
		rec[7] = r.Match.Family.String()
	}
	return rec
}

// BuildLegend returns one row per palette entry, in palette order. A nil or
// empty table leaves every match empty.
func BuildLegend(p *Palette, table *ReferenceTable, opts LegendOptions) []LegendRow {
	rows := make([]LegendRow, 0, p.Len())
	lookup := LookupOptions{RegularOnly: opts.RegularOnly, Metric: opts.Metric}
	for _, e := range p.Entries {
		row := LegendRow{Symbol: e.Symbol, Color: e.Color, Stitches: e.Count}
		if opts.IncludeReference {
			row.Match, row.HasMatch = table.Nearest(e.Color, lookup)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteLegend writes the header and rows as CSV. Fields are quoted only when
// they contain a comma, quote or line break.
func WriteLegend(w io.Writer, rows []LegendRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LegendHeader); err != nil {
		return errors.Wrap(err, "write legend header")
	}
	for i, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return errors.Wrapf(err, "write legend row %d", i+1)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush legend")
}
