package stitchchart

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legendPalette(t *testing.T) *Palette {
	t.Helper()
	g := &Grid{W: 5, H: 1, Cells: []Color{
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {250, 250, 250}, {199, 43, 60},
	}}
	p, err := IndexPalette(g, OverflowFail)
	require.NoError(t, err)
	return p
}

func TestBuildLegend(t *testing.T) {
	p := legendPalette(t)
	rows := BuildLegend(p, DefaultReferenceTable(), LegendOptions{IncludeReference: true})
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"●", "0", "0", "0", "#000000", "310", "Black", "regular", "3"}, rows[0].Record())
	assert.Equal(t, "321", rows[1].Match.Code)
	assert.Equal(t, "B5200", rows[2].Match.Code)
	assert.Equal(t, 1, rows[2].Stitches)
}

func TestBuildLegend_ReferenceColumnsEmpty(t *testing.T) {
	p := legendPalette(t)
	cases := map[string][]LegendRow{
		"excluded":    BuildLegend(p, DefaultReferenceTable(), LegendOptions{}),
		"empty table": BuildLegend(p, NewReferenceTable(nil), LegendOptions{IncludeReference: true}),
		"nil table":   BuildLegend(p, nil, LegendOptions{IncludeReference: true}),
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			require.Len(t, rows, 3)
			for _, r := range rows {
				rec := r.Record()
				require.Len(t, rec, len(LegendHeader))
				assert.Equal(t, []string{"", "", ""}, rec[5:8])
			}
		})
	}
}

func TestBuildLegend_RegularOnly(t *testing.T) {
	table := NewReferenceTable([]ReferenceEntry{
		{Code: "E310", Name: "Black Sparkle", RGB: Color{0, 0, 0}, Family: FamilySpecialty},
		{Code: "3371", Name: "Black Brown", RGB: Color{30, 17, 8}, Family: FamilyRegular},
	})
	rows := BuildLegend(legendPalette(t), table, LegendOptions{IncludeReference: true, RegularOnly: true})
	for _, r := range rows {
		assert.Equal(t, "3371", r.Match.Code)
	}
}

func TestWriteLegend(t *testing.T) {
	p := legendPalette(t)
	table := NewReferenceTable([]ReferenceEntry{{Code: "3865", Name: "Winter White, Lt", RGB: Color{250, 250, 250}}})
	rows := BuildLegend(p, table, LegendOptions{IncludeReference: true})

	var buf bytes.Buffer
	require.NoError(t, WriteLegend(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "symbol,r,g,b,hex,dmc_code,dmc_name,dmc_type,stitches", lines[0])
	assert.Equal(t, `●,0,0,0,#000000,3865,"Winter White, Lt",,3`, lines[1])

	recs, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	for _, rec := range recs {
		assert.Len(t, rec, 9)
	}
	assert.Equal(t, "Winter White, Lt", recs[1][6])
}

func TestWriteLegend_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLegend(&buf, nil))
	assert.Equal(t, strings.Join(LegendHeader, ",")+"\n", buf.String())
}
