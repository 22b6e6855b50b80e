package stitchchart

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// PaletteEntry is one distinct grid color with its symbol and stitch count.
type PaletteEntry struct {
	Color  Color
	Symbol string
	Count  int
}

// Palette is the frequency-ordered set of colors in a grid.
type Palette struct {
	Entries []PaletteEntry
	// Collisions counts entries whose symbol repeats an earlier one. Always
	// zero under OverflowFail.
	Collisions int

	index map[Color]int
}

// IndexPalette counts grid colors and orders them by descending count, ties
// broken by ascending (R, G, B). The i-th entry gets the i-th symbol of
// SymbolSequence. The result depends only on the grid contents.
func IndexPalette(g *Grid, policy OverflowPolicy) (*Palette, error) {
	counts := make(map[Color]int)
	for _, c := range g.Cells {
		counts[c]++
	}
	entries := make([]PaletteEntry, 0, len(counts))
	for c, n := range counts {
		entries = append(entries, PaletteEntry{Color: c, Count: n})
	}
	slices.SortFunc(entries, func(a, b PaletteEntry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return a.Color.Compare(b.Color)
	})

	seq := SymbolSequence()
	p := &Palette{Entries: entries, index: make(map[Color]int, len(entries))}
	if len(entries) > len(seq) {
		if policy != OverflowCycle {
			return nil, errors.WithHintf(
				errors.Wrapf(ErrPaletteOverflow, "%d colors, %d symbols", len(entries), len(seq)),
				"reduce the color budget to %d or fewer, or allow symbol cycling", len(seq))
		}
		p.Collisions = len(entries) - len(seq)
	}
	for i := range p.Entries {
		p.Entries[i].Symbol = seq[i%len(seq)]
		p.index[p.Entries[i].Color] = i
	}
	return p, nil
}

func (p *Palette) Len() int {
	return len(p.Entries)
}

// Index returns the position of c, or -1.
func (p *Palette) Index(c Color) int {
	if i, ok := p.index[c]; ok {
		return i
	}
	return -1
}

// Symbol returns the glyph for c. ok is false for colors not in the palette.
func (p *Palette) Symbol(c Color) (string, bool) {
	i, ok := p.index[c]
	if !ok {
		return "", false
	}
	return p.Entries[i].Symbol, true
}

// Count returns the number of stitches of color c.
func (p *Palette) Count(c Color) int {
	if i, ok := p.index[c]; ok {
		return p.Entries[i].Count
	}
	return 0
}

// Colors returns the palette colors in order.
func (p *Palette) Colors() []Color {
	out := make([]Color, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Color
	}
	return out
}
