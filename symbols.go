package stitchchart

import "slices"

// Every glyph below is covered by the embedded Go font.
var baseSymbols = []string{
	"●", "■", "▲", "▼", "○", "□", "◊", "♠", "♣", "♥",
	"♦", "⌂", "►", "◄", "☺", "☻", "☼", "♪", "♫", "♀",
	"+", "x", "*", "/", "\\", "#", "@", "&", "%", "$",
	"=", "^", "~", "<", ">",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// SymbolSequence returns the ordered glyphs assigned to palette entries: the
// base set followed by the lowercase letters it does not already contain.
// No glyph appears twice.
func SymbolSequence() []string {
	seq := make([]string, 0, len(baseSymbols)+26)
	seq = append(seq, baseSymbols...)
	for r := 'a'; r <= 'z'; r++ {
		if !slices.Contains(baseSymbols, string(r)) {
			seq = append(seq, string(r))
		}
	}
	return seq
}

// OverflowPolicy decides what happens when a palette has more colors than
// SymbolSequence has glyphs.
type OverflowPolicy int

const (
	// OverflowFail rejects the palette with ErrPaletteOverflow.
	OverflowFail OverflowPolicy = iota
	// OverflowCycle reuses glyphs from the start of the sequence. Two
	// colors can then share a symbol.
	OverflowCycle
)

func (p OverflowPolicy) String() string {
	if p == OverflowCycle {
		return "cycle"
	}
	return "fail"
}

// ParseOverflowPolicy accepts "fail" or "cycle".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "fail":
		return OverflowFail, nil
	case "cycle":
		return OverflowCycle, nil
	}
	return 0, invalidf("unknown overflow policy %q", s)
}
