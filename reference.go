package stitchchart

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Family classifies a thread color.
type Family int

const (
	FamilyUnset Family = iota
	FamilyRegular
	FamilySpecialty
)

func (f Family) String() string {
	switch f {
	case FamilyRegular:
		return "regular"
	case FamilySpecialty:
		return "specialty"
	default:
		return ""
	}
}

// ParseFamily maps the table's "type" column. Unknown values are unset.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "standard", "stranded":
		return FamilyRegular
	case "specialty", "speciality", "special":
		return FamilySpecialty
	default:
		return FamilyUnset
	}
}

// ReferenceEntry is one catalog color.
type ReferenceEntry struct {
	Code   string
	Name   string
	RGB    Color
	Family Family
}

// ReferenceTable is an ordered, read-only list of catalog colors. The zero
// value and nil are both valid empty tables.
type ReferenceTable struct {
	entries []ReferenceEntry
}

// NewReferenceTable copies entries into a new table, preserving order.
func NewReferenceTable(entries []ReferenceEntry) *ReferenceTable {
	return &ReferenceTable{entries: append([]ReferenceEntry(nil), entries...)}
}

func (t *ReferenceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the table rows.
func (t *ReferenceTable) Entries() []ReferenceEntry {
	if t == nil {
		return nil
	}
	return append([]ReferenceEntry(nil), t.entries...)
}

// Metric selects the distance used for nearest-color lookups.
type Metric string

const (
	// MetricRGB is squared Euclidean distance over 8-bit channels.
	MetricRGB Metric = "rgb"
	// MetricLab is CIE76 delta-E.
	MetricLab Metric = "lab"
)

// LookupOptions restricts and tunes Nearest.
type LookupOptions struct {
	// RegularOnly skips specialty entries entirely. Entries without a family
	// are treated as regular.
	RegularOnly bool
	Metric      Metric
}

func (o LookupOptions) allows(e ReferenceEntry) bool {
	return !o.RegularOnly || e.Family != FamilySpecialty
}

// Nearest scans the table linearly and returns the closest allowed entry.
// Ties go to the entry seen first. ok is false when no entry qualifies.
func (t *ReferenceTable) Nearest(c Color, opts LookupOptions) (best ReferenceEntry, ok bool) {
	if t == nil {
		return best, false
	}
	switch opts.Metric {
	case MetricLab:
		bestD := 0.0
		for _, e := range t.entries {
			if !opts.allows(e) {
				continue
			}
			d := c.DistanceLab(e.RGB)
			if !ok || d < bestD {
				best, bestD, ok = e, d, true
			}
		}
	default:
		bestD := 0
		for _, e := range t.entries {
			if !opts.allows(e) {
				continue
			}
			d := c.DistanceSq(e.RGB)
			if !ok || d < bestD {
				best, bestD, ok = e, d, true
			}
		}
	}
	return best, ok
}

// LoadReport describes the outcome of reading a reference table.
type LoadReport struct {
	// Rows is the number of data rows read, excluding the header.
	Rows    int
	Loaded  int
	Skipped int
	// Missing is set when the file did not exist; the table is then empty.
	Missing bool
}

// Partial reports whether some rows were dropped.
func (r LoadReport) Partial() bool {
	return r.Skipped > 0
}

var referenceColumns = []string{"number", "name", "r", "g", "b"}

// ReadReferenceTable parses a CSV with header-named columns number, name, r,
// g, b and an optional type. Rows that fail to parse are skipped and counted.
func ReadReferenceTable(r io.Reader) (*ReferenceTable, LoadReport, error) {
	var report LoadReport
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return &ReferenceTable{}, report, nil
	}
	if err != nil {
		return nil, report, errors.Wrap(ErrMalformedReference, err.Error())
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, want := range referenceColumns {
		if _, ok := cols[want]; !ok {
			return nil, report, errors.WithHint(
				errors.Wrapf(ErrMalformedReference, "missing column %q", want),
				"expected header: number,name,r,g,b,type")
		}
	}
	typeCol, hasType := cols["type"]

	t := &ReferenceTable{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		report.Rows++
		if err != nil {
			report.Skipped++
			continue
		}
		e, ok := parseReferenceRow(rec, cols)
		if !ok {
			report.Skipped++
			continue
		}
		if hasType && typeCol < len(rec) {
			e.Family = ParseFamily(rec[typeCol])
		}
		t.entries = append(t.entries, e)
		report.Loaded++
	}
	return t, report, nil
}

func parseReferenceRow(rec []string, cols map[string]int) (ReferenceEntry, bool) {
	field := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(rec) {
			return "", false
		}
		return strings.TrimSpace(rec[i]), true
	}
	code, ok := field("number")
	if !ok || code == "" {
		return ReferenceEntry{}, false
	}
	name, ok := field("name")
	if !ok {
		return ReferenceEntry{}, false
	}
	var ch [3]uint8
	for i, col := range []string{"r", "g", "b"} {
		s, ok := field(col)
		if !ok {
			return ReferenceEntry{}, false
		}
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return ReferenceEntry{}, false
		}
		ch[i] = uint8(v)
	}
	return ReferenceEntry{
		Code: code,
		Name: name,
		RGB:  Color{R: ch[0], G: ch[1], B: ch[2]},
	}, true
}

// LoadReferenceTable reads a reference table from path. A missing file is
// not an error: the returned table is empty and report.Missing is set.
func LoadReferenceTable(path string) (*ReferenceTable, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ReferenceTable{}, LoadReport{Missing: true}, nil
		}
		return nil, LoadReport{}, errors.Wrapf(err, "open reference table %s", path)
	}
	defer f.Close()
	t, report, err := ReadReferenceTable(f)
	if err != nil {
		return nil, report, errors.Wrapf(err, "read reference table %s", path)
	}
	return t, report, nil
}
