package stitchchart

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors. Wrap them with errors.Wrap to add context and test with
// errors.Is.
var (
	// ErrInputNotFound indicates the source image path does not exist or
	// cannot be read.
	ErrInputNotFound = errors.New("input image not found")

	// ErrDecode indicates the source file exists but is not a decodable image.
	ErrDecode = errors.New("cannot decode image")

	// ErrNoGrid indicates an export or preview was requested before any grid
	// was generated.
	ErrNoGrid = errors.New("no grid generated")

	// ErrPaletteOverflow indicates more palette colors than available symbols
	// under the fail overflow policy.
	ErrPaletteOverflow = errors.New("palette exceeds symbol sequence")

	// ErrSaveCancelled indicates no output location was chosen. Callers treat
	// it as a normal abort.
	ErrSaveCancelled = errors.New("save cancelled")

	// ErrMalformedReference indicates a reference table that cannot be used
	// at all, e.g. a header missing required columns.
	ErrMalformedReference = errors.New("malformed reference table")

	// ErrInvalidOptions indicates out-of-range configuration.
	ErrInvalidOptions = errors.New("invalid options")
)

// IsCancelled reports whether err is, or wraps, ErrSaveCancelled.
func IsCancelled(err error) bool {
	return err != nil && errors.Is(err, ErrSaveCancelled)
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidOptions, format, args...)
}
