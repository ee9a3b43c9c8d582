package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when outline font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrNilSheet is returned when a bitmap source has no glyph sheet.
	ErrNilSheet = errors.New("font: bitmap sheet is nil")

	// ErrEmptyFamilies is returned when a Collection is built without families.
	ErrEmptyFamilies = errors.New("font: families cannot be empty")

	// ErrEmptyFamily is returned when a Family is built without members.
	ErrEmptyFamily = errors.New("font: family has no sources")

	// ErrNoPixels is returned by Rasterize when a glyph has no visible pixels,
	// either because it covers zero area or because the source has no visual
	// glyphs at all.
	ErrNoPixels = errors.New("font: glyph has no pixels")

	// ErrInvalidSize is returned by Rasterize for a non-positive pixel size.
	ErrInvalidSize = errors.New("font: invalid glyph size")

	// ErrBitmapKeyRange is returned by NewBitmapSource for a glyph key
	// outside [0, MaxBitmapKey].
	ErrBitmapKeyRange = errors.New("font: bitmap glyph key out of range")
)

// GlyphNotFoundError is returned by Rasterize when the glyph id is unknown
// to the source.
type GlyphNotFoundError struct {
	Source string
	ID     uint32
}

func (e *GlyphNotFoundError) Error() string {
	return "font: glyph not found in " + e.Source
}
