package font

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Kind is the variant tag of a Source.
type Kind uint8

const (
	// KindMissing is the reserved missing-glyph sentinel.
	KindMissing Kind = iota
	// KindOutline is a vector font shaped at arbitrary sizes.
	KindOutline
	// KindBitmap is a pre-rendered glyph sheet.
	KindBitmap
	// KindSpace provides advances without visual glyphs.
	KindSpace
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "Missing"
	case KindOutline:
		return "Outline"
	case KindBitmap:
		return "Bitmap"
	case KindSpace:
		return "Space"
	default:
		return unknownStr
	}
}

// Style selects a member of a Family.
type Style uint8

const (
	// StyleNormal is the regular upright style.
	StyleNormal Style = 0
	// StyleBold is the bold upright style.
	StyleBold Style = 1 << 0
	// StyleItalic is the regular italic style.
	StyleItalic Style = 1 << 1
	// StyleBoldItalic is the bold italic style.
	StyleBoldItalic = StyleBold | StyleItalic
)

// IsBold reports whether the style has bold weight.
func (s Style) IsBold() bool { return s&StyleBold != 0 }

// IsItalic reports whether the style is slanted.
func (s Style) IsItalic() bool { return s&StyleItalic != 0 }

// String returns the string representation of the style.
func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "Normal"
	case StyleBold:
		return "Bold"
	case StyleItalic:
		return "Italic"
	case StyleBoldItalic:
		return "BoldItalic"
	default:
		return unknownStr
	}
}

// GlyphID is a glyph index within an outline font.
type GlyphID uint16

// Paint carries the parameters of a simple layout request.
type Paint struct {
	// Size is the font size in pixels.
	Size int

	// Style is the requested font style.
	Style Style

	// Locale is a BCP 47 language tag such as "en" or "ja".
	// An empty locale is treated as "en".
	Locale string
}

// RunGlyph is one glyph produced by Source.ShapeRun.
type RunGlyph struct {
	// ID is the glyph index in the source.
	ID GlyphID

	// X, Y are the pixel offsets of the glyph relative to the start of the
	// run, with Y increasing downwards.
	X, Y float32
}

// Metrics holds the vertical metrics of a source at a pixel size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top (positive).
	Ascent float32

	// Descent is the distance from the baseline to the bottom (positive).
	Descent float32
}

// LineHeight returns ascent plus descent.
func (m Metrics) LineHeight() float32 {
	return m.Ascent + m.Descent
}
