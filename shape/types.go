package shape

import (
	"strings"

	"github.com/gogpu/textlayout/font"
)

// GlyphFlags holds per-glyph style bits.
type GlyphFlags uint8

const (
	// FlagBold marks bold text.
	FlagBold GlyphFlags = 1 << iota
	// FlagItalic marks italic text.
	FlagItalic
	// FlagUnderline requests an underline decoration.
	FlagUnderline
	// FlagStrikethrough requests a strikethrough decoration.
	FlagStrikethrough
	// FlagObfuscated replaces glyphs with noise of the same advance.
	FlagObfuscated
	// FlagColorEmoji replaces the shaped glyph with a color emoji glyph.
	FlagColorEmoji
	// FlagBitmapReplacement replaces the shaped glyph with an embedded
	// bitmap glyph.
	FlagBitmapReplacement
)

// Has reports whether all bits of mask are set.
func (f GlyphFlags) Has(mask GlyphFlags) bool { return f&mask == mask }

// FontStyle returns the font style implied by the bold and italic bits.
func (f GlyphFlags) FontStyle() font.Style {
	var s font.Style
	if f.Has(FlagBold) {
		s |= font.StyleBold
	}
	if f.Has(FlagItalic) {
		s |= font.StyleItalic
	}
	return s
}

var flagNames = [...]string{"Bold", "Italic", "Underline", "Strikethrough", "Obfuscated", "ColorEmoji", "BitmapReplacement"}

// String returns the flags joined by '|', or "None".
func (f GlyphFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// ComputeFlags selects optional parts of a TextLayout.
type ComputeFlags uint8

const (
	// ComputeAdvances fills TextLayout.Advances.
	ComputeAdvances ComputeFlags = 1 << iota
	// ComputeLineBoundaries fills TextLayout.LineBoundaries.
	ComputeLineBoundaries

	// ComputeAll selects every optional part.
	ComputeAll = ComputeAdvances | ComputeLineBoundaries
)

// CharStyle is the style of a span of characters.
type CharStyle struct {
	Flags GlyphFlags

	// NoBreak forbids line breaks strictly inside the span.
	NoBreak bool

	// Replacement supplies glyphs for FlagBitmapReplacement and
	// FlagColorEmoji. For FlagColorEmoji the shaper's emoji source is
	// used when Replacement is nil.
	Replacement *font.Source
}

// Span applies a CharStyle to Text[Start:End].
type Span struct {
	Start, End int
	Style      CharStyle
}

// StyledText is a character sequence with style spans.
// Where spans overlap, the later span wins.
type StyledText struct {
	Text  []rune
	Spans []Span
}

// Plain returns unstyled text.
func Plain(s string) StyledText {
	return StyledText{Text: []rune(s)}
}

// styleAt returns the effective style of Text[i].
func (t *StyledText) styleAt(i int) CharStyle {
	for j := len(t.Spans) - 1; j >= 0; j-- {
		sp := &t.Spans[j]
		if i >= sp.Start && i < sp.End {
			return sp.Style
		}
	}
	return CharStyle{}
}

// Style is the context a text is shaped in.
type Style struct {
	// Locale is a BCP 47 tag passed to the outline shaper. Empty means "en".
	Locale string

	// FontStyle is the base style; span bold and italic flags add to it.
	FontStyle font.Style

	// Obfuscated obfuscates the whole text.
	Obfuscated bool

	// RTL sets the paragraph direction to right-to-left.
	RTL bool
}

// GlyphCode packs a glyph reference: bits 24-31 hold the glyph's slot
// within its cluster, bits 0-23 the source-local glyph id (an outline
// glyph index or a bitmap code point).
type GlyphCode uint32

const glyphIDMask = 1<<24 - 1

// MakeGlyphCode packs slot and id.
func MakeGlyphCode(slot uint8, id uint32) GlyphCode {
	return GlyphCode(uint32(slot)<<24 | id&glyphIDMask)
}

// Slot returns the glyph's index within its cluster.
func (c GlyphCode) Slot() uint8 { return uint8(c >> 24) }

// ID returns the source-local glyph id.
func (c GlyphCode) ID() uint32 { return uint32(c) & glyphIDMask }
