package shape

import "github.com/gogpu/textlayout/font"

// TextLayout is the shaped form of a styled text.
//
// A TextLayout is immutable once returned by Shape. Accessors return the
// backing slices; callers must not modify them.
type TextLayout struct {
	chars          []rune
	advances       []float32
	lineBoundaries []int

	glyphs      []GlyphCode
	positions   []float32
	fontIndices []byte
	glyphFlags  []GlyphFlags
	fontVector  []*font.Source

	totalAdvance float32
	size         int
	resLevel     float32
}

// Chars returns the characters in logical order.
func (l *TextLayout) Chars() []rune { return l.chars }

// Advances returns one advance per char: the cluster advance at the first
// char of each grapheme cluster and zero at continuation chars. Nil unless
// ComputeAdvances was requested.
func (l *TextLayout) Advances() []float32 { return l.advances }

// LineBoundaries returns the strictly increasing char indices at which a
// line may break, ending with len(Chars()). Nil unless
// ComputeLineBoundaries was requested.
func (l *TextLayout) LineBoundaries() []int { return l.lineBoundaries }

// Glyphs returns the glyphs in visual order.
func (l *TextLayout) Glyphs() []GlyphCode { return l.glyphs }

// Positions returns an (x, y) pair per glyph, relative to the line origin
// on the baseline, y down.
func (l *TextLayout) Positions() []float32 { return l.positions }

// FontIndices maps each glyph to FontVector. Nil when FontVector has at
// most one entry.
func (l *TextLayout) FontIndices() []byte { return l.fontIndices }

// GlyphFlags returns the style bits per glyph.
func (l *TextLayout) GlyphFlags() []GlyphFlags { return l.glyphFlags }

// FontVector returns the sources used, in first-use order.
func (l *TextLayout) FontVector() []*font.Source { return l.fontVector }

// TotalAdvance returns the advance of the whole text.
func (l *TextLayout) TotalAdvance() float32 { return l.totalAdvance }

// Size returns the pixel font size glyphs were shaped at.
func (l *TextLayout) Size() int { return l.size }

// ResolutionLevel returns the factor from normalized units to pixels.
func (l *TextLayout) ResolutionLevel() float32 { return l.resLevel }

// Len returns the number of glyphs.
func (l *TextLayout) Len() int { return len(l.glyphs) }

// FontIndex returns the FontVector index of glyph i.
func (l *TextLayout) FontIndex(i int) int {
	if l.fontIndices == nil {
		return 0
	}
	return int(l.fontIndices[i])
}

// Glyph is a decoded glyph of a TextLayout.
type Glyph struct {
	Source *font.Source
	ID     uint32
	Slot   uint8
	Flags  GlyphFlags
	X, Y   float32
}

// Glyph decodes glyph i.
func (l *TextLayout) Glyph(i int) Glyph {
	code := l.glyphs[i]
	return Glyph{
		Source: l.fontVector[l.FontIndex(i)],
		ID:     code.ID(),
		Slot:   code.Slot(),
		Flags:  l.glyphFlags[i],
		X:      l.positions[2*i],
		Y:      l.positions[2*i+1],
	}
}
