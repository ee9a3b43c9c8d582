package shape

import (
	"errors"
	"math"
	"unicode"

	"github.com/go-text/typesetting/segmenter"

	"github.com/gogpu/textlayout/font"
)

// Errors returned by NewShaper.
var (
	// ErrNilCollection is returned when no font collection is given.
	ErrNilCollection = errors.New("shape: font collection is nil")

	// ErrInvalidResolution is returned for a non-positive resolution level.
	ErrInvalidResolution = errors.New("shape: resolution level must be positive")

	// ErrInvalidFontSize is returned for a non-positive base font size.
	ErrInvalidFontSize = errors.New("shape: base font size must be positive")
)

// Font size limits in pixels.
const (
	MinFontSize = 1
	MaxFontSize = 96

	// DefaultBaseFontSize is the pixel size at resolution level 1.
	DefaultBaseFontSize = 8
)

// maxFonts is the number of sources addressable by a byte font index.
const maxFonts = 256

// ComputeFontSize returns the pixel font size for a resolution level:
// base × level, rounded and clamped to [MinFontSize, MaxFontSize].
func ComputeFontSize(resLevel float32, base int) int {
	size := int(math.Round(float64(resLevel) * float64(base)))
	return min(max(size, MinFontSize), MaxFontSize)
}

// Option configures a Shaper.
type Option func(*options)

type options struct {
	resLevel float32
	baseSize int
	emoji    *font.Source
}

func defaultOptions() options {
	return options{
		resLevel: 1,
		baseSize: DefaultBaseFontSize,
	}
}

// WithResolutionLevel sets the factor from normalized units to pixels.
// The default is 1.
func WithResolutionLevel(level float32) Option {
	return func(o *options) {
		o.resLevel = level
	}
}

// WithBaseFontSize sets the pixel font size at resolution level 1.
// The default is DefaultBaseFontSize.
func WithBaseFontSize(size int) Option {
	return func(o *options) {
		o.baseSize = size
	}
}

// WithEmojiSource sets the source consulted for FlagColorEmoji when a span
// carries no Replacement.
func WithEmojiSource(src *font.Source) Option {
	return func(o *options) {
		o.emoji = src
	}
}

// Shaper produces TextLayouts from styled text.
//
// Shaper is NOT safe for concurrent use.
type Shaper struct {
	collection *font.Collection
	resLevel   float32
	size       int
	emoji      *font.Source

	seg segmenter.Segmenter
}

// NewShaper creates a shaper over a font collection.
func NewShaper(c *font.Collection, opts ...Option) (*Shaper, error) {
	if c == nil {
		return nil, ErrNilCollection
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.resLevel > 0) || math.IsInf(float64(o.resLevel), 0) {
		return nil, ErrInvalidResolution
	}
	if o.baseSize <= 0 {
		return nil, ErrInvalidFontSize
	}
	return &Shaper{
		collection: c,
		resLevel:   o.resLevel,
		size:       ComputeFontSize(o.resLevel, o.baseSize),
		emoji:      o.emoji,
	}, nil
}

// Collection returns the font collection.
func (s *Shaper) Collection() *font.Collection { return s.collection }

// ResolutionLevel returns the resolution level.
func (s *Shaper) ResolutionLevel() float32 { return s.resLevel }

// Size returns the pixel font size glyphs are shaped at.
func (s *Shaper) Size() int { return s.size }

// shapedGlyph is a glyph of a cluster, positioned relative to the pen
// position at the cluster start, in pixels.
type shapedGlyph struct {
	src   *font.Source
	id    uint32
	flags GlyphFlags
	x, y  float32
}

// shapedCluster is the logical-order result for one cluster.
type shapedCluster struct {
	cluster
	advance float32 // pixels
	glyphs  []shapedGlyph
}

// Shape lays out text. It never fails: characters no font covers render
// as the missing glyph and the output always has one advance per char.
//
// Identical inputs over an unchanged collection produce identical layouts.
func (s *Shaper) Shape(text StyledText, style Style, flags ComputeFlags) *TextLayout {
	chars := make([]rune, len(text.Text))
	copy(chars, text.Text)
	text.Text = chars

	l := &TextLayout{
		chars:    chars,
		size:     s.size,
		resLevel: s.resLevel,
	}
	if flags&ComputeAdvances != 0 {
		l.advances = make([]float32, len(chars))
	}
	if len(chars) == 0 {
		if flags&ComputeLineBoundaries != 0 {
			l.lineBoundaries = []int{0}
		}
		return l
	}

	clean := sanitize(chars)
	s.seg.Init(clean)

	clusters := graphemes(&s.seg, chars)
	shaped := make([]shapedCluster, len(clusters))
	for i, c := range clusters {
		shaped[i] = s.shapeCluster(&text, clean, c, style)
		adv := shaped[i].advance / s.resLevel
		if l.advances != nil {
			l.advances[c.start] = adv
		}
		l.totalAdvance += adv
	}

	if flags&ComputeLineBoundaries != 0 {
		l.lineBoundaries = lineBoundaries(&s.seg, &text)
	}

	s.emit(l, shaped, bidiLevels(clean, style.RTL))
	return l
}

// shapeCluster resolves, shapes and substitutes one cluster.
func (s *Shaper) shapeCluster(text *StyledText, clean []rune, c cluster, style Style) shapedCluster {
	out := shapedCluster{cluster: c}
	r := text.Text[c.start]
	cs := text.styleAt(c.start)

	gflags := cs.Flags | glyphFlagsOf(style.FontStyle)
	if style.Obfuscated {
		gflags |= FlagObfuscated
	}
	fontStyle := gflags.FontStyle()

	if unicode.Is(unicode.Cc, r) {
		return out
	}

	src := s.collection.Resolve(r, fontStyle)
	if src.Kind() == font.KindMissing && unicode.Is(unicode.Cf, r) {
		return out
	}

	paint := font.Paint{Size: s.size, Style: fontStyle, Locale: style.Locale}
	switch src.Kind() {
	case font.KindOutline:
		adv, run := src.ShapeRun(clean[c.start:c.end], paint)
		out.advance = adv
		out.glyphs = make([]shapedGlyph, len(run))
		for i, g := range run {
			out.glyphs[i] = shapedGlyph{src: src, id: uint32(g.ID), flags: gflags, x: g.X, y: g.Y}
		}
	case font.KindBitmap:
		out.advance = src.GlyphAdvance(uint32(r), s.size) //nolint:gosec // code point
		out.glyphs = []shapedGlyph{{src: src, id: uint32(r), flags: gflags}} //nolint:gosec // code point
	case font.KindSpace:
		out.advance = src.GlyphAdvance(uint32(r), s.size) //nolint:gosec // code point
		return out
	default:
		out.advance = src.GlyphAdvance(font.MissingGlyph, s.size)
		out.glyphs = []shapedGlyph{{src: src, id: font.MissingGlyph, flags: gflags}}
	}

	if gflags.Has(FlagObfuscated) {
		seed := font.NoiseSeed(c.start, r)
		for i := range out.glyphs {
			g := &out.glyphs[i]
			g.id = g.src.NoiseGlyph(g.id, s.size, seed)
		}
	}

	// Replacements keep the cluster advance. Bitmap replacement is applied
	// after color emoji, so it wins when both succeed. A replacement flag
	// stays only on a glyph that was actually replaced.
	if gflags.Has(FlagColorEmoji) {
		repl := cs.Replacement
		if repl == nil {
			repl = s.emoji
		}
		if s.replace(&out, repl, r, clean[c.start:c.end], paint) {
			out.glyphs[0].flags = out.glyphs[0].flags&^FlagBitmapReplacement | FlagColorEmoji
		} else {
			out.clearFlags(FlagColorEmoji)
		}
	}
	if gflags.Has(FlagBitmapReplacement) {
		if s.replace(&out, cs.Replacement, r, clean[c.start:c.end], paint) {
			out.glyphs[0].flags = out.glyphs[0].flags&^FlagColorEmoji | FlagBitmapReplacement
		} else {
			out.clearFlags(FlagBitmapReplacement)
		}
	}
	return out
}

func (c *shapedCluster) clearFlags(mask GlyphFlags) {
	for i := range c.glyphs {
		c.glyphs[i].flags &^= mask
	}
}

// replace substitutes the cluster's glyphs with the glyph repl provides
// for the cluster starting with r. runes is the sanitized cluster text. It
// reports false, leaving the cluster untouched, when repl has no such glyph.
func (s *Shaper) replace(c *shapedCluster, repl *font.Source, r rune, runes []rune, paint font.Paint) bool {
	if repl == nil {
		return false
	}
	var id uint32
	switch repl.Kind() {
	case font.KindBitmap:
		if !repl.HasGlyph(r) {
			return false
		}
		id = uint32(r) //nolint:gosec // code point
	case font.KindOutline:
		if !repl.HasGlyph(runes[0]) {
			return false
		}
		_, run := repl.ShapeRun(runes, paint)
		if len(run) == 0 || run[0].ID == 0 {
			return false
		}
		id = uint32(run[0].ID)
	default:
		return false
	}

	var flags GlyphFlags
	if len(c.glyphs) > 0 {
		flags = c.glyphs[0].flags
	}
	c.glyphs = []shapedGlyph{{src: repl, id: id, flags: flags}}
	return true
}

// emit places clusters in visual order and fills the glyph side
// of l.
func (s *Shaper) emit(l *TextLayout, shaped []shapedCluster, levels []uint8) {
	n := 0
	for i := range shaped {
		n += len(shaped[i].glyphs)
	}
	l.glyphs = make([]GlyphCode, 0, n)
	l.positions = make([]float32, 0, 2*n)
	l.glyphFlags = make([]GlyphFlags, 0, n)
	indices := make([]byte, 0, n)

	order := identityOrder(len(shaped))
	if levels != nil {
		clusterLevels := make([]uint8, len(shaped))
		paragraphEnd := make([]bool, len(shaped))
		for i, c := range shaped {
			clusterLevels[i] = levels[c.start]
			paragraphEnd[i] = isParagraphSeparator(l.chars[c.end-1])
		}
		order = visualOrder(clusterLevels, paragraphEnd)
	}

	fontIndex := make(map[*font.Source]byte)
	var pen float32
	for _, ci := range order {
		c := &shaped[ci]
		for slot, g := range c.glyphs {
			idx, ok := fontIndex[g.src]
			if !ok && len(l.fontVector) >= maxFonts-1 && g.src != font.Missing() {
				g = s.overflowGlyph(g)
				idx, ok = fontIndex[g.src]
			}
			if !ok {
				idx = byte(len(l.fontVector)) //nolint:gosec // bounded by maxFonts
				fontIndex[g.src] = idx
				l.fontVector = append(l.fontVector, g.src)
			}
			l.glyphs = append(l.glyphs, MakeGlyphCode(uint8(min(slot, math.MaxUint8)), g.id)) //nolint:gosec // clamped
			l.positions = append(l.positions, (pen+g.x)/s.resLevel, g.y/s.resLevel)
			l.glyphFlags = append(l.glyphFlags, g.flags)
			indices = append(indices, idx)
		}
		pen += c.advance
	}

	if len(l.fontVector) > 1 {
		l.fontIndices = indices
	}
}

// overflowGlyph maps a glyph whose source no longer fits the font vector
// onto the missing glyph. The last vector entry is reserved for it.
func (s *Shaper) overflowGlyph(g shapedGlyph) shapedGlyph {
	slogger().Warn("shape: more than 256 fonts in one layout", "source", g.src.Name())
	g.src = font.Missing()
	g.id = font.MissingGlyph
	return g
}

func glyphFlagsOf(s font.Style) GlyphFlags {
	var f GlyphFlags
	if s.IsBold() {
		f |= FlagBold
	}
	if s.IsItalic() {
		f |= FlagItalic
	}
	return f
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
