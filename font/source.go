package font

import (
	"fmt"
	"sync/atomic"
)

// nextSourceID hands out source identities. Zero is reserved for Missing.
var nextSourceID atomic.Uint64

// Source is a single glyph source: an outline font, a bitmap sheet, a
// table of space advances, or the missing-glyph sentinel.
//
// Source is a closed variant; exactly one of the kind-specific payloads is
// set, selected by Kind. Source must not be copied after creation.
type Source struct {
	id    uint64
	kind  Kind
	name  string
	style Style

	outline *outlineFont
	bitmap  *bitmapFont
	space   *spaceFont

	// noise holds per-size obfuscation tables, built lazily.
	noise map[int]*noiseTable
}

// newSource creates a source shell with a fresh identity.
func newSource(kind Kind, name string, style Style) *Source {
	return &Source{
		id:    nextSourceID.Add(1),
		kind:  kind,
		name:  name,
		style: style,
	}
}

// ID returns the process-unique identity of the source.
// The glyph cache keys baked glyphs by this value.
func (s *Source) ID() uint64 { return s.id }

// Kind returns the variant of the source.
func (s *Source) Kind() Kind { return s.kind }

// Name returns the family name of the source.
func (s *Source) Name() string { return s.name }

// Style returns the style the source was registered with.
func (s *Source) Style() Style { return s.style }

// String implements fmt.Stringer.
func (s *Source) String() string {
	return fmt.Sprintf("%s(%s #%d)", s.kind, s.name, s.id)
}

// HasGlyph reports whether the source can render or measure r.
func (s *Source) HasGlyph(r rune) bool {
	switch s.kind {
	case KindOutline:
		return s.outline.hasGlyph(r)
	case KindBitmap:
		_, ok := s.bitmap.glyphs[r]
		return ok
	case KindSpace:
		_, ok := s.space.advances[r]
		return ok
	default:
		return false
	}
}

// ShapeRun performs a simple (non-contextual) layout of runes and returns
// the total advance in pixels together with the glyphs produced.
//
// Only outline sources shape; other kinds return (0, nil).
func (s *Source) ShapeRun(runes []rune, paint Paint) (float32, []RunGlyph) {
	if s.kind != KindOutline || len(runes) == 0 || paint.Size <= 0 {
		return 0, nil
	}
	return s.outline.shapeRun(runes, paint)
}

// GlyphInfo returns the fixed metrics of a bitmap glyph.
// It reports false for other kinds or for runes the sheet does not cover.
func (s *Source) GlyphInfo(r rune) (BitmapGlyph, bool) {
	if s.kind != KindBitmap {
		return BitmapGlyph{}, false
	}
	g, ok := s.bitmap.glyphs[r]
	return g, ok
}

// Advance returns the advance of r as a fraction of the em for space
// sources. It reports false for other kinds or uncovered runes.
func (s *Source) Advance(r rune) (float32, bool) {
	if s.kind != KindSpace {
		return 0, false
	}
	adv, ok := s.space.advances[r]
	return adv, ok
}

// GlyphAdvance returns the pixel advance of glyph id at size.
// For bitmap sources id is the code point; for space sources id is the
// code point whose advance is looked up.
func (s *Source) GlyphAdvance(id uint32, size int) float32 {
	if size <= 0 {
		return 0
	}
	switch s.kind {
	case KindOutline:
		return s.outline.glyphAdvance(GlyphID(id), size) //nolint:gosec // outline ids are 16-bit
	case KindBitmap:
		g, ok := s.bitmap.glyphs[rune(id)] //nolint:gosec // bitmap ids are code points
		if !ok {
			return 0
		}
		return float32(g.Advance) * s.bitmap.scale(size)
	case KindSpace:
		adv, ok := s.space.advances[rune(id)] //nolint:gosec // space ids are code points
		if !ok {
			return 0
		}
		return adv * float32(size)
	default:
		return missingAdvance(size)
	}
}

// Metrics returns the vertical metrics at size pixels.
func (s *Source) Metrics(size int) Metrics {
	if size <= 0 {
		return Metrics{}
	}
	switch s.kind {
	case KindOutline:
		return s.outline.metrics(size)
	case KindBitmap:
		k := s.bitmap.scale(size)
		return Metrics{
			Ascent:  float32(s.bitmap.ascent) * k,
			Descent: float32(s.bitmap.em-s.bitmap.ascent) * k,
		}
	default:
		return Metrics{Ascent: float32(size) * 0.8, Descent: float32(size) * 0.2}
	}
}

// Rasterize renders glyph id at size pixels into an alpha mask.
//
// For outline sources id is a glyph index; for bitmap sources it is the
// code point. Space sources have no pixels and always return ErrNoPixels.
func (s *Source) Rasterize(id uint32, size int) (*GlyphImage, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	switch s.kind {
	case KindOutline:
		return s.outline.rasterize(s.name, id, size)
	case KindBitmap:
		return s.bitmap.rasterize(s.name, rune(id), size) //nolint:gosec // bitmap ids are code points
	case KindSpace:
		return nil, ErrNoPixels
	default:
		return rasterizeMissing(size), nil
	}
}

// NoiseGlyph returns a replacement for glyph id whose advance at size falls
// into the same whole-pixel class. The choice is a pure function of
// (id, size, seed). If no other glyph shares the class, id is returned.
func (s *Source) NoiseGlyph(id uint32, size int, seed uint32) uint32 {
	if size <= 0 || (s.kind != KindOutline && s.kind != KindBitmap) {
		return id
	}
	if s.noise == nil {
		s.noise = make(map[int]*noiseTable)
	}
	t, ok := s.noise[size]
	if !ok {
		t = buildNoiseTable(s, size)
		s.noise[size] = t
	}
	return t.pick(id, s.GlyphAdvance(id, size), seed)
}
