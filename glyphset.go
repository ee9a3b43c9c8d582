package textlayout

import (
	"github.com/gogpu/textlayout/atlas"
	"github.com/gogpu/textlayout/font"
	"github.com/gogpu/textlayout/internal/cache"
)

// CodePointInfo describes how a single code point renders without
// shaping context.
type CodePointInfo struct {
	// Source is the source the code point resolves to in normal style.
	Source *font.Source

	// ID is the source-local glyph id. It is meaningful only when
	// Drawable is true.
	ID uint32

	// Advance is the advance in normalized units. Outline advances are
	// rounded up to whole units; missing code points advance by zero.
	Advance float32

	// Drawable reports whether the code point has a glyph to bake.
	Drawable bool
}

// codePoint is a memoized GlyphSet entry.
type codePoint struct {
	info  CodePointInfo
	glyph atlas.BakedGlyph
	baked bool
}

// GlyphSet maps single code points to metrics and baked glyphs, for hosts
// that lay out text one character at a time (fixed-grid consoles, legacy
// text paths). Entries are memoized until the engine reloads.
//
// Obfuscation and emoji replacement need shaping context and are not
// applied.
type GlyphSet struct {
	e       *Engine
	entries *cache.LRU[rune, *codePoint]
}

func newGlyphSet(e *Engine) *GlyphSet {
	return &GlyphSet{
		e:       e,
		entries: cache.New[rune, *codePoint](0),
	}
}

func (s *GlyphSet) clear() {
	s.entries.Clear()
}

// Len returns the number of memoized code points.
func (s *GlyphSet) Len() int { return s.entries.Len() }

// Info returns the metrics of r. r may be any rune value, including
// private code points served only by bitmap sources.
func (s *GlyphSet) Info(r rune) CodePointInfo {
	return s.entry(r).info
}

// Glyph returns the baked glyph of r. Space characters and outline code
// points without pixels return an empty glyph; code points no source
// covers return the baked missing glyph.
func (s *GlyphSet) Glyph(r rune) atlas.BakedGlyph {
	cp := s.entry(r)
	if !cp.baked {
		if cp.info.Drawable {
			cp.glyph = s.e.BakeGlyph(cp.info.Source, s.e.Size(), cp.info.ID)
		}
		cp.baked = true
	}
	return cp.glyph
}

func (s *GlyphSet) entry(r rune) *codePoint {
	return s.entries.GetOrInsert(r, func() *codePoint {
		return &codePoint{info: s.measure(r)}
	})
}

func (s *GlyphSet) measure(r rune) CodePointInfo {
	size := s.e.Size()
	res := s.e.ResolutionLevel()
	src := s.e.collection.Resolve(r, font.StyleNormal)
	info := CodePointInfo{Source: src}

	switch src.Kind() {
	case font.KindOutline:
		adv, run := src.ShapeRun([]rune{r}, font.Paint{Size: size})
		info.Advance = float32(int(adv/res + 0.95))
		if len(run) == 1 && run[0].ID != 0 {
			info.ID = uint32(run[0].ID)
			info.Drawable = true
		}
	case font.KindBitmap:
		info.ID = uint32(r) //nolint:gosec // code point
		info.Advance = src.GlyphAdvance(info.ID, size) / res
		info.Drawable = true
	case font.KindSpace:
		info.Advance = src.GlyphAdvance(uint32(r), size) / res //nolint:gosec // code point
	default:
		info.ID = font.MissingGlyph
		info.Drawable = true
	}
	return info
}
