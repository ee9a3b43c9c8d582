package textlayout

import (
	"fmt"
	"math"

	"github.com/gogpu/textlayout/atlas"
	"github.com/gogpu/textlayout/font"
	"github.com/gogpu/textlayout/internal/cache"
	"github.com/gogpu/textlayout/shape"
)

// State is the lifecycle state of an Engine.
type State uint8

const (
	// StateReady means the engine serves lookups.
	StateReady State = iota
	// StateReloading means a reload is in progress.
	StateReloading
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateReloading:
		return "Reloading"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Stats contains engine statistics.
type Stats struct {
	// Generation is the engine generation.
	Generation uint64

	// Layouts is the number of cached layouts.
	Layouts int
	// LayoutHits and LayoutMisses count Lookup calls.
	LayoutHits, LayoutMisses uint64
	// LayoutEvictions counts layouts dropped by the cache limit.
	LayoutEvictions uint64

	// CodePoints is the number of memoized GlyphSet entries.
	CodePoints int

	// Atlas holds glyph cache statistics.
	Atlas atlas.Stats
}

// Engine shapes, caches and bakes text over one font collection.
//
// Engine is NOT safe for concurrent use.
type Engine struct {
	collection *font.Collection
	shaper     *shape.Shaper
	glyphs     *atlas.GlyphCache
	layouts    *cache.LRU[layoutKey, *shape.TextLayout]
	glyphSet   *GlyphSet

	opts       options
	state      State
	generation uint64
}

// New creates an engine over collection.
func New(collection *font.Collection, opts ...Option) (*Engine, error) {
	if collection == nil {
		return nil, ErrNilCollection
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !validResolution(o.resLevel) {
		return nil, ErrInvalidResolution
	}
	if o.uploader == nil {
		o.uploader = atlas.NewImageUploader()
	}

	shaper, err := newShaper(collection, o.resLevel, &o)
	if err != nil {
		return nil, err
	}
	cfg := o.atlasConfig
	glyphs, err := atlas.NewGlyphCache(o.uploader, cfg)
	if err != nil {
		return nil, fmt.Errorf("textlayout: %w", err)
	}

	e := &Engine{
		collection: collection,
		shaper:     shaper,
		glyphs:     glyphs,
		layouts:    cache.New[layoutKey, *shape.TextLayout](o.layoutLimit),
		opts:       o,
		state:      StateReady,
		generation: 1,
	}
	e.glyphSet = newGlyphSet(e)

	Logger().Info("textlayout: engine created",
		"families", collection.Len(),
		"resolution", o.resLevel,
		"size", shaper.Size(),
		"page_size", cfg.PageSize)
	return e, nil
}

func validResolution(level float32) bool {
	return level > 0 && !math.IsInf(float64(level), 0)
}

func newShaper(c *font.Collection, resLevel float32, o *options) (*shape.Shaper, error) {
	s, err := shape.NewShaper(c,
		shape.WithResolutionLevel(resLevel),
		shape.WithBaseFontSize(o.baseSize),
		shape.WithEmojiSource(o.emoji),
	)
	if err != nil {
		return nil, fmt.Errorf("textlayout: %w", err)
	}
	return s, nil
}

// Collection returns the current font collection.
func (e *Engine) Collection() *font.Collection { return e.collection }

// ResolutionLevel returns the current resolution level.
func (e *Engine) ResolutionLevel() float32 { return e.shaper.ResolutionLevel() }

// Size returns the pixel font size layouts are shaped and baked at.
func (e *Engine) Size() int { return e.shaper.Size() }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Generation returns the engine generation. It starts at 1 and grows by
// one on every Reload or Invalidate.
func (e *Engine) Generation() uint64 { return e.generation }

// GlyphCache returns the engine's glyph cache.
func (e *Engine) GlyphCache() *atlas.GlyphCache { return e.glyphs }

// GlyphSet returns the per-code-point glyph set.
func (e *Engine) GlyphSet() *GlyphSet { return e.glyphSet }

// Lookup returns the layout of text in style, shaping it on a cache miss.
// Repeated lookups of equal input between reloads return the same
// *shape.TextLayout.
//
// The returned layout is shared and must not be modified.
func (e *Engine) Lookup(text shape.StyledText, style shape.Style, flags shape.ComputeFlags) *shape.TextLayout {
	key := layoutKey{content: contentKey(text), style: style, flags: flags}
	return e.layouts.GetOrInsert(key, func() *shape.TextLayout {
		Logger().Debug("textlayout: layout miss", "chars", len(text.Text), "spans", len(text.Spans))
		return e.shaper.Shape(text, style, flags)
	})
}

// LookupString is Lookup for unstyled text.
func (e *Engine) LookupString(s string, style shape.Style, flags shape.ComputeFlags) *shape.TextLayout {
	return e.Lookup(shape.Plain(s), style, flags)
}

// Bake returns the baked form of glyph i of layout. Its bearing box is in
// the layout's normalized units, like the glyph position.
func (e *Engine) Bake(layout *shape.TextLayout, i int) atlas.BakedGlyph {
	g := layout.Glyph(i)
	return e.glyphs.Bake(g.Source, layout.Size(), g.ID).Normalize(layout.ResolutionLevel())
}

// BakeGlyph returns the baked form of glyph id of src at size pixels, with
// its bearing box in normalized units of the current resolution level.
func (e *Engine) BakeGlyph(src *font.Source, size int, id uint32) atlas.BakedGlyph {
	return e.glyphs.Bake(src, size, id).Normalize(e.ResolutionLevel())
}

// Texture resolves the page of a baked glyph. It reports false for glyphs
// baked before the last reload and for empty glyphs.
func (e *Engine) Texture(ref atlas.PageRef) (atlas.Texture, bool) {
	return e.glyphs.Texture(ref)
}

// Reload swaps the font collection and resolution level. Every cached
// layout and baked glyph is dropped.
//
// On error the engine is unchanged.
func (e *Engine) Reload(collection *font.Collection, resLevel float32) error {
	if e.state == StateReloading {
		return ErrReloading
	}
	if collection == nil {
		return ErrNilCollection
	}
	if !validResolution(resLevel) {
		return ErrInvalidResolution
	}
	shaper, err := newShaper(collection, resLevel, &e.opts)
	if err != nil {
		return err
	}

	e.state = StateReloading
	e.collection = collection
	e.shaper = shaper
	e.opts.resLevel = resLevel
	e.reset()
	e.state = StateReady

	Logger().Info("textlayout: reloaded",
		"generation", e.generation,
		"families", collection.Len(),
		"resolution", resLevel,
		"size", shaper.Size())
	return nil
}

// Invalidate drops every cached layout and baked glyph without changing
// fonts, for example after the host lost its textures.
func (e *Engine) Invalidate() error {
	if e.state == StateReloading {
		return ErrReloading
	}
	e.state = StateReloading
	e.reset()
	e.state = StateReady
	Logger().Debug("textlayout: invalidated", "generation", e.generation)
	return nil
}

// reset clears the caches together so stale glyph ids are never mixed
// with a fresh collection.
func (e *Engine) reset() {
	e.layouts.Clear()
	e.glyphSet.clear()
	e.glyphs.Invalidate()
	e.generation++
}

// Stats returns engine statistics.
func (e *Engine) Stats() Stats {
	ls := e.layouts.Stats()
	return Stats{
		Generation:      e.generation,
		Layouts:         ls.Len,
		LayoutHits:      ls.Hits,
		LayoutMisses:    ls.Misses,
		LayoutEvictions: ls.Evictions,
		CodePoints:      e.glyphSet.entries.Len(),
		Atlas:           e.glyphs.Stats(),
	}
}
