package atlas

import (
	"errors"

	"github.com/gogpu/textlayout/font"
)

// page is one entry of the page table.
type page struct {
	alloc  *ShelfAllocator
	glyphs int
}

// Stats contains glyph cache statistics.
type Stats struct {
	// Glyphs is the number of memoized glyphs, empty ones included.
	Glyphs int
	// Pages is the number of live pages.
	Pages int
	// Hits and Misses count Bake lookups.
	Hits, Misses uint64
	// Failures counts bakes that degraded to an empty glyph because of an
	// atlas or upload problem. Glyphs without pixels are not failures.
	Failures uint64
	// Generation is the current cache generation.
	Generation uint64
}

// GlyphCache memoizes baked glyphs and packs them into pages.
//
// GlyphCache is NOT safe for concurrent use.
type GlyphCache struct {
	cfg Config
	up  Uploader

	entries    map[GlyphKey]BakedGlyph
	pages      []*page
	generation uint64

	hits, misses, failures uint64

	// scratch holds tightly packed rows for uploads.
	scratch []byte
}

// NewGlyphCache creates a glyph cache that uploads through up.
func NewGlyphCache(up Uploader, cfg Config) (*GlyphCache, error) {
	if up == nil {
		return nil, ErrNilUploader
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GlyphCache{
		cfg:        cfg,
		up:         up,
		entries:    make(map[GlyphKey]BakedGlyph),
		generation: 1,
	}, nil
}

// Config returns the cache configuration.
func (c *GlyphCache) Config() Config { return c.cfg }

// Bake returns the baked glyph for (src, size, id), rasterizing and packing
// it on first use. It never fails: a glyph that cannot be rasterized or
// packed bakes to an empty glyph, which is memoized like any other.
func (c *GlyphCache) Bake(src *font.Source, size int, id uint32) BakedGlyph {
	if src == nil || size <= 0 {
		return BakedGlyph{}
	}
	key := GlyphKey{Source: src.ID(), Size: size, ID: id}
	if g, ok := c.entries[key]; ok {
		c.hits++
		return g
	}
	c.misses++

	g := c.bake(src, key)
	c.entries[key] = g
	return g
}

// Lookup returns a memoized glyph without baking.
func (c *GlyphCache) Lookup(key GlyphKey) (BakedGlyph, bool) {
	g, ok := c.entries[key]
	return g, ok
}

func (c *GlyphCache) bake(src *font.Source, key GlyphKey) BakedGlyph {
	img, err := src.Rasterize(key.ID, key.Size)
	if err != nil {
		if errors.Is(err, font.ErrNoPixels) {
			return BakedGlyph{}
		}
		slogger().Warn("atlas: rasterize failed", "source", src.Name(), "glyph", key.ID, "size", key.Size, "err", err)
		c.failures++
		return BakedGlyph{}
	}

	w, h := img.Width(), img.Height()
	slot, x, y, err := c.allocate(w, h)
	if err != nil {
		slogger().Warn("atlas: glyph dropped", "source", src.Name(), "glyph", key.ID, "size", key.Size, "err", err)
		c.failures++
		return BakedGlyph{}
	}

	if err := c.up.Upload(slot, x, y, w, h, c.packRows(img)); err != nil {
		slogger().Warn("atlas: upload failed", "page", slot, "err", err)
		c.failures++
		return BakedGlyph{}
	}
	c.pages[slot].glyphs++

	ps := float32(c.cfg.PageSize)
	return BakedGlyph{
		U0:    float32(x) / ps,
		V0:    float32(y) / ps,
		U1:    float32(x+w) / ps,
		V1:    float32(y+h) / ps,
		Left:  float32(img.Bounds.Min.X),
		Right: float32(img.Bounds.Max.X),
		Up:    float32(-img.Bounds.Min.Y),
		Down:  float32(img.Bounds.Max.Y),
		Page:  PageRef{Slot: slot, Generation: c.generation},
	}
}

// allocate reserves w×h on the active page, opening a new page when the
// active one is full. Earlier pages are never revisited.
func (c *GlyphCache) allocate(w, h int) (slot, x, y int, err error) {
	if n := len(c.pages); n > 0 {
		if x, y, ok := c.pages[n-1].alloc.Allocate(w, h); ok {
			return n - 1, x, y, nil
		}
	}

	probe := NewShelfAllocator(c.cfg.PageSize, c.cfg.PageSize, c.cfg.Padding)
	if !probe.CanFit(w, h) {
		return -1, 0, 0, &GlyphTooLargeError{Width: w, Height: h, PageSize: c.cfg.PageSize}
	}
	if len(c.pages) >= c.cfg.MaxPages {
		return -1, 0, 0, &PageLimitError{MaxPages: c.cfg.MaxPages}
	}

	slot = len(c.pages)
	if err := c.up.NewPage(slot, c.cfg.PageSize, c.cfg.PageSize); err != nil {
		return -1, 0, 0, err
	}
	c.pages = append(c.pages, &page{alloc: probe})
	slogger().Debug("atlas: new page", "slot", slot, "size", c.cfg.PageSize, "generation", c.generation)

	x, y, _ = probe.Allocate(w, h)
	return slot, x, y, nil
}

// packRows returns the mask pixels with rows packed to the mask width.
func (c *GlyphCache) packRows(img *font.GlyphImage) []byte {
	m := img.Mask
	w, h := m.Rect.Dx(), m.Rect.Dy()
	if m.Stride == w {
		return m.Pix[:w*h]
	}
	c.scratch = c.scratch[:0]
	for row := range h {
		off := row * m.Stride
		c.scratch = append(c.scratch, m.Pix[off:off+w]...)
	}
	return c.scratch
}

// Texture resolves a page reference to the live texture. It reports false
// for references from an earlier generation and for empty glyphs.
func (c *GlyphCache) Texture(ref PageRef) (Texture, bool) {
	if ref.Generation != c.generation || ref.Slot < 0 || ref.Slot >= len(c.pages) {
		return Texture{}, false
	}
	return Texture{Page: ref.Slot, Width: c.cfg.PageSize, Height: c.cfg.PageSize}, true
}

// Invalidate drops every baked glyph and page and starts a new generation.
func (c *GlyphCache) Invalidate() {
	for slot := range c.pages {
		c.up.Release(slot)
	}
	c.pages = c.pages[:0]
	clear(c.entries)
	c.generation++
	slogger().Debug("atlas: invalidated", "generation", c.generation)
}

// Pages returns the number of live pages.
func (c *GlyphCache) Pages() int { return len(c.pages) }

// Generation returns the current generation. It starts at 1 and grows by
// one on every Invalidate.
func (c *GlyphCache) Generation() uint64 { return c.generation }

// Utilization returns the fraction of page area in use on slot.
func (c *GlyphCache) Utilization(slot int) float64 {
	if slot < 0 || slot >= len(c.pages) {
		return 0
	}
	return c.pages[slot].alloc.Utilization()
}

// Stats returns cache statistics.
func (c *GlyphCache) Stats() Stats {
	return Stats{
		Glyphs:     len(c.entries),
		Pages:      len(c.pages),
		Hits:       c.hits,
		Misses:     c.misses,
		Failures:   c.failures,
		Generation: c.generation,
	}
}
