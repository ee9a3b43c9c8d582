package atlas

// GlyphKey identifies a baked glyph.
type GlyphKey struct {
	// Source is the font.Source identity.
	Source uint64

	// Size is the pixel size the glyph is rasterized at.
	Size int

	// ID is the source-local glyph id.
	ID uint32
}

// PageRef is an indirect reference to a page: a slot in the cache's page
// table plus the cache generation the slot belonged to when the glyph was
// baked. Resolve it with GlyphCache.Texture at draw time.
type PageRef struct {
	Slot       int
	Generation uint64
}

// BakedGlyph describes a glyph packed into a page.
type BakedGlyph struct {
	// U0, V0, U1, V1 are texture coordinates in [0, 1].
	U0, U1, V0, V1 float32

	// Left and Right are the horizontal extents from the pen position,
	// Up and Down the vertical extents from the baseline (Up is the
	// distance above, Down below). GlyphCache reports them in pixels of
	// the baked size; see Normalize.
	Left, Right, Up, Down float32

	// Page refers to the page the glyph lives on.
	Page PageRef
}

// Empty reports whether the glyph has no pixels.
// Empty glyphs are valid results; they draw nothing.
func (g BakedGlyph) Empty() bool {
	return g.U0 == g.U1 || g.V0 == g.V1
}

// Normalize returns g with its bearing box divided by resLevel, the
// pixels per normalized unit layouts are positioned in.
func (g BakedGlyph) Normalize(resLevel float32) BakedGlyph {
	if resLevel <= 0 {
		return g
	}
	g.Left /= resLevel
	g.Right /= resLevel
	g.Up /= resLevel
	g.Down /= resLevel
	return g
}

// Texture identifies the live backing texture of a page.
type Texture struct {
	// Page is the slot index the Uploader knows the page by.
	Page int

	// Width and Height are the page size in pixels.
	Width, Height int
}
