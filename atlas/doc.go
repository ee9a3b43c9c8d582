// Package atlas bakes glyphs into texture pages.
//
// A GlyphCache rasterizes glyphs from font sources on demand and packs
// them into fixed-size pages with a shelf allocator. Pixel data leaves the
// package only through an Uploader, which owns the physical textures:
//
//	up := atlas.NewImageUploader()
//	gc, _ := atlas.NewGlyphCache(up, atlas.DefaultConfig())
//	g := gc.Bake(src, 16, glyphID)
//	if tex, ok := gc.Texture(g.Page); ok {
//	    page := up.Page(tex.Page) // *image.Alpha
//	}
//
// A BakedGlyph refers to its page through a PageRef (slot plus cache
// generation), never through the texture itself. After Invalidate every
// outstanding PageRef stops resolving, and callers re-bake.
//
// GlyphCache is NOT safe for concurrent use.
package atlas
