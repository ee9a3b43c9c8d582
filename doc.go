// Package textlayout shapes styled text into cached layouts and bakes
// their glyphs into texture pages.
//
// An Engine ties the pieces together. It owns a font.Collection, a
// shape.Shaper and an atlas.GlyphCache, and keeps a cache of layouts keyed
// by text content, style and the requested compute flags:
//
//	regular, _ := font.NewOutlineSource(goregular.TTF)
//	collection, _ := font.NewCollection(font.NewFamily("Go", regular))
//
//	e, _ := textlayout.New(collection, textlayout.WithResolutionLevel(2))
//	l := e.LookupString("Hello", shape.Style{}, shape.ComputeAll)
//	for i := range l.Glyphs() {
//	    g := e.Bake(l, i)
//	    if tex, ok := e.Texture(g.Page); ok {
//	        // draw quad (g.Left..g.Right, -g.Up..g.Down) at l.Glyph(i).X
//	        // sampling tex at (g.U0, g.V0)-(g.U1, g.V1)
//	        _ = tex
//	    }
//	}
//
// # Reloading
//
// Reload swaps the collection or the resolution level. It drops every
// cached layout, invalidates the glyph cache and bumps the engine
// generation, so glyph ids from one collection are never served against
// another. Baked glyphs held across a reload stop resolving through
// Texture and must be baked again.
//
// # Logging
//
// The package is silent by default. SetLogger enables log/slog output for
// textlayout and its sub-packages.
//
// # Concurrency
//
// Engine is NOT safe for concurrent use. Hosts drive it from one
// goroutine, typically the render loop.
package textlayout
