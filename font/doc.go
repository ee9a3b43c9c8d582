// Package font models the glyph sources consulted by the text shaper.
//
// A Source is one of four kinds:
//
//   - KindOutline: a TrueType/OpenType font that can be shaped at any size
//   - KindBitmap: a pre-rendered glyph sheet on a fixed pixel grid
//   - KindSpace: advances only, no visual glyph (e.g. whitespace)
//   - KindMissing: the reserved missing-glyph sentinel returned by Missing
//
// Sources are grouped into a Family by style (normal, bold, italic,
// bold-italic), and families are ordered into a Collection that forms the
// fallback chain used during shaping:
//
//	regular, _ := font.NewOutlineSource(goregular.TTF)
//	bold, _ := font.NewOutlineSource(gobold.TTF, font.WithSourceStyle(font.StyleBold))
//	family := font.NewFamily("Go", regular, bold)
//	c, _ := font.NewCollection(family)
//
//	src := c.Resolve('A', font.StyleBold) // bold
//
// Operations on a Source dispatch on its Kind rather than through an
// interface so that the per-glyph lookups of the shaper stay direct calls.
//
// Sources are NOT safe for concurrent use. They keep scratch buffers and
// per-size tables that are mutated by lookups; all access is expected to
// happen on the thread that owns the layout engine.
package font
