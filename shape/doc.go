// Package shape turns styled text into a TextLayout.
//
// A Shaper resolves every grapheme cluster against a font.Collection,
// measures or shapes it with the resolved source, applies glyph
// substitutions (obfuscation, emoji and bitmap replacement), finds line
// break opportunities and reorders clusters for display:
//
//	s, _ := shape.NewShaper(collection, shape.WithResolutionLevel(2))
//	l := s.Shape(shape.Plain("Hello"), shape.Style{}, shape.ComputeAdvances)
//	fmt.Println(l.TotalAdvance(), len(l.Glyphs()))
//
// Advances and positions are in normalized units: pixels at the shaper's
// font size divided by the resolution level.
//
// Shaper is NOT safe for concurrent use; it shares font sources, whose
// lookups mutate internal caches.
package shape
