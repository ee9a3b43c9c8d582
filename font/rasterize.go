package font

import "image"

// GlyphImage represents a rasterized glyph.
// This contains the alpha mask and positioning information.
type GlyphImage struct {
	// Mask is the alpha coverage, with its origin at (0, 0).
	Mask *image.Alpha

	// Bounds is the mask rectangle relative to the glyph origin.
	// The origin is on the baseline at the pen position, Y grows downwards,
	// so Bounds.Min.Y is negative for glyphs above the baseline.
	Bounds image.Rectangle

	// Advance width in pixels.
	Advance float32
}

// Width returns the mask width in pixels.
func (g *GlyphImage) Width() int { return g.Bounds.Dx() }

// Height returns the mask height in pixels.
func (g *GlyphImage) Height() int { return g.Bounds.Dy() }
