package font

import "image"

// missing is the reserved sentinel. Its identity is 0, which no other
// source is ever assigned.
var missing = &Source{id: 0, kind: KindMissing, name: "Missing"}

// Missing returns the missing-glyph sentinel.
//
// Shaping with the sentinel produces a drawable hollow box whose advance is
// half the font size. Metrics-only consumers treat its advance as zero.
func Missing() *Source { return missing }

// MissingGlyph is the glyph id used with the missing-glyph sentinel.
const MissingGlyph uint32 = 0

func missingAdvance(size int) float32 {
	return float32(size) / 2
}

// rasterizeMissing draws a one-pixel hollow box sized to the cap height.
func rasterizeMissing(size int) *GlyphImage {
	w := max(3, size/2-2)
	h := max(3, size*7/10)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for x := range w {
		mask.Pix[x] = 0xFF
		mask.Pix[(h-1)*mask.Stride+x] = 0xFF
	}
	for y := range h {
		mask.Pix[y*mask.Stride] = 0xFF
		mask.Pix[y*mask.Stride+w-1] = 0xFF
	}
	return &GlyphImage{
		Mask:    mask,
		Bounds:  image.Rect(1, -h, 1+w, 0),
		Advance: missingAdvance(size),
	}
}
