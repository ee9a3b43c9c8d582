package font

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// BitmapGlyph describes one glyph of a bitmap sheet, in sheet pixels.
type BitmapGlyph struct {
	// Region is the glyph rectangle within the sheet.
	Region image.Rectangle

	// Ascent is the distance from the baseline to the top of Region.
	Ascent int

	// Left is the horizontal bearing from the pen position to Region's
	// left edge.
	Left int

	// Advance is the horizontal pen advance.
	Advance int
}

// Width returns the width of the glyph in sheet pixels.
func (g BitmapGlyph) Width() int { return g.Region.Dx() }

// Height returns the height of the glyph in sheet pixels.
func (g BitmapGlyph) Height() int { return g.Region.Dy() }

// bitmapFont is the payload of a KindBitmap source.
type bitmapFont struct {
	sheet  image.Image
	ascent int
	em     int
	glyphs map[rune]BitmapGlyph
}

// MaxBitmapKey is the largest bitmap glyph key. Bitmap glyph ids are the
// keys themselves and layouts store ids in 24 bits.
const MaxBitmapKey rune = 1<<24 - 1

// NewBitmapSource creates a bitmap source from a glyph sheet.
//
// ascent and descent are the line metrics of the sheet in pixels; their sum
// is the design size, so a request for that pixel size renders the sheet
// 1:1 and other sizes are scaled with nearest-neighbour sampling.
//
// Glyph keys may be any value in [0, MaxBitmapKey], including code points
// that are not valid Unicode scalar values (private ranges used only by
// the sheet).
func NewBitmapSource(name string, sheet image.Image, ascent, descent int, glyphs map[rune]BitmapGlyph, opts ...SourceOption) (*Source, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}
	if ascent+descent <= 0 {
		return nil, fmt.Errorf("font: bitmap %q: non-positive em (ascent %d, descent %d)", name, ascent, descent)
	}
	sb := sheet.Bounds()
	m := make(map[rune]BitmapGlyph, len(glyphs))
	for r, g := range glyphs {
		if r < 0 || r > MaxBitmapKey {
			return nil, fmt.Errorf("font: bitmap %q: glyph key %#x: %w", name, r, ErrBitmapKeyRange)
		}
		if !g.Region.In(sb) {
			return nil, fmt.Errorf("font: bitmap %q: glyph %U region %v outside sheet %v", name, r, g.Region, sb)
		}
		m[r] = g
	}

	cfg := applySourceOptions(opts)
	if cfg.name != "" {
		name = cfg.name
	}
	s := newSource(KindBitmap, name, cfg.style)
	s.bitmap = &bitmapFont{
		sheet:  sheet,
		ascent: ascent,
		em:     ascent + descent,
		glyphs: m,
	}
	return s, nil
}

// NewBitmapSourceFromFace adapts a basicfont face into a bitmap source.
func NewBitmapSourceFromFace(name string, face *basicfont.Face, opts ...SourceOption) (*Source, error) {
	if face == nil || face.Mask == nil {
		return nil, ErrNilSheet
	}
	origin := face.Mask.Bounds().Min
	glyphs := make(map[rune]BitmapGlyph)
	for _, rr := range face.Ranges {
		for r := rr.Low; r < rr.High; r++ {
			row := (rr.Offset + int(r-rr.Low)) * face.Height
			glyphs[r] = BitmapGlyph{
				Region:  image.Rect(0, row, face.Width, row+face.Height).Add(origin),
				Ascent:  face.Ascent,
				Left:    face.Left,
				Advance: face.Advance,
			}
		}
	}
	return NewBitmapSource(name, face.Mask, face.Ascent, face.Descent, glyphs, opts...)
}

// scale returns the factor from sheet pixels to size pixels.
func (b *bitmapFont) scale(size int) float32 {
	return float32(size) / float32(b.em)
}

// rasterize cuts the glyph out of the sheet, scaled to size.
func (b *bitmapFont) rasterize(name string, r rune, size int) (*GlyphImage, error) {
	g, ok := b.glyphs[r]
	if !ok {
		return nil, &GlyphNotFoundError{Source: name, ID: uint32(r)} //nolint:gosec // code point
	}
	if g.Region.Empty() {
		return nil, ErrNoPixels
	}

	k := float64(size) / float64(b.em)
	w := max(1, int(math.Round(float64(g.Width())*k)))
	h := max(1, int(math.Round(float64(g.Height())*k)))
	left := int(math.Round(float64(g.Left) * k))
	top := -int(math.Round(float64(g.Ascent) * k))

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == g.Width() && h == g.Height() {
		draw.Copy(mask, image.Point{}, b.sheet, g.Region, draw.Src, nil)
	} else {
		draw.NearestNeighbor.Scale(mask, mask.Bounds(), b.sheet, g.Region, draw.Src, nil)
	}
	if isBlank(mask) {
		return nil, ErrNoPixels
	}

	return &GlyphImage{
		Mask:    mask,
		Bounds:  image.Rect(left, top, left+w, top+h),
		Advance: float32(g.Advance) * float32(k),
	}, nil
}

func isBlank(m *image.Alpha) bool {
	for _, a := range m.Pix {
		if a != 0 {
			return false
		}
	}
	return true
}
