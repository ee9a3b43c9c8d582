package font

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// SourceOption configures a Source at construction time.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	style Style
	name  string
}

// WithSourceStyle sets the style the source is registered with in a Family.
// The default is StyleNormal.
func WithSourceStyle(s Style) SourceOption {
	return func(c *sourceConfig) {
		c.style = s
	}
}

// WithSourceName overrides the family name read from the font data.
func WithSourceName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

func applySourceOptions(opts []SourceOption) sourceConfig {
	var c sourceConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// outlineFont is the payload of a KindOutline source.
//
// go-text/typesetting handles cmap lookups and shaping; the x/image sfnt
// parser provides metrics and glyph outlines for rasterization.
type outlineFont struct {
	face   *gtfont.Face
	sfnt   *sfnt.Font
	buf    sfnt.Buffer
	shaper shaping.HarfbuzzShaper

	coverage *coverageMap
	rast     *vector.Rasterizer
}

// NewOutlineSource parses TrueType/OpenType data into an outline source.
//
// The data is parsed twice: once by go-text/typesetting for shaping and
// once by golang.org/x/image for outlines. Both parsers keep references
// into data, which must not be modified afterwards.
func NewOutlineSource(data []byte, opts ...SourceOption) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := applySourceOptions(opts)

	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse outlines: %w", err)
	}

	name := cfg.name
	if name == "" {
		if n, nerr := sf.Name(nil, sfnt.NameIDFamily); nerr == nil && n != "" {
			name = n
		} else {
			name = "Outline"
		}
	}

	s := newSource(KindOutline, name, cfg.style)
	s.outline = &outlineFont{
		face:     face,
		sfnt:     sf,
		coverage: newCoverageMap(),
	}
	return s, nil
}

func (o *outlineFont) hasGlyph(r rune) bool {
	if has, checked := o.coverage.get(r); checked {
		return has
	}
	gid, ok := o.face.NominalGlyph(r)
	has := ok && gid != 0
	o.coverage.set(r, has)
	return has
}

// nominal returns the cmap glyph for r, or 0 (.notdef).
func (o *outlineFont) nominal(r rune) GlyphID {
	gid, ok := o.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return GlyphID(uint16(gid)) //nolint:gosec // TrueType glyph ids are 16-bit
}

func (o *outlineFont) shapeRun(runes []rune, paint Paint) (float32, []RunGlyph) {
	locale := paint.Locale
	if locale == "" {
		locale = "en"
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      o.face,
		Size:      fixed.Int26_6(paint.Size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage(locale),
	}
	out := o.shaper.Shape(input)
	if len(out.Glyphs) == 0 {
		return 0, nil
	}

	glyphs := make([]RunGlyph, len(out.Glyphs))
	var x float32
	for i, g := range out.Glyphs {
		glyphs[i] = RunGlyph{
			ID: GlyphID(uint16(g.GlyphID)), //nolint:gosec // TrueType glyph ids are 16-bit
			X:  x + fixedToFloat(g.XOffset),
			// go-text offsets are y-up.
			Y: -fixedToFloat(g.YOffset),
		}
		x += fixedToFloat(g.Advance)
	}
	return x, glyphs
}

func (o *outlineFont) glyphAdvance(gid GlyphID, size int) float32 {
	adv, err := o.sfnt.GlyphAdvance(&o.buf, sfnt.GlyphIndex(gid), fixed.I(size), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

func (o *outlineFont) metrics(size int) Metrics {
	m, err := o.sfnt.Metrics(&o.buf, fixed.I(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{Ascent: fixedToFloat(m.Ascent), Descent: fixedToFloat(m.Descent)}
}

// rasterize fills the glyph outline into an alpha mask.
// Segment coordinates from sfnt are in pixels with y increasing downwards.
func (o *outlineFont) rasterize(name string, id uint32, size int) (*GlyphImage, error) {
	if id > math.MaxUint16 || int(id) >= o.sfnt.NumGlyphs() {
		return nil, &GlyphNotFoundError{Source: name, ID: id}
	}
	gid := sfnt.GlyphIndex(id)
	ppem := fixed.I(size)

	bounds, advance, err := o.sfnt.GlyphBounds(&o.buf, gid, ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font: glyph %d bounds: %w", id, err)
	}
	rect := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
	if rect.Empty() {
		return nil, ErrNoPixels
	}

	segments, err := o.sfnt.LoadGlyph(&o.buf, gid, ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrNotFound) {
			return nil, &GlyphNotFoundError{Source: name, ID: id}
		}
		return nil, fmt.Errorf("font: glyph %d outline: %w", id, err)
	}
	if len(segments) == 0 {
		return nil, ErrNoPixels
	}

	w, h := rect.Dx(), rect.Dy()
	if o.rast == nil {
		o.rast = vector.NewRasterizer(w, h)
	} else {
		o.rast.Reset(w, h)
	}
	r := o.rast
	dx, dy := float32(-rect.Min.X), float32(-rect.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fixedToFloat(p.X) + dx, fixedToFloat(p.Y) + dy
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			r.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			r.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	r.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &GlyphImage{
		Mask:    mask,
		Bounds:  rect,
		Advance: fixedToFloat(advance),
	}, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
