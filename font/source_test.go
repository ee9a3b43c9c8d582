package font

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func newRegular(t *testing.T) *Source {
	t.Helper()
	s, err := NewOutlineSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewOutlineSource(goregular) failed: %v", err)
	}
	return s
}

func newBitmap(t *testing.T) *Source {
	t.Helper()
	s, err := NewBitmapSourceFromFace("basic", basicfont.Face7x13)
	if err != nil {
		t.Fatalf("NewBitmapSourceFromFace failed: %v", err)
	}
	return s
}

func TestNewOutlineSource(t *testing.T) {
	s := newRegular(t)

	if s.Kind() != KindOutline {
		t.Errorf("Kind() = %v, want Outline", s.Kind())
	}
	if s.Name() != "Go" {
		t.Errorf("Name() = %q, want %q", s.Name(), "Go")
	}
	if s.Style() != StyleNormal {
		t.Errorf("Style() = %v, want Normal", s.Style())
	}
	if s.ID() == 0 {
		t.Error("ID() = 0, reserved for Missing")
	}
}

func TestNewOutlineSourceOptions(t *testing.T) {
	s, err := NewOutlineSource(gobold.TTF, WithSourceStyle(StyleBold), WithSourceName("Heading"))
	if err != nil {
		t.Fatalf("NewOutlineSource failed: %v", err)
	}
	if s.Style() != StyleBold {
		t.Errorf("Style() = %v, want Bold", s.Style())
	}
	if s.Name() != "Heading" {
		t.Errorf("Name() = %q, want %q", s.Name(), "Heading")
	}
}

func TestNewOutlineSourceErrors(t *testing.T) {
	if _, err := NewOutlineSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewOutlineSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewOutlineSource([]byte("not a font")); err == nil {
		t.Error("NewOutlineSource(garbage) should fail")
	}
}

func TestSourceIDsUnique(t *testing.T) {
	a := newRegular(t)
	b := newRegular(t)
	if a.ID() == b.ID() {
		t.Errorf("two sources share ID %d", a.ID())
	}
	if Missing().ID() != 0 {
		t.Errorf("Missing().ID() = %d, want 0", Missing().ID())
	}
}

func TestOutlineHasGlyph(t *testing.T) {
	s := newRegular(t)

	tests := []struct {
		r    rune
		want bool
	}{
		{'A', true},
		{'z', true},
		{'é', true},
		{'一', false},
		{'\U0001F600', false},
	}
	for _, tt := range tests {
		// Query twice to exercise the coverage cache.
		for range 2 {
			if got := s.HasGlyph(tt.r); got != tt.want {
				t.Errorf("HasGlyph(%U) = %v, want %v", tt.r, got, tt.want)
			}
		}
	}
}

func TestOutlineShapeRun(t *testing.T) {
	s := newRegular(t)

	adv, glyphs := s.ShapeRun([]rune("Hi"), Paint{Size: 16})
	if len(glyphs) != 2 {
		t.Fatalf("ShapeRun(Hi) returned %d glyphs, want 2", len(glyphs))
	}
	if adv <= 0 {
		t.Errorf("advance = %v, want > 0", adv)
	}
	if glyphs[0].ID == 0 || glyphs[1].ID == 0 {
		t.Errorf("glyph ids = %d, %d; want non-notdef", glyphs[0].ID, glyphs[1].ID)
	}
	if glyphs[1].X <= glyphs[0].X {
		t.Errorf("glyph X not increasing: %v, %v", glyphs[0].X, glyphs[1].X)
	}

	if adv, glyphs := s.ShapeRun(nil, Paint{Size: 16}); adv != 0 || glyphs != nil {
		t.Errorf("ShapeRun(nil) = %v, %v; want 0, nil", adv, glyphs)
	}
	if adv, glyphs := s.ShapeRun([]rune("x"), Paint{}); adv != 0 || glyphs != nil {
		t.Errorf("ShapeRun at size 0 = %v, %v; want 0, nil", adv, glyphs)
	}
}

func TestOutlineAdvanceScales(t *testing.T) {
	s := newRegular(t)
	_, glyphs := s.ShapeRun([]rune("M"), Paint{Size: 10})
	if len(glyphs) != 1 {
		t.Fatalf("ShapeRun(M) returned %d glyphs", len(glyphs))
	}
	id := uint32(glyphs[0].ID)

	a10 := s.GlyphAdvance(id, 10)
	a20 := s.GlyphAdvance(id, 20)
	if a10 <= 0 {
		t.Fatalf("GlyphAdvance(M, 10) = %v", a10)
	}
	if d := a20 - 2*a10; d < -0.1 || d > 0.1 {
		t.Errorf("GlyphAdvance(M, 20) = %v, want about %v", a20, 2*a10)
	}
}

func TestOutlineMetrics(t *testing.T) {
	s := newRegular(t)
	m := s.Metrics(20)
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("Metrics(20) = %+v, want positive ascent and descent", m)
	}
	if m.LineHeight() != m.Ascent+m.Descent {
		t.Errorf("LineHeight() = %v", m.LineHeight())
	}
}

func TestOutlineRasterize(t *testing.T) {
	s := newRegular(t)
	_, glyphs := s.ShapeRun([]rune("A "), Paint{Size: 24})
	if len(glyphs) != 2 {
		t.Fatalf("ShapeRun returned %d glyphs", len(glyphs))
	}

	img, err := s.Rasterize(uint32(glyphs[0].ID), 24)
	if err != nil {
		t.Fatalf("Rasterize(A) failed: %v", err)
	}
	if img.Width() <= 0 || img.Height() <= 0 {
		t.Fatalf("Rasterize(A) bounds = %v", img.Bounds)
	}
	if img.Bounds.Min.Y >= 0 {
		t.Errorf("Bounds.Min.Y = %d, want negative (above baseline)", img.Bounds.Min.Y)
	}
	if img.Mask.Bounds() != image.Rect(0, 0, img.Width(), img.Height()) {
		t.Errorf("Mask bounds = %v, want origin-based %dx%d", img.Mask.Bounds(), img.Width(), img.Height())
	}
	if isBlank(img.Mask) {
		t.Error("Rasterize(A) produced an empty mask")
	}

	if _, err := s.Rasterize(uint32(glyphs[1].ID), 24); !errors.Is(err, ErrNoPixels) {
		t.Errorf("Rasterize(space) error = %v, want ErrNoPixels", err)
	}

	var notFound *GlyphNotFoundError
	if _, err := s.Rasterize(60000, 24); !errors.As(err, &notFound) {
		t.Errorf("Rasterize(60000) error = %v, want GlyphNotFoundError", err)
	}
	if _, err := s.Rasterize(uint32(glyphs[0].ID), 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Rasterize at size 0 error = %v, want ErrInvalidSize", err)
	}
}

func TestBitmapSourceFromFace(t *testing.T) {
	s := newBitmap(t)

	if s.Kind() != KindBitmap {
		t.Errorf("Kind() = %v, want Bitmap", s.Kind())
	}
	if !s.HasGlyph('A') || s.HasGlyph('一') {
		t.Error("HasGlyph coverage mismatch")
	}

	g, ok := s.GlyphInfo('A')
	if !ok {
		t.Fatal("GlyphInfo(A) not found")
	}
	if g.Width() != 6 || g.Height() != 13 || g.Ascent != 11 || g.Advance != 7 {
		t.Errorf("GlyphInfo(A) = %+v, want 6x13 ascent 11 advance 7", g)
	}

	tests := []struct {
		size int
		want float32
	}{
		{13, 7},
		{26, 14},
	}
	for _, tt := range tests {
		if got := s.GlyphAdvance('A', tt.size); got != tt.want {
			t.Errorf("GlyphAdvance(A, %d) = %v, want %v", tt.size, got, tt.want)
		}
	}

	m := s.Metrics(13)
	if m.Ascent != 11 || m.Descent != 2 {
		t.Errorf("Metrics(13) = %+v, want {11 2}", m)
	}

	if _, ok := s.Advance('A'); ok {
		t.Error("Advance on a bitmap source should report false")
	}
}

func TestBitmapRasterize(t *testing.T) {
	s := newBitmap(t)

	img, err := s.Rasterize('A', 13)
	if err != nil {
		t.Fatalf("Rasterize(A, 13) failed: %v", err)
	}
	if want := image.Rect(0, -11, 6, 2); img.Bounds != want {
		t.Errorf("Bounds = %v, want %v", img.Bounds, want)
	}

	img, err = s.Rasterize('A', 26)
	if err != nil {
		t.Fatalf("Rasterize(A, 26) failed: %v", err)
	}
	if want := image.Rect(0, -22, 12, 4); img.Bounds != want {
		t.Errorf("scaled Bounds = %v, want %v", img.Bounds, want)
	}

	if _, err := s.Rasterize(' ', 13); !errors.Is(err, ErrNoPixels) {
		t.Errorf("Rasterize(space) error = %v, want ErrNoPixels", err)
	}
	var notFound *GlyphNotFoundError
	if _, err := s.Rasterize('一', 13); !errors.As(err, &notFound) {
		t.Errorf("Rasterize(U+4E00) error = %v, want GlyphNotFoundError", err)
	}
}

func TestNewBitmapSourceErrors(t *testing.T) {
	sheet := image.NewAlpha(image.Rect(0, 0, 8, 8))

	if _, err := NewBitmapSource("b", nil, 6, 2, nil); !errors.Is(err, ErrNilSheet) {
		t.Errorf("nil sheet error = %v, want ErrNilSheet", err)
	}
	if _, err := NewBitmapSource("b", sheet, 0, 0, nil); err == nil {
		t.Error("zero em should fail")
	}
	glyphs := map[rune]BitmapGlyph{'x': {Region: image.Rect(4, 4, 12, 12)}}
	if _, err := NewBitmapSource("b", sheet, 6, 2, glyphs); err == nil {
		t.Error("region outside sheet should fail")
	}

	solid := BitmapGlyph{Region: image.Rect(0, 0, 8, 8)}
	for _, key := range []rune{-1, MaxBitmapKey + 1, 0x1000041} {
		glyphs := map[rune]BitmapGlyph{key: solid}
		if _, err := NewBitmapSource("b", sheet, 6, 2, glyphs); !errors.Is(err, ErrBitmapKeyRange) {
			t.Errorf("key %#x error = %v, want ErrBitmapKeyRange", key, err)
		}
	}
	if _, err := NewBitmapSource("b", sheet, 6, 2, map[rune]BitmapGlyph{MaxBitmapKey: solid}); err != nil {
		t.Errorf("key MaxBitmapKey failed: %v", err)
	}
}

func TestBitmapPrivateCodePoint(t *testing.T) {
	sheet := image.NewAlpha(image.Rect(0, 0, 8, 8))
	for i := range sheet.Pix {
		sheet.Pix[i] = 0xFF
	}
	// Lone surrogate values are not valid Unicode but may index a sheet.
	const private rune = 0xD800
	s, err := NewBitmapSource("icons", sheet, 6, 2, map[rune]BitmapGlyph{
		private: {Region: image.Rect(0, 0, 8, 8), Ascent: 6, Advance: 8},
	})
	if err != nil {
		t.Fatalf("NewBitmapSource failed: %v", err)
	}
	if !s.HasGlyph(private) {
		t.Error("HasGlyph(U+D800) = false")
	}
	if _, err := s.Rasterize(uint32(private), 8); err != nil {
		t.Errorf("Rasterize(U+D800) failed: %v", err)
	}
}

func TestSpaceSource(t *testing.T) {
	s := NewSpaceSource("spaces", DefaultSpaces())

	if s.Kind() != KindSpace {
		t.Errorf("Kind() = %v, want Space", s.Kind())
	}
	if !s.HasGlyph(' ') || s.HasGlyph('A') {
		t.Error("HasGlyph coverage mismatch")
	}
	if adv, ok := s.Advance(' '); !ok || adv != 1 {
		t.Errorf("Advance(EM SPACE) = %v, %v; want 1, true", adv, ok)
	}
	if got := s.GlyphAdvance(' ', 16); got != 4 {
		t.Errorf("GlyphAdvance(space, 16) = %v, want 4", got)
	}
	if _, err := s.Rasterize(' ', 16); !errors.Is(err, ErrNoPixels) {
		t.Errorf("Rasterize error = %v, want ErrNoPixels", err)
	}
	if adv, glyphs := s.ShapeRun([]rune(" "), Paint{Size: 16}); adv != 0 || glyphs != nil {
		t.Errorf("ShapeRun on space source = %v, %v; want 0, nil", adv, glyphs)
	}
}

func TestMissingSource(t *testing.T) {
	m := Missing()

	if m != Missing() {
		t.Error("Missing() is not a singleton")
	}
	if m.Kind() != KindMissing {
		t.Errorf("Kind() = %v, want Missing", m.Kind())
	}
	if m.HasGlyph('A') {
		t.Error("Missing().HasGlyph should be false")
	}
	if got := m.GlyphAdvance(MissingGlyph, 16); got != 8 {
		t.Errorf("GlyphAdvance(16) = %v, want 8", got)
	}
	img, err := m.Rasterize(MissingGlyph, 16)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if img.Width() <= 0 || img.Height() <= 0 || isBlank(img.Mask) {
		t.Errorf("missing glyph image is empty: %v", img.Bounds)
	}
	if img.Bounds.Max.X > int(img.Advance) {
		t.Errorf("box right edge %d exceeds advance %v", img.Bounds.Max.X, img.Advance)
	}
}

func TestNoiseGlyphBitmap(t *testing.T) {
	s := newBitmap(t)

	for _, r := range "Hello" {
		id := uint32(r)
		for seed := range uint32(8) {
			got := s.NoiseGlyph(id, 13, seed)
			if got == id {
				t.Errorf("NoiseGlyph(%q, seed %d) returned the input glyph", r, seed)
			}
			if s.GlyphAdvance(got, 13) != s.GlyphAdvance(id, 13) {
				t.Errorf("NoiseGlyph(%q) changed the advance", r)
			}
			if again := s.NoiseGlyph(id, 13, seed); again != got {
				t.Errorf("NoiseGlyph not deterministic: %d then %d", got, again)
			}
		}
	}
}

func TestNoiseGlyphOutline(t *testing.T) {
	s := newRegular(t)
	_, glyphs := s.ShapeRun([]rune("o"), Paint{Size: 16})
	id := uint32(glyphs[0].ID)

	for seed := range uint32(16) {
		got := s.NoiseGlyph(id, 16, seed)
		if advanceClass(s.GlyphAdvance(got, 16)) != advanceClass(s.GlyphAdvance(id, 16)) {
			t.Errorf("NoiseGlyph(o, seed %d) = %d with a different advance class", seed, got)
		}
	}
}

func TestNoiseGlyphUnsupported(t *testing.T) {
	s := NewSpaceSource("spaces", DefaultSpaces())
	if got := s.NoiseGlyph(' ', 16, 3); got != ' ' {
		t.Errorf("NoiseGlyph on space source = %d, want unchanged", got)
	}
}

func TestNoiseSeed(t *testing.T) {
	if NoiseSeed(0, 'a') == NoiseSeed(1, 'a') {
		t.Error("NoiseSeed ignores position")
	}
	if NoiseSeed(3, 'a') != NoiseSeed(3, 'a') {
		t.Error("NoiseSeed not deterministic")
	}
}

func TestCoverageMap(t *testing.T) {
	m := newCoverageMap()

	if _, checked := m.get('A'); checked {
		t.Error("unqueried rune reported as checked")
	}
	m.set('A', true)
	m.set('B', false)
	m.set(0x10FFFF, true)

	tests := []struct {
		r            rune
		has, checked bool
	}{
		{'A', true, true},
		{'B', false, true},
		{'C', false, false},
		{0x10FFFF, true, true},
	}
	for _, tt := range tests {
		has, checked := m.get(tt.r)
		if has != tt.has || checked != tt.checked {
			t.Errorf("get(%U) = %v, %v; want %v, %v", tt.r, has, checked, tt.has, tt.checked)
		}
	}

	m.set('A', false)
	if has, checked := m.get('A'); has || !checked {
		t.Error("set(A, false) did not clear hasGlyph")
	}
}

func TestKindAndStyleString(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{KindOutline.String(), "Outline"},
		{KindBitmap.String(), "Bitmap"},
		{KindSpace.String(), "Space"},
		{KindMissing.String(), "Missing"},
		{Kind(99).String(), "Unknown"},
		{StyleNormal.String(), "Normal"},
		{StyleBoldItalic.String(), "BoldItalic"},
		{Style(8).String(), "Unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func loadGoFamily(t *testing.T) *Family {
	t.Helper()
	regular := newRegular(t)
	bold, err := NewOutlineSource(gobold.TTF, WithSourceStyle(StyleBold))
	if err != nil {
		t.Fatal(err)
	}
	italic, err := NewOutlineSource(goitalic.TTF, WithSourceStyle(StyleItalic))
	if err != nil {
		t.Fatal(err)
	}
	return NewFamily("Go", regular, bold, italic)
}
