package font

// spaceFont is the payload of a KindSpace source.
type spaceFont struct {
	advances map[rune]float32
}

// NewSpaceSource creates a source that only supplies advances.
// Advances are fractions of the em: an entry of 0.25 advances a quarter of
// the requested pixel size.
func NewSpaceSource(name string, advances map[rune]float32, opts ...SourceOption) *Source {
	m := make(map[rune]float32, len(advances))
	for r, a := range advances {
		m[r] = a
	}
	cfg := applySourceOptions(opts)
	if cfg.name != "" {
		name = cfg.name
	}
	s := newSource(KindSpace, name, cfg.style)
	s.space = &spaceFont{advances: m}
	return s
}

// DefaultSpaces returns the advances of the common Unicode space characters.
func DefaultSpaces() map[rune]float32 {
	return map[rune]float32{
		'\u0020': 0.25,    // SPACE
		'\u00A0': 0.25,    // NO-BREAK SPACE
		'\u2000': 0.5,     // EN QUAD
		'\u2001': 1,       // EM QUAD
		'\u2002': 0.5,     // EN SPACE
		'\u2003': 1,       // EM SPACE
		'\u2004': 1.0 / 3, // THREE-PER-EM SPACE
		'\u2005': 0.25,    // FOUR-PER-EM SPACE
		'\u2006': 1.0 / 6, // SIX-PER-EM SPACE
		'\u2009': 0.2,     // THIN SPACE
		'\u200A': 0.1,     // HAIR SPACE
		'\u202F': 0.2,     // NARROW NO-BREAK SPACE
		'\u205F': 0.222,   // MEDIUM MATHEMATICAL SPACE
		'\u3000': 1,       // IDEOGRAPHIC SPACE
	}
}
