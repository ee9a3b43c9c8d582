package font

import "math"

// noiseFirst and noiseLast bound the printable ASCII range that supplies
// obfuscation glyphs.
const (
	noiseFirst = 0x21
	noiseLast  = 0x7E
)

// noiseTable groups candidate glyphs by whole-pixel advance.
type noiseTable struct {
	classes map[int][]uint32
}

func buildNoiseTable(s *Source, size int) *noiseTable {
	t := &noiseTable{classes: make(map[int][]uint32)}
	seen := make(map[uint32]bool)
	for r := rune(noiseFirst); r <= noiseLast; r++ {
		var id uint32
		switch s.kind {
		case KindOutline:
			if !s.outline.hasGlyph(r) {
				continue
			}
			id = uint32(s.outline.nominal(r))
		case KindBitmap:
			if _, ok := s.bitmap.glyphs[r]; !ok {
				continue
			}
			id = uint32(r)
		default:
			return t
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		class := advanceClass(s.GlyphAdvance(id, size))
		t.classes[class] = append(t.classes[class], id)
	}
	return t
}

// pick selects a glyph from the class of adv other than id when possible.
func (t *noiseTable) pick(id uint32, adv float32, seed uint32) uint32 {
	candidates := t.classes[advanceClass(adv)]
	n := uint32(len(candidates)) //nolint:gosec // at most 94 candidates
	if n < 2 {
		return id
	}
	i := seed % n
	if candidates[i] == id {
		i = (i + 1) % n
	}
	return candidates[i]
}

func advanceClass(adv float32) int {
	return int(math.Round(float64(adv)))
}

// NoiseSeed mixes a glyph position and code point into an obfuscation seed.
func NoiseSeed(pos int, r rune) uint32 {
	h := uint32(pos)*0x9E3779B1 ^ uint32(r)*0x85EBCA77 //nolint:gosec // hash input
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	return h
}
