package font

// coverageMap memoizes cmap lookups for an outline source.
// Uses 2 bits per rune: (checked, hasGlyph).
//
// Each block covers 256 runes (512 bits = 64 bytes).
// Blocks are allocated on-demand only when a rune in that range is queried.
type coverageMap struct {
	blocks map[uint32]*coverageBlock // keyed by rune >> 8
}

// coverageBlock holds 256 runes, bit 0 = checked, bit 1 = hasGlyph.
type coverageBlock struct {
	bits [8]uint64
}

func newCoverageMap() *coverageMap {
	return &coverageMap{blocks: make(map[uint32]*coverageBlock)}
}

// get returns (hasGlyph, checked).
func (m *coverageMap) get(r rune) (hasGlyph, checked bool) {
	b, ok := m.blocks[uint32(r)>>8] //nolint:gosec // negative runes land in a high block
	if !ok {
		return false, false
	}
	word, pos := coverageBit(r)
	w := b.bits[word]
	return (w>>(pos+1))&1 != 0, (w>>pos)&1 != 0
}

// set records whether r has a glyph.
func (m *coverageMap) set(r rune, hasGlyph bool) {
	idx := uint32(r) >> 8 //nolint:gosec // see get
	b, ok := m.blocks[idx]
	if !ok {
		b = &coverageBlock{}
		m.blocks[idx] = b
	}
	word, pos := coverageBit(r)
	b.bits[word] |= 1 << pos
	if hasGlyph {
		b.bits[word] |= 1 << (pos + 1)
	} else {
		b.bits[word] &^= 1 << (pos + 1)
	}
}

func coverageBit(r rune) (word, pos uint32) {
	bit := (uint32(r) & 0xFF) * 2 //nolint:gosec // masked
	return bit / 64, bit % 64
}
