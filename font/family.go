package font

// Family is an ordered group of sources that share a design and differ by
// style. Members are probed in the order they were given.
type Family struct {
	name    string
	members []*Source
}

// NewFamily creates a family from members in fallback order.
// Nil members are skipped.
func NewFamily(name string, members ...*Source) *Family {
	f := &Family{name: name, members: make([]*Source, 0, len(members))}
	for _, m := range members {
		if m != nil {
			f.members = append(f.members, m)
		}
	}
	return f
}

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// Members returns the member sources. The slice must not be modified.
func (f *Family) Members() []*Source { return f.members }

// HasGlyph reports whether any member covers r.
func (f *Family) HasGlyph(r rune) bool {
	for _, m := range f.members {
		if m.HasGlyph(r) {
			return true
		}
	}
	return false
}

// ClosestMatch returns the member whose style best matches s: an exact
// match, then one with the same weight, then one with the same slant, then
// the normal member, then the first member. It returns nil for an empty
// family.
func (f *Family) ClosestMatch(s Style) *Source {
	if len(f.members) == 0 {
		return nil
	}
	var weight, slant, normal *Source
	for _, m := range f.members {
		ms := m.Style()
		switch {
		case ms == s:
			return m
		case weight == nil && ms.IsBold() == s.IsBold():
			weight = m
		case slant == nil && ms.IsItalic() == s.IsItalic():
			slant = m
		}
		if normal == nil && ms == StyleNormal {
			normal = m
		}
	}
	switch {
	case weight != nil:
		return weight
	case slant != nil:
		return slant
	case normal != nil:
		return normal
	default:
		return f.members[0]
	}
}

// resolve picks the member used to render r in style s.
// Bitmap members are probed first, then the closest style match, then the
// remaining members in order.
func (f *Family) resolve(r rune, s Style) *Source {
	for _, m := range f.members {
		if m.kind == KindBitmap && m.HasGlyph(r) {
			return m
		}
	}
	if m := f.ClosestMatch(s); m != nil && m.kind != KindBitmap && m.HasGlyph(r) {
		return m
	}
	for _, m := range f.members {
		if m.kind != KindBitmap && m.HasGlyph(r) {
			return m
		}
	}
	return nil
}
