package font

// Collection is the ordered fallback chain of families consulted while
// shaping: the primary family first, then fallbacks.
type Collection struct {
	families []*Family
}

// NewCollection creates a collection from families in fallback order.
func NewCollection(families ...*Family) (*Collection, error) {
	c := &Collection{families: make([]*Family, 0, len(families))}
	for _, f := range families {
		if f == nil {
			continue
		}
		if len(f.members) == 0 {
			return nil, ErrEmptyFamily
		}
		c.families = append(c.families, f)
	}
	if len(c.families) == 0 {
		return nil, ErrEmptyFamilies
	}
	return c, nil
}

// Families returns the families in fallback order.
// The slice must not be modified.
func (c *Collection) Families() []*Family { return c.families }

// Len returns the number of families.
func (c *Collection) Len() int { return len(c.families) }

// Resolve returns the source that renders r in style s.
//
// The first family reporting HasGlyph wins; within it the member is picked
// by Family.resolve. A rune no family covers resolves to Missing.
func (c *Collection) Resolve(r rune, s Style) *Source {
	for _, f := range c.families {
		if !f.HasGlyph(r) {
			continue
		}
		if m := f.resolve(r, s); m != nil {
			return m
		}
	}
	return missing
}

// Primary returns the closest style match of the first family.
// The shaper uses it for line metrics.
func (c *Collection) Primary(s Style) *Source {
	return c.families[0].ClosestMatch(s)
}
