package shape

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/segmenter"
)

// cluster is a grapheme cluster chars[start:end].
type cluster struct {
	start, end int
}

// sanitize returns chars with invalid runes replaced by U+FFFD so that the
// segmenters see well-formed text. The length is unchanged.
func sanitize(chars []rune) []rune {
	for i, r := range chars {
		if !utf8.ValidRune(r) {
			out := make([]rune, len(chars))
			copy(out, chars)
			for j := i; j < len(out); j++ {
				if !utf8.ValidRune(out[j]) {
					out[j] = utf8.RuneError
				}
			}
			return out
		}
	}
	return chars
}

// graphemes splits chars into grapheme clusters. Invalid runes always form
// a cluster of their own.
func graphemes(seg *segmenter.Segmenter, chars []rune) []cluster {
	clusters := make([]cluster, 0, len(chars))
	it := seg.GraphemeIterator()
	for it.Next() {
		g := it.Grapheme()
		start, end := g.Offset, g.Offset+len(g.Text)
		for start < end {
			next := start + 1
			if utf8.ValidRune(chars[start]) {
				for next < end && utf8.ValidRune(chars[next]) {
					next++
				}
			}
			clusters = append(clusters, cluster{start, next})
			start = next
		}
	}
	return clusters
}

// lineBoundaries returns the line break opportunities of the segmented
// text, dropping those strictly inside NoBreak spans. The result always
// ends with len(chars).
func lineBoundaries(seg *segmenter.Segmenter, text *StyledText) []int {
	n := len(text.Text)
	bounds := make([]int, 0, 8)
	it := seg.LineIterator()
	for it.Next() {
		line := it.Line()
		b := line.Offset + len(line.Text)
		if b < n && insideNoBreak(text.Spans, b) {
			continue
		}
		if len(bounds) > 0 && bounds[len(bounds)-1] >= b {
			continue
		}
		bounds = append(bounds, b)
	}
	if len(bounds) == 0 || bounds[len(bounds)-1] != n {
		bounds = append(bounds, n)
	}
	return bounds
}

func insideNoBreak(spans []Span, b int) bool {
	for i := range spans {
		sp := &spans[i]
		if sp.Style.NoBreak && sp.Start < b && b < sp.End {
			return true
		}
	}
	return false
}
