package shape

import (
	"golang.org/x/text/unicode/bidi"
)

// needsBidi reports whether chars contain right-to-left characters.
func needsBidi(chars []rune) bool {
	for _, r := range chars {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL, bidi.AN:
			return true
		}
	}
	return false
}

// isParagraphSeparator reports whether r ends a bidi paragraph.
func isParagraphSeparator(r rune) bool {
	return r == '\n' || r == '\u2029'
}

// bidiLevels returns the embedding level of every char, or nil when the
// whole text is left-to-right. Each paragraph is resolved on its own; its
// separator takes the paragraph level.
//
// Levels are simplified to three values: 0 for LTR text in an LTR
// paragraph, 1 for RTL text, 2 for LTR text in an RTL paragraph.
func bidiLevels(chars []rune, rtl bool) []uint8 {
	if !rtl && !needsBidi(chars) {
		return nil
	}
	levels := make([]uint8, len(chars))
	start := 0
	for i := 0; i <= len(chars); i++ {
		if i < len(chars) && !isParagraphSeparator(chars[i]) {
			continue
		}
		end := min(i+1, len(chars))
		paragraphLevels(chars[start:end], rtl, levels[start:end])
		start = end
	}
	return levels
}

// paragraphLevels resolves one paragraph at the caller's direction.
// x/text only honors an explicit right-to-left default and otherwise takes
// the direction from the first strong character, so the paragraph is
// prefixed with a strong mark (LRM or RLM) whose level is dropped.
func paragraphLevels(chars []rune, rtl bool, levels []uint8) {
	base, dir, mark := uint8(0), bidi.LeftToRight, '\u200e'
	if rtl {
		base, dir, mark = 1, bidi.RightToLeft, '\u200f'
	}
	for i := range levels {
		levels[i] = base
	}
	if len(chars) == 0 {
		return
	}

	// x/text/unicode/bidi is not hardened against every input.
	defer func() {
		if r := recover(); r != nil {
			slogger().Warn("shape: bidi resolution failed, using paragraph direction", "panic", r)
			for i := range levels {
				levels[i] = base
			}
		}
	}()

	var p bidi.Paragraph
	if _, err := p.SetString(string(mark)+string(chars), bidi.DefaultDirection(dir)); err != nil {
		return
	}
	ordering, err := p.Order()
	if err != nil {
		return
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		lo, hi := run.Pos()
		level := base
		if run.Direction() == bidi.RightToLeft {
			level = 1
		} else if rtl {
			level = 2
		}
		// Positions count the mark.
		for j := max(lo-1, 0); j < hi && j < len(levels); j++ {
			if !isParagraphSeparator(chars[j]) {
				levels[j] = level
			}
		}
	}
}

// visualOrder returns the display order of items with the given levels,
// reversing every maximal run at or above each odd level from the highest
// level down (UAX #9 rule L2). Runs never cross a paragraph separator.
func visualOrder(levels []uint8, paragraphEnd []bool) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	levels = append([]uint8(nil), levels...)
	start := 0
	for i := range levels {
		if !paragraphEnd[i] && i != len(levels)-1 {
			continue
		}
		reorderParagraph(order[start:i+1], levels[start:i+1])
		start = i + 1
	}
	return order
}

func reorderParagraph(order []int, levels []uint8) {
	var highest uint8
	lowestOdd := uint8(255)
	for _, l := range levels {
		highest = max(highest, l)
		if l%2 == 1 {
			lowestOdd = min(lowestOdd, l)
		}
	}
	if lowestOdd == 255 {
		return
	}
	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(order); {
			if levels[i] < level {
				i++
				continue
			}
			j := i
			for j < len(order) && levels[j] >= level {
				j++
			}
			reverse(order[i:j])
			reverse(levels[i:j])
			i = j
		}
	}
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
