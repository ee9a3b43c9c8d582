package textlayout

import (
	"encoding/binary"

	"github.com/gogpu/textlayout/shape"
)

// layoutKey identifies a cached layout.
type layoutKey struct {
	content string
	style   shape.Style
	flags   shape.ComputeFlags
}

// contentKey encodes text and spans into a string that is equal for two
// StyledTexts exactly when they shape identically.
//
// Runes are written as fixed 4-byte values rather than UTF-8 so that
// invalid runes stay distinct from U+FFFD. Replacement sources are
// recorded by identity.
func contentKey(text shape.StyledText) string {
	buf := make([]byte, 0, 4*len(text.Text)+8*len(text.Spans)+binary.MaxVarintLen64)
	buf = binary.AppendUvarint(buf, uint64(len(text.Text)))
	for _, r := range text.Text {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r)) //nolint:gosec // bit pattern
	}
	for i := range text.Spans {
		sp := &text.Spans[i]
		buf = binary.AppendVarint(buf, int64(sp.Start))
		buf = binary.AppendVarint(buf, int64(sp.End))
		buf = append(buf, byte(sp.Style.Flags))
		if sp.Style.NoBreak {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		var repl uint64
		if sp.Style.Replacement != nil {
			repl = sp.Style.Replacement.ID()
		}
		buf = binary.AppendUvarint(buf, repl)
	}
	return string(buf)
}
