package atlas

import (
	"errors"
	"strconv"
)

var (
	// ErrNilUploader is returned by NewGlyphCache without an Uploader.
	ErrNilUploader = errors.New("atlas: uploader is nil")

	// ErrUnknownPage is returned by uploaders for a page they never created.
	ErrUnknownPage = errors.New("atlas: unknown page")
)

// PageLimitError is logged when a bake needs a page beyond MaxPages.
type PageLimitError struct {
	MaxPages int
}

func (e *PageLimitError) Error() string {
	return "atlas: page limit reached (max " + strconv.Itoa(e.MaxPages) + ")"
}

// GlyphTooLargeError is logged when a glyph does not fit on an empty page.
type GlyphTooLargeError struct {
	Width, Height, PageSize int
}

func (e *GlyphTooLargeError) Error() string {
	return "atlas: glyph " + strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height) +
		" exceeds page size " + strconv.Itoa(e.PageSize)
}
