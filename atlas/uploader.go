package atlas

import "image"

// Uploader receives page lifecycle events and packed glyph pixels.
// It owns the physical textures; the glyph cache only addresses pages by
// slot index.
type Uploader interface {
	// NewPage allocates backing storage for page slot. Pages are created
	// in increasing slot order, starting at 0 after every Release cycle.
	NewPage(page, width, height int) error

	// Upload writes an alpha-only region of width×height bytes, rows
	// packed without padding.
	Upload(page, x, y, width, height int, pixels []byte) error

	// Release drops the backing storage of page.
	Release(page int)
}

// ImageUploader keeps each page as an *image.Alpha in memory.
type ImageUploader struct {
	pages []*image.Alpha
}

// NewImageUploader creates an empty in-memory uploader.
func NewImageUploader() *ImageUploader {
	return &ImageUploader{}
}

// NewPage implements Uploader.
func (u *ImageUploader) NewPage(page, width, height int) error {
	for len(u.pages) <= page {
		u.pages = append(u.pages, nil)
	}
	u.pages[page] = image.NewAlpha(image.Rect(0, 0, width, height))
	return nil
}

// Upload implements Uploader.
func (u *ImageUploader) Upload(page, x, y, width, height int, pixels []byte) error {
	img := u.Page(page)
	if img == nil {
		return ErrUnknownPage
	}
	for row := range height {
		off := img.PixOffset(x, y+row)
		copy(img.Pix[off:off+width], pixels[row*width:(row+1)*width])
	}
	return nil
}

// Release implements Uploader.
func (u *ImageUploader) Release(page int) {
	if page >= 0 && page < len(u.pages) {
		u.pages[page] = nil
	}
}

// Page returns the image of page, or nil if it does not exist.
func (u *ImageUploader) Page(page int) *image.Alpha {
	if page < 0 || page >= len(u.pages) {
		return nil
	}
	return u.pages[page]
}

// Len returns the number of live pages.
func (u *ImageUploader) Len() int {
	n := 0
	for _, p := range u.pages {
		if p != nil {
			n++
		}
	}
	return n
}
