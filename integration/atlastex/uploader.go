// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlastex

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/atlas"
)

var (
	// ErrNilProvider is returned when nil provider is passed to New.
	ErrNilProvider = errors.New("atlastex: provider is nil")

	// ErrNilCreator is returned by Flush without a TextureCreator.
	ErrNilCreator = errors.New("atlastex: texture creator is nil")

	// ErrClosed is returned for operations on a closed Uploader.
	ErrClosed = errors.New("atlastex: uploader is closed")
)

// Format is the pixel format of staged pages.
var Format = gputypes.TextureFormatRGBA8Unorm

// TextureCreator creates GPU textures from RGBA pixel data.
type TextureCreator interface {
	NewTextureFromRGBA(width, height int, data []byte) (any, error)
}

// CreatorFunc adapts a function to TextureCreator.
type CreatorFunc func(width, height int, data []byte) (any, error)

// NewTextureFromRGBA implements TextureCreator.
func (f CreatorFunc) NewTextureFromRGBA(width, height int, data []byte) (any, error) {
	return f(width, height, data)
}

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// page is the CPU staging copy of one atlas page.
type page struct {
	width, height int
	pix           []byte // premultiplied RGBA
	texture       any
	dirty         bool
}

// Uploader stages atlas pages and mirrors them into GPU textures.
type Uploader struct {
	provider gpucontext.DeviceProvider
	pages    []*page
	retired  []any // textures awaiting destruction at the next Flush
	closed   bool
}

// New creates an Uploader for the device behind provider.
func New(provider gpucontext.DeviceProvider) (*Uploader, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	textlayout.Logger().Debug("atlastex: uploader created", "surface_format", provider.SurfaceFormat())
	return &Uploader{provider: provider}, nil
}

// Provider returns the DeviceProvider the uploader was created with.
func (u *Uploader) Provider() gpucontext.DeviceProvider { return u.provider }

// NewPage implements atlas.Uploader.
func (u *Uploader) NewPage(slot, width, height int) error {
	if u.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("atlastex: invalid page size %dx%d", width, height)
	}
	for len(u.pages) <= slot {
		u.pages = append(u.pages, nil)
	}
	if old := u.pages[slot]; old != nil && old.texture != nil {
		u.retired = append(u.retired, old.texture)
	}
	u.pages[slot] = &page{
		width:  width,
		height: height,
		pix:    make([]byte, 4*width*height),
		dirty:  true,
	}
	return nil
}

// Upload implements atlas.Uploader. Coverage values become premultiplied
// white texels.
func (u *Uploader) Upload(slot, x, y, width, height int, pixels []byte) error {
	if u.closed {
		return ErrClosed
	}
	p := u.page(slot)
	if p == nil {
		return fmt.Errorf("%w: %d", atlas.ErrUnknownPage, slot)
	}
	if x < 0 || y < 0 || x+width > p.width || y+height > p.height || len(pixels) < width*height {
		return fmt.Errorf("atlastex: region %dx%d at (%d,%d) outside page %d", width, height, x, y, slot)
	}
	for row := range height {
		src := pixels[row*width : (row+1)*width]
		off := 4 * ((y+row)*p.width + x)
		dst := p.pix[off : off+4*width]
		for i, a := range src {
			dst[4*i+0] = a
			dst[4*i+1] = a
			dst[4*i+2] = a
			dst[4*i+3] = a
		}
	}
	p.dirty = true
	return nil
}

// Release implements atlas.Uploader. The page texture is destroyed at the
// next Flush.
func (u *Uploader) Release(slot int) {
	p := u.page(slot)
	if p == nil {
		return
	}
	if p.texture != nil {
		u.retired = append(u.retired, p.texture)
	}
	u.pages[slot] = nil
}

func (u *Uploader) page(slot int) *page {
	if slot < 0 || slot >= len(u.pages) {
		return nil
	}
	return u.pages[slot]
}

// Flush sends every dirty page to the GPU and destroys retired textures.
func (u *Uploader) Flush(creator TextureCreator) error {
	if u.closed {
		return ErrClosed
	}
	if creator == nil {
		return ErrNilCreator
	}
	destroyAll(u.retired)
	u.retired = u.retired[:0]

	for slot, p := range u.pages {
		if p == nil || !p.dirty {
			continue
		}
		if err := u.flushPage(creator, slot, p); err != nil {
			return err
		}
		p.dirty = false
	}
	return nil
}

func (u *Uploader) flushPage(creator TextureCreator, slot int, p *page) error {
	if p.texture != nil {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(p.pix); err != nil {
				return fmt.Errorf("atlastex: page %d update failed: %w", slot, err)
			}
			return nil
		}
		// Not updatable: replace it and retire the old one.
		u.retired = append(u.retired, p.texture)
		p.texture = nil
	}

	tex, err := creator.NewTextureFromRGBA(p.width, p.height, p.pix)
	if err != nil {
		return fmt.Errorf("atlastex: page %d texture creation failed: %w", slot, err)
	}
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	p.texture = tex
	textlayout.Logger().Debug("atlastex: page texture created", "page", slot, "width", p.width, "height", p.height)
	return nil
}

// Texture returns the GPU texture of a page, or nil before its first
// Flush.
func (u *Uploader) Texture(slot int) any {
	if p := u.page(slot); p != nil {
		return p.texture
	}
	return nil
}

// Pixels returns the staged RGBA pixels of a page, or nil.
func (u *Uploader) Pixels(slot int) []byte {
	if p := u.page(slot); p != nil {
		return p.pix
	}
	return nil
}

// Close destroys every texture. Close is idempotent.
func (u *Uploader) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	destroyAll(u.retired)
	u.retired = nil
	for _, p := range u.pages {
		if p != nil && p.texture != nil {
			destroyAll([]any{p.texture})
		}
	}
	u.pages = nil
	return nil
}

func destroyAll(textures []any) {
	for _, t := range textures {
		if d, ok := t.(textureDestroyer); ok {
			d.Destroy()
		}
	}
}
