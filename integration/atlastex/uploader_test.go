// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlastex

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/textlayout/atlas"
	"github.com/gogpu/textlayout/font"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// mockTexture is a texture without in-place updates.
type mockTexture struct {
	width, height int
	data          []byte
	destroyed     bool
	premultiplied bool
}

func (m *mockTexture) Destroy()                { m.destroyed = true }
func (m *mockTexture) SetPremultiplied(v bool) { m.premultiplied = v }

// updatableTexture supports gpucontext.TextureUpdater.
type updatableTexture struct {
	mockTexture
	updates int
}

func (m *updatableTexture) UpdateData(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.updates++
	return nil
}

type mockCreator struct {
	textures  []*mockTexture
	updatable []*updatableTexture
	canUpdate bool
	fail      bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (any, error) {
	if m.fail {
		return nil, errors.New("mock texture creation failed")
	}
	base := mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	if m.canUpdate {
		tex := &updatableTexture{mockTexture: base}
		m.updatable = append(m.updatable, tex)
		return tex, nil
	}
	tex := &base
	m.textures = append(m.textures, tex)
	return tex, nil
}

func newUploader(t *testing.T) *Uploader {
	t.Helper()
	up, err := New(&mockProvider{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = up.Close() })
	return up
}

func TestNewNilProvider(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("New(nil) error = %v, want ErrNilProvider", err)
	}
}

func TestUploadStagesPremultipliedWhite(t *testing.T) {
	up := newUploader(t)
	if err := up.NewPage(0, 4, 4); err != nil {
		t.Fatal(err)
	}
	if err := up.Upload(0, 1, 2, 2, 1, []byte{0x80, 0xFF}); err != nil {
		t.Fatal(err)
	}

	pix := up.Pixels(0)
	off := 4 * (2*4 + 1)
	want := []byte{0x80, 0x80, 0x80, 0x80, 0xFF, 0xFF, 0xFF, 0xFF}
	for i, b := range want {
		if pix[off+i] != b {
			t.Fatalf("staged pixels = %v, want %v", pix[off:off+8], want)
		}
	}
}

func TestUploadErrors(t *testing.T) {
	up := newUploader(t)
	if err := up.Upload(0, 0, 0, 1, 1, []byte{1}); !errors.Is(err, atlas.ErrUnknownPage) {
		t.Errorf("Upload to unknown page error = %v, want ErrUnknownPage", err)
	}
	if err := up.NewPage(0, 0, 4); err == nil {
		t.Error("NewPage with zero width should fail")
	}
	if err := up.NewPage(0, 4, 4); err != nil {
		t.Fatal(err)
	}
	if err := up.Upload(0, 3, 3, 2, 2, make([]byte, 4)); err == nil {
		t.Error("Upload outside the page should fail")
	}
}

func TestFlushCreatesThenRecreates(t *testing.T) {
	up := newUploader(t)
	creator := &mockCreator{}

	if err := up.NewPage(0, 4, 4); err != nil {
		t.Fatal(err)
	}
	if up.Texture(0) != nil {
		t.Error("Texture before Flush should be nil")
	}
	if err := up.Flush(creator); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(creator.textures) != 1 || up.Texture(0) != creator.textures[0] {
		t.Fatalf("Flush created %d textures", len(creator.textures))
	}
	if !creator.textures[0].premultiplied {
		t.Error("texture not marked premultiplied")
	}

	// Clean pages are not re-sent.
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 1 {
		t.Errorf("clean flush created %d textures, want 1", len(creator.textures))
	}

	// A non-updatable texture is replaced and destroyed one Flush later.
	if err := up.Upload(0, 0, 0, 1, 1, []byte{0xFF}); err != nil {
		t.Fatal(err)
	}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("dirty flush created %d textures, want 2", len(creator.textures))
	}
	if creator.textures[0].destroyed {
		t.Error("replaced texture destroyed in the same Flush")
	}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if !creator.textures[0].destroyed {
		t.Error("replaced texture not destroyed at the next Flush")
	}
}

func TestFlushUpdatesInPlace(t *testing.T) {
	up := newUploader(t)
	creator := &mockCreator{canUpdate: true}

	if err := up.NewPage(0, 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if err := up.Upload(0, 0, 0, 1, 1, []byte{0x40}); err != nil {
		t.Fatal(err)
	}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}

	if len(creator.updatable) != 1 {
		t.Fatalf("created %d textures, want 1", len(creator.updatable))
	}
	tex := creator.updatable[0]
	if tex.updates != 1 || tex.data[3] != 0x40 {
		t.Errorf("updates = %d, alpha = %#x; want 1, 0x40", tex.updates, tex.data[3])
	}
}

func TestFlushErrors(t *testing.T) {
	up := newUploader(t)
	if err := up.Flush(nil); !errors.Is(err, ErrNilCreator) {
		t.Errorf("Flush(nil) error = %v, want ErrNilCreator", err)
	}
	if err := up.NewPage(0, 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := up.Flush(&mockCreator{fail: true}); err == nil {
		t.Error("Flush should report texture creation failure")
	}
}

func TestReleaseAndClose(t *testing.T) {
	up, err := New(&mockProvider{})
	if err != nil {
		t.Fatal(err)
	}
	creator := &mockCreator{}
	for slot := range 2 {
		if err := up.NewPage(slot, 2, 2); err != nil {
			t.Fatal(err)
		}
	}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}

	up.Release(0)
	if up.Texture(0) != nil || up.Pixels(0) != nil {
		t.Error("released page still visible")
	}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if !creator.textures[0].destroyed {
		t.Error("released texture not destroyed at Flush")
	}

	if err := up.Close(); err != nil {
		t.Fatal(err)
	}
	if !creator.textures[1].destroyed {
		t.Error("Close did not destroy live textures")
	}
	if err := up.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if err := up.NewPage(0, 2, 2); !errors.Is(err, ErrClosed) {
		t.Errorf("NewPage after Close error = %v, want ErrClosed", err)
	}
}

func TestGlyphCacheIntegration(t *testing.T) {
	up := newUploader(t)
	gc, err := atlas.NewGlyphCache(up, atlas.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	g := gc.Bake(font.Missing(), 16, font.MissingGlyph)
	if g.Empty() {
		t.Fatal("missing glyph baked empty")
	}
	creator := &mockCreator{}
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(creator.textures))
	}

	gc.Invalidate()
	if err := up.Flush(creator); err != nil {
		t.Fatal(err)
	}
	if !creator.textures[0].destroyed {
		t.Error("Invalidate did not lead to texture destruction")
	}
}
