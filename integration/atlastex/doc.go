// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlastex uploads glyph atlas pages to GPU textures.
//
// Uploader implements atlas.Uploader. Glyph pixels baked by an
// atlas.GlyphCache (or a textlayout.Engine) are staged on the CPU as
// premultiplied RGBA and sent to the GPU in one batch per frame:
//
//	up, _ := atlastex.New(app.GPUContextProvider())
//	defer up.Close()
//	engine, _ := textlayout.New(collection, textlayout.WithUploader(up))
//
//	// per frame, after baking:
//	creator := atlastex.CreatorFunc(func(w, h int, data []byte) (any, error) {
//	    return dc.TextureCreator().NewTextureFromRGBA(w, h, data)
//	})
//	if err := up.Flush(creator); err != nil { ... }
//	tex := up.Texture(page) // draw glyph quads sampling tex
//
// # Texture lifetime
//
// Pages released by the glyph cache keep their texture until the next
// Flush, since in-flight command buffers may still sample it. Existing
// textures are updated in place when they implement
// gpucontext.TextureUpdater and recreated otherwise.
//
// # Thread Safety
//
// Uploader is NOT safe for concurrent use.
package atlastex
