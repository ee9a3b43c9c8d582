package textlayout

import (
	"github.com/gogpu/textlayout/atlas"
	"github.com/gogpu/textlayout/font"
	"github.com/gogpu/textlayout/shape"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := textlayout.New(collection,
//	    textlayout.WithResolutionLevel(2),
//	    textlayout.WithLayoutCacheLimit(4096),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	uploader    atlas.Uploader
	atlasConfig atlas.Config
	resLevel    float32
	baseSize    int
	layoutLimit int
	emoji       *font.Source
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		uploader:    nil, // an atlas.ImageUploader is created if nil
		atlasConfig: atlas.DefaultConfig(),
		resLevel:    1,
		baseSize:    shape.DefaultBaseFontSize,
	}
}

// WithUploader sets the destination of baked glyph pixels. The default is
// an atlas.ImageUploader, which keeps pages in memory.
//
// For GPU textures see integration/atlastex.
func WithUploader(up atlas.Uploader) Option {
	return func(o *options) {
		o.uploader = up
	}
}

// WithAtlasConfig sets the glyph cache configuration.
func WithAtlasConfig(cfg atlas.Config) Option {
	return func(o *options) {
		o.atlasConfig = cfg
	}
}

// WithResolutionLevel sets the factor from normalized units to pixels,
// typically the UI scale. The default is 1.
func WithResolutionLevel(level float32) Option {
	return func(o *options) {
		o.resLevel = level
	}
}

// WithBaseFontSize sets the pixel font size at resolution level 1.
// The default is shape.DefaultBaseFontSize.
func WithBaseFontSize(size int) Option {
	return func(o *options) {
		o.baseSize = size
	}
}

// WithLayoutCacheLimit bounds the layout cache to n entries with
// least-recently-used eviction. The default, 0, keeps every layout until
// the next reload.
func WithLayoutCacheLimit(n int) Option {
	return func(o *options) {
		o.layoutLimit = n
	}
}

// WithEmojiSource sets the source used for color emoji replacement when a
// span carries no replacement source of its own.
func WithEmojiSource(src *font.Source) Option {
	return func(o *options) {
		o.emoji = src
	}
}
