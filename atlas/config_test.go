package atlas

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"default", func(*Config) {}, ""},
		{"page too small", func(c *Config) { c.PageSize = 32 }, "PageSize"},
		{"page too large", func(c *Config) { c.PageSize = 16384 }, "PageSize"},
		{"page not power of 2", func(c *Config) { c.PageSize = 500 }, "PageSize"},
		{"negative padding", func(c *Config) { c.Padding = -1 }, "Padding"},
		{"huge padding", func(c *Config) { c.Padding = 9 }, "Padding"},
		{"no pages", func(c *Config) { c.MaxPages = 0 }, "MaxPages"},
		{"too many pages", func(c *Config) { c.MaxPages = 257 }, "MaxPages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestNewGlyphCacheErrors(t *testing.T) {
	if _, err := NewGlyphCache(nil, DefaultConfig()); !errors.Is(err, ErrNilUploader) {
		t.Errorf("nil uploader error = %v, want ErrNilUploader", err)
	}
	cfg := DefaultConfig()
	cfg.MaxPages = 0
	var cfgErr *ConfigError
	if _, err := NewGlyphCache(NewImageUploader(), cfg); !errors.As(err, &cfgErr) {
		t.Errorf("invalid config error = %v, want *ConfigError", err)
	}
}
