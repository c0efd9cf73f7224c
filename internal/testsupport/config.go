package testsupport

import (
	"path/filepath"
	"testing"

	"audiosum/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DownloadDir = filepath.Join(base, "downloads")
	cfg.Paths.TempDir = filepath.Join(base, "tmp")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SettingsPath = filepath.Join(base, "settings.json")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithFFmpeg overrides the ffmpeg binary on the test config.
func WithFFmpeg(binary string) ConfigOption {
	return func(c *config.Config) {
		c.Tools.FFmpeg = binary
	}
}

// WithArtwork enables artwork post-processing with the given parameters.
func WithArtwork(resolution int, format, compression string) ConfigOption {
	return func(c *config.Config) {
		c.Artwork.ShouldResize = true
		c.Artwork.Resolution = resolution
		c.Artwork.Format = format
		c.Artwork.Compression = compression
	}
}
