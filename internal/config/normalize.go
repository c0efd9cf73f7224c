package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeDownload()
	c.normalizeArtwork()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SettingsPath) == "" {
		c.Paths.SettingsPath = defaultSettingsPath
	}
	if c.Paths.SettingsPath, err = expandPath(c.Paths.SettingsPath); err != nil {
		return fmt.Errorf("paths.settings_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	if c.Tools.FFmpeg == "" {
		if value, ok := os.LookupEnv("AUDIOSUM_FFMPEG"); ok {
			c.Tools.FFmpeg = value
		}
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
}

func (c *Config) normalizeDownload() {
	if c.Download.MaxRetries < 0 {
		c.Download.MaxRetries = 0
	}
	if c.Download.RetryWaitSeconds <= 0 {
		c.Download.RetryWaitSeconds = defaultRetryWaitSeconds
	}
	if c.Download.ChunkSizeKiB <= 0 {
		c.Download.ChunkSizeKiB = defaultChunkSizeKiB
	}
	c.Download.UserAgent = strings.TrimSpace(c.Download.UserAgent)
	if c.Download.UserAgent == "" {
		c.Download.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeArtwork() {
	c.Artwork.Format = strings.ToLower(strings.TrimSpace(c.Artwork.Format))
	if c.Artwork.Format == "" {
		c.Artwork.Format = defaultArtworkFormat
	}
	// jpg is accepted as an alias on input.
	if c.Artwork.Format == "jpg" {
		c.Artwork.Format = "jpeg"
	}
	c.Artwork.Compression = strings.ToLower(strings.TrimSpace(c.Artwork.Compression))
	if c.Artwork.Compression == "" {
		c.Artwork.Compression = defaultArtworkTier
	}
	if c.Artwork.Resolution <= 0 {
		c.Artwork.Resolution = defaultArtworkRes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
