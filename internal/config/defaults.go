package config

const (
	defaultDownloadDir      = "~/.local/share/audiosum/downloads"
	defaultTempDir          = "~/.cache/audiosum/tmp"
	defaultLogDir           = "~/.local/share/audiosum/logs"
	defaultSettingsPath     = "~/.config/audiosum/settings.json"
	defaultMaxRetries       = 10
	defaultRetryWaitSeconds = 30
	defaultChunkSizeKiB     = 64
	defaultUserAgent        = "audiosum/dev"
	defaultArtworkRes       = 1400
	defaultArtworkFormat    = "jpeg"
	defaultArtworkTier      = "low"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir:  defaultDownloadDir,
			TempDir:      defaultTempDir,
			LogDir:       defaultLogDir,
			SettingsPath: defaultSettingsPath,
		},
		Download: Download{
			MaxRetries:       defaultMaxRetries,
			RetryWaitSeconds: defaultRetryWaitSeconds,
			ChunkSizeKiB:     defaultChunkSizeKiB,
			Progress:         true,
			UserAgent:        defaultUserAgent,
		},
		Artwork: Artwork{
			Resolution:  defaultArtworkRes,
			Format:      defaultArtworkFormat,
			Compression: defaultArtworkTier,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
