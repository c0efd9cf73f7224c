package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiosum/internal/config"
)

func TestLoadDefaultsExpandPathsAndHonorEnvFFmpeg(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUDIOSUM_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantTemp := filepath.Join(tempHome, ".cache", "audiosum", "tmp")
	if cfg.Paths.TempDir != wantTemp {
		t.Fatalf("unexpected temp dir: got %q want %q", cfg.Paths.TempDir, wantTemp)
	}
	if cfg.Paths.SettingsPath != filepath.Join(tempHome, ".config", "audiosum", "settings.json") {
		t.Fatalf("unexpected settings path: %q", cfg.Paths.SettingsPath)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected ffmpeg from env, got %q", cfg.FFmpegBinary())
	}
	if cfg.Download.MaxRetries != 10 {
		t.Fatalf("unexpected max retries: %d", cfg.Download.MaxRetries)
	}
	if !cfg.Download.Progress {
		t.Fatal("expected progress enabled by default")
	}
	if cfg.Artwork.ShouldResize {
		t.Fatal("expected artwork resize disabled by default")
	}
	if cfg.Artwork.Format != "jpeg" {
		t.Fatalf("unexpected artwork format: %q", cfg.Artwork.Format)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesFileAndNormalizesAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
temp_dir = "` + filepath.Join(dir, "scratch") + `"

[artwork]
should_resize = true
format = "JPG"
compression = "HIGH"

[download]
chunk_size_kib = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Artwork.Format != "jpeg" {
		t.Fatalf("expected jpg alias normalized to jpeg, got %q", cfg.Artwork.Format)
	}
	if cfg.Artwork.Compression != "high" {
		t.Fatalf("expected compression lowercased, got %q", cfg.Artwork.Compression)
	}
	if !cfg.Artwork.ShouldResize {
		t.Fatal("expected should_resize true")
	}
	if cfg.Download.ChunkSizeKiB != 64 {
		t.Fatalf("expected zero chunk size replaced by default, got %d", cfg.Download.ChunkSizeKiB)
	}
}

func TestValidateRejectsUnknownArtworkFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[artwork]\nformat = \"webp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error for webp artwork format")
	}
	if !strings.Contains(err.Error(), "artwork.format") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Download.MaxRetries != 10 {
		t.Fatalf("unexpected sample retries: %d", cfg.Download.MaxRetries)
	}
}
