package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveToTemp writes data to a fresh uniquely named file in the temp
// directory and returns its path.
func (d *Downloader) SaveToTemp(data []byte) (string, error) {
	path, err := d.tempPath("")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save to temp: %w", err)
	}
	return path, nil
}

// FetchToTemp downloads url into a uniquely named temp file, with an
// optional extension (without dot), and returns its path.
func (d *Downloader) FetchToTemp(ctx context.Context, url, extension string, opts Options) (string, error) {
	suffix := ""
	if extension != "" {
		suffix = "." + extension
	}
	path, err := d.tempPath(suffix)
	if err != nil {
		return "", err
	}
	if _, err := d.Fetch(ctx, url, path, opts); err != nil {
		return "", err
	}
	return path, nil
}

func (d *Downloader) tempPath(suffix string) (string, error) {
	dir := d.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure temp dir: %w", err)
	}
	return filepath.Join(dir, uuid.NewString()+suffix), nil
}
