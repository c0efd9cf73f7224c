package download

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"audiosum/internal/config"
)

// Compression tiers map to JPEG quality values. PNG output ignores quality.
const (
	qualityLow  = 90
	qualityHigh = 70
)

// ProcessArtwork resizes and re-encodes the image at path in place using
// bicubic resampling to a square of the configured resolution.
func ProcessArtwork(path string, settings config.Artwork) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("artwork %s: %w", path, err)
	}
	img, _, err := image.Decode(file)
	closeErr := file.Close()
	if err != nil {
		return fmt.Errorf("artwork %s: %w", path, err)
	}
	if closeErr != nil {
		return fmt.Errorf("artwork %s: %w", path, closeErr)
	}

	side := uint(settings.Resolution)
	resized := resize.Resize(side, side, img, resize.Bicubic)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artwork %s: %w", path, err)
	}
	defer out.Close()

	switch settings.Format {
	case "png":
		err = png.Encode(out, resized)
	case "jpeg":
		quality := qualityLow
		if settings.Compression == "high" {
			quality = qualityHigh
		}
		err = jpeg.Encode(out, resized, &jpeg.Options{Quality: quality})
	default:
		err = fmt.Errorf("unsupported output format %q", settings.Format)
	}
	if err != nil {
		return fmt.Errorf("artwork %s: %w", path, err)
	}
	return out.Close()
}
