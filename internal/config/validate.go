package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	var problems []string

	switch c.Artwork.Format {
	case "jpeg", "png":
	default:
		problems = append(problems, fmt.Sprintf("artwork.format must be jpeg or png, got %q", c.Artwork.Format))
	}

	switch c.Artwork.Compression {
	case "low", "high":
	default:
		problems = append(problems, fmt.Sprintf("artwork.compression must be low or high, got %q", c.Artwork.Compression))
	}

	if c.Artwork.Resolution <= 0 {
		problems = append(problems, "artwork.resolution must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
