package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// PCMFormat describes the raw sample layout ffmpeg should emit.
type PCMFormat struct {
	Format     string // ffmpeg -f value, e.g. s16le
	Codec      string // ffmpeg -acodec value, e.g. pcm_s16le
	SampleRate int
	Channels   int
}

// ErrUnsupportedBitDepth reports a bit depth with no matching PCM codec.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// PCMFormatForBitDepth maps a FLAC bit depth to the signed little-endian
// PCM layout matching the decoder's internal representation.
func PCMFormatForBitDepth(bitDepth, sampleRate, channels int) (PCMFormat, error) {
	var format, codec string
	switch bitDepth {
	case 16:
		format, codec = "s16le", "pcm_s16le"
	case 24:
		format, codec = "s24le", "pcm_s24le"
	case 32:
		format, codec = "s32le", "pcm_s32le"
	default:
		return PCMFormat{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	return PCMFormat{Format: format, Codec: codec, SampleRate: sampleRate, Channels: channels}, nil
}

// Option configures the CLI client.
type Option func(*Client)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// Client wraps the ffmpeg command line tool.
type Client struct {
	binary string
}

// NewClient constructs a Client using defaults.
func NewClient(opts ...Option) *Client {
	client := &Client{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ExtractPCM decodes inputPath into raw interleaved samples at outputPath
// using the exact format parameters carried by the source container.
func (c *Client) ExtractPCM(ctx context.Context, inputPath, outputPath string, format PCMFormat) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{
		"-v", "error", "-hide_banner", "-nostdin",
		"-i", inputPath,
		"-f", format.Format,
		"-acodec", format.Codec,
		"-ar", strconv.Itoa(format.SampleRate),
		"-ac", strconv.Itoa(format.Channels),
		"-y", outputPath,
	}
	return c.run(ctx, args)
}

// ReencodeFLAC re-encodes inputPath as FLAC at outputPath. The encoder
// computes the decoded-content MD5 signature as a side effect.
func (c *Client) ReencodeFLAC(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{
		"-v", "error", "-hide_banner", "-nostdin",
		"-i", inputPath,
		"-c:a", "flac",
		"-compression_level", "5",
		"-y", outputPath,
	}
	return c.run(ctx, args)
}

func (c *Client) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}
