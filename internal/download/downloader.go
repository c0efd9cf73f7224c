package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"audiosum/internal/config"
	"audiosum/internal/fileutil"
	"audiosum/internal/logging"
)

// HTTPDoer describes the HTTP client used by the downloader.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options adjusts a single fetch.
type Options struct {
	Headers     map[string]string
	Progress    bool
	IndentLevel int
	// Artwork enables post-download image processing for this fetch using
	// the configured artwork settings.
	Artwork bool
}

// Result describes a completed fetch.
type Result struct {
	Path    string
	Skipped bool
	Bytes   int64
}

// Downloader streams URLs to disk with retry, optional progress display,
// and optional artwork post-processing.
type Downloader struct {
	client    HTTPDoer
	chunkSize int
	tempDir   string
	userAgent string
	artwork   config.Artwork
	logger    *slog.Logger
}

// New constructs a Downloader whose HTTP client retries transport errors
// and 429/5xx responses with backoff, per the download config.
func New(cfg *config.Config, logger *slog.Logger) *Downloader {
	retry := retryablehttp.NewClient()
	retry.RetryMax = cfg.Download.MaxRetries
	retry.RetryWaitMin = 400 * time.Millisecond
	retry.RetryWaitMax = time.Duration(cfg.Download.RetryWaitSeconds) * time.Second
	retry.Logger = nil

	return NewWithClient(retry.StandardClient(), cfg, logger)
}

// NewWithClient constructs a Downloader around an explicit HTTP client.
func NewWithClient(client HTTPDoer, cfg *config.Config, logger *slog.Logger) *Downloader {
	return &Downloader{
		client:    client,
		chunkSize: cfg.Download.ChunkSizeKiB * 1024,
		tempDir:   cfg.Paths.TempDir,
		userAgent: cfg.Download.UserAgent,
		artwork:   cfg.Artwork,
		logger:    logging.NewComponentLogger(logger, "download"),
	}
}

// Fetch downloads url to dest. An existing destination is never overwritten;
// the fetch is skipped. A cancelled fetch removes the partial file before
// returning the cancellation cause.
func (d *Downloader) Fetch(ctx context.Context, url, dest string, opts Options) (Result, error) {
	if _, err := os.Stat(dest); err == nil {
		d.logger.Debug("destination exists, skipping", logging.String("path", dest))
		return Result{Path: dest, Skipped: true}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("download %s: %w", url, err)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" && d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	if dir := filepath.Dir(dest); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("download %s: %w", url, err)
		}
	}

	written, err := d.streamToFile(ctx, resp, dest, opts)
	if err != nil {
		if removeErr := fileutil.SilentRemove(dest); removeErr != nil {
			d.logger.Warn("could not remove partial file", logging.String("path", dest), logging.Error(removeErr))
		} else {
			d.logger.Info("deleted partial download", logging.String("path", dest))
		}
		return Result{}, fmt.Errorf("download %s: %w", url, err)
	}

	if opts.Artwork && d.artwork.ShouldResize {
		if err := ProcessArtwork(dest, d.artwork); err != nil {
			return Result{}, fmt.Errorf("download %s: %w", url, err)
		}
	}

	return Result{Path: dest, Bytes: written}, nil
}

func (d *Downloader) streamToFile(ctx context.Context, resp *http.Response, dest string, opts Options) (int64, error) {
	file, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var writer io.Writer = file
	var bar *progressbar.ProgressBar
	if opts.Progress && resp.ContentLength > 0 && stdoutIsTerminal() {
		bar = newProgressBar(resp.ContentLength, opts.IndentLevel)
		writer = io.MultiWriter(file, bar)
		defer bar.Close()
	}

	chunk := d.chunkSize
	if chunk <= 0 {
		chunk = 64 * 1024
	}
	buf := make([]byte, chunk)

	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := writer.Write(buf[:n]); writeErr != nil {
				return written, writeErr
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// A cancelled context surfaces through the body read as well.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return written, ctxErr
			}
			return written, readErr
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return written, file.Close()
}

func newProgressBar(total int64, indent int) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionSetDescription(strings.Repeat(" ", indent)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionFullWidth(),
		progressbar.OptionClearOnFinish(),
	)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsCancellation reports whether err stems from an interrupted fetch.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
