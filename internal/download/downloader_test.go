package download_test

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"audiosum/internal/download"
	"audiosum/internal/logging"
	"audiosum/internal/testsupport"
)

func newDownloader(t *testing.T) *download.Downloader {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return download.NewWithClient(&http.Client{}, cfg, logging.NewNop())
}

func TestFetchWritesDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload bytes"))
	}))
	defer server.Close()

	d := newDownloader(t)
	dest := filepath.Join(t.TempDir(), "out.bin")

	result, err := d.Fetch(context.Background(), server.URL, dest, download.Options{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Skipped {
		t.Fatal("unexpected skip")
	}
	if result.Bytes != int64(len("payload bytes")) {
		t.Fatalf("unexpected byte count: %d", result.Bytes)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(data) != "payload bytes" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestFetchSkipsExistingDestination(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "existing.bin")
	if err := os.WriteFile(dest, []byte("original"), 0o644); err != nil {
		t.Fatalf("seed dest: %v", err)
	}

	d := newDownloader(t)
	result, err := d.Fetch(context.Background(), server.URL, dest, download.Options{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !result.Skipped {
		t.Fatal("expected skip for existing destination")
	}
	if hits.Load() != 0 {
		t.Fatal("server should not have been contacted")
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "original" {
		t.Fatalf("existing file modified: %q", data)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("eventually"))
	}))
	defer server.Close()

	retry := retryablehttp.NewClient()
	retry.RetryMax = 5
	retry.RetryWaitMin = time.Millisecond
	retry.RetryWaitMax = 5 * time.Millisecond
	retry.Logger = nil

	cfg := testsupport.NewConfig(t)
	d := download.NewWithClient(retry.StandardClient(), cfg, logging.NewNop())

	dest := filepath.Join(t.TempDir(), "retry.bin")
	if _, err := d.Fetch(context.Background(), server.URL, dest, download.Options{}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "eventually" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestFetchErrorStatusLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := newDownloader(t)
	dest := filepath.Join(t.TempDir(), "missing.bin")

	if _, err := d.Fetch(context.Background(), server.URL, dest, download.Options{}); err == nil {
		t.Fatal("expected error for 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("no file should exist after an error status")
	}
}

func TestFetchInterruptedRemovesPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(make([]byte, 1024))
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		<-r.Context().Done()
	}))
	defer server.Close()

	d := newDownloader(t)
	dest := filepath.Join(t.TempDir(), "partial.bin")

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	_, err := d.Fetch(ctx, server.URL, dest, download.Options{})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !download.IsCancellation(err) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatal("partial file left behind")
	}
}

func TestFetchToTempAndSaveToTemp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("temp payload"))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	d := download.NewWithClient(&http.Client{}, cfg, logging.NewNop())

	path, err := d.FetchToTemp(context.Background(), server.URL, "jpg", download.Options{})
	if err != nil {
		t.Fatalf("FetchToTemp: %v", err)
	}
	if filepath.Ext(path) != ".jpg" {
		t.Fatalf("expected .jpg extension, got %q", path)
	}
	if filepath.Dir(path) != cfg.Paths.TempDir {
		t.Fatalf("temp file outside temp dir: %q", path)
	}

	saved, err := d.SaveToTemp([]byte("blob"))
	if err != nil {
		t.Fatalf("SaveToTemp: %v", err)
	}
	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("read saved: %v", err)
	}
	if string(data) != "blob" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestFetchAppliesArtworkProcessing(t *testing.T) {
	var pngBytes []byte
	{
		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		var err error
		pngBytes, err = encodePNG(img)
		if err != nil {
			t.Fatalf("encode source png: %v", err)
		}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithArtwork(4, "jpeg", "low"))
	d := download.NewWithClient(&http.Client{}, cfg, logging.NewNop())

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	if _, err := d.Fetch(context.Background(), server.URL, dest, download.Options{Artwork: true}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	file, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open processed artwork: %v", err)
	}
	defer file.Close()
	img, format, err := image.Decode(file)
	if err != nil {
		t.Fatalf("decode processed artwork: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg output, got %q", format)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("expected 4x4 output, got %v", img.Bounds())
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf writerBuffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.data, nil
}

type writerBuffer struct {
	data []byte
}

func (b *writerBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
