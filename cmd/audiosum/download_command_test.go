package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDownloadWritesDestination(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("cli payload"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")
	out, err := runCommand(t, "--config", cfgPath, "download", server.URL, dest)
	if err != nil {
		t.Fatalf("download: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Downloaded 11 bytes to "+dest) {
		t.Fatalf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(data) != "cli payload" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestDownloadDefaultsToDownloadDir(t *testing.T) {
	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
download_dir = %q
temp_dir = %q
log_dir = %q
settings_path = %q

[download]
progress = false

[logging]
level = "error"
`,
		filepath.Join(base, "downloads"),
		filepath.Join(base, "tmp"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "settings.json"),
	)
	cfgPath := filepath.Join(base, "audiosum.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("artwork"))
	}))
	defer server.Close()

	out, err := runCommand(t, "--config", cfgPath, "download", server.URL+"/covers/front.png")
	if err != nil {
		t.Fatalf("download: %v\n%s", err, out)
	}

	dest := filepath.Join(base, "downloads", "front.png")
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read default destination: %v", err)
	}
	if string(data) != "artwork" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestDownloadSkipsExistingDestination(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be contacted")
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "existing.bin")
	if err := os.WriteFile(dest, []byte("keep"), 0o644); err != nil {
		t.Fatalf("seed dest: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "download", server.URL, dest)
	if err != nil {
		t.Fatalf("download: %v\n%s", err, out)
	}
	if !strings.Contains(out, "already exists, skipped") {
		t.Fatalf("unexpected output: %q", out)
	}
}
