// Package fileutil holds small filesystem helpers shared by the download and
// checksum code: name sanitization for files coming from remote metadata,
// byte-budget truncation, and tolerant removal.
package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	forbiddenChars = regexp.MustCompile(`[\\/*?"<>|$]`)
	colonRuns      = regexp.MustCompile(`[:]`)
)

// SanitizeName makes a string safe for use as a file name: forbidden
// characters are stripped, colons become " - ", and trailing whitespace is
// trimmed. Empty input stays empty.
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}
	cleaned := strings.TrimRight(name, " \t")
	cleaned = forbiddenChars.ReplaceAllString(cleaned, "")
	cleaned = colonRuns.ReplaceAllString(cleaned, " - ")
	return cleaned
}

// DefaultNameByteLimit is the per-filename byte budget applied by
// TrimFilenameBytes when the caller passes a non-positive limit. It stays
// under common 255-byte filesystem limits with room for suffixes.
const DefaultNameByteLimit = 250

// TrimFilenameBytes truncates the final element of path so its UTF-8
// encoding fits within limit bytes, without splitting a rune. The directory
// part is returned unchanged.
func TrimFilenameBytes(path string, limit int) string {
	if limit <= 0 {
		limit = DefaultNameByteLimit
	}
	dir, name := filepath.Split(path)
	if len(name) <= limit {
		return path
	}
	truncated := name[:limit]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return dir + truncated
}

// SilentRemove removes path, treating a missing file as success.
func SilentRemove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveWithRetry removes path, retrying up to attempts times with a short
// sleep between tries to tolerate transient locks on the file.
func RemoveWithRetry(path string, attempts int) error {
	if attempts <= 0 {
		attempts = 3
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = SilentRemove(path)
		if lastErr == nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return lastErr
}
