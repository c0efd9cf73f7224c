package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnsupportedHash reports a hash algorithm other than MD5.
var ErrUnsupportedHash = errors.New("unsupported hash algorithm")

const readBufferSize = 32 * 1024

// HashString returns the hex digest of input under the named algorithm.
// Only MD5 is supported.
func HashString(input, algorithm string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(algorithm), "MD5") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedHash, algorithm)
	}
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// FileMD5 computes the MD5 of the file's bytes with a fixed-size streaming
// read.
func FileMD5(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	defer file.Close()

	hasher := md5.New()
	buf := make([]byte, readBufferSize)
	if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
