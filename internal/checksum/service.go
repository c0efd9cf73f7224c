package checksum

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"audiosum/internal/fileutil"
	"audiosum/internal/logging"
	"audiosum/internal/media/ffmpeg"
)

const removeAttempts = 3

// Service computes decoded-audio checksums and repairs FLAC signatures by
// shelling out to ffmpeg. All failure paths leave the target file untouched:
// no checksum is ever written unless the full decode round-trip succeeded.
type Service struct {
	ffmpeg  *ffmpeg.Client
	tempDir string
	logger  *slog.Logger
}

// NewService constructs a Service writing scratch files under tempDir.
func NewService(client *ffmpeg.Client, tempDir string, logger *slog.Logger) *Service {
	if client == nil {
		client = ffmpeg.NewClient()
	}
	return &Service{
		ffmpeg:  client,
		tempDir: tempDir,
		logger:  logging.NewComponentLogger(logger, "checksum"),
	}
}

// DecodedMD5 computes the MD5 of the file's decoded interleaved samples.
// Format parameters come from the container header so the raw layout matches
// the encoder's internal representation exactly.
func (s *Service) DecodedMD5(ctx context.Context, path string) (string, error) {
	params, err := ReadStreamParams(path)
	if err != nil {
		return "", fmt.Errorf("decoded md5 for %s: %w", path, err)
	}
	format, err := ffmpeg.PCMFormatForBitDepth(params.BitDepth, params.SampleRate, params.Channels)
	if err != nil {
		return "", fmt.Errorf("decoded md5 for %s: %w", path, err)
	}

	tempPath, err := s.tempFile(".raw")
	if err != nil {
		return "", fmt.Errorf("decoded md5 for %s: %w", path, err)
	}
	defer func() {
		if err := fileutil.RemoveWithRetry(tempPath, removeAttempts); err != nil {
			s.logger.Warn("leaving temp file behind", logging.String("path", tempPath), logging.Error(err))
		}
	}()

	if err := s.ffmpeg.ExtractPCM(ctx, path, tempPath, format); err != nil {
		return "", fmt.Errorf("decoded md5 for %s: %w", path, err)
	}

	sum, err := FileMD5(tempPath)
	if err != nil {
		return "", fmt.Errorf("decoded md5 for %s: %w", path, err)
	}
	return sum, nil
}

// Repair ensures the FLAC file carries a decoded-content MD5 signature. An
// already-set signature is trusted and returned as is. Otherwise the file is
// re-encoded through ffmpeg, the signature the encoder computed is read from
// the re-encoded copy and written into the original container.
func (s *Service) Repair(ctx context.Context, path string) (string, error) {
	existing, set, err := StreamMD5(path)
	if err != nil {
		return "", fmt.Errorf("repair flac md5 for %s: %w", path, err)
	}
	if set {
		s.logger.Debug("signature already present", logging.String("path", path), logging.String("md5", existing))
		return existing, nil
	}

	tempPath, err := s.tempFile(".flac")
	if err != nil {
		return "", fmt.Errorf("repair flac md5 for %s: %w", path, err)
	}
	defer func() {
		if err := fileutil.RemoveWithRetry(tempPath, removeAttempts); err != nil {
			s.logger.Warn("leaving temp file behind", logging.String("path", tempPath), logging.Error(err))
		}
	}()

	if err := s.ffmpeg.ReencodeFLAC(ctx, path, tempPath); err != nil {
		return "", fmt.Errorf("repair flac md5 for %s: %w", path, err)
	}

	computed, set, err := StreamMD5(tempPath)
	if err != nil {
		return "", fmt.Errorf("repair flac md5 for %s: %w", path, err)
	}
	if !set {
		return "", fmt.Errorf("repair flac md5 for %s: re-encoded file also has no signature", path)
	}

	if err := SetStreamMD5(path, computed); err != nil {
		return "", fmt.Errorf("repair flac md5 for %s: %w", path, err)
	}

	s.logger.Info("signature repaired", logging.String("path", path), logging.String("md5", computed))
	return computed, nil
}

func (s *Service) tempFile(extension string) (string, error) {
	dir := s.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, uuid.NewString()+extension), nil
}
