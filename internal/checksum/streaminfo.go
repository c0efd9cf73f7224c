package checksum

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	flac "github.com/go-flac/go-flac"
)

// STREAMINFO is 34 bytes; the decoded-content MD5 signature occupies the
// final 16.
const (
	streamInfoLength = 34
	md5Offset        = 18
)

// ZeroMD5 is the hex form of an unset STREAMINFO signature.
const ZeroMD5 = "00000000000000000000000000000000"

var errNoStreamInfo = errors.New("no STREAMINFO block")

// StreamMD5 reads the stored decoded-content MD5 signature from a FLAC
// file. The second return is false when the signature is unset (all zero).
func StreamMD5(path string) (string, bool, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read flac %s: %w", path, err)
	}
	data, err := streamInfoData(f)
	if err != nil {
		return "", false, fmt.Errorf("read flac %s: %w", path, err)
	}
	signature := data[md5Offset : md5Offset+16]
	set := !bytes.Equal(signature, make([]byte, 16))
	return hex.EncodeToString(signature), set, nil
}

// StreamParams carries the format fields needed to decode the audio exactly.
type StreamParams struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadStreamParams extracts sample rate, channel count, and bit depth from
// the FLAC header.
func ReadStreamParams(path string) (StreamParams, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return StreamParams{}, fmt.Errorf("read flac %s: %w", path, err)
	}
	info, err := f.GetStreamInfo()
	if err != nil {
		return StreamParams{}, fmt.Errorf("read flac %s: %w", path, err)
	}
	return StreamParams{
		SampleRate: info.SampleRate,
		Channels:   info.ChannelCount,
		BitDepth:   info.BitDepth,
	}, nil
}

// SetStreamMD5 writes the given 32-character hex checksum into the FLAC
// file's STREAMINFO signature field and persists the container. Invalid
// input fails before the file is touched.
func SetStreamMD5(path, md5Hex string) error {
	if len(md5Hex) != 32 {
		return fmt.Errorf("set flac md5 for %s: invalid checksum length %d (expected 32)", path, len(md5Hex))
	}
	signature, err := hex.DecodeString(md5Hex)
	if err != nil {
		return fmt.Errorf("set flac md5 for %s: %w", path, err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("set flac md5 for %s: %w", path, err)
	}
	data, err := streamInfoData(f)
	if err != nil {
		return fmt.Errorf("set flac md5 for %s: %w", path, err)
	}
	copy(data[md5Offset:md5Offset+16], signature)

	if err := f.Save(path); err != nil {
		return fmt.Errorf("set flac md5 for %s: %w", path, err)
	}
	return nil
}

func streamInfoData(f *flac.File) ([]byte, error) {
	for _, meta := range f.Meta {
		if meta.Type != flac.StreamInfo {
			continue
		}
		if len(meta.Data) < streamInfoLength {
			return nil, fmt.Errorf("STREAMINFO block is %d bytes, expected %d", len(meta.Data), streamInfoLength)
		}
		return meta.Data, nil
	}
	return nil, errNoStreamInfo
}
