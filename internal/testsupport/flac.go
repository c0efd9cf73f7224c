package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// FLACSpec describes a minimal synthetic FLAC file: a STREAMINFO block, an
// optional vorbis comment block, and optional frame bytes. Enough structure
// for container-level tooling; the frames are not decodable audio.
type FLACSpec struct {
	SampleRate   int
	Channels     int
	BitDepth     int
	TotalSamples uint64
	MD5          []byte            // 16 bytes; nil leaves the signature unset
	Tags         map[string]string // vorbis comments, e.g. "MD5", "TITLE"
	Frames       []byte
}

// WriteFLAC builds the FLAC file described by spec at path.
func WriteFLAC(t testing.TB, path string, spec FLACSpec) {
	t.Helper()

	if spec.SampleRate == 0 {
		spec.SampleRate = 44100
	}
	if spec.Channels == 0 {
		spec.Channels = 2
	}
	if spec.BitDepth == 0 {
		spec.BitDepth = 16
	}
	if spec.MD5 != nil && len(spec.MD5) != 16 {
		t.Fatalf("FLAC MD5 must be 16 bytes, got %d", len(spec.MD5))
	}

	var buf bytes.Buffer
	buf.WriteString("fLaC")

	streamInfo := buildStreamInfo(spec)
	writeMetaBlock(&buf, 0, streamInfo, len(spec.Tags) == 0)

	if len(spec.Tags) > 0 {
		writeMetaBlock(&buf, 4, buildVorbisComment(spec.Tags), true)
	}

	// go-flac requires the audio section to open with the FLAC frame sync
	// code (0b11111111_111110xx); the filler bytes follow it.
	buf.Write([]byte{0xFF, 0xF8})
	buf.Write(spec.Frames)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func buildStreamInfo(spec FLACSpec) []byte {
	data := make([]byte, 34)
	binary.BigEndian.PutUint16(data[0:2], 4096)  // min block size
	binary.BigEndian.PutUint16(data[2:4], 4096)  // max block size
	// frame size bounds left zero (unknown)

	packed := uint64(spec.SampleRate)<<44 |
		uint64(spec.Channels-1)<<41 |
		uint64(spec.BitDepth-1)<<36 |
		spec.TotalSamples&0xFFFFFFFFF
	binary.BigEndian.PutUint64(data[10:18], packed)

	if spec.MD5 != nil {
		copy(data[18:34], spec.MD5)
	}
	return data
}

func buildVorbisComment(tags map[string]string) []byte {
	var buf bytes.Buffer
	vendor := "audiosum testsupport"
	writeUint32LE(&buf, uint32(len(vendor)))
	buf.WriteString(vendor)

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	writeUint32LE(&buf, uint32(len(keys)))
	for _, key := range keys {
		entry := key + "=" + tags[key]
		writeUint32LE(&buf, uint32(len(entry)))
		buf.WriteString(entry)
	}
	return buf.Bytes()
}

func writeMetaBlock(buf *bytes.Buffer, blockType byte, data []byte, last bool) {
	header := blockType
	if last {
		header |= 0x80
	}
	buf.WriteByte(header)
	buf.WriteByte(byte(len(data) >> 16))
	buf.WriteByte(byte(len(data) >> 8))
	buf.WriteByte(byte(len(data)))
	buf.Write(data)
}

func writeUint32LE(buf *bytes.Buffer, v uint32) {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	buf.Write(scratch[:])
}
