package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"audiosum/internal/checksum"
)

// Field is a descriptive tag key/value pair.
type Field struct {
	Key   string
	Value string
}

// Report is the result of inspecting one audio file for MD5 metadata.
type Report struct {
	Path     string
	FileType string

	// MD5Tag is the checksum stored as a regular tag, with the key it was
	// found under ("MD5" vorbis comment, "TXXX:MD5" frame, iTunes atom, or
	// whatever generic key matched). Empty when absent.
	MD5Tag    string
	MD5TagKey string

	// StreamMD5 is the FLAC STREAMINFO signature in hex. HasStreamInfo is
	// true only for FLAC input; StreamMD5Set is false when the stored
	// signature is all zero.
	HasStreamInfo bool
	StreamMD5     string
	StreamMD5Set  bool

	// Common holds the interesting descriptive tags in display order.
	Common []Field
}

// Found reports whether any MD5 metadata was present.
func (r Report) Found() bool {
	return r.MD5Tag != "" || r.StreamMD5Set
}

// iTunes freeform atom carrying the checksum on MP4 containers.
const itunesMD5Atom = "----:com.apple.itunes:md5"

// Inspect opens the audio file at path, detects its container format, and
// collects whatever MD5 metadata it carries. Read failures are returned for
// the caller to report; nothing is ever written.
func Inspect(path string) (Report, error) {
	report := Report{Path: path}

	file, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("inspect %s: %w", path, err)
	}
	defer file.Close()

	metadata, readErr := tag.ReadFrom(file)

	fileType := tag.UnknownFileType
	if readErr == nil {
		fileType = metadata.FileType()
		report.FileType = string(fileType)
		report.Common = commonFields(metadata)
	}

	// FLAC is recognized by extension as well so a file with no vorbis
	// comment still gets its STREAMINFO signature inspected.
	isFLAC := fileType == tag.FLAC || strings.EqualFold(filepath.Ext(path), ".flac")

	switch {
	case isFLAC:
		report.FileType = string(tag.FLAC)
		if err := inspectFLAC(path, &report); err != nil {
			return report, fmt.Errorf("inspect %s: %w", path, err)
		}
	case fileType == tag.MP3:
		if err := inspectMP3(path, &report); err != nil {
			return report, fmt.Errorf("inspect %s: %w", path, err)
		}
	case fileType == tag.M4A || fileType == tag.M4B || fileType == tag.M4P || fileType == tag.ALAC:
		inspectMP4(metadata, &report)
	case readErr != nil:
		return report, fmt.Errorf("inspect %s: %w", path, readErr)
	default:
		inspectGeneric(metadata, &report)
	}

	return report, nil
}

func inspectFLAC(path string, report *Report) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return err
	}

	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		comment, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return err
		}
		values, err := comment.Get("MD5")
		if err == nil && len(values) > 0 {
			report.MD5Tag = values[0]
			report.MD5TagKey = "MD5"
		}
		break
	}

	signature, set, err := checksum.StreamMD5(path)
	if err != nil {
		return err
	}
	report.HasStreamInfo = true
	report.StreamMD5 = signature
	report.StreamMD5Set = set
	return nil
}

func inspectMP3(path string, report *Report) error {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer id3.Close()

	for _, framer := range id3.GetFrames("TXXX") {
		udtf, ok := framer.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if strings.EqualFold(udtf.Description, "MD5") {
			report.MD5Tag = udtf.Value
			report.MD5TagKey = "TXXX:MD5"
			break
		}
	}
	return nil
}

func inspectMP4(metadata tag.Metadata, report *Report) {
	raw := metadata.Raw()
	for key, value := range raw {
		if strings.EqualFold(key, itunesMD5Atom) {
			report.MD5Tag = rawValueString(value)
			report.MD5TagKey = key
			return
		}
	}
	inspectGeneric(metadata, report)
}

func inspectGeneric(metadata tag.Metadata, report *Report) {
	raw := metadata.Raw()
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(strings.ToUpper(key), "MD5") {
			report.MD5Tag = rawValueString(raw[key])
			report.MD5TagKey = key
			return
		}
	}
}

func rawValueString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case *tag.Comm:
		return v.Text
	default:
		return fmt.Sprint(v)
	}
}

func commonFields(metadata tag.Metadata) []Field {
	var fields []Field
	add := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	add("title", metadata.Title())
	add("artist", metadata.Artist())
	add("album", metadata.Album())
	if year := metadata.Year(); year > 0 {
		add("date", strconv.Itoa(year))
	}
	add("genre", metadata.Genre())
	return fields
}
