package tags

import (
	"testing"

	"github.com/dhowden/tag"
)

type fakeMetadata struct {
	tag.Metadata
	fileType tag.FileType
	raw      map[string]interface{}
}

func (m fakeMetadata) FileType() tag.FileType       { return m.fileType }
func (m fakeMetadata) Raw() map[string]interface{}  { return m.raw }
func (m fakeMetadata) Title() string                { return "" }
func (m fakeMetadata) Artist() string               { return "" }
func (m fakeMetadata) Album() string                { return "" }
func (m fakeMetadata) Genre() string                { return "" }
func (m fakeMetadata) Year() int                    { return 0 }

func TestInspectMP4FindsITunesAtom(t *testing.T) {
	meta := fakeMetadata{
		fileType: tag.M4A,
		raw: map[string]interface{}{
			"----:com.apple.iTunes:MD5": []byte("0123456789abcdef0123456789abcdef"),
		},
	}

	report := Report{}
	inspectMP4(meta, &report)

	if report.MD5Tag != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("unexpected MD5 tag: %q", report.MD5Tag)
	}
	if report.MD5TagKey != "----:com.apple.iTunes:MD5" {
		t.Fatalf("unexpected key: %q", report.MD5TagKey)
	}
}

func TestInspectMP4FallsBackToGenericScan(t *testing.T) {
	meta := fakeMetadata{
		fileType: tag.M4A,
		raw: map[string]interface{}{
			"content_md5": "ffffffffffffffffffffffffffffffff",
			"title":       "ignored",
		},
	}

	report := Report{}
	inspectMP4(meta, &report)

	if report.MD5TagKey != "content_md5" {
		t.Fatalf("unexpected key: %q", report.MD5TagKey)
	}
}

func TestInspectGenericPicksFirstMatchingKeyDeterministically(t *testing.T) {
	meta := fakeMetadata{
		raw: map[string]interface{}{
			"b_md5": "second",
			"a_MD5": "first",
			"other": "x",
		},
	}

	report := Report{}
	inspectGeneric(meta, &report)

	if report.MD5TagKey != "a_MD5" || report.MD5Tag != "first" {
		t.Fatalf("unexpected match: %q=%q", report.MD5TagKey, report.MD5Tag)
	}
}

func TestInspectGenericNoMatch(t *testing.T) {
	report := Report{}
	inspectGeneric(fakeMetadata{raw: map[string]interface{}{"title": "x"}}, &report)
	if report.Found() {
		t.Fatal("expected no MD5 metadata")
	}
}
