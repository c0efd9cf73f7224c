// Package tags inspects audio files for MD5 content-verification metadata.
//
// Format detection delegates to a generic tag read; the inspector then
// branches per container: the MD5 vorbis comment and STREAMINFO signature
// for FLAC, the TXXX:MD5 frame for MP3, the iTunes freeform atom for MP4,
// and a raw-key scan for anything else. Inspection is strictly read-only.
package tags
