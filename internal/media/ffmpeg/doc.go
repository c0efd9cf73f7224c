// Package ffmpeg invokes the external ffmpeg binary for the two decode
// operations the checksum code needs: raw PCM extraction and FLAC
// re-encoding. Everything else about the tool is deliberately out of reach.
package ffmpeg
