// Package checksum computes MD5 values over files, strings, and decoded
// audio samples, and reads/writes the MD5 signature stored in a FLAC
// STREAMINFO block.
//
// The decoded-audio path delegates sample extraction to ffmpeg. When any
// step of that path fails the policy is to fail closed: return an error and
// write nothing, rather than store a possibly wrong signature.
package checksum
