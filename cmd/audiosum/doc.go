// Command audiosum inspects and repairs MD5 metadata in audio files, and
// bundles the small helpers around that job: whole-file hashing, retrying
// downloads with artwork post-processing, and image comparison.
package main
