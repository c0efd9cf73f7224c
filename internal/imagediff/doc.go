// Package imagediff scores the visual similarity of two images and probes
// image dimensions without a full decode.
package imagediff
