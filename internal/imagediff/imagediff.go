package imagediff

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
)

// Compare returns the root-mean-square difference between the two images.
// Each pixel pair is reduced to the per-channel absolute difference, that
// difference color is converted to luminance, and the RMS is taken over the
// resulting histogram. Identical images score 0; the score grows with
// divergence. The images must share dimensions.
func Compare(pathA, pathB string) (float64, error) {
	imgA, err := decode(pathA)
	if err != nil {
		return 0, err
	}
	imgB, err := decode(pathB)
	if err != nil {
		return 0, err
	}

	boundsA := imgA.Bounds()
	boundsB := imgB.Bounds()
	if boundsA.Dx() != boundsB.Dx() || boundsA.Dy() != boundsB.Dy() {
		return 0, fmt.Errorf("compare images: dimensions differ (%dx%d vs %dx%d)",
			boundsA.Dx(), boundsA.Dy(), boundsB.Dx(), boundsB.Dy())
	}

	var histogram [256]int64
	for y := 0; y < boundsA.Dy(); y++ {
		for x := 0; x < boundsA.Dx(); x++ {
			a := imgA.At(boundsA.Min.X+x, boundsA.Min.Y+y)
			b := imgB.At(boundsB.Min.X+x, boundsB.Min.Y+y)
			histogram[differenceLuminance(a, b)]++
		}
	}

	pixels := int64(boundsA.Dx()) * int64(boundsA.Dy())
	if pixels == 0 {
		return 0, nil
	}

	var sum float64
	for value, count := range histogram {
		sum += float64(count) * float64(value) * float64(value)
	}
	return math.Sqrt(sum / float64(pixels)), nil
}

// Resolution returns the pixel dimensions of the image at path.
func Resolution(path string) (width, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("image %s: %w", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return img, nil
}

// differenceLuminance takes the per-channel absolute difference of the two
// colors and maps that difference to an 8-bit grayscale value using the
// ITU-R 601 weights. The channel difference comes first: two hues with equal
// luminance still produce a nonzero result.
func differenceLuminance(a, b color.Color) int {
	ra, ga, ba, _ := a.RGBA()
	rb, gb, bb, _ := b.RGBA()
	dr := absDiff(int(ra>>8), int(rb>>8))
	dg := absDiff(int(ga>>8), int(gb>>8))
	db := absDiff(int(ba>>8), int(bb>>8))
	return (299*dr + 587*dg + 114*db) / 1000
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
