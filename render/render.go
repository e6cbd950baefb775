// Package render turns a finalized canvas into a PNG. It is the
// external collaborator of the simulation core: tone mapping and file
// encoding live here, not in the accumulation model.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/spill/canvas"
	"github.com/pthm-cable/spill/geom"
)

// Image tone-maps every accumulated pixel into display sRGB. The
// accumulated color vector is capped at colorCap by length, each
// component is squashed through a sigmoid into [0,1], and the result is
// interpreted as CIELAB so hue survives heavy accumulation better than
// a plain additive clamp.
func Image(cv *canvas.Canvas, colorCap float64) *image.RGBA {
	size := cv.Size()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, Pixel(cv.At(x, y), colorCap))
		}
	}
	return img
}

// Pixel maps one accumulated color sum to display sRGB.
func Pixel(c geom.RGB, colorCap float64) color.RGBA {
	ratio := 1.0
	if l := c.Len(); l > colorCap {
		ratio = colorCap / l
	}
	l := to01(c.R * ratio)
	a := 2*to01(c.G*ratio) - 1
	b := 2*to01(c.B*ratio) - 1
	r8, g8, b8 := colorful.Lab(l, a, b).Clamped().RGB255()
	return color.RGBA{R: r8, G: g8, B: b8, A: 255}
}

// to01 squashes an unbounded accumulator into (0, 1) with 0 mapping to
// the midpoint. Monotonic, so brighter sums stay brighter.
func to01(f float64) float64 {
	return 0.5*f/(1+math.Abs(f)) + 0.5
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// NextFilename picks an output name of the form img-<n>-<size>.png in
// dir, where n is the current number of directory entries. Consecutive
// runs in the same directory get distinct names.
func NextFilename(dir string, size int) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading output directory: %w", err)
	}
	return fmt.Sprintf("img-%d-%d.png", len(entries), size), nil
}
