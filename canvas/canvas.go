// Package canvas holds the shared accumulation grid that every stream
// writes into.
package canvas

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/spill/geom"
)

// Canvas is a size x size grid of per-channel color sums. Addition is
// commutative and associative, so contributions can arrive in any
// stream order. This is the only state shared across streams.
type Canvas struct {
	size int
	data []float64 // 3 channels per pixel, row-major
}

// New creates an empty canvas with the given edge length.
func New(size int) *Canvas {
	return &Canvas{
		size: size,
		data: make([]float64, size*size*3),
	}
}

// Size returns the canvas edge length in pixels.
func (c *Canvas) Size() int { return c.size }

// Add accumulates col into the pixel at (x, y). Out-of-range pixels are
// silently ignored; the return value reports whether the contribution
// landed.
func (c *Canvas) Add(x, y int, col geom.RGB) bool {
	if x < 0 || x >= c.size || y < 0 || y >= c.size {
		return false
	}
	i := (y*c.size + x) * 3
	c.data[i] += col.R
	c.data[i+1] += col.G
	c.data[i+2] += col.B
	return true
}

// At returns the accumulated color sum at (x, y).
func (c *Canvas) At(x, y int) geom.RGB {
	i := (y*c.size + x) * 3
	return geom.RGB{R: c.data[i], G: c.data[i+1], B: c.data[i+2]}
}

// Merge adds every accumulator of other into c. Used to combine
// per-worker canvases in a fixed order after a parallel run.
func (c *Canvas) Merge(other *Canvas) error {
	if other.size != c.size {
		return fmt.Errorf("canvas: merging size %d into size %d", other.size, c.size)
	}
	floats.Add(c.data, other.data)
	return nil
}

// Grid returns the finalized flat grid of channel sums, 3 values per
// pixel in row-major order. Tone mapping and encoding happen outside
// the core.
func (c *Canvas) Grid() []float64 { return c.data }
