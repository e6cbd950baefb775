// Package geom provides the 2-D vector and color arithmetic shared by the
// simulation packages.
package geom

import "math"

// Vec is a 2-D vector in canvas coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared length of v.
func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dir returns the unit vector at the given angle in radians.
func Dir(angle float64) Vec {
	return Vec{math.Cos(angle), math.Sin(angle)}
}

// RGB is a color offset in a signed component space. Components may be
// negative; conversion to a display range happens at render time.
type RGB struct {
	R, G, B float64
}

// Add returns c + o componentwise.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale returns c scaled by s.
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Len returns the vector length of the color offset.
func (c RGB) Len() float64 {
	return math.Sqrt(c.R*c.R + c.G*c.G + c.B*c.B)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampRGB limits every component of c to [-limit, limit].
func ClampRGB(c RGB, limit float64) RGB {
	return RGB{
		R: Clamp(c.R, -limit, limit),
		G: Clamp(c.G, -limit, limit),
		B: Clamp(c.B, -limit, limit),
	}
}
