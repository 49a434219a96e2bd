package vmath

import (
	"image"
	"math"
)

// Vec2 represents a 2D vector used for positions and velocities
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Magnitude returns the Euclidean length of v
func (v Vec2) Magnitude() float64 {
	return Magnitude(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in the direction of v.
// ok is false for the zero vector, in which case no division happens.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}, false
	}
	return Vec2{v.X / mag, v.Y / mag}, true
}

// Point truncates both components toward zero
func (v Vec2) Point() image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

// Rotate rotates v around the origin by angle radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sinA := math.Sin(angle)
	cosA := math.Cos(angle)
	return Vec2{
		X: v.X*cosA - v.Y*sinA,
		Y: v.X*sinA + v.Y*cosA,
	}
}

// FromPoint converts an integer point to a vector
func FromPoint(p image.Point) Vec2 {
	return Vec2{float64(p.X), float64(p.Y)}
}

// Magnitude returns the length of the vector (x, y)
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Sub returns a - b
func Sub(a, b Vec2) Vec2 {
	return a.Sub(b)
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Magnitude()
}

// Clamp limits x to [lo, hi]. Bounds come first, matching the call sites
// that clamp a position between a negative offset and a far edge.
func Clamp(lo, x, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
