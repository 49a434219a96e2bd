package vmath

import "image"

// Hitbox is an axis-aligned rectangle relative to an entity position
type Hitbox struct {
	OffsetX float64
	OffsetY float64
	W       float64
	H       float64
}

// At places the hitbox at pos, producing an absolute rectangle
func (h Hitbox) At(pos Vec2) Rect {
	return Rect{X: pos.X + h.OffsetX, Y: pos.Y + h.OffsetY, W: h.W, H: h.H}
}

// Rect is an absolute axis-aligned rectangle
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the centroid of the rectangle
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Intersects reports whether r and o overlap with a positive area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ContainsPoint reports whether p lies inside r.
// The left and top edges are inclusive, the right and bottom exclusive.
func (r Rect) ContainsPoint(p image.Point) bool {
	px, py := float64(p.X), float64(p.Y)
	return px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom()
}

// Bounds are the world borders; the playable area is [0, W] x [0, H]
type Bounds struct {
	W float64
	H float64
}

// Grow expands r by d on every side. A negative d shrinks it.
func (r Rect) Grow(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}
