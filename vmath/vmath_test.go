package vmath

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		lo, x, hi float64
		want      float64
	}{
		{name: "inside", lo: 0, x: 5, hi: 10, want: 5},
		{name: "below", lo: -4, x: -9, hi: 10, want: -4},
		{name: "above", lo: 0, x: 12, hi: 10, want: 10},
		{name: "on edge", lo: 0, x: 10, hi: 10, want: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clamp(tc.lo, tc.x, tc.hi))
		})
	}
}

func TestNormalize(t *testing.T) {
	unit, ok := Vec2{3, 4}.Normalize()
	assert.True(t, ok)
	assert.InDelta(t, 0.6, unit.X, 1e-9)
	assert.InDelta(t, 0.8, unit.Y, 1e-9)

	_, ok = Vec2{}.Normalize()
	assert.False(t, ok, "zero vector has no direction")
}

func TestPointTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, image.Point{X: 3, Y: -2}, Vec2{3.9, -2.7}.Point())
}

func TestMagnitudeAndSub(t *testing.T) {
	assert.Equal(t, 5.0, Magnitude(3, 4))
	assert.Equal(t, Vec2{2, -1}, Sub(Vec2{5, 3}, Vec2{3, 4}))
	assert.InDelta(t, math.Sqrt2, Distance(Vec2{1, 1}, Vec2{2, 2}), 1e-9)
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, a.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, W: 5, H: 5}), "shared edge")
	assert.False(t, a.Intersects(Rect{X: 20, Y: 20, W: 5, H: 5}))
}

func TestRectContainsPoint(t *testing.T) {
	r := Rect{X: 2, Y: 2, W: 4, H: 4}

	assert.True(t, r.ContainsPoint(image.Point{X: 2, Y: 2}))
	assert.True(t, r.ContainsPoint(image.Point{X: 5, Y: 5}))
	assert.False(t, r.ContainsPoint(image.Point{X: 6, Y: 5}))
	assert.False(t, r.ContainsPoint(image.Point{X: 1, Y: 3}))
}

func TestHitboxAt(t *testing.T) {
	h := Hitbox{OffsetX: 4, OffsetY: 8, W: 24, H: 20}
	r := h.At(Vec2{10, 10})

	assert.Equal(t, Rect{X: 14, Y: 18, W: 24, H: 20}, r)
	assert.Equal(t, Vec2{26, 28}, r.Center())
}

func TestRectGrow(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 4, H: 4}
	assert.Equal(t, Rect{X: 8, Y: 8, W: 8, H: 8}, r.Grow(2))
	assert.True(t, r.Grow(1).Intersects(Rect{X: 14.5, Y: 10, W: 2, H: 2}))
	assert.False(t, r.Intersects(Rect{X: 14.5, Y: 10, W: 2, H: 2}))
}
