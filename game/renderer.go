package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"spritefield/render"
	"spritefield/vmath"
)

// followRate is the fraction of the distance to its target the camera
// covers each tick
const followRate = 0.1

// Camera represents the viewport into the world
type Camera struct {
	X, Y   float64 // Camera center in world coordinates
	Zoom   float64 // Zoom level
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(p vmath.Vec2) vmath.Vec2 {
	return vmath.Vec2{
		X: (p.X-c.X)*c.Zoom + c.Width/2,
		Y: (p.Y-c.Y)*c.Zoom + c.Height/2,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(p vmath.Vec2) vmath.Vec2 {
	return vmath.Vec2{
		X: (p.X-c.Width/2)/c.Zoom + c.X,
		Y: (p.Y-c.Height/2)/c.Zoom + c.Y,
	}
}

// Snap centers the camera on target at once
func (c *Camera) Snap(target vmath.Vec2, bounds vmath.Bounds) {
	c.X, c.Y = target.X, target.Y
	c.clamp(bounds)
}

// Follow eases the camera toward target and keeps the view inside bounds
func (c *Camera) Follow(target vmath.Vec2, bounds vmath.Bounds) {
	c.X += (target.X - c.X) * followRate
	c.Y += (target.Y - c.Y) * followRate
	c.clamp(bounds)
}

// clamp keeps the viewport inside bounds, or centers a world smaller than
// the viewport
func (c *Camera) clamp(bounds vmath.Bounds) {
	c.X = clampAxis(c.X, c.Width/2/c.Zoom, bounds.W)
	c.Y = clampAxis(c.Y, c.Height/2/c.Zoom, bounds.H)
}

func clampAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return vmath.Clamp(half, center, size-half)
}

// screenRenderer draws a scene onto an ebiten image through the camera
type screenRenderer struct {
	screen *ebiten.Image
	camera *Camera
}

var _ render.Renderer = (*screenRenderer)(nil)

func (r *screenRenderer) DrawImage(img render.Image, pos vmath.Vec2) {
	eimg, ok := img.(*ebiten.Image)
	if !ok {
		return
	}
	at := r.camera.WorldToScreen(pos)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.camera.Zoom, r.camera.Zoom)
	op.GeoM.Translate(at.X, at.Y)
	r.screen.DrawImage(eimg, op)
}

func (r *screenRenderer) DrawPolyline(points []image.Point, c color.Color, thickness float64) {
	width := float32(thickness * r.camera.Zoom)
	for i := 1; i < len(points); i++ {
		a := r.camera.WorldToScreen(vmath.FromPoint(points[i-1]))
		b := r.camera.WorldToScreen(vmath.FromPoint(points[i]))
		vector.StrokeLine(r.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
	}
}

func (r *screenRenderer) DrawCircle(c color.Color, center vmath.Vec2, radius float64) {
	at := r.camera.WorldToScreen(center)
	radius = max(1, radius*r.camera.Zoom)
	vector.DrawFilledCircle(r.screen, float32(at.X), float32(at.Y), float32(radius), c, true)
}
