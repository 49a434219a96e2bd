// Package render paints a world snapshot through a small drawing contract so
// that the same scene can target a window, a terminal or a test recorder.
package render

import (
	"image"
	"image/color"

	"spritefield/sim"
	"spritefield/vmath"
	"spritefield/world"
)

// Image is an opaque handle owned by the backend that produced it
type Image any

// Renderer is the drawing surface a backend provides
type Renderer interface {
	DrawImage(img Image, pos vmath.Vec2)
	DrawPolyline(points []image.Point, c color.Color, thickness float64)
	DrawCircle(c color.Color, center vmath.Vec2, radius float64)
}

// SpriteBank looks up the image of an actor kind for a sprite key.
// ok is false when the bank has no such image.
type SpriteBank interface {
	Sprite(kind sim.Kind, key sim.SpriteKey) (img Image, ok bool)
}

// Scene draws snapshots back to front
type Scene struct {
	// ShowHitboxes outlines ground and bullet hitboxes
	ShowHitboxes bool
}

var (
	groundColor = color.RGBA{255, 220, 0, 255}
	bulletColor = color.RGBA{255, 0, 255, 255}
)

// Draw paints actors in painter order and then projectile traces. An actor
// whose sprite is missing from the bank is drawn as a circle in its faction
// color.
func (s Scene) Draw(r Renderer, bank SpriteBank, snap world.Snapshot) {
	for _, a := range snap.Actors {
		key := a.SpriteKey(snap.Frame)
		body := a.RelativeRect(a.Bullet)

		if img, ok := bank.Sprite(a.Kind, key); ok {
			r.DrawImage(img, a.Pos)
		} else {
			clr := world.GetFactionConfig(world.FactionOf(a.Kind)).Color
			r.DrawCircle(clr, body.Center(), body.W/2)
		}

		if s.ShowHitboxes {
			r.DrawPolyline(outline(a.RelativeRect(a.Ground)), groundColor, 1)
			r.DrawPolyline(outline(body), bulletColor, 1)
		}
	}

	for _, p := range snap.Projectiles {
		preset := p.Preset()
		trace := p.Trace()
		if trace[0] == trace[len(trace)-1] {
			r.DrawCircle(preset.TraceColor, p.Pos, preset.Thickness/2)
			continue
		}
		r.DrawPolyline(trace, preset.TraceColor, preset.Thickness)
	}
}

// outline returns the closed corner path of a rectangle
func outline(rect vmath.Rect) []image.Point {
	tl := vmath.Vec2{X: rect.X, Y: rect.Y}.Point()
	br := vmath.Vec2{X: rect.Right(), Y: rect.Bottom()}.Point()
	return []image.Point{
		tl,
		{X: br.X, Y: tl.Y},
		br,
		{X: tl.X, Y: br.Y},
		tl,
	}
}
