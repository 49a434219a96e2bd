package game

import (
	"image"
	"image/color"

	"spritefield/render"
	"spritefield/sim"
	"spritefield/vmath"
	"spritefield/world"
)

// previewSteps caps how many ticks of the aim preview are drawn
const previewSteps = 90

var previewColor = color.NRGBA{255, 255, 255, 200}

// aimPreview dry-runs the shot the player would fire along aim and returns
// its path, starting at the muzzle. The world is not touched.
func aimPreview(w *world.World, p *sim.Actor, aim vmath.Vec2, magic bool) []image.Point {
	dir, ok := aim.Normalize()
	if !ok {
		return nil
	}
	kind := p.Preset.Weapon
	if magic {
		kind = sim.ProjectileMagic
	}

	targets := make([]sim.Entity, 0, len(w.Actors))
	for _, a := range w.Actors {
		if a.Alive() {
			targets = append(targets, a)
		}
	}

	origin := p.Center(p.Bullet)
	shot := sim.NewProjectile(kind, origin, dir.Scale(sim.GetKindPreset(kind).LaunchSpeed), p.ID(), w.Frame)

	positions := make([]image.Point, 0, previewSteps+1)
	positions = append(positions, origin.Point())
	for pos := range shot.Trajectory(w.Bounds, targets, w.Obstacles) {
		positions = append(positions, pos)
		if len(positions) > previewSteps {
			break
		}
	}
	return positions
}

// drawPreview draws the path as segments fading out along the way
func drawPreview(r render.Renderer, positions []image.Point) {
	if len(positions) <= 1 {
		return
	}
	for i := 0; i < len(positions)-1; i++ {
		// Earlier segments are more opaque, later segments fade out
		progress := float64(i) / float64(max(1, len(positions)-2))
		opacity := 1.0 - progress*0.8

		faded := previewColor
		faded.A = uint8(float64(previewColor.A) * opacity)
		r.DrawPolyline(positions[i:i+2], faded, 1)
	}
}
