package sim

import (
	"image"
	"iter"

	"spritefield/vmath"
)

// MaxTrajectorySteps bounds a trajectory even when a preset never decays
const MaxTrajectorySteps = 10000

// Tracer steps a live projectile one tick per call. It consumes the
// projectile's state, so a trajectory cannot be replayed; dropping a Tracer
// early needs no cleanup.
type Tracer struct {
	p         *Projectile
	borders   vmath.Bounds
	targets   []Entity
	obstacles []Entity
	frame     int
	steps     int
}

// NewTracer prepares a step-by-step trajectory of p
func NewTracer(p *Projectile, borders vmath.Bounds, targets, obstacles []Entity) *Tracer {
	return &Tracer{
		p:         p,
		borders:   borders,
		targets:   targets,
		obstacles: obstacles,
		frame:     p.lastFrame,
	}
}

// Next advances the projectile and returns its new integer position.
// ok is false once the projectile is dead.
func (t *Tracer) Next() (pos image.Point, ok bool) {
	if t.p.Dead() || t.steps >= MaxTrajectorySteps {
		return image.Point{}, false
	}
	t.frame++
	t.steps++
	t.p.Advance(t.borders, t.targets, t.obstacles, t.frame)
	return t.p.Pos.Point(), true
}

// Trajectory yields the integer positions of p until it dies
func (p *Projectile) Trajectory(borders vmath.Bounds, targets, obstacles []Entity) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		t := NewTracer(p, borders, targets, obstacles)
		for {
			pos, ok := t.Next()
			if !ok || !yield(pos) {
				return
			}
		}
	}
}
