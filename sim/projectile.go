package sim

import (
	"image"
	"image/color"

	"spritefield/vmath"
)

// ProjectileKind selects the physics preset of a projectile
type ProjectileKind int

const (
	ProjectileGeneric ProjectileKind = iota
	ProjectileArrow
	ProjectileMagic // homing
	ProjectileBlood
	ProjectileSpit
)

// String returns a short name for logs
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileArrow:
		return "arrow"
	case ProjectileMagic:
		return "magic"
	case ProjectileBlood:
		return "blood"
	case ProjectileSpit:
		return "spit"
	default:
		return "generic"
	}
}

const (
	// MaxVictims caps how many entities one projectile chain may hit
	MaxVictims = 16

	// GraceFrames is how long a fresh projectile ignores collisions
	GraceFrames = 5

	// HomingRadius is the lock-on distance of homing projectiles
	HomingRadius = 50.0

	// TraceLen is the number of integer positions kept for trail drawing
	TraceLen = 2

	// NoFrame disables the grace period check in Collide
	NoFrame = -1
)

// KindPreset holds the physics and trail parameters of a projectile kind
type KindPreset struct {
	Decay       float64 // velocity multiplier per tick, in (0, 1]
	DeathSpeed  float64 // the projectile is dead at or below this speed
	LaunchSpeed float64
	Jitter      float64 // max spray angle in radians, 0 = none
	Damage      int     // health removed per victim, 0 = cosmetic
	TraceColor  color.NRGBA
	Thickness   float64
}

// GetKindPreset returns the preset for a projectile kind
func GetKindPreset(kind ProjectileKind) KindPreset {
	switch kind {
	case ProjectileArrow:
		return KindPreset{
			Decay:       0.98,
			DeathSpeed:  0.5,
			LaunchSpeed: 6,
			Damage:      1,
			TraceColor:  color.NRGBA{R: 200, G: 170, B: 120, A: 255},
			Thickness:   2,
		}
	case ProjectileMagic:
		return KindPreset{
			Decay:       0.95,
			DeathSpeed:  0.05,
			LaunchSpeed: 3,
			Damage:      1,
			TraceColor:  color.NRGBA{R: 140, G: 90, B: 255, A: 255},
			Thickness:   3,
		}
	case ProjectileBlood:
		return KindPreset{
			Decay:       0.85,
			DeathSpeed:  0.3,
			LaunchSpeed: 4,
			Jitter:      0.9,
			Damage:      0, // Cosmetic splatter
			TraceColor:  color.NRGBA{R: 170, G: 0, B: 0, A: 255},
			Thickness:   2,
		}
	case ProjectileSpit:
		return KindPreset{
			Decay:       0.93,
			DeathSpeed:  0.4,
			LaunchSpeed: 4,
			Jitter:      0.25,
			Damage:      1,
			TraceColor:  color.NRGBA{R: 120, G: 200, B: 40, A: 255},
			Thickness:   3,
		}
	default:
		return KindPreset{
			Decay:       0.99,
			DeathSpeed:  0.1,
			LaunchSpeed: 2,
			Damage:      1,
			TraceColor:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Thickness:   2,
		}
	}
}

// VictimSet records the entities a projectile chain has already hit.
// It is owned by the projectile and shared with every bounce it spawns.
type VictimSet struct {
	ids map[EntityID]struct{}
}

// NewVictimSet creates an empty victim set
func NewVictimSet() *VictimSet {
	return &VictimSet{ids: make(map[EntityID]struct{}, MaxVictims)}
}

// Has reports whether id was already hit
func (v *VictimSet) Has(id EntityID) bool {
	_, ok := v.ids[id]
	return ok
}

// Len returns the number of victims
func (v *VictimSet) Len() int {
	return len(v.ids)
}

// Full reports whether the cap has been reached
func (v *VictimSet) Full() bool {
	return len(v.ids) >= MaxVictims
}

func (v *VictimSet) add(id EntityID) {
	v.ids[id] = struct{}{}
}

// Projectile is a ranged shot that decays until it stalls
type Projectile struct {
	Pos  vmath.Vec2
	Vel  vmath.Vec2
	Kind ProjectileKind

	decay      float64
	deathSpeed float64
	origin     EntityID
	created    int
	lastFrame  int
	victims    *VictimSet
	launchHits int // victims.Len() when this projectile was launched

	// trace ring buffer
	trace     [TraceLen]image.Point
	traceHead int
}

// NewProjectile creates a projectile of kind with the kind's decay and death
// threshold. origin is never hit by the projectile.
func NewProjectile(kind ProjectileKind, pos, vel vmath.Vec2, origin EntityID, frame int) *Projectile {
	preset := GetKindPreset(kind)
	p := &Projectile{
		Pos:        pos,
		Vel:        vel,
		Kind:       kind,
		decay:      preset.Decay,
		deathSpeed: preset.DeathSpeed,
		origin:     origin,
		created:    frame,
		lastFrame:  frame,
		victims:    NewVictimSet(),
	}
	start := pos.Point()
	for i := range p.trace {
		p.trace[i] = start
	}
	return p
}

// Origin returns the ID of the entity that fired the projectile
func (p *Projectile) Origin() EntityID { return p.origin }

// CreationFrame returns the frame the projectile was fired on
func (p *Projectile) CreationFrame() int { return p.created }

// Age returns the number of frames between creation and the last Advance
func (p *Projectile) Age() int { return p.lastFrame - p.created }

// Victims returns the shared victim set
func (p *Projectile) Victims() *VictimSet { return p.victims }

// Preset returns the kind preset of the projectile
func (p *Projectile) Preset() KindPreset { return GetKindPreset(p.Kind) }

// Trace returns the recorded integer positions, oldest first
func (p *Projectile) Trace() []image.Point {
	out := make([]image.Point, 0, TraceLen)
	for i := 0; i < TraceLen; i++ {
		out = append(out, p.trace[(p.traceHead+i)%TraceLen])
	}
	return out
}

// Dead reports whether the projectile has slowed to its death threshold.
// A dead projectile must be removed by the caller.
func (p *Projectile) Dead() bool {
	return p.Vel.Magnitude() <= p.deathSpeed
}

// Advance steps the projectile by one tick: optional homing, integration
// with decay, border bounce and trace update.
func (p *Projectile) Advance(borders vmath.Bounds, targets, obstacles []Entity, frame int) {
	p.lastFrame = frame

	if p.Kind == ProjectileMagic {
		p.home(targets, obstacles)
	}

	p.Pos.X += p.Vel.X
	p.Vel.X *= p.decay
	p.Pos.Y += p.Vel.Y
	p.Vel.Y *= p.decay

	p.Pos.X, p.Vel.X = bounceAxis(p.Pos.X, p.Vel.X, borders.W)
	p.Pos.Y, p.Vel.Y = bounceAxis(p.Pos.Y, p.Vel.Y, borders.H)

	p.trace[p.traceHead] = p.Pos.Point()
	p.traceHead = (p.traceHead + 1) % TraceLen
}

// bounceAxis points the velocity back inside [0, limit] and clamps the
// position. Only the sign changes; the magnitude is already decayed.
func bounceAxis(pos, vel, limit float64) (float64, float64) {
	switch {
	case pos < 0:
		if vel < 0 {
			vel = -vel
		}
		pos = 0
	case pos > limit:
		if vel > 0 {
			vel = -vel
		}
		pos = limit
	}
	return pos, vel
}

// home steers toward the nearest untouched target inside the lock-on radius.
// When there is none, or the shot is already inside a target or obstacle,
// the projectile drops.
func (p *Projectile) home(targets, obstacles []Entity) {
	if p.victims.Full() {
		p.Vel = vmath.Vec2{}
		return
	}

	target, dist := p.nearest(targets)
	if target == nil || dist == 0 || dist >= HomingRadius || p.obstructed(target, obstacles) {
		p.Vel = vmath.Vec2{}
		return
	}

	toward := target.Center(target.Bullet).Sub(p.Pos).Scale(1 / dist)
	p.Vel = p.Vel.Add(toward)
}

// nearest finds the closest candidate that is neither the origin nor a victim
func (p *Projectile) nearest(candidates []Entity) (*SpatialEntity, float64) {
	var best *SpatialEntity
	bestDist := 0.0
	for _, c := range candidates {
		e := c.Spatial()
		if e.id == p.origin || p.victims.Has(e.id) {
			continue
		}
		dist := vmath.Distance(e.Center(e.Bullet), p.Pos)
		if best == nil || dist < bestDist {
			best = e
			bestDist = dist
		}
	}
	return best, bestDist
}

// obstructed reports whether the projectile already sits inside the target's
// or any obstacle's bullet hitbox
func (p *Projectile) obstructed(target *SpatialEntity, obstacles []Entity) bool {
	at := p.Pos.Point()
	if target.RelativeRect(target.Bullet).ContainsPoint(at) {
		return true
	}
	for _, o := range obstacles {
		e := o.Spatial()
		if e.RelativeRect(e.Bullet).ContainsPoint(at) {
			return true
		}
	}
	return false
}

// Collide reports a new hit on e and records it as a victim. Pass NoFrame
// to skip the grace period that stops a shooter hitting itself on launch.
func (p *Projectile) Collide(e Entity, frame int) bool {
	body := e.Spatial()
	if body.id == p.origin {
		return false
	}
	if frame != NoFrame && frame <= p.created+GraceFrames {
		return false
	}
	if p.victims.Has(body.id) || p.victims.Full() {
		return false
	}
	if !body.RelativeRect(body.Bullet).ContainsPoint(p.Pos.Point()) {
		return false
	}
	p.victims.add(body.id)
	return true
}

// CanBounce reports whether a stalled homing projectile may pass the chain
// on: it must have hit something since it was launched, and the chain must
// have room for another victim.
func (p *Projectile) CanBounce() bool {
	return p.Kind == ProjectileMagic && p.victims.Len() > p.launchHits && !p.victims.Full()
}

// ChainBounce launches a new projectile of the same kind at the nearest
// candidate not yet hit. The new projectile shares the victim set and the
// current one is stopped. ok is false when no candidate is eligible.
func (p *Projectile) ChainBounce(candidates []Entity) (next *Projectile, ok bool) {
	if p.victims.Full() {
		return nil, false
	}

	var best *SpatialEntity
	var bestDir vmath.Vec2
	bestDist := 0.0
	for _, c := range candidates {
		e := c.Spatial()
		if e.id == p.origin || p.victims.Has(e.id) {
			continue
		}
		offset := e.Center(e.Bullet).Sub(p.Pos)
		dir, nonzero := offset.Normalize()
		if !nonzero {
			continue
		}
		dist := offset.Magnitude()
		if best == nil || dist < bestDist {
			best, bestDir, bestDist = e, dir, dist
		}
	}
	if best == nil {
		return nil, false
	}

	next = NewProjectile(p.Kind, p.Pos, bestDir.Scale(GetKindPreset(p.Kind).LaunchSpeed), p.origin, p.created)
	next.victims = p.victims
	next.launchHits = p.victims.Len()
	next.lastFrame = p.lastFrame
	p.Vel = vmath.Vec2{}
	return next, true
}
