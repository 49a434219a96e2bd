package sim

import (
	"math"

	"spritefield/vmath"
)

// MovingActor is a body that walks on intent, avoids obstacles and stays
// inside the world borders. Health is only changed by combat calls; the
// core never removes an actor whose health runs out.
type MovingActor struct {
	SpatialEntity

	Health int
	State  MovementState

	// Facing is the latest movement intent, zero included
	Facing vmath.Vec2

	// Sight is the last nonzero movement intent, the default aim direction
	Sight vmath.Vec2

	// Sector is the compass bucket of Sight, kept while idle
	Sector int

	moveStartFrame int
	hurtFrame      int
	hurt           bool
}

// NewMovingActor creates an idle actor facing sector
func NewMovingActor(body SpatialEntity, health, sector int) *MovingActor {
	dx, dy := SectorVector(sector)
	return &MovingActor{
		SpatialEntity: body,
		Health:        health,
		State:         Idle,
		Sight:         vmath.Vec2{X: dx, Y: dy},
		Sector:        sector,
	}
}

// MoveStartFrame returns the frame the current run began on.
// ok is false exactly when the actor is idle.
func (m *MovingActor) MoveStartFrame() (frame int, ok bool) {
	if m.State == Idle {
		return 0, false
	}
	return m.moveStartFrame, true
}

// Move applies a movement intent for this frame. Obstacles are resolved in
// the order given, one axis per obstacle; the actor itself is skipped if it
// appears in the list. A nil borders means the world is unbounded.
func (m *MovingActor) Move(dx, dy float64, frame int, obstacles []Entity, borders *vmath.Bounds) {
	m.Facing = vmath.Vec2{X: dx, Y: dy}

	if dx == 0 && dy == 0 {
		m.State = Idle
		m.moveStartFrame = 0
		return
	}

	if m.State == Idle {
		m.moveStartFrame = frame
	}
	m.State = Running
	m.Sight = m.Facing
	m.Sector = FacingSector(dx, dy)

	m.Pos.X += dx
	m.Pos.Y += dy

	for _, obstacle := range obstacles {
		other := obstacle.Spatial()
		if other.id == m.id {
			continue
		}
		correction, ok := m.OverlapCorrection(other)
		if !ok {
			continue
		}
		// Resolve along the axis that needs the smaller push
		if math.Abs(correction.X) < math.Abs(correction.Y) {
			m.Pos.X -= correction.X
		} else {
			m.Pos.Y -= correction.Y
		}
	}

	if borders != nil {
		m.clampTo(*borders)
	}
}

// clampTo keeps the bullet hitbox inside the world borders
func (m *MovingActor) clampTo(b vmath.Bounds) {
	h := m.Bullet
	m.Pos.X = vmath.Clamp(-h.OffsetX, m.Pos.X, b.W-h.OffsetX-h.W)
	m.Pos.Y = vmath.Clamp(-h.OffsetY, m.Pos.Y, b.H-h.OffsetY-h.H)
}

// Hurt removes amount health and raises the damage flag
func (m *MovingActor) Hurt(amount, frame int) {
	m.Health -= amount
	m.hurt = true
	m.hurtFrame = frame
}

// Flashing reports whether the damage flag is still raised at frame
func (m *MovingActor) Flashing(frame int) bool {
	return m.hurt && frame-m.hurtFrame < HitFlashFrames
}

// SpriteKey derives the sprite key for frame with the given timing
func (m *MovingActor) SpriteKey(frame, animRate, cycleLength int) SpriteKey {
	counter := 0
	if start, ok := m.MoveStartFrame(); ok {
		counter = frame - start
	}
	key := SpriteKeyFor(m.State, m.Sector, counter, animRate, cycleLength)
	key.Hit = m.Flashing(frame)
	return key
}
