package sim

import (
	"math"
	"sync/atomic"

	"spritefield/vmath"
)

// EntityID is a unique identifier for any entity in the simulation.
// Victim sets and projectile origins refer to entities by ID so that
// nothing depends on the position of an entity inside a caller's slice.
type EntityID uint64

// InvalidEntityID represents an unset entity reference
const InvalidEntityID EntityID = 0

var nextEntityID uint64

// generateEntityID creates a new unique entity ID
func generateEntityID() EntityID {
	return EntityID(atomic.AddUint64(&nextEntityID, 1))
}

// Entity is anything with a spatial body the core can test against
type Entity interface {
	Spatial() *SpatialEntity
}

// SpatialEntity is a positioned body with a ground hitbox for body
// collision and a bullet hitbox for projectile hits
type SpatialEntity struct {
	id EntityID

	// Position in world coordinates
	Pos vmath.Vec2

	// Ground is used for actor-vs-actor collision
	Ground vmath.Hitbox

	// Bullet is used for projectile-vs-actor collision
	Bullet vmath.Hitbox

	// FootOffset is added to the floored y position to form the draw key
	FootOffset int
}

// NewSpatialEntity creates a body with a fresh ID
func NewSpatialEntity(pos vmath.Vec2, ground, bullet vmath.Hitbox, footOffset int) SpatialEntity {
	return SpatialEntity{
		id:         generateEntityID(),
		Pos:        pos,
		Ground:     ground,
		Bullet:     bullet,
		FootOffset: footOffset,
	}
}

// ID returns the identity of the entity
func (s *SpatialEntity) ID() EntityID {
	return s.id
}

// Spatial implements Entity
func (s *SpatialEntity) Spatial() *SpatialEntity {
	return s
}

// RelativeRect places a hitbox at the current position
func (s *SpatialEntity) RelativeRect(h vmath.Hitbox) vmath.Rect {
	return h.At(s.Pos)
}

// Center returns the centroid of a hitbox at the current position
func (s *SpatialEntity) Center(h vmath.Hitbox) vmath.Vec2 {
	return s.RelativeRect(h).Center()
}

// FootKey orders draw calls back-to-front. It is never used for collision.
func (s *SpatialEntity) FootKey() int {
	return int(math.Floor(s.Pos.Y)) + s.FootOffset
}

// OverlapCorrection returns the per-axis amounts to subtract from Pos so
// that the ground hitboxes of s and other stop overlapping. The direction on
// each axis follows the sign of the center delta: when other lies to the
// right (or exactly level) the correction is positive and pushes s left.
// ok is false when the ground rectangles do not intersect.
func (s *SpatialEntity) OverlapCorrection(other *SpatialEntity) (correction vmath.Vec2, ok bool) {
	own := s.RelativeRect(s.Ground)
	theirs := other.RelativeRect(other.Ground)
	if !own.Intersects(theirs) {
		return vmath.Vec2{}, false
	}

	delta := theirs.Center().Sub(own.Center())

	if delta.X >= 0 {
		correction.X = own.Right() - theirs.X
	} else {
		correction.X = own.X - theirs.Right()
	}
	if delta.Y >= 0 {
		correction.Y = own.Bottom() - theirs.Y
	} else {
		correction.Y = own.Y - theirs.Bottom()
	}

	return correction, true
}
