package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"spritefield/vmath"
)

func mover(x, y float64) *MovingActor {
	return NewMovingActor(body(x, y), 3, 0)
}

func TestMove_ZeroIntentStaysIdle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(-500, 500).Draw(t, "x")
		y := rapid.Float64Range(-500, 500).Draw(t, "y")
		frame := rapid.IntRange(0, 10000).Draw(t, "frame")

		m := mover(x, y)
		// An overlapping obstacle must not nudge an idle actor
		other := body(x+2, y+2)
		m.Move(0, 0, frame, []Entity{&other}, &vmath.Bounds{W: 100, H: 100})

		if m.State != Idle {
			t.Fatalf("state = %v, want idle", m.State)
		}
		if m.Pos != (vmath.Vec2{X: x, Y: y}) {
			t.Fatalf("position moved to %v", m.Pos)
		}
	})
}

func TestMove_RunningState(t *testing.T) {
	m := mover(0, 0)

	m.Move(1, 0, 10, nil, nil)
	assert.Equal(t, Running, m.State)
	assert.Equal(t, 2, m.Sector)
	assert.Equal(t, vmath.Vec2{X: 1}, m.Pos)
	start, ok := m.MoveStartFrame()
	require.True(t, ok)
	assert.Equal(t, 10, start)

	// Continuing a run keeps the start frame
	m.Move(0, 1, 11, nil, nil)
	start, _ = m.MoveStartFrame()
	assert.Equal(t, 10, start)
	assert.Equal(t, 0, m.Sector)

	m.Move(0, 0, 12, nil, nil)
	assert.Equal(t, Idle, m.State)
	_, ok = m.MoveStartFrame()
	assert.False(t, ok)
	assert.Equal(t, vmath.Vec2{}, m.Facing)
	assert.Equal(t, vmath.Vec2{Y: 1}, m.Sight, "sight keeps the last nonzero intent")
	assert.Equal(t, 0, m.Sector, "sector persists while idle")
}

func TestMove_ResolvesSmallerOverlapAxisOnly(t *testing.T) {
	m := mover(-1, 0)
	other := body(7, 3)

	m.Move(1, 0, 0, []Entity{&other}, nil)

	// Overlap was (3, 7): only x is pushed out
	assert.Equal(t, -3.0, m.Pos.X)
	assert.Equal(t, 0.0, m.Pos.Y, "y is left alone")
	_, ok := m.OverlapCorrection(&other)
	assert.False(t, ok)
}

func TestMove_SkipsSelf(t *testing.T) {
	m := mover(0, 0)
	m.Move(1, 0, 0, []Entity{m}, nil)
	assert.Equal(t, vmath.Vec2{X: 1}, m.Pos)
}

func TestMove_ClampsToBorders(t *testing.T) {
	m := NewMovingActor(NewSpatialEntity(vmath.Vec2{X: 95, Y: 2}, square, vmath.Hitbox{OffsetX: 2, OffsetY: 4, W: 6, H: 6}, 0), 1, 0)

	m.Move(10, -10, 0, nil, &vmath.Bounds{W: 100, H: 100})

	assert.Equal(t, 92.0, m.Pos.X)
	assert.Equal(t, -4.0, m.Pos.Y)
}

func TestHurtAndFlash(t *testing.T) {
	m := mover(0, 0)
	assert.False(t, m.Flashing(0))

	m.Hurt(1, 10)
	assert.Equal(t, 2, m.Health)
	assert.True(t, m.Flashing(10))
	assert.True(t, m.Flashing(10+HitFlashFrames-1))
	assert.False(t, m.Flashing(10+HitFlashFrames))

	assert.True(t, m.SpriteKey(12, 16, 6).Hit)
}

func TestMovingActor_SpriteKey(t *testing.T) {
	m := mover(0, 0)
	assert.Equal(t, SpriteKey{State: Idle, Sector: 0}, m.SpriteKey(50, 16, 6))

	m.Move(-1, 0, 100, nil, nil)
	assert.Equal(t, SpriteKey{State: Running, Sector: 6, Frame: 0}, m.SpriteKey(100, 16, 6))
	assert.Equal(t, SpriteKey{State: Running, Sector: 6, Frame: 2}, m.SpriteKey(106, 16, 6))
}
