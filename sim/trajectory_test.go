package sim

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spritefield/vmath"
)

func TestTrajectory_EndsWhenDead(t *testing.T) {
	p := NewProjectile(ProjectileArrow, vmath.Vec2{}, vmath.Vec2{X: 6}, InvalidEntityID, 0)

	var points []image.Point
	for pt := range p.Trajectory(wide, nil, nil) {
		points = append(points, pt)
	}

	require.NotEmpty(t, points)
	assert.Equal(t, image.Point{X: 6}, points[0])
	assert.True(t, p.Dead())
	assert.Less(t, len(points), MaxTrajectorySteps)
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].X, points[i-1].X)
	}
}

func TestTrajectory_AbandonEarly(t *testing.T) {
	p := NewProjectile(ProjectileArrow, vmath.Vec2{}, vmath.Vec2{X: 6}, InvalidEntityID, 0)

	n := 0
	for range p.Trajectory(wide, nil, nil) {
		n++
		if n == 3 {
			break
		}
	}

	assert.Equal(t, 3, n)
	assert.False(t, p.Dead())
	assert.InDelta(t, 6+5.88+5.7624, p.Pos.X, 1e-9, "the walk consumed three ticks")
	assert.Equal(t, 3, p.Age())
}

func TestTracer_Next(t *testing.T) {
	p := NewProjectile(ProjectileGeneric, vmath.Vec2{X: 5, Y: 5}, vmath.Vec2{Y: 0.2}, InvalidEntityID, 7)
	tr := NewTracer(p, wide, nil, nil)

	pos, ok := tr.Next()
	require.True(t, ok)
	assert.Equal(t, image.Point{X: 5, Y: 5}, pos)
	assert.Equal(t, 1, p.Age())

	steps := 1
	for {
		if _, ok := tr.Next(); !ok {
			break
		}
		steps++
	}
	assert.True(t, p.Dead())

	_, ok = tr.Next()
	assert.False(t, ok, "a finished tracer stays finished")
	assert.Equal(t, steps, p.Age())
}

func TestTrajectory_DeadProjectileYieldsNothing(t *testing.T) {
	p := NewProjectile(ProjectileArrow, vmath.Vec2{}, vmath.Vec2{}, InvalidEntityID, 0)
	for range p.Trajectory(wide, nil, nil) {
		t.Fatal("dead projectile produced a position")
	}
}
