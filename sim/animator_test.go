package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFacingSector_Compass(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   int
	}{
		{0, 1, 0},
		{1, 2, 0},
		{2, 1, 1},
		{1, 0, 2},
		{2, -1, 2},
		{1, -2, 3},
		{0, -1, 4},
		{-1, -2, 4},
		{-2, -1, 5},
		{-1, 0, 6},
		{-2, 1, 6},
		{-1, 2, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FacingSector(tt.dx, tt.dy), "delta (%v, %v)", tt.dx, tt.dy)
	}
}

func TestSectorVector_RoundTrip(t *testing.T) {
	for s := 0; s < Sectors; s++ {
		dx, dy := SectorVector(s)
		assert.Equal(t, s, FacingSector(dx, dy))
	}
}

func TestFacingSector_InRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dx := rapid.Float64Range(-1000, 1000).Draw(t, "dx")
		dy := rapid.Float64Range(-1000, 1000).Draw(t, "dy")
		if dx == 0 && dy == 0 {
			dx = 1
		}
		s := FacingSector(dx, dy)
		if s < 0 || s >= Sectors {
			t.Fatalf("sector %d out of range for (%v, %v)", s, dx, dy)
		}
	})
}

func TestSpriteFrame(t *testing.T) {
	t.Run("idle is always frame zero", func(t *testing.T) {
		assert.Equal(t, 0, SpriteFrame(Idle, 100, 16, 6))
	})

	t.Run("single frame cycle", func(t *testing.T) {
		assert.Equal(t, 0, SpriteFrame(Running, 100, 16, 1))
	})

	t.Run("run advances every three ticks at rate 16", func(t *testing.T) {
		got := make([]int, 0, 20)
		for fc := 0; fc < 20; fc++ {
			got = append(got, SpriteFrame(Running, fc, 16, 6))
		}
		assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4, 5, 5, 5, 0, 0}, got)
	})
}

func TestSpriteFrame_Bounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := rapid.SampledFrom([]MovementState{Idle, Running}).Draw(t, "state")
		fc := rapid.IntRange(-100, 1_000_000).Draw(t, "frameCounter")
		rate := rapid.IntRange(1, 96).Draw(t, "animRate")
		cycle := rapid.IntRange(1, 12).Draw(t, "cycleLength")

		n := SpriteFrame(state, fc, rate, cycle)
		if n < 0 || n >= cycle {
			t.Fatalf("frame %d outside [0, %d)", n, cycle)
		}
	})
}

func TestMovementState_String(t *testing.T) {
	assert.Equal(t, "stay", Idle.String())
	assert.Equal(t, "run", Running.String())
}
