package sound

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spritefield/sim"
	"spritefield/world"
)

// drain counts the samples a finite streamer yields and their peak level
func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestManager_GracefulWithoutInit(t *testing.T) {
	m := NewManager()

	assert.NotPanics(t, func() {
		m.Play(CueShot)
		m.Play(CueDeath)
		m.Cleanup()
	})
}

func TestManager_Initialize(t *testing.T) {
	m := NewManager()

	// Speaker initialization fails on machines without an audio device
	if err := m.Initialize(); err != nil {
		t.Logf("sound initialization failed (expected without audio device): %v", err)
		return
	}
	require.NoError(t, m.Initialize(), "second call is a no-op")
	m.Play(CueHit)
	m.Cleanup()
}

func TestStreamerFor_Lengths(t *testing.T) {
	for cue, length := range cueLength {
		s := streamerFor(cue)
		require.NotNil(t, s, "cue %d", cue)

		total, peak := drain(s)
		assert.Equal(t, sampleRate.N(length), total, "cue %d", cue)
		assert.Greater(t, peak, 0.0, "cue %d is audible", cue)
		assert.LessOrEqual(t, peak, 1.0, "cue %d does not clip", cue)
	}
	assert.Nil(t, streamerFor(Cue(99)))
}

func TestCuesFor(t *testing.T) {
	player := sim.EntityID(7)
	other := sim.EntityID(8)
	events := []world.Event{
		{Kind: world.EventShot, Actor: player},
		{Kind: world.EventShot, Actor: other},
		{Kind: world.EventMelee, Actor: player},
		{Kind: world.EventHit, Actor: player},
		{Kind: world.EventBounce, Actor: player},
		{Kind: world.EventHit, Actor: other},
	}

	assert.Equal(t, []Cue{CueShot, CueHit, CueChain}, CuesFor(events, player, false))
	assert.Equal(t, []Cue{CueDeath}, CuesFor(nil, player, true))
	assert.Empty(t, CuesFor(events, sim.EntityID(9), false))
}
