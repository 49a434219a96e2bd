// Package sound plays short synthesized cues for what happens to the player.
// Audio is optional: every call is a no-op until Initialize succeeds.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"spritefield/sim"
	"spritefield/world"
)

const sampleRate = beep.SampleRate(44100)

// Cue names a sound effect
type Cue int

const (
	CueShot  Cue = iota // The player fired
	CueHit              // The player was hurt
	CueDeath            // The player died
	CueChain            // The player's homing shot jumped to a new target
)

// Durations of the cues
var cueLength = map[Cue]time.Duration{
	CueShot:  50 * time.Millisecond,
	CueHit:   150 * time.Millisecond,
	CueDeath: 400 * time.Millisecond,
	CueChain: 80 * time.Millisecond,
}

// Manager mixes cues onto the speaker
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a new sound manager
func NewManager() *Manager {
	return &Manager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences everything still playing
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.mixer.Clear()
	m.initialized = false
}

// Play mixes in a cue
func (m *Manager) Play(c Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	if s := streamerFor(c); s != nil {
		speaker.Lock()
		m.mixer.Add(s)
		speaker.Unlock()
	}
}

// streamerFor builds a fresh finite stream for a cue, nil for unknown cues
func streamerFor(c Cue) beep.Streamer {
	length, ok := cueLength[c]
	if !ok {
		return nil
	}
	n := sampleRate.N(length)

	switch c {
	case CueShot:
		sine, err := generators.SineTone(sampleRate, 880)
		if err != nil {
			return nil
		}
		return beep.Take(n, sine)
	case CueChain:
		sine, err := generators.SineTone(sampleRate, 1320)
		if err != nil {
			return nil
		}
		return beep.Take(n, sine)
	case CueHit:
		return beep.Take(n, &buzz{freq: 120})
	default:
		return beep.Take(n, &rumble{})
	}
}

// buzz is a harsh tone with a short fade in
type buzz struct {
	freq float64
	pos  int
}

func (g *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= math.Min(t/0.02, 1.0) * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *buzz) Err() error {
	return nil
}

// rumble is a falling low tone that fades out
type rumble struct {
	pos int
}

func (g *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		freq := 110 - 60*math.Min(t/0.4, 1)
		sample := 0.3 * math.Exp(-t*6) * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *rumble) Err() error {
	return nil
}

// CuesFor picks the cues for the player out of a step's events. died is
// set when the player was reaped after the step.
func CuesFor(events []world.Event, player sim.EntityID, died bool) []Cue {
	var cues []Cue
	seen := make(map[Cue]bool)
	add := func(c Cue) {
		if !seen[c] {
			seen[c] = true
			cues = append(cues, c)
		}
	}

	for _, e := range events {
		if e.Actor != player {
			continue
		}
		switch e.Kind {
		case world.EventShot:
			add(CueShot)
		case world.EventHit, world.EventMelee:
			add(CueHit)
		case world.EventBounce:
			add(CueChain)
		}
	}
	if died {
		add(CueDeath)
	}
	return cues
}
