package sim

import "math"

// MovementState is the locomotion state used to pick a sprite row
type MovementState int

const (
	Idle MovementState = iota
	Running
)

// String returns the sprite-bank name of the state
func (m MovementState) String() string {
	switch m {
	case Running:
		return "run"
	default:
		return "stay"
	}
}

const (
	// Sectors is the number of compass buckets a facing can resolve to
	Sectors = 8

	// animBase is the frame-rate denominator animation rates are expressed against
	animBase = 48

	// HitFlashFrames is how long the damage flag stays raised after a hit
	HitFlashFrames = 6
)

// SpriteKey identifies one image in an actor kind's sprite bank
type SpriteKey struct {
	State  MovementState
	Sector int
	Frame  int

	// Hit asks the renderer for the damage-flash variant
	Hit bool
}

// FacingSector maps a movement delta to a compass bucket, 0 = north,
// increasing clockwise. The caller must only pass a nonzero delta.
func FacingSector(dx, dy float64) int {
	bucket := int(math.Floor(math.Atan2(dx, dy) / math.Pi * 4))
	return ((bucket % Sectors) + Sectors) % Sectors
}

// SectorVector returns a unit vector through the middle of sector, so that
// FacingSector(SectorVector(s)) == s
func SectorVector(sector int) (dx, dy float64) {
	angle := (float64(sector) + 0.5) * math.Pi / 4
	return math.Sin(angle), math.Cos(angle)
}

// SpriteFrame returns the animation frame index, always in [0, cycleLength)
func SpriteFrame(state MovementState, frameCounter, animRate, cycleLength int) int {
	if state == Idle || cycleLength <= 1 {
		return 0
	}
	if frameCounter < 0 {
		frameCounter = 0
	}
	n := (frameCounter * animRate / animBase) % cycleLength
	if n < 0 {
		n += cycleLength
	}
	return min(n, cycleLength-1)
}

// SpriteKeyFor resolves the full sprite key for a state and facing
func SpriteKeyFor(state MovementState, sector, frameCounter, animRate, cycleLength int) SpriteKey {
	return SpriteKey{
		State:  state,
		Sector: sector,
		Frame:  SpriteFrame(state, frameCounter, animRate, cycleLength),
	}
}
