package sim

import (
	"errors"
	"math"

	"spritefield/vmath"
)

// ErrZeroAim is returned when a ranged attack is requested without a
// direction. No projectile is created and the cooldown is left untouched.
var ErrZeroAim = errors.New("sim: shoot called with zero aim vector")

// Kind selects an actor's preset and combat capabilities
type Kind int

const (
	KindSheep Kind = iota
	KindHuman
	KindZombie
	KindPlayer
	KindCount // Total number of actor kinds
)

func (k Kind) String() string {
	return GetPreset(k).Name
}

// MeleeCooldown is the minimum number of frames between two melee hits
const MeleeCooldown = 5

// Preset holds the stats of an actor kind
type Preset struct {
	Kind       Kind
	Name       string
	Health     int
	Speed      float64 // pixels per frame
	Ground     vmath.Hitbox
	Bullet     vmath.Hitbox
	FootOffset int

	// Animation timing, see SpriteFrame
	AnimRate    int
	CycleLength int

	// Ranged attack, only used when Ranged is set
	Ranged   bool
	Weapon   ProjectileKind
	Cooldown int

	Melee bool
}

// GetPreset returns the preset of an actor kind
func GetPreset(kind Kind) Preset {
	switch kind {
	case KindSheep:
		return Preset{
			Kind:        KindSheep,
			Name:        "sheep",
			Health:      2,
			Speed:       0.6,
			Ground:      vmath.Hitbox{OffsetX: 4, OffsetY: 16, W: 24, H: 8},
			Bullet:      vmath.Hitbox{OffsetX: 4, OffsetY: 8, W: 24, H: 16},
			FootOffset:  24,
			AnimRate:    6,
			CycleLength: 2,
		}
	case KindHuman:
		return Preset{
			Kind:        KindHuman,
			Name:        "human",
			Health:      5,
			Speed:       1.2,
			Ground:      vmath.Hitbox{OffsetX: 10, OffsetY: 24, W: 12, H: 8},
			Bullet:      vmath.Hitbox{OffsetX: 8, OffsetY: 2, W: 16, H: 30},
			FootOffset:  32,
			AnimRate:    16,
			CycleLength: 6,
			Ranged:      true,
			Weapon:      ProjectileArrow,
			Cooldown:    15,
		}
	case KindZombie:
		return Preset{
			Kind:        KindZombie,
			Name:        "zombie",
			Health:      4,
			Speed:       0.8,
			Ground:      vmath.Hitbox{OffsetX: 10, OffsetY: 24, W: 12, H: 8},
			Bullet:      vmath.Hitbox{OffsetX: 8, OffsetY: 2, W: 16, H: 30},
			FootOffset:  32,
			AnimRate:    8,
			CycleLength: 4,
			Ranged:      true,
			Weapon:      ProjectileSpit,
			Cooldown:    18,
			Melee:       true,
		}
	case KindPlayer:
		return Preset{
			Kind:        KindPlayer,
			Name:        "player",
			Health:      10,
			Speed:       2,
			Ground:      vmath.Hitbox{OffsetX: 8, OffsetY: 24, W: 16, H: 8},
			Bullet:      vmath.Hitbox{OffsetX: 8, OffsetY: 0, W: 16, H: 32},
			FootOffset:  32,
			AnimRate:    16, // One frame every 3 ticks
			CycleLength: 6,
			Ranged:      true,
			Weapon:      ProjectileGeneric,
			Cooldown:    20,
			Melee:       true,
		}
	default:
		return GetPreset(KindSheep)
	}
}

// RangedAttacker can fire projectiles
type RangedAttacker interface {
	Shoot(aim vmath.Vec2, frame int) (*Projectile, error)
}

// MeleeAttacker can damage an adjacent actor
type MeleeAttacker interface {
	Hit(target *MovingActor, frame int) bool
}

// Actor is a moving actor with the stats and attacks of its kind
type Actor struct {
	MovingActor

	Kind   Kind
	Preset Preset

	// Weapon is the projectile kind fired by the ranged attack
	Weapon ProjectileKind

	rng             Rand
	lastActionFrame int
	acted           bool
}

// NewActor creates an actor of kind at pos with a random initial facing
func NewActor(kind Kind, pos vmath.Vec2, rng Rand) *Actor {
	preset := GetPreset(kind)
	body := NewSpatialEntity(pos, preset.Ground, preset.Bullet, preset.FootOffset)
	return &Actor{
		MovingActor: *NewMovingActor(body, preset.Health, rng.Intn(Sectors)),
		Kind:        kind,
		Preset:      preset,
		Weapon:      preset.Weapon,
		rng:         rng,
	}
}

// SpriteKey resolves the actor's sprite key at frame using its preset timing
func (a *Actor) SpriteKey(frame int) SpriteKey {
	return a.MovingActor.SpriteKey(frame, a.Preset.AnimRate, a.Preset.CycleLength)
}

// Alive reports whether the actor still has health
func (a *Actor) Alive() bool {
	return a.Health > 0
}

// Ranged returns the ranged attack of the actor, if its kind has one
func (a *Actor) Ranged() (RangedAttacker, bool) {
	if !a.Preset.Ranged {
		return nil, false
	}
	return rangedAttack{a}, true
}

// Melee returns the melee attack of the actor, if its kind has one
func (a *Actor) Melee() (MeleeAttacker, bool) {
	if !a.Preset.Melee {
		return nil, false
	}
	return meleeAttack{a}, true
}

// ready checks the shared action cooldown
func (a *Actor) ready(frame, cooldown int) bool {
	return !a.acted || frame-a.lastActionFrame >= cooldown
}

func (a *Actor) markAction(frame int) {
	a.acted = true
	a.lastActionFrame = frame
}

type rangedAttack struct{ a *Actor }

// Shoot fires from the center of the bullet hitbox toward aim. It returns
// nil while the cooldown is running and ErrZeroAim for a zero aim vector.
func (r rangedAttack) Shoot(aim vmath.Vec2, frame int) (*Projectile, error) {
	a := r.a
	dir, ok := aim.Normalize()
	if !ok {
		return nil, ErrZeroAim
	}
	if !a.ready(frame, a.Preset.Cooldown) {
		return nil, nil
	}
	a.markAction(frame)

	preset := GetKindPreset(a.Weapon)
	if preset.Jitter > 0 {
		dir = dir.Rotate(jitter(a.rng, preset.Jitter))
	}
	origin := a.Center(a.Bullet)
	return NewProjectile(a.Weapon, origin, dir.Scale(preset.LaunchSpeed), a.ID(), frame), nil
}

type meleeAttack struct{ a *Actor }

// Hit removes one health from target if the cooldown has elapsed
func (m meleeAttack) Hit(target *MovingActor, frame int) bool {
	if !m.a.ready(frame, MeleeCooldown) {
		return false
	}
	target.Hurt(1, frame)
	m.a.markAction(frame)
	return true
}

// BloodSpray emits n cosmetic blood drops from at in random directions.
// It returns nil for n <= 0.
func BloodSpray(at vmath.Vec2, n int, origin EntityID, frame int, rng Rand) []*Projectile {
	if n <= 0 {
		return nil
	}
	preset := GetKindPreset(ProjectileBlood)
	drops := make([]*Projectile, 0, n)
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := preset.LaunchSpeed * (0.5 + rng.Float64()*0.5)
		vel := vmath.Vec2{X: math.Sin(angle) * speed, Y: math.Cos(angle) * speed}
		drops = append(drops, NewProjectile(ProjectileBlood, at, vel, origin, frame))
	}
	return drops
}

// jitter returns a random angle in [-spread, spread]
func jitter(rng Rand, spread float64) float64 {
	return (rng.Float64()*2 - 1) * spread
}
