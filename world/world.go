package world

import (
	"errors"
	"slices"

	"github.com/rs/zerolog"

	"spritefield/sim"
	"spritefield/vmath"
)

// MeleeReach is how far past its ground hitbox an actor can strike
const MeleeReach = 3.0

// meleeScan bounds the grid query for melee targets
const meleeScan = 48.0

// Intent is what a controller wants an actor to do on one tick
type Intent struct {
	// DX and DY give the walking direction; the length is ignored and the
	// actor moves at its preset speed
	DX, DY float64

	Shoot bool
	Aim   vmath.Vec2

	// Magic swaps the player's shot for a homing one
	Magic bool

	Melee bool
}

// EventKind classifies what happened to an actor during a step
type EventKind int

const (
	EventShot   EventKind = iota // Actor fired a projectile
	EventMelee                   // Actor was struck in melee
	EventHit                     // Actor was hit by a projectile
	EventBounce                  // A homing shot fired by Actor picked a new target
)

// Event records one combat outcome of the last step
type Event struct {
	Kind  EventKind
	Actor sim.EntityID
	Frame int
}

// Snapshot is a read-only view of the world for renderers
type Snapshot struct {
	Frame       int
	Bounds      vmath.Bounds
	Actors      []*sim.Actor // painter order
	Projectiles []*sim.Projectile
}

// World owns every live actor, obstacle and projectile and steps them one
// tick at a time. It is not safe for concurrent use.
type World struct {
	Actors      []*sim.Actor
	Obstacles   []sim.Entity
	Projectiles []*sim.Projectile
	Bounds      vmath.Bounds
	Frame       int

	// Player is the keyboard-controlled actor, nil when absent or dead
	Player *sim.Actor

	// Events lists what happened during the last Step
	Events []Event

	cfg  Config
	rng  sim.Rand
	log  zerolog.Logger
	grid *Grid
}

// New creates a world and spawns the configured population at random
// positions
func New(cfg Config, rng sim.Rand, log zerolog.Logger) *World {
	w := &World{
		Actors:      make([]*sim.Actor, 0, cfg.Population.Sheep+cfg.Population.Humans+cfg.Population.Zombies+1),
		Obstacles:   make([]sim.Entity, 0),
		Projectiles: make([]*sim.Projectile, 0, 64),
		Bounds:      vmath.Bounds{W: cfg.Width, H: cfg.Height},
		cfg:         cfg,
		rng:         rng,
		log:         log,
		grid:        NewGrid(cfg),
	}

	for range cfg.Population.Sheep {
		w.SpawnRandom(sim.KindSheep)
	}
	for range cfg.Population.Humans {
		w.SpawnRandom(sim.KindHuman)
	}
	for range cfg.Population.Zombies {
		w.SpawnRandom(sim.KindZombie)
	}
	if cfg.Player {
		w.Player = w.Spawn(sim.KindPlayer, vmath.Vec2{X: cfg.Width/2 - 16, Y: cfg.Height/2 - 16})
	}

	w.log.Info().
		Int("actors", len(w.Actors)).
		Float64("width", cfg.Width).
		Float64("height", cfg.Height).
		Msg("world created")
	return w
}

// Spawn adds an actor of kind at pos
func (w *World) Spawn(kind sim.Kind, pos vmath.Vec2) *sim.Actor {
	a := sim.NewActor(kind, pos, w.rng)
	w.Actors = append(w.Actors, a)
	w.grid.Insert(a)
	w.log.Debug().
		Uint64("id", uint64(a.ID())).
		Str("kind", a.Preset.Name).
		Float64("x", pos.X).
		Float64("y", pos.Y).
		Msg("spawn")
	return a
}

// SpawnRandom adds an actor of kind at a random position inside the borders
func (w *World) SpawnRandom(kind sim.Kind) *sim.Actor {
	p := sim.GetPreset(kind)
	maxX := max(0, w.Bounds.W-p.Bullet.OffsetX-p.Bullet.W)
	maxY := max(0, w.Bounds.H-p.Bullet.OffsetY-p.Bullet.H)
	pos := vmath.Vec2{
		X: w.rng.Float64() * maxX,
		Y: w.rng.Float64() * maxY,
	}
	return w.Spawn(kind, pos)
}

// AddObstacle registers a static body that actors walk around
func (w *World) AddObstacle(e sim.Entity) {
	w.Obstacles = append(w.Obstacles, e)
}

// Find returns the actor with id
func (w *World) Find(id sim.EntityID) (*sim.Actor, bool) {
	for _, a := range w.Actors {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// Near returns the actors whose body center lies within radius of center,
// as of the last grid rebuild
func (w *World) Near(center vmath.Vec2, radius float64) []*sim.Actor {
	return w.grid.Near(center, radius)
}

// Step advances the world by one tick. Actors without an intent stand
// still. Dead actors stay in place as obstacles until Reap.
func (w *World) Step(intents map[sim.EntityID]Intent) {
	w.Events = w.Events[:0]
	bodies := entities(w.Actors)
	obstacles := slices.Concat(w.Obstacles, bodies)

	for _, a := range w.Actors {
		if !a.Alive() {
			continue
		}
		step := vmath.Vec2{}
		in := intents[a.ID()]
		if dir, ok := (vmath.Vec2{X: in.DX, Y: in.DY}).Normalize(); ok {
			step = dir.Scale(a.Preset.Speed)
		}
		a.Move(step.X, step.Y, w.Frame, obstacles, &w.Bounds)
	}

	w.grid.Rebuild(w.Actors)

	for _, a := range w.Actors {
		in, ok := intents[a.ID()]
		if !ok || !a.Alive() {
			continue
		}
		if in.Melee {
			w.melee(a)
		}
		if in.Shoot {
			w.shoot(a, in)
		}
	}

	w.advanceProjectiles()
	w.Frame++
}

// melee strikes the first hostile actor within reach
func (w *World) melee(a *sim.Actor) {
	claws, ok := a.Melee()
	if !ok {
		return
	}
	reach := a.RelativeRect(a.Ground).Grow(MeleeReach)
	for _, t := range w.grid.Near(a.Center(a.Bullet), meleeScan) {
		if t == a || !t.Alive() || !Hostile(a.Kind, t.Kind) {
			continue
		}
		if !reach.Intersects(t.RelativeRect(t.Ground)) {
			continue
		}
		if !claws.Hit(&t.MovingActor, w.Frame) {
			return
		}
		w.emit(EventMelee, t.ID())
		w.log.Debug().
			Uint64("attacker", uint64(a.ID())).
			Uint64("target", uint64(t.ID())).
			Int("health", t.Health).
			Msg("melee hit")
		w.Projectiles = append(w.Projectiles, sim.BloodSpray(t.Center(t.Bullet), w.cfg.BloodDrops, t.ID(), w.Frame, w.rng)...)
		return
	}
}

// shoot fires the actor's ranged weapon. A rejected shot only aborts this
// actor's action.
func (w *World) shoot(a *sim.Actor, in Intent) {
	gun, ok := a.Ranged()
	if !ok {
		return
	}
	a.Weapon = a.Preset.Weapon
	if in.Magic && a.Kind == sim.KindPlayer {
		a.Weapon = sim.ProjectileMagic
	}

	p, err := gun.Shoot(in.Aim, w.Frame)
	if err != nil {
		if errors.Is(err, sim.ErrZeroAim) {
			w.log.Debug().Uint64("id", uint64(a.ID())).Msg("shot without aim ignored")
			return
		}
		w.log.Warn().Err(err).Uint64("id", uint64(a.ID())).Msg("shot failed")
		return
	}
	if p == nil {
		return
	}
	w.Projectiles = append(w.Projectiles, p)
	w.emit(EventShot, a.ID())
	w.log.Debug().
		Uint64("id", uint64(a.ID())).
		Stringer("kind", p.Kind).
		Msg("shot fired")
}

// advanceProjectiles moves every projectile, applies hits, passes stalled
// homing shots along their chain and drops the dead
func (w *World) advanceProjectiles() {
	targets := entities(living(w.Actors))
	live := make([]*sim.Projectile, 0, len(w.Projectiles))

	for _, p := range w.Projectiles {
		p.Advance(w.Bounds, targets, w.Obstacles, w.Frame)

		if damage := p.Preset().Damage; damage > 0 {
			for _, a := range w.Actors {
				if !a.Alive() || !p.Collide(a, w.Frame) {
					continue
				}
				a.Hurt(damage, w.Frame)
				w.emit(EventHit, a.ID())
				w.log.Debug().
					Stringer("projectile", p.Kind).
					Uint64("target", uint64(a.ID())).
					Int("health", a.Health).
					Msg("projectile hit")
			}
		}

		if !p.Dead() {
			live = append(live, p)
			continue
		}

		if p.CanBounce() {
			candidates := entities(living(w.grid.Near(p.Pos, sim.HomingRadius)))
			if next, ok := p.ChainBounce(candidates); ok {
				live = append(live, next)
				w.emit(EventBounce, p.Origin())
				w.log.Debug().
					Int("victims", p.Victims().Len()).
					Msg("chain bounce")
			}
		}
	}

	w.Projectiles = live
}

// Reap removes actors whose health has run out and returns them
func (w *World) Reap() []*sim.Actor {
	var dead []*sim.Actor
	w.Actors = slices.DeleteFunc(w.Actors, func(a *sim.Actor) bool {
		if a.Alive() {
			return false
		}
		dead = append(dead, a)
		return true
	})

	for _, a := range dead {
		if a == w.Player {
			w.Player = nil
		}
		w.log.Info().
			Uint64("id", uint64(a.ID())).
			Str("kind", a.Preset.Name).
			Int("frame", w.Frame).
			Msg("actor died")
	}
	if len(dead) > 0 {
		w.grid.Rebuild(w.Actors)
	}
	return dead
}

// Snapshot returns the actors in painter order and the live projectiles
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Frame:       w.Frame,
		Bounds:      w.Bounds,
		Actors:      sim.Order(w.Actors),
		Projectiles: slices.Clone(w.Projectiles),
	}
}

// Counts returns the number of live actors per kind
func (w *World) Counts() map[sim.Kind]int {
	counts := make(map[sim.Kind]int, sim.KindCount)
	for _, a := range w.Actors {
		if a.Alive() {
			counts[a.Kind]++
		}
	}
	return counts
}

func (w *World) emit(kind EventKind, actor sim.EntityID) {
	w.Events = append(w.Events, Event{Kind: kind, Actor: actor, Frame: w.Frame})
}

func entities(actors []*sim.Actor) []sim.Entity {
	out := make([]sim.Entity, len(actors))
	for i, a := range actors {
		out[i] = a
	}
	return out
}

func living(actors []*sim.Actor) []*sim.Actor {
	out := make([]*sim.Actor, 0, len(actors))
	for _, a := range actors {
		if a.Alive() {
			out = append(out, a)
		}
	}
	return out
}
