package world

import (
	"math"

	"spritefield/sim"
	"spritefield/vmath"
)

// Behavior defines the AI pattern of an actor kind
type Behavior int

const (
	BehaviorGraze  Behavior = iota // wander, flee the undead
	BehaviorKeeper                 // keep distance, shoot the undead
	BehaviorHunter                 // chase the living, bite and spit
	BehaviorNone                   // externally controlled
)

// BehaviorOf returns the default AI pattern of an actor kind
func BehaviorOf(kind sim.Kind) Behavior {
	switch kind {
	case sim.KindSheep:
		return BehaviorGraze
	case sim.KindHuman:
		return BehaviorKeeper
	case sim.KindZombie:
		return BehaviorHunter
	default:
		return BehaviorNone
	}
}

// Perception ranges in pixels
const (
	SightRange   = 220.0
	FleeRange    = 70.0
	KeepDistance = 110.0
	SpitRange    = 140.0
	BiteRange    = 28.0
)

// Brain produces intents for every AI-controlled actor. Wandering uses a
// per-actor phase so that herds do not walk in lockstep.
type Brain struct {
	rng   sim.Rand
	phase map[sim.EntityID]float64
}

// NewBrain creates a brain drawing wander phases from rng
func NewBrain(rng sim.Rand) *Brain {
	return &Brain{
		rng:   rng,
		phase: make(map[sim.EntityID]float64),
	}
}

// Think returns this tick's intents for every living AI actor in w
func (b *Brain) Think(w *World) map[sim.EntityID]Intent {
	intents := make(map[sim.EntityID]Intent, len(w.Actors))
	for _, a := range w.Actors {
		if !a.Alive() || a == w.Player {
			continue
		}
		behavior := BehaviorOf(a.Kind)
		if behavior == BehaviorNone {
			continue
		}
		intents[a.ID()] = b.think(w, a, behavior)
	}
	b.forget(w)
	return intents
}

func (b *Brain) think(w *World, a *sim.Actor, behavior Behavior) Intent {
	self := a.Center(a.Bullet)

	switch behavior {
	case BehaviorGraze:
		if threat, dist := nearestHostileTo(w, a, FleeRange); threat != nil && dist > 0 {
			away := self.Sub(threat.Center(threat.Bullet))
			return Intent{DX: away.X, DY: away.Y}
		}
		return b.wander(w.Frame, a, 0.6)

	case BehaviorKeeper:
		threat, dist := nearestHostile(w, a, SightRange)
		if threat == nil {
			return b.wander(w.Frame, a, 0.3)
		}
		toward := threat.Center(threat.Bullet).Sub(self)
		in := Intent{Shoot: true, Aim: toward}
		if dist < KeepDistance {
			// Back away while shooting
			in.DX, in.DY = -toward.X, -toward.Y
		}
		return in

	case BehaviorHunter:
		prey, dist := nearestHostile(w, a, SightRange)
		if prey == nil {
			return b.wander(w.Frame, a, 0.2)
		}
		toward := prey.Center(prey.Bullet).Sub(self)
		in := Intent{DX: toward.X, DY: toward.Y}
		if dist <= BiteRange {
			in.Melee = true
		} else if dist <= SpitRange && FactionOf(prey.Kind) == FactionLiving {
			in.Shoot = true
			in.Aim = toward
		}
		return in
	}
	return Intent{}
}

// wander walks along a slowly turning heading and rests when the second
// wave dips below -rest
func (b *Brain) wander(frame int, a *sim.Actor, rest float64) Intent {
	phase, ok := b.phase[a.ID()]
	if !ok {
		phase = b.rng.Float64() * 2 * math.Pi
		b.phase[a.ID()] = phase
	}
	t := float64(frame)*0.01 + phase
	if math.Sin(t*1.7+phase) < -rest {
		return Intent{}
	}
	return Intent{DX: math.Cos(t), DY: math.Sin(t)}
}

// forget drops the phases of actors that are gone
func (b *Brain) forget(w *World) {
	if len(b.phase) <= len(w.Actors) {
		return
	}
	present := make(map[sim.EntityID]struct{}, len(w.Actors))
	for _, a := range w.Actors {
		present[a.ID()] = struct{}{}
	}
	for id := range b.phase {
		if _, ok := present[id]; !ok {
			delete(b.phase, id)
		}
	}
}

// nearestHostile finds the closest living actor that a is hostile to
func nearestHostile(w *World, a *sim.Actor, radius float64) (*sim.Actor, float64) {
	return nearest(w, a, radius, func(o *sim.Actor) bool { return Hostile(a.Kind, o.Kind) })
}

// nearestHostileTo finds the closest living actor that is hostile to a
func nearestHostileTo(w *World, a *sim.Actor, radius float64) (*sim.Actor, float64) {
	return nearest(w, a, radius, func(o *sim.Actor) bool { return Hostile(o.Kind, a.Kind) })
}

func nearest(w *World, a *sim.Actor, radius float64, match func(*sim.Actor) bool) (*sim.Actor, float64) {
	self := a.Center(a.Bullet)
	var best *sim.Actor
	bestDist := math.Inf(1)
	for _, o := range w.Near(self, radius) {
		if o == a || !o.Alive() || !match(o) {
			continue
		}
		if d := vmath.Distance(o.Center(o.Bullet), self); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, bestDist
}
