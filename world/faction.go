package world

import (
	"image/color"

	"spritefield/sim"
)

// Faction represents which side an actor belongs to
type Faction int

const (
	FactionHerd Faction = iota
	FactionLiving
	FactionUndead
)

// FactionConfig holds configuration for each faction
type FactionConfig struct {
	Faction Faction
	Name    string
	Color   color.RGBA
}

var factionConfigs = map[Faction]FactionConfig{
	FactionHerd: {
		Faction: FactionHerd,
		Name:    "herd",
		Color:   color.RGBA{230, 230, 220, 255},
	},
	FactionLiving: {
		Faction: FactionLiving,
		Name:    "living",
		Color:   color.RGBA{70, 140, 255, 255},
	},
	FactionUndead: {
		Faction: FactionUndead,
		Name:    "undead",
		Color:   color.RGBA{90, 190, 70, 255},
	},
}

// GetFactionConfig returns configuration for a faction
func GetFactionConfig(faction Faction) FactionConfig {
	if config, ok := factionConfigs[faction]; ok {
		return config
	}
	return FactionConfig{
		Faction: faction,
		Name:    "unknown",
		Color:   color.RGBA{255, 100, 0, 255},
	}
}

// FactionOf returns the faction of an actor kind
func FactionOf(kind sim.Kind) Faction {
	switch kind {
	case sim.KindHuman, sim.KindPlayer:
		return FactionLiving
	case sim.KindZombie:
		return FactionUndead
	default:
		return FactionHerd
	}
}

// Hostile reports whether an actor of kind a attacks one of kind b.
// The undead attack everything else, the living attack only the undead and
// the herd attacks nobody.
func Hostile(a, b sim.Kind) bool {
	fa, fb := FactionOf(a), FactionOf(b)
	switch fa {
	case FactionUndead:
		return fb != FactionUndead
	case FactionLiving:
		return fb == FactionUndead
	default:
		return false
	}
}
