package game

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"spritefield/vmath"
	"spritefield/world"
)

// KeyboardInput turns the pressed keys into the player's intent
type KeyboardInput struct {
	keys []ebiten.Key
}

// NewKeyboardInput creates a new keyboard input provider
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		keys: make([]ebiten.Key, 0, 10),
	}
}

// Update refreshes the set of pressed keys
func (k *KeyboardInput) Update() {
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
}

// Intent returns the player's intent for this tick. Shots go along sight,
// the last direction the player walked in.
func (k *KeyboardInput) Intent(sight vmath.Vec2) world.Intent {
	return intentFromKeys(k.keys, sight)
}

// ShouldRestart returns true on the tick R is pressed
func (k *KeyboardInput) ShouldRestart() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func intentFromKeys(keys []ebiten.Key, sight vmath.Vec2) world.Intent {
	pressed := func(alts ...ebiten.Key) bool {
		return slices.ContainsFunc(alts, func(k ebiten.Key) bool {
			return slices.Contains(keys, k)
		})
	}

	var in world.Intent
	if pressed(ebiten.KeyArrowLeft, ebiten.KeyA) {
		in.DX--
	}
	if pressed(ebiten.KeyArrowRight, ebiten.KeyD) {
		in.DX++
	}
	if pressed(ebiten.KeyArrowUp, ebiten.KeyW) {
		in.DY--
	}
	if pressed(ebiten.KeyArrowDown, ebiten.KeyS) {
		in.DY++
	}

	// A shot fired while walking goes the new way
	aim := sight
	if in.DX != 0 || in.DY != 0 {
		aim = vmath.Vec2{X: in.DX, Y: in.DY}
	}

	switch {
	case pressed(ebiten.KeyM):
		in.Shoot, in.Magic, in.Aim = true, true, aim
	case pressed(ebiten.KeySpace):
		in.Shoot, in.Aim = true, aim
	}
	in.Melee = pressed(ebiten.KeyE)
	return in
}
