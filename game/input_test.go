package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"spritefield/vmath"
	"spritefield/world"
)

func TestIntentFromKeys(t *testing.T) {
	sight := vmath.Vec2{X: 0, Y: 1}
	tests := []struct {
		name string
		keys []ebiten.Key
		want world.Intent
	}{
		{"nothing", nil, world.Intent{}},
		{"wasd", []ebiten.Key{ebiten.KeyW, ebiten.KeyD}, world.Intent{DX: 1, DY: -1}},
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowDown}, world.Intent{DX: -1, DY: 1}},
		{"opposites cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowRight}, world.Intent{}},
		{"both bindings count once", []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, world.Intent{DX: -1}},
		{"standing shot uses sight", []ebiten.Key{ebiten.KeySpace}, world.Intent{Shoot: true, Aim: sight}},
		{
			"walking shot uses the walk",
			[]ebiten.Key{ebiten.KeySpace, ebiten.KeyD},
			world.Intent{DX: 1, Shoot: true, Aim: vmath.Vec2{X: 1}},
		},
		{"magic", []ebiten.Key{ebiten.KeyM, ebiten.KeySpace}, world.Intent{Shoot: true, Magic: true, Aim: sight}},
		{"melee", []ebiten.Key{ebiten.KeyE}, world.Intent{Melee: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intentFromKeys(tt.keys, sight))
		})
	}
}
