package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"spritefield/sim"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// hudText draws the heads-up display line for the player
func hudText(player *sim.Actor, weapon sim.ProjectileKind, frame int, fps float64) string {
	if player == nil {
		return fmt.Sprintf("You died on frame %d. Press R to restart.", frame)
	}
	return fmt.Sprintf("HP: %d/%d | Weapon: %s | Frame: %d | FPS: %0.0f",
		player.Health, player.Preset.Health, weapon, frame, fps)
}

func drawHUD(screen *ebiten.Image, msg string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, hudFace, op)
}
