package game

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"spritefield/sim"
	"spritefield/world"
)

// DebugState holds debug flags that persist across restarts
type DebugState struct {
	ShowHitboxes bool // Outline ground and bullet hitboxes
	ShowStats    bool // Print per-kind counts and the sprite cache size
	ShowAim      bool // Trace the path of the player's next shot
}

// Global debug state instance (persists across game resets)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

// debugText lists live actor counts per kind, projectiles and cached sprites
func debugText(counts map[sim.Kind]int, projectiles, sprites int) string {
	var b strings.Builder
	for kind := range sim.KindCount {
		fmt.Fprintf(&b, "%s: %d\n", kind, counts[kind])
	}
	fmt.Fprintf(&b, "projectiles: %d\n", projectiles)
	fmt.Fprintf(&b, "sprites: %d", sprites)
	return b.String()
}

func drawDebug(screen *ebiten.Image, w *world.World, bank *SpriteBank) {
	msg := debugText(w.Counts(), len(w.Projectiles), bank.Len())
	ebitenutil.DebugPrintAt(screen, msg, 8, screen.Bounds().Dy()-16*(int(sim.KindCount)+2)-8)
}
