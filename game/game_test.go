package game

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spritefield/config"
	"spritefield/sim"
	"spritefield/world"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 11
	cfg.World.Population = world.Population{Sheep: 2, Humans: 1, Zombies: 1}
	return NewGame(cfg, zerolog.Nop())
}

func TestNewGame_SpawnsWorld(t *testing.T) {
	g := newTestGame(t)

	require.NotNil(t, g.world.Player)
	assert.Len(t, g.world.Actors, 5)

	w, h := g.Layout(0, 0)
	assert.Equal(t, g.cfg.ScreenWidth, w)
	assert.Equal(t, g.cfg.ScreenHeight, h)
}

func TestGame_TickDrivesPlayer(t *testing.T) {
	g := newTestGame(t)
	p := g.world.Player
	start := p.Pos

	g.tick(&world.Intent{DX: 1})

	assert.Equal(t, 1, g.world.Frame)
	assert.Greater(t, p.Pos.X, start.X)
	assert.Equal(t, sim.Running, p.State)
}

func TestGame_TickWithoutPlayerIntent(t *testing.T) {
	g := newTestGame(t)
	start := g.world.Player.Pos

	g.tick(nil)

	assert.Equal(t, start, g.world.Player.Pos)
}

func TestGame_TickReapsAndResetRestores(t *testing.T) {
	g := newTestGame(t)
	g.world.Player.Hurt(100, 0)

	g.tick(nil)
	assert.Nil(t, g.world.Player)
	assert.Contains(t, g.hud(), "Press R to restart")

	g.reset()
	require.NotNil(t, g.world.Player)
	assert.Equal(t, 0, g.world.Frame)
}

func TestGame_SeedIsDeterministic(t *testing.T) {
	a, b := newTestGame(t), newTestGame(t)
	for i := range a.world.Actors {
		assert.Equal(t, a.world.Actors[i].Pos, b.world.Actors[i].Pos)
	}
}
