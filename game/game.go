package game

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"spritefield/config"
	"spritefield/render"
	"spritefield/vmath"
	"spritefield/world"
)

const (
	// fpsDropThreshold triggers a profile capture when crossed
	fpsDropThreshold = 45.0

	// startupGrace ignores frame rate drops right after launch
	startupGrace = 3 * time.Second
)

var background = color.RGBA{34, 52, 30, 255}

// Game runs the simulation inside an ebiten window
type Game struct {
	cfg config.Config
	log zerolog.Logger
	rng *rand.Rand

	world  *world.World
	brain  *world.Brain
	bank   *SpriteBank
	camera *Camera
	input  *KeyboardInput

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	profiler       *Profiler
	gameStartTime  time.Time
	lastUpdateTime time.Time
}

// NewGame creates a new game instance
func NewGame(cfg config.Config, log zerolog.Logger) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("starting simulation")

	g := &Game{
		cfg:            cfg,
		log:            log,
		rng:            rand.New(rand.NewSource(seed)),
		bank:           NewSpriteBank(log),
		camera:         NewCamera(float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)),
		input:          NewKeyboardInput(),
		fps:            60.0,
		profiler:       NewProfiler(cfg.ProfileDir, log),
		gameStartTime:  time.Now(),
		lastUpdateTime: time.Now(),
	}
	g.reset()
	return g
}

// reset throws the world away and spawns a fresh population
func (g *Game) reset() {
	g.world = world.New(g.cfg.World, g.rng, g.log)
	g.brain = world.NewBrain(g.rng)
	g.camera.Snap(g.focus(), g.world.Bounds)
}

// focus is the point the camera tracks
func (g *Game) focus() vmath.Vec2 {
	if p := g.world.Player; p != nil {
		return p.Center(p.Bullet)
	}
	return vmath.Vec2{X: g.world.Bounds.W / 2, Y: g.world.Bounds.H / 2}
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := min(now.Sub(g.lastUpdateTime).Seconds(), 0.1)
	g.lastUpdateTime = now

	debugState := GetDebugState()
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		debugState.ShowHitboxes = !debugState.ShowHitboxes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		debugState.ShowStats = !debugState.ShowStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		debugState.ShowAim = !debugState.ShowAim
	}
	g.trackFPS(deltaTime)

	g.input.Update()
	if g.input.ShouldRestart() {
		g.log.Info().Int("frame", g.world.Frame).Msg("restart")
		g.reset()
		return nil
	}

	var player *world.Intent
	if p := g.world.Player; p != nil {
		in := g.input.Intent(p.Sight)
		player = &in
	}
	g.tick(player)
	return nil
}

// tick steps the world once with the brain's intents and the player's
func (g *Game) tick(player *world.Intent) {
	intents := g.brain.Think(g.world)
	if p := g.world.Player; p != nil && player != nil {
		intents[p.ID()] = *player
	}
	g.world.Step(intents)
	g.world.Reap()
	g.camera.Follow(g.focus(), g.world.Bounds)
}

// trackFPS updates the frame rate every half second and captures a
// profile when it drops
func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	if g.fps >= fpsDropThreshold || time.Since(g.gameStartTime) < startupGrace {
		return
	}
	reason := fmt.Sprintf("fps%.0f-actors%d-projectiles%d", g.fps, len(g.world.Actors), len(g.world.Projectiles))
	switch err := g.profiler.CaptureProfile(reason); {
	case err == nil:
		g.log.Warn().Float64("fps", g.fps).Msg("fps drop detected, capturing profile")
	case errors.Is(err, ErrProfilerDisabled), errors.Is(err, ErrProfilerBusy):
	default:
		g.log.Error().Err(err).Msg("failed to capture profile")
	}
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	debugState := GetDebugState()
	r := &screenRenderer{screen: screen, camera: g.camera}
	render.Scene{ShowHitboxes: debugState.ShowHitboxes}.Draw(r, g.bank, g.world.Snapshot())
	if p := g.world.Player; p != nil && debugState.ShowAim {
		in := g.input.Intent(p.Sight)
		aim := in.Aim
		if !in.Shoot {
			aim = p.Sight
		}
		drawPreview(r, aimPreview(g.world, p, aim, in.Magic))
	}

	drawHUD(screen, g.hud())
	if debugState.ShowStats {
		drawDebug(screen, g.world, g.bank)
	}
}

func (g *Game) hud() string {
	p := g.world.Player
	if p == nil {
		return hudText(nil, 0, g.world.Frame, g.fps)
	}
	return hudText(p, p.Weapon, g.world.Frame, g.fps)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}
