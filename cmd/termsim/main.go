// Command termsim runs the simulation in a terminal
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"spritefield/config"
	"spritefield/render"
	"spritefield/sim"
	"spritefield/sound"
	"spritefield/vmath"
	"spritefield/world"
)

// walkTicks is how long one arrow key press keeps the player walking.
// Terminals report key repeats but never key releases.
const walkTicks = 6

type app struct {
	screen tcell.Screen
	cfg    config.Config
	log    zerolog.Logger
	rng    *rand.Rand

	world *world.World
	brain *world.Brain
	scene render.Scene
	sound *sound.Manager

	walk      vmath.Vec2
	walkUntil int
	action    world.Intent
}

func newApp(screen tcell.Screen, cfg config.Config, log zerolog.Logger, seed int64) *app {
	a := &app{
		screen: screen,
		cfg:    cfg,
		log:    log,
		rng:    rand.New(rand.NewSource(seed)),
		sound:  sound.NewManager(),
	}
	a.reset()
	return a
}

func (a *app) reset() {
	a.world = world.New(a.cfg.World, a.rng, a.log)
	a.brain = world.NewBrain(a.rng)
	a.walk, a.walkUntil = vmath.Vec2{}, 0
	a.action = world.Intent{}
}

// handleKey applies one key event, it returns false to quit
func (a *app) handleKey(ev *tcell.EventKey) bool {
	return a.press(ev.Key(), ev.Rune())
}

func (a *app) press(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.startWalk(0, -1)
	case tcell.KeyDown:
		a.startWalk(0, 1)
	case tcell.KeyLeft:
		a.startWalk(-1, 0)
	case tcell.KeyRight:
		a.startWalk(1, 0)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'w':
			a.startWalk(0, -1)
		case 's':
			a.startWalk(0, 1)
		case 'a':
			a.startWalk(-1, 0)
		case 'd':
			a.startWalk(1, 0)
		case ' ':
			a.action.Shoot = true
		case 'm':
			a.action.Shoot, a.action.Magic = true, true
		case 'e':
			a.action.Melee = true
		case 'x':
			a.walk, a.walkUntil = vmath.Vec2{}, 0
		case 'b':
			a.scene.ShowHitboxes = !a.scene.ShowHitboxes
		case 'r':
			a.log.Info().Int("frame", a.world.Frame).Msg("restart")
			a.reset()
		}
	}
	return true
}

func (a *app) startWalk(dx, dy float64) {
	a.walk = vmath.Vec2{X: dx, Y: dy}
	a.walkUntil = a.world.Frame + walkTicks
}

// playerIntent folds the held walk and the pending action into one intent
// and clears the action
func (a *app) playerIntent(p *sim.Actor) world.Intent {
	in := a.action
	a.action = world.Intent{}

	if a.world.Frame < a.walkUntil {
		in.DX, in.DY = a.walk.X, a.walk.Y
	}
	if in.Shoot {
		in.Aim = p.Sight
		if in.DX != 0 || in.DY != 0 {
			in.Aim = vmath.Vec2{X: in.DX, Y: in.DY}
		}
	}
	return in
}

// tick steps the world once and plays the player's cues
func (a *app) tick() {
	intents := a.brain.Think(a.world)
	player := a.world.Player
	if player != nil {
		intents[player.ID()] = a.playerIntent(player)
	}
	a.world.Step(intents)

	died := false
	for _, dead := range a.world.Reap() {
		died = died || dead == player
	}
	if player != nil {
		for _, c := range sound.CuesFor(a.world.Events, player.ID(), died) {
			a.sound.Play(c)
		}
	}
}

func (a *app) statusLine() string {
	counts := a.world.Counts()
	herd := fmt.Sprintf("sheep %d  humans %d  zombies %d", counts[sim.KindSheep], counts[sim.KindHuman], counts[sim.KindZombie])
	if p := a.world.Player; p != nil {
		return fmt.Sprintf(" HP %d/%d | %s | frame %d | arrows move, space shoot, m magic, e bite, q quit",
			p.Health, p.Preset.Health, herd, a.world.Frame)
	}
	return fmt.Sprintf(" dead | %s | frame %d | r restart, q quit", herd, a.world.Frame)
}

func (a *app) draw() {
	a.screen.Clear()
	r := &termRenderer{screen: a.screen, bounds: a.world.Bounds}
	a.scene.Draw(r, termBank{}, a.world.Snapshot())
	r.status(a.statusLine())
	a.screen.Show()
}

func (a *app) run() {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.TickRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case <-ticker.C:
			a.tick()
			a.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func main() {
	configDir := flag.String("config", ".", "Directory containing spritefield.json")
	logPath := flag.String("log", "termsim.log", "File receiving the log output")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	cfg, err := config.Load(*configDir)
	log := config.NewLogger(logFile, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("starting terminal simulation")

	a := newApp(screen, cfg, log, seed)
	if err := a.sound.Initialize(); err != nil {
		// Non-fatal, the simulation runs without sound
		log.Warn().Err(err).Msg("audio initialization failed")
	}
	defer a.sound.Cleanup()

	a.run()
}
