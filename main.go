package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"spritefield/config"
	"spritefield/game"
)

func main() {
	configDir := flag.String("config", ".", "Directory containing spritefield.json")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	log := config.NewLogger(os.Stderr, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	g := game.NewGame(cfg, log)

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("spritefield")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
