//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"flowpath/internal/app"
	"flowpath/internal/sims/crowd"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Finish(); err != nil {
		log.Fatal(err)
	}

	world, err := crowd.New(cfg.World)
	if err != nil {
		log.Fatalf("world: %v", err)
	}

	game := app.New(world, cfg)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("flowpath: " + cfg.World.Layout)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
