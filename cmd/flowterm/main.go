package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"flowpath/internal/app"
	"flowpath/internal/sims/crowd"
	"flowpath/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	sound := flag.Bool("chime", true, "play a chime when an agent arrives")
	flag.Parse()
	if err := cfg.Finish(); err != nil {
		log.Fatal(err)
	}

	world, err := crowd.New(cfg.World)
	if err != nil {
		log.Fatalf("world: %v", err)
	}

	var chime term.Chime = term.Silent{}
	if *sound {
		spk, err := term.NewSpeaker()
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer spk.Close()
			chime = spk
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shell := term.New(screen, world, chime, cfg.MaxStep)
	err = shell.Run(ctx, time.Second/time.Duration(cfg.TPS))
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
