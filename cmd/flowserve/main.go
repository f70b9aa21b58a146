package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"flowpath/internal/app"
	"flowpath/internal/server"
	"flowpath/internal/sims/crowd"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	origins := flag.String("origins", os.Getenv(app.EnvPrefix+"ORIGINS"), "comma-separated CORS origins (empty allows any)")
	flag.Parse()
	if err := cfg.Finish(); err != nil {
		log.Fatal(err)
	}

	world, err := crowd.New(cfg.World)
	if err != nil {
		log.Fatalf("world: %v", err)
	}

	var allowed []string
	if *origins != "" {
		allowed = strings.Split(*origins, ",")
	}
	srv := server.New(server.NewSession(world), allowed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Run(ctx, time.Second/time.Duration(cfg.TPS), cfg.MaxStep)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdown); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("observing %s (%dx%d) on %s", cfg.World.Layout, world.Size().W, world.Size().H, cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
