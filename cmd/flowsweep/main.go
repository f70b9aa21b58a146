package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"flowpath/internal/app"
	"flowpath/internal/sims/crowd"

	"github.com/dustin/go-humanize"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	speeds := flag.String("speeds", "0.0005,0.0008,0.001,0.002,0.004", "agent speeds in cells/ms")
	dts := flag.String("dts", "4,8,16,33,50", "tick sizes in ms")
	maxTicks := flag.Int("max-ticks", 50000, "ticks before a scenario gives up")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()
	if err := cfg.Finish(); err != nil {
		log.Fatal(err)
	}

	speedList, err := parseFloats(*speeds)
	if err != nil {
		log.Fatalf("-speeds: %v", err)
	}
	dtList, err := parseFloats(*dts)
	if err != nil {
		log.Fatalf("-dts: %v", err)
	}

	scenarios := crowd.Grid(cfg.World, speedList, dtList, *maxTicks)
	fmt.Printf("Sweeping %s scenarios on %q (%d workers, up to %s ticks each)\n",
		humanize.Comma(int64(len(scenarios))), cfg.World.Layout, *workers, humanize.Comma(int64(*maxTicks)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := crowd.Sweep(ctx, scenarios, *workers)
	elapsed := time.Since(start)

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Complete() != b.Complete() {
			return a.Complete()
		}
		return a.Elapsed < b.Elapsed
	})

	failed := 0
	for _, res := range results {
		s := res.Scenario
		status := "arrived"
		switch {
		case res.Err != nil:
			status = "error: " + res.Err.Error()
			failed++
		case !res.Complete():
			status = "stuck"
			failed++
		case res.Violations > 0:
			status = fmt.Sprintf("arrived, %d wall ticks", res.Violations)
			failed++
		}
		fmt.Printf("speed=%-7s dt=%-4s ticks=%-8s sim=%-10s %s\n",
			humanize.Ftoa(s.Config.Params.SpeedMax), humanize.Ftoa(s.Dt),
			humanize.Comma(int64(res.Ticks)), humanize.Ftoa(res.Elapsed/1000)+"s", status)
	}
	fmt.Printf("\n%d/%d scenarios clean (elapsed %s)\n", len(results)-failed, len(results), elapsed.Round(time.Millisecond))
	if failed > 0 {
		os.Exit(1)
	}
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("%g: must be positive", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
