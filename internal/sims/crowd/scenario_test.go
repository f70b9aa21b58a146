package crowd

import (
	"context"
	"errors"
	"testing"
)

func TestRunClassicDemoArrives(t *testing.T) {
	res := Run(Scenario{Config: DefaultConfig(), Dt: 16, MaxTicks: 10000})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if !res.Complete() {
		t.Fatalf("%d/%d agents arrived after %d ticks", res.Arrived, res.Agents, res.Ticks)
	}
	if res.Violations != 0 {
		t.Fatalf("%d ticks spent on blocked cells", res.Violations)
	}
	if res.FirstArrival < 0 || res.FirstArrival > res.LastArrival || res.LastArrival != res.Ticks {
		t.Fatalf("arrivals first=%d last=%d ticks=%d", res.FirstArrival, res.LastArrival, res.Ticks)
	}
}

func TestRunRejectsBadScenario(t *testing.T) {
	if res := Run(Scenario{Config: DefaultConfig(), Dt: 0, MaxTicks: 10}); res.Err == nil {
		t.Fatal("zero dt accepted")
	}
	cfg := DefaultConfig()
	cfg.Layout = "missing"
	if res := Run(Scenario{Config: cfg, Dt: 16, MaxTicks: 10}); res.Err == nil || res.Complete() {
		t.Fatal("missing layout accepted")
	}
}

func TestSweepKeepsInputOrder(t *testing.T) {
	base := DefaultConfig()
	base.Layout = "corridor"
	scenarios := Grid(base, []float64{0.002, 0.004}, []float64{8, 16}, 20000)
	if len(scenarios) != 4 {
		t.Fatalf("Grid produced %d scenarios", len(scenarios))
	}

	results := Sweep(context.Background(), scenarios, 3)
	if len(results) != len(scenarios) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Scenario != scenarios[i] {
			t.Fatalf("result %d belongs to another scenario", i)
		}
		if !res.Complete() || res.Agents != 1 || res.Violations != 0 {
			t.Fatalf("scenario %d: %+v", i, res)
		}
	}
	// Same speed, same path: a larger tick covers it in fewer ticks.
	if results[1].Ticks >= results[0].Ticks {
		t.Fatalf("dt 16 took %d ticks, dt 8 took %d", results[1].Ticks, results[0].Ticks)
	}
}

func TestSweepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	base := DefaultConfig()
	scenarios := Grid(base, []float64{0.001, 0.002, 0.003}, []float64{16}, 100)
	results := Sweep(ctx, scenarios, 1)
	if len(results) != len(scenarios) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			t.Fatalf("result %d: unexpected error %v", i, res.Err)
		}
	}
}
