package crowd

import (
	"context"
	"fmt"
	"sync"
)

// Scenario describes one headless arrival run.
type Scenario struct {
	Config   Config
	Dt       float64 // milliseconds per tick
	MaxTicks int
}

// ArrivalResult summarises a scenario run.
type ArrivalResult struct {
	Scenario Scenario

	Agents  int
	Arrived int

	// FirstArrival and LastArrival are tick counts, -1 when nobody arrived.
	FirstArrival int
	LastArrival  int
	Ticks        int
	Elapsed      float64

	// Violations counts ticks where an agent stood on a blocked cell.
	Violations int

	Err error
}

// Complete reports whether every agent reached the goal.
func (r ArrivalResult) Complete() bool {
	return r.Err == nil && r.Arrived == r.Agents
}

// Run advances a fresh world until every agent has arrived or MaxTicks
// elapse. An agent counts as arrived the first tick it is within half a
// cell of the goal centre.
func Run(s Scenario) ArrivalResult {
	res := ArrivalResult{Scenario: s, FirstArrival: -1, LastArrival: -1}
	if s.Dt <= 0 || s.MaxTicks <= 0 {
		res.Err = fmt.Errorf("scenario: dt %g and max ticks %d must be positive", s.Dt, s.MaxTicks)
		return res
	}
	w, err := New(s.Config)
	if err != nil {
		res.Err = err
		return res
	}
	res.Agents = len(w.agents)
	done := make([]bool, len(w.agents))

	for tick := 1; tick <= s.MaxTicks && res.Arrived < res.Agents; tick++ {
		w.Advance(s.Dt)
		for i, a := range w.agents {
			if c := a.Cell(); !w.grid.Walkable(c.X, c.Y) {
				res.Violations++
			}
			if done[i] || !a.Arrived(w.goal) {
				continue
			}
			done[i] = true
			res.Arrived++
			if res.FirstArrival < 0 {
				res.FirstArrival = tick
			}
			res.LastArrival = tick
		}
	}
	res.Ticks = w.Ticks()
	res.Elapsed = w.Elapsed()
	return res
}

// Sweep runs scenarios on a pool of workers. Results keep the input order.
// Scenarios not started before ctx is cancelled report ctx.Err().
func Sweep(ctx context.Context, scenarios []Scenario, workers int) []ArrivalResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]ArrivalResult, len(scenarios))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = Run(scenarios[idx])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(scenarios); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(scenarios); i++ {
		results[i] = ArrivalResult{Scenario: scenarios[i], FirstArrival: -1, LastArrival: -1, Err: ctx.Err()}
	}
	return results
}

// Grid expands base into one scenario per (speed, dt) pair. Each scenario
// runs a single agent at that speed.
func Grid(base Config, speeds, dts []float64, maxTicks int) []Scenario {
	out := make([]Scenario, 0, len(speeds)*len(dts))
	for _, speed := range speeds {
		for _, dt := range dts {
			cfg := base
			cfg.Params.Agents = 1
			cfg.Params.SpeedMin = speed
			cfg.Params.SpeedMax = speed
			out = append(out, Scenario{Config: cfg, Dt: dt, MaxTicks: maxTicks})
		}
	}
	return out
}
