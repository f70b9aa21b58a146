// Package term runs a crowd world inside a terminal.
package term

import (
	"context"
	"fmt"
	"time"

	"flowpath/internal/core"
	"flowpath/internal/sims/crowd"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

var styles = map[Kind]tcell.Style{
	KindFloor:    tcell.StyleDefault,
	KindIsolated: tcell.StyleDefault.Foreground(tcell.ColorGray),
	KindWall:     tcell.StyleDefault.Foreground(tcell.ColorWhite),
	KindVector:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	KindGoal:     tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	KindAgent:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	KindCursor:   tcell.StyleDefault.Foreground(tcell.ColorBlue).Reverse(true),
}

// Shell drives a world from a tcell screen.
type Shell struct {
	screen tcell.Screen
	world  *crowd.World
	chime  Chime
	clock  *core.Clock
	seed   int64

	cursor  core.Cell
	vectors bool
	paused  bool
	status  string
	arrived map[uuid.UUID]bool
}

// New constructs a shell. The screen must already be initialised.
func New(screen tcell.Screen, world *crowd.World, chime Chime, maxStep time.Duration) *Shell {
	if chime == nil {
		chime = Silent{}
	}
	return &Shell{
		screen:  screen,
		world:   world,
		chime:   chime,
		clock:   core.NewClock(maxStep),
		seed:    world.Config().Seed,
		cursor:  world.Goal(),
		arrived: map[uuid.UUID]bool{},
	}
}

// Run polls input and advances the world every frame until the user quits
// or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, frame time.Duration) error {
	s.screen.EnableMouse()
	defer s.screen.DisableMouse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 16)
	go pollEvents(ctx, s.screen, events)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	s.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !s.handle(ev) {
				return nil
			}
		case <-ticker.C:
			s.step(s.clock.Lap())
			s.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or ctx
// ends. events is closed only when the screen is finalised.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Shell) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			s.cursor = core.Cell{X: x / cellWidth, Y: y}
			s.setGoal()
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

// handleKey applies one key press. It returns false to quit.
func (s *Shell) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.moveCursor(0, -1)
	case tcell.KeyDown:
		s.moveCursor(0, 1)
	case tcell.KeyLeft:
		s.moveCursor(-1, 0)
	case tcell.KeyRight:
		s.moveCursor(1, 0)
	case tcell.KeyEnter:
		s.setGoal()
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			s.vectors = !s.vectors
		case 'p':
			s.paused = !s.paused
		case 'g':
			s.setGoal()
		case 'r':
			s.reset(s.seed)
		case 's':
			s.reset(time.Now().UnixNano())
		case '+':
			s.world.SetIntParameter("agents", len(s.world.Agents())+1)
		case '-':
			if n := len(s.world.Agents()); n > 0 {
				s.world.SetIntParameter("agents", n-1)
			}
		}
	}
	return true
}

func (s *Shell) moveCursor(dx, dy int) {
	size := s.world.Size()
	c := core.Cell{X: s.cursor.X + dx, Y: s.cursor.Y + dy}
	if c.X >= 0 && c.Y >= 0 && c.X < size.W && c.Y < size.H {
		s.cursor = c
	}
}

func (s *Shell) setGoal() {
	if err := s.world.SetGoal(s.cursor.X, s.cursor.Y); err != nil {
		s.status = err.Error()
		return
	}
	s.status = fmt.Sprintf("goal %d,%d", s.cursor.X, s.cursor.Y)
	clear(s.arrived)
}

func (s *Shell) reset(seed int64) {
	s.seed = seed
	if err := s.world.Reset(seed); err != nil {
		s.status = err.Error()
		return
	}
	s.clock.Reset()
	clear(s.arrived)
	s.status = "reset"
}

// step advances the world and chimes once per agent arrival.
func (s *Shell) step(dt float64) {
	if s.paused {
		return
	}
	s.world.Advance(dt)
	for _, a := range s.world.Agents() {
		if a.Arrived && !s.arrived[a.ID] {
			s.arrived[a.ID] = true
			s.chime.Play()
		}
	}
}

func (s *Shell) draw() {
	s.screen.Clear()
	rows := Frame(s.world, s.vectors, s.cursor)
	for y, row := range rows {
		for x, g := range row {
			s.screen.SetContent(x, y, g.Rune, nil, styles[g.Kind])
		}
	}
	state := "running"
	if s.paused {
		state = "paused"
	}
	line := fmt.Sprintf("tick %d %s | arrived %d/%d | %s", s.world.Ticks(), state, len(s.arrived), len(s.world.Agents()), s.status)
	s.print(0, len(rows)+1, line)
	s.print(0, len(rows)+2, "arrows move  enter/click goal  space vectors  p pause  r reset  +/- agents  q quit")
	s.screen.Show()
}

func (s *Shell) print(x, y int, text string) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}
