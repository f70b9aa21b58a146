//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"flowpath/internal/core"
	"flowpath/internal/render"
	"flowpath/internal/sims/crowd"
	"flowpath/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

// Game adapts a crowd world to the ebiten.Game interface.
type Game struct {
	world   *crowd.World
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	vp      render.Viewport
	clock   *core.Clock

	paused   bool
	wallView bool
	seed     int64
}

// New constructs a Game for the provided world.
func New(world *crowd.World, cfg *Config) *Game {
	size := world.Size()
	g := &Game{
		world:   world,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(world),
		vp:      render.NewViewport(size.W, size.H, cfg.Tile),
		clock:   core.NewClock(cfg.MaxStep),
		seed:    cfg.World.Seed,
	}
	g.hud = ui.NewHUD(world, hudWidth, g.status)
	return g
}

// WindowSize returns the outer size in pixels, grid plus HUD panel.
func (g *Game) WindowSize() (int, int) {
	w, h := g.vp.Bounds()
	return w + g.hud.Width(), h
}

func (g *Game) status() []string {
	arrived := 0
	agents := g.world.Agents()
	for _, a := range agents {
		if a.Arrived {
			arrived++
		}
	}
	goal := g.world.Goal()
	state := "running"
	if g.paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("tick %d (%s)", g.world.Ticks(), state),
		fmt.Sprintf("goal %d,%d", goal.X, goal.Y),
		fmt.Sprintf("arrived %d/%d", arrived, len(agents)),
	}
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	if err := g.world.Reset(seed); err != nil {
		log.Printf("reset: %v", err)
	}
	g.clock.Reset()
}

// Update handles input and advances the world by the elapsed frame time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.wallView = !g.wallView
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if c, ok := g.vp.CellAt(ebiten.CursorPosition()); ok {
			if err := g.world.SetGoal(c.X, c.Y); err != nil {
				log.Printf("goal: %v", err)
			}
		}
	}

	g.overlay.Update()
	gw, _ := g.vp.Bounds()
	g.hud.Update(gw)

	dt := g.clock.Lap()
	if !g.paused {
		g.world.Advance(dt)
	}
	return nil
}

// Draw renders the grid, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.wallView {
		g.painter.BlitMask(screen, g.world.Grid().Mask(), color.White, color.Black, g.vp)
	} else {
		g.painter.Blit(screen, g.world.Cells(), g.world.Palette(), g.vp)
	}
	g.overlay.Draw(screen, g.vp)
	_, h := g.vp.Bounds()
	g.hud.Draw(screen, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
