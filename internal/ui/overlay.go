//go:build ebiten

package ui

import (
	"image/color"

	"flowpath/internal/core"
	"flowpath/internal/nav"
	"flowpath/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Scene is what the overlay draws on top of the grid.
type Scene interface {
	FlowVectors() []nav.CellVector
	Positions() []core.Vec2
	Goal() core.Cell
}

var (
	vectorColor = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	agentColor  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	goalColor   = color.RGBA{R: 80, G: 220, B: 110, A: 255}
)

// Overlay draws the flow vectors, goal and agents.
type Overlay struct {
	scene       Scene
	showVectors bool
}

// NewOverlay constructs an overlay with vectors hidden.
func NewOverlay(scene Scene) *Overlay {
	return &Overlay{scene: scene}
}

// Update toggles the vector layer on Space.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		o.showVectors = !o.showVectors
	}
}

// ShowVectors reports whether the vector layer is visible.
func (o *Overlay) ShowVectors() bool { return o.showVectors }

// Draw renders the overlay at vp.
func (o *Overlay) Draw(screen *ebiten.Image, vp render.Viewport) {
	g := GoalMarker(vp, o.scene.Goal())
	vector.StrokeRect(screen, float32(g.X), float32(g.Y), float32(g.W), float32(g.H), 2, goalColor, false)

	if o.showVectors {
		for _, cv := range o.scene.FlowVectors() {
			s, ok := VectorSegment(vp, cv)
			if !ok {
				continue
			}
			vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), 1, vectorColor, false)
		}
	}

	for _, p := range o.scene.Positions() {
		r := AgentMarker(vp, p)
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), agentColor, false)
	}
}
