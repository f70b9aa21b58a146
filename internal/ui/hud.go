//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"flowpath/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Tunable is a world whose parameters the HUD can display and adjust.
type Tunable interface {
	Name() string
	core.ParameterProvider
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
}

// HUD renders the status lines and parameter controls to the right of the
// grid.
type HUD struct {
	sim    Tunable
	width  int
	status func() []string

	controls []hudControl
	offsetX  int
}

type hudControl struct {
	ctrl      core.ParameterControl
	value     float64
	hasValue  bool
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding  = 12
	lineHeight    = 30
	statusHeight  = 16
	buttonSize    = 20
	buttonGap     = 6
	labelBaseline = 20
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

// NewHUD builds a HUD panel of the given pixel width. status supplies the
// lines printed above the controls and may be nil.
func NewHUD(sim Tunable, width int, status func() []string) *HUD {
	h := &HUD{sim: sim, width: width, status: status}
	for _, ctrl := range sim.ParameterControls() {
		h.controls = append(h.controls, hudControl{ctrl: ctrl})
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int { return h.width }

// Update refreshes values from the world and applies button clicks.
// offsetX is the screen x of the panel's left edge.
func (h *HUD) Update(offsetX int) {
	h.offsetX = offsetX
	snap := h.sim.Parameters()
	lines := 0
	if h.status != nil {
		lines = len(h.status())
	}
	for i := range h.controls {
		c := &h.controls[i]
		c.hasValue = false
		if p, ok := snap.Lookup(c.ctrl.Key); ok {
			if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
				c.value, c.hasValue = v, true
			}
		}
		c.top = panelPadding + (lines+1)*statusHeight + i*lineHeight
		by := c.top + (lineHeight-buttonSize)/2
		c.plusRect = image.Rect(h.width-panelPadding-buttonSize, by, h.width-panelPadding, by+buttonSize)
		c.minusRect = image.Rect(c.plusRect.Min.X-buttonGap-buttonSize, by, c.plusRect.Min.X-buttonGap, by+buttonSize)
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		if !c.hasValue {
			continue
		}
		switch {
		case pt.In(c.minusRect):
			h.apply(c, -1)
		case pt.In(c.plusRect):
			h.apply(c, 1)
		}
	}
}

func (h *HUD) apply(c *hudControl, dir int) {
	next, ok := Adjust(c.ctrl, c.value, dir)
	if !ok {
		return
	}
	var accepted bool
	if c.ctrl.Type == core.ParamTypeInt {
		accepted = h.sim.SetIntParameter(c.ctrl.Key, int(next))
	} else {
		accepted = h.sim.SetFloatParameter(c.ctrl.Key, next)
	}
	if accepted {
		c.value = next
	}
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, height int) {
	if h.width <= 0 || height <= 0 {
		return
	}
	x0 := float32(h.offsetX)
	vector.DrawFilledRect(screen, x0, 0, float32(h.width), float32(height), panelColor, false)

	face := basicfont.Face7x13
	y := panelPadding + statusHeight
	text.Draw(screen, h.sim.Name(), face, h.offsetX+panelPadding, y, textColor)
	if h.status != nil {
		for _, line := range h.status() {
			y += statusHeight
			text.Draw(screen, line, face, h.offsetX+panelPadding, y, dimColor)
		}
	}

	for i := range h.controls {
		c := &h.controls[i]
		base := c.top + labelBaseline
		text.Draw(screen, c.ctrl.Label, face, h.offsetX+panelPadding, base, textColor)
		value := "--"
		if c.hasValue {
			value = FormatValue(c.ctrl, c.value)
		}
		vw := text.BoundString(face, value).Dx()
		text.Draw(screen, value, face, h.offsetX+c.minusRect.Min.X-buttonGap-vw, base, textColor)

		_, canDown := Adjust(c.ctrl, c.value, -1)
		_, canUp := Adjust(c.ctrl, c.value, 1)
		h.drawButton(screen, c.minusRect, "-", c.hasValue && canDown)
		h.drawButton(screen, c.plusRect, "+", c.hasValue && canUp)
	}
}

func (h *HUD) drawButton(screen *ebiten.Image, r image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := textColor
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = dimColor
	}
	r = r.Add(image.Pt(h.offsetX, 0))
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	tx := r.Min.X + (r.Dx()-b.Dx())/2
	ty := r.Min.Y + (r.Dy()+b.Dy())/2
	text.Draw(screen, label, face, tx, ty, fg)
}
