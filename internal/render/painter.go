//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one pixel per cell in an image and scales it to the
// viewport when drawing.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit uploads display codes through palette and draws them at vp.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, vp Viewport) {
	if len(cells) != gp.w*gp.h {
		return
	}
	paletteSwatch(palette).paint(gp.buf, cells)
	gp.draw(dst, vp)
}

// BlitMask draws a 0/1 mask with on/off colors.
func (gp *GridPainter) BlitMask(dst *ebiten.Image, mask []uint8, on, off color.Color, vp Viewport) {
	if len(mask) != gp.w*gp.h {
		return
	}
	maskSwatch(on, off).paint(gp.buf, mask)
	gp.draw(dst, vp)
}

func (gp *GridPainter) draw(dst *ebiten.Image, vp Viewport) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(vp.Tile), float64(vp.Tile))
	op.GeoM.Translate(float64(vp.OffsetX), float64(vp.OffsetY))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
