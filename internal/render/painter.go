//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"terragen/internal/core"
)

// GridPainter uploads heightmaps into a single RGBA image and draws it
// scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads hm with palette p and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, hm *core.Heightmap, p Palette, scale int) {
	if hm == nil || hm.W != gp.w || hm.H != gp.h {
		return
	}
	fillRGBA(gp.buf, hm, p)
	gp.img.WritePixels(gp.buf)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
