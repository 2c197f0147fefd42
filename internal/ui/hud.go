//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"terragen/internal/core"
)

var (
	panelColor     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor       = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	warnColor      = color.RGBA{R: 230, G: 150, B: 60, A: 255}
	buttonColor    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// HUD renders the parameter panel and frame readout to the right of the
// heightmap view.
type HUD struct {
	target   Target
	bound    string
	width    int
	panel    *ebiten.Image
	controls []control
	ints     core.IntParameterSetter
	floats   core.FloatParameterSetter
	readout  []ReadoutLine
}

// NewHUD constructs a HUD for the provided target and panel width.
func NewHUD(target Target, width int) *HUD {
	h := &HUD{target: target, width: max(width, 0)}
	h.bind()
	return h
}

// bind rebuilds the control rows for the target's current generator.
func (h *HUD) bind() {
	h.bound = h.target.Name()
	h.controls = nil
	if p, ok := h.target.(core.ParameterControlsProvider); ok {
		h.controls = newControls(p.ParameterControls(), h.width)
	}
	h.ints, _ = h.target.(core.IntParameterSetter)
	h.floats, _ = h.target.(core.FloatParameterSetter)
}

// Update refreshes values and the readout from the target and applies button
// clicks. offsetX is the panel's left edge in screen pixels.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	if h.target.Name() != h.bound {
		h.bind()
	}
	values := h.target.Parameters().Values()
	for i := range h.controls {
		h.controls[i].refresh(values)
	}
	h.readout = h.target.Readout().Lines()

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if i, direction := hit(h.controls, mx-offsetX, my); i >= 0 {
		h.adjust(&h.controls[i], direction)
	}
}

func (h *HUD) adjust(c *control, direction int) {
	v, ok := c.next(direction)
	if !ok || !h.adjustable(c) {
		return
	}
	// The next Update picks the accepted value up from the snapshot.
	switch c.ctrl.Type {
	case core.ParamTypeInt:
		h.ints.SetIntParameter(c.ctrl.Key, int(v))
	case core.ParamTypeFloat:
		h.floats.SetFloatParameter(c.ctrl.Key, v)
	}
}

func (h *HUD) adjustable(c *control) bool {
	switch c.ctrl.Type {
	case core.ParamTypeInt:
		return h.ints != nil
	case core.ParamTypeFloat:
		return h.floats != nil
	}
	return false
}

// Draw paints the panel at offsetX, as tall as the scaled heightmap.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width == 0 {
		return
	}
	height := h.target.Size() * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Deallocate()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, title(h.bound), face, panelPadding, panelPadding+headerBaseline, dimColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, dimColor)
	}
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	y := readoutTop(len(h.controls))
	for _, line := range h.readout {
		clr := dimColor
		if line.Warn {
			clr = warnColor
		}
		text.Draw(h.panel, line.Text, face, panelPadding, y, clr)
		y += readoutSpacing
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(c *control) {
	face := basicfont.Face7x13
	baseline := c.top + labelBaseline
	text.Draw(h.panel, c.ctrl.Label, face, panelPadding, baseline, textColor)

	valueColor := textColor
	if !c.set {
		valueColor = dimColor
	}
	width := text.BoundString(face, c.text).Dx()
	text.Draw(h.panel, c.text, face, c.minus.Min.X-buttonGap-width, baseline, valueColor)

	_, down := c.next(-1)
	_, up := c.next(1)
	h.drawButton(c.minus, "-", down && h.adjustable(c))
	h.drawButton(c.plus, "+", up && h.adjustable(c))
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, textColor
	if !enabled {
		bg, fg = buttonOffColor, dimColor
	}
	vector.DrawFilledRect(h.panel, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()+b.Dy())/2
	text.Draw(h.panel, label, face, x, y, fg)
}
