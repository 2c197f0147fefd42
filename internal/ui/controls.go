package ui

import (
	"image"
	"math"
	"strconv"
	"strings"

	"terragen/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	readoutGap     = 12
	readoutSpacing = 16
	controlsTop    = panelPadding + headerBaseline + 14
)

// control is one adjustable parameter row of the HUD panel. Coordinates are
// relative to the panel.
type control struct {
	ctrl  core.ParameterControl
	value float64
	text  string
	set   bool

	top         int
	minus, plus image.Rectangle
}

// newControls lays out one row per control in a panel of the given width.
func newControls(ctrls []core.ParameterControl, width int) []control {
	out := make([]control, len(ctrls))
	for i, ctrl := range ctrls {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		out[i] = control{
			ctrl:  ctrl,
			text:  "--",
			top:   top,
			minus: plus.Sub(image.Pt(buttonSize+buttonGap, 0)),
			plus:  plus,
		}
	}
	return out
}

// refresh loads the control's current value from flattened snapshot values.
func (c *control) refresh(values map[string]string) {
	c.set, c.text = false, "--"
	raw, ok := values[c.ctrl.Key]
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return
	}
	switch c.ctrl.Type {
	case core.ParamTypeInt:
		c.text = strconv.Itoa(int(v))
	case core.ParamTypeFloat:
		c.text = formatFloat(c.ctrl.Step, v)
	default:
		return
	}
	c.value, c.set = v, true
}

// next returns the value one step in direction, clamped to the control's
// range, and whether it differs from the current value.
func (c *control) next(direction int) (float64, bool) {
	if !c.set || direction == 0 {
		return c.value, false
	}
	step := c.ctrl.Step
	switch {
	case c.ctrl.Type == core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case step <= 0:
		step = 0.05
	}
	v := c.value + float64(direction)*step
	if c.ctrl.HasMin && v < c.ctrl.Min {
		v = c.ctrl.Min
	}
	if c.ctrl.HasMax && v > c.ctrl.Max {
		v = c.ctrl.Max
	}
	if c.ctrl.Type == core.ParamTypeInt {
		v = math.Round(v)
	}
	return v, math.Abs(v-c.value) > 1e-9
}

// hit returns the index of the control whose button contains the panel
// point (x, y) and the button's direction, or -1 when none does.
func hit(controls []control, x, y int) (int, int) {
	p := image.Pt(x, y)
	for i := range controls {
		switch {
		case p.In(controls[i].minus):
			return i, -1
		case p.In(controls[i].plus):
			return i, 1
		}
	}
	return -1, 0
}

// readoutTop is the baseline of the first readout line below n controls.
func readoutTop(n int) int {
	return controlsTop + max(n, 1)*lineHeight + readoutGap
}

func formatFloat(step, v float64) string {
	precision := 1
	switch {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func title(name string) string {
	if name == "" {
		return "Controls"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
