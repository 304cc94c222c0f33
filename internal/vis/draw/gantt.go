// Package draw provides rendering for the schedule views.
package draw

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

var (
	ColorBackground = color.NRGBA{R: 30, G: 30, B: 35, A: 255}
	ColorBar        = color.NRGBA{R: 90, G: 140, B: 200, A: 255}
	ColorBarActive  = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorCursor     = color.NRGBA{R: 255, G: 90, B: 90, A: 255}
	ColorRowShade   = color.NRGBA{R: 38, G: 38, B: 44, A: 255}
)

// barPalette cycles bar colours so adjacent rows stay distinguishable.
var barPalette = []color.NRGBA{
	{R: 90, G: 140, B: 200, A: 255},
	{R: 100, G: 180, B: 120, A: 255},
	{R: 190, G: 120, B: 190, A: 255},
	{R: 200, G: 160, B: 90, A: 255},
	{R: 110, G: 180, B: 190, A: 255},
}

// DrawGantt renders one row per activity, bars scaled so the makespan
// spans the full width; every activity running at current is
// highlighted and a cursor line marks the playback instant.
func DrawGantt(gtx layout.Context, inst *core.Instance, sol *core.Solution, current float64) layout.Dimensions {
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, ColorBackground, clip.Rect(image.Rect(0, 0, size.X, size.Y)).Op())
	if sol == nil || sol.Makespan == 0 {
		return layout.Dimensions{Size: size}
	}

	rows := inst.NumActivities
	rowH := size.Y / rows
	if rowH < 2 {
		rowH = 2
	}
	scale := float64(size.X) / float64(sol.Makespan)

	for a := 0; a < rows; a++ {
		y0 := a * rowH
		if a%2 == 1 {
			paint.FillShape(gtx.Ops, ColorRowShade,
				clip.Rect(image.Rect(0, y0, size.X, y0+rowH)).Op())
		}
		dur := inst.Durations[a]
		if dur == 0 {
			continue
		}
		start := sol.StartTimes[a]
		x0 := int(float64(start) * scale)
		x1 := int(float64(start+dur) * scale)
		col := barPalette[a%len(barPalette)]
		if float64(start) <= current && current < float64(start+dur) {
			col = ColorBarActive
		}
		bar := image.Rect(x0, y0+2, x1, y0+rowH-2)
		paint.FillShape(gtx.Ops, col, clip.Rect(bar).Op())
	}

	cursorX := int(current * scale)
	paint.FillShape(gtx.Ops, ColorCursor,
		clip.Rect(image.Rect(cursorX, 0, cursorX+2, size.Y)).Op())

	return layout.Dimensions{Size: size}
}
