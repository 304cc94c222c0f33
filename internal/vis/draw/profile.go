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
	ColorProfileFill = color.NRGBA{R: 80, G: 160, B: 110, A: 255}
	ColorProfileFull = color.NRGBA{R: 220, G: 120, B: 90, A: 255}
	ColorCapLine     = color.NRGBA{R: 120, G: 120, B: 130, A: 255}
)

// DrawProfile renders the utilisation of one resource over time as a
// bar per unit instant; instants at full capacity are tinted.
func DrawProfile(gtx layout.Context, inst *core.Instance, sol *core.Solution, resource int, current float64) layout.Dimensions {
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, ColorBackground, clip.Rect(image.Rect(0, 0, size.X, size.Y)).Op())
	if sol == nil || sol.Makespan == 0 || inst.Capacities[resource] == 0 {
		return layout.Dimensions{Size: size}
	}

	capacity := inst.Capacities[resource]
	scale := float64(size.X) / float64(sol.Makespan)
	for t := 0; t < sol.Makespan; t++ {
		used := 0
		for a := 0; a < inst.NumActivities; a++ {
			if sol.StartTimes[a] <= t && t < sol.StartTimes[a]+inst.Durations[a] {
				used += inst.Requirements[a][resource]
			}
		}
		if used == 0 {
			continue
		}
		h := size.Y * used / capacity
		col := ColorProfileFill
		if used == capacity {
			col = ColorProfileFull
		}
		x0 := int(float64(t) * scale)
		x1 := int(float64(t+1) * scale)
		paint.FillShape(gtx.Ops, col,
			clip.Rect(image.Rect(x0, size.Y-h, x1, size.Y)).Op())
	}

	// Capacity line along the top edge.
	paint.FillShape(gtx.Ops, ColorCapLine, clip.Rect(image.Rect(0, 0, size.X, 1)).Op())

	cursorX := int(current * scale)
	paint.FillShape(gtx.Ops, ColorCursor,
		clip.Rect(image.Rect(cursorX, 0, cursorX+2, size.Y)).Op())

	return layout.Dimensions{Size: size}
}
