// Package widgets holds the interactive parts of the visualizer.
package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/UncleMehdi/RCPSPGpu/internal/vis/state"
)

const (
	timelineHeight = 56
	timelineInset  = 16
	bandTop        = 12
	bandBottom     = 30
)

var (
	colTimelineBg   = color.NRGBA{R: 28, G: 30, B: 34, A: 255}
	colBandIdle     = color.NRGBA{R: 48, G: 52, B: 58, A: 255}
	colBandElapsed  = color.NRGBA{R: 70, G: 110, B: 160, A: 255}
	colEventTick    = color.NRGBA{R: 140, G: 150, B: 160, A: 255}
	colCriticalTick = color.NRGBA{R: 230, G: 140, B: 80, A: 255}
	colCursorMark   = color.NRGBA{R: 240, G: 90, B: 90, A: 255}
	colLabel        = color.NRGBA{R: 190, G: 195, B: 200, A: 255}
)

// Timeline scrubs across a solved schedule. The band fills with
// elapsed playback; a tick marks every instant the running set
// changes, and ticks at critical-path activity starts are tinted.
type Timeline struct {
	state     *state.State
	scrubbing bool
}

// NewTimeline creates the scrubber.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

// Layout renders the scrubber and applies any seek gestures.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X
	paint.FillShape(gtx.Ops, colTimelineBg,
		clip.Rect(image.Rect(0, 0, width, timelineHeight)).Op())

	t.handleSeek(gtx, width)

	band := image.Rect(timelineInset, bandTop, width-timelineInset, bandBottom)
	paint.FillShape(gtx.Ops, colBandIdle, clip.Rect(band).Op())

	pb := t.state.Playback
	if pb.MaxTime > 0 && band.Dx() > 0 {
		atX := func(instant float64) int {
			return band.Min.X + int(float64(band.Dx())*instant/pb.MaxTime)
		}

		fill := band
		fill.Max.X = atX(pb.CurrentTime)
		paint.FillShape(gtx.Ops, colBandElapsed, clip.Rect(fill).Op())

		criticalStart := make(map[float64]bool)
		for _, a := range t.state.CriticalActivities() {
			criticalStart[float64(t.state.Solution.StartTimes[a])] = true
		}
		for _, e := range pb.Events() {
			col := colEventTick
			if criticalStart[e] {
				col = colCriticalTick
			}
			x := atX(e)
			paint.FillShape(gtx.Ops, col,
				clip.Rect(image.Rect(x, band.Min.Y-3, x+1, band.Max.Y+3)).Op())
		}

		x := atX(pb.CurrentTime)
		paint.FillShape(gtx.Ops, colCursorMark,
			clip.Rect(image.Rect(x-1, band.Min.Y-5, x+2, band.Max.Y+5)).Op())
	}

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: width, Y: timelineHeight}}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback

	cursor := material.Label(th, 11, fmt.Sprintf("t=%.1f", pb.CurrentTime))
	cursor.Color = colLabel

	running := material.Label(th, 11, fmt.Sprintf("%d running", len(t.state.ActiveActivities())))
	running.Color = colLabel

	bounds := material.Label(th, 11, fmt.Sprintf("makespan %.0f, critical path %d",
		pb.MaxTime, t.state.Instance.CriticalPathBound))
	bounds.Color = colLabel

	layout.Inset{Top: unit.Dp(34), Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(cursor.Layout),
				layout.Rigid(running.Layout),
				layout.Rigid(bounds.Layout),
			)
		})
}

// handleSeek pauses playback and moves the cursor while the pointer
// presses or drags along the band.
func (t *Timeline) handleSeek(gtx layout.Context, width int) {
	area := clip.Rect(image.Rect(0, 0, width, timelineHeight)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.scrubbing = true
		case pointer.Release:
			t.scrubbing = false
			continue
		case pointer.Drag:
			if !t.scrubbing {
				continue
			}
		}

		span := float64(width - 2*timelineInset)
		if span <= 0 || t.state.Playback.MaxTime <= 0 {
			continue
		}
		frac := (float64(pe.Position.X) - timelineInset) / span
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		t.state.Playback.Pause()
		t.state.Playback.SetTime(frac * t.state.Playback.MaxTime)
	}
}
