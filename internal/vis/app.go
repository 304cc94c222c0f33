// Package vis implements a Gio-based viewer for solved schedules: a
// Gantt chart over the activities, one utilisation profile per
// resource, and a playback timeline.
package vis

import (
	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
	"github.com/UncleMehdi/RCPSPGpu/internal/vis/draw"
	"github.com/UncleMehdi/RCPSPGpu/internal/vis/state"
	"github.com/UncleMehdi/RCPSPGpu/internal/vis/widgets"
)

// App is the visualizer application.
type App struct {
	state    *state.State
	theme    *material.Theme
	timeline *widgets.Timeline
}

// NewApp creates the viewer for a solved instance.
func NewApp(inst *core.Instance, sol *core.Solution) *App {
	st := state.NewState(inst, sol)
	return &App{
		state:    st,
		theme:    material.NewTheme(),
		timeline: widgets.NewTimeline(st),
	}
}

// Run starts the event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	current := a.state.Playback.CurrentTime

	children := []layout.FlexChild{
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return draw.DrawGantt(gtx, a.state.Instance, a.state.Solution, current)
		}),
	}
	for k := 0; k < a.state.Instance.NumResources; k++ {
		resource := k
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.Y = 70
			return draw.DrawProfile(gtx, a.state.Instance, a.state.Solution, resource, current)
		}))
	}
	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return a.timeline.Layout(gtx, a.theme)
	}))

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}
