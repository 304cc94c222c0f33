package state

import (
	"sort"
	"time"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// sweepSeconds is how long one full playback sweep takes in wall-clock
// time, independent of the makespan.
const sweepSeconds = 12.0

// PlaybackState moves a cursor over a solved schedule. Stepping snaps
// to schedule events, the instants where some activity starts or
// finishes, so a single step always lands where the running set
// changes.
type PlaybackState struct {
	CurrentTime float64
	MaxTime     float64
	Playing     bool
	events      []float64 // ascending unique start/finish instants
	lastUpdate  time.Time
}

// NewPlaybackState indexes the schedule's event instants.
func NewPlaybackState(inst *core.Instance, sol *core.Solution) *PlaybackState {
	p := &PlaybackState{lastUpdate: time.Now()}
	if sol == nil {
		return p
	}
	p.MaxTime = float64(sol.Makespan)
	seen := map[int]bool{0: true, sol.Makespan: true}
	for a := 0; a < inst.NumActivities; a++ {
		seen[sol.StartTimes[a]] = true
		seen[sol.StartTimes[a]+inst.Durations[a]] = true
	}
	for t := range seen {
		p.events = append(p.events, float64(t))
	}
	sort.Float64s(p.events)
	return p
}

// Events returns the instants the cursor snaps to.
func (p *PlaybackState) Events() []float64 { return p.events }

// TogglePlay toggles playback, restarting from zero when at the end.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to the beginning.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the cursor so a whole sweep spans sweepSeconds of
// wall-clock time regardless of how long the schedule is.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.CurrentTime += now.Sub(p.lastUpdate).Seconds() * p.MaxTime / sweepSeconds
	p.lastUpdate = now
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime clamps the cursor into the schedule span.
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and snaps to the next schedule event.
func (p *PlaybackState) StepForward() {
	p.Pause()
	for _, e := range p.events {
		if e > p.CurrentTime+1e-9 {
			p.CurrentTime = e
			return
		}
	}
	p.CurrentTime = p.MaxTime
}

// StepBack pauses and snaps to the previous schedule event.
func (p *PlaybackState) StepBack() {
	p.Pause()
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i] < p.CurrentTime-1e-9 {
			p.CurrentTime = p.events[i]
			return
		}
	}
	p.CurrentTime = 0
}

// Progress returns playback completion in 0..1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
