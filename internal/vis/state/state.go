// Package state manages the schedule visualization state.
package state

import (
	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// State holds the instance, its solved schedule and playback timing.
type State struct {
	Instance *core.Instance
	Solution *core.Solution
	Playback *PlaybackState
}

// NewState creates the visualization state for a solved instance.
func NewState(inst *core.Instance, sol *core.Solution) *State {
	return &State{
		Instance: inst,
		Solution: sol,
		Playback: NewPlaybackState(inst, sol),
	}
}

// CriticalActivities returns the activities with zero slack: each
// starts exactly as late as the longest remaining path to the sink
// allows, so delaying any of them delays the whole schedule.
func (s *State) CriticalActivities() []int {
	if s.Solution == nil {
		return nil
	}
	var critical []int
	for a := 0; a < s.Instance.NumActivities; a++ {
		if s.Instance.Durations[a] == 0 {
			continue
		}
		if s.Solution.StartTimes[a]+s.Instance.LongestPaths[a] == s.Solution.Makespan {
			critical = append(critical, a)
		}
	}
	return critical
}

// ActiveActivities returns the ids running at the playback cursor.
func (s *State) ActiveActivities() []int {
	if s.Solution == nil {
		return nil
	}
	t := s.Playback.CurrentTime
	var active []int
	for a := 0; a < s.Instance.NumActivities; a++ {
		start := float64(s.Solution.StartTimes[a])
		end := start + float64(s.Instance.Durations[a])
		if start <= t && t < end {
			active = append(active, a)
		}
	}
	return active
}

// UsageAt returns per-resource demand at instant t.
func (s *State) UsageAt(t float64) []int {
	usage := make([]int, s.Instance.NumResources)
	if s.Solution == nil {
		return usage
	}
	for a := 0; a < s.Instance.NumActivities; a++ {
		start := float64(s.Solution.StartTimes[a])
		end := start + float64(s.Instance.Durations[a])
		if start <= t && t < end {
			for k := 0; k < s.Instance.NumResources; k++ {
				usage[k] += s.Instance.Requirements[a][k]
			}
		}
	}
	return usage
}
