package algo

import "github.com/UncleMehdi/RCPSPGpu/internal/core"

// Evaluate maps a topological permutation to start times with the
// serial schedule-generation scheme: each activity is placed at the
// earliest instant that satisfies both its predecessors and the
// resource capacities. With forward=false the permutation is scanned
// right to left against the reversed precedence graph, which is how
// the shaking-down pass computes latest starts.
//
// Returns the start times (indexed by activity id) and the makespan.
func Evaluate(inst *core.Instance, order []int, forward bool) ([]int, int, error) {
	n := inst.NumActivities
	start := make([]int, n)
	tracker := NewLoadTracker(inst.Capacities)
	makespan := 0

	schedule := func(a int, preds []int) error {
		earliest := 0
		for _, p := range preds {
			if f := start[p] + inst.Durations[p]; f > earliest {
				earliest = f
			}
		}
		t := tracker.EarliestStart(inst.Requirements[a], earliest, inst.Durations[a])
		if err := tracker.Add(t, t+inst.Durations[a], inst.Requirements[a]); err != nil {
			return err
		}
		start[a] = t
		if f := t + inst.Durations[a]; f > makespan {
			makespan = f
		}
		return nil
	}

	if forward {
		for i := 0; i < n; i++ {
			a := order[i]
			if err := schedule(a, inst.Predecessors[a]); err != nil {
				return nil, 0, err
			}
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			a := order[i]
			if err := schedule(a, inst.Successors[a]); err != nil {
				return nil, 0, err
			}
		}
	}
	return start, makespan, nil
}
