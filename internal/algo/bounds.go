package algo

import (
	"sort"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// ComputeBound returns, per activity, a lower bound on its earliest
// start when the project is rooted at start. The base bound is the
// duration-longest path; with energyReasoning enabled the bound is
// strengthened at every merge point: if two predecessor paths diverge
// at a common ancestor s, all activities strictly between s and the
// merge point compete for the same resources, so the merge cannot
// begin before s finishes plus the energy ceil(sum dur*req / cap).
//
// dur overrides the instance durations; the bound engines iterate on
// reduced duration vectors without touching the instance.
func ComputeBound(inst *core.Instance, v core.View, dur []int, start int, energyReasoning bool) []int {
	n := inst.NumActivities
	dist := make([]int, n)
	closed := make([]bool, n)
	queued := make([]bool, n)
	queue := []int{start}
	queued[start] = true

	// branch[a][x] labels the outgoing edge of x taken on the path
	// reaching a; -1 when x is not on any recorded path.
	var branch [][]int
	if energyReasoning {
		branch = make([][]int, n)
	}

	for len(queue) > 0 {
		// Pick the first queued activity whose predecessors are all
		// closed; start has none within the view.
		pick := -1
		for qi, a := range queue {
			ready := true
			for _, p := range v.Pred[a] {
				if !closed[p] {
					ready = false
					break
				}
			}
			if ready {
				pick = qi
				break
			}
		}
		if pick < 0 {
			break
		}
		a := queue[pick]
		queue = append(queue[:pick], queue[pick+1:]...)
		closed[a] = true

		for _, p := range v.Pred[a] {
			if f := dist[p] + dur[p]; f > dist[a] {
				dist[a] = f
			}
		}

		if energyReasoning {
			merged := make([]int, n)
			for x := range merged {
				merged[x] = -1
			}
			var divergers []int
			record := func(x, edge int) {
				switch {
				case merged[x] == -1:
					merged[x] = edge
				case merged[x] != edge:
					divergers = append(divergers, x)
				}
			}
			for _, p := range v.Pred[a] {
				record(p, edgeIndex(v.Succ[p], a))
				if branch[p] == nil {
					continue
				}
				for x, edge := range branch[p] {
					if edge >= 0 {
						record(x, edge)
					}
				}
			}
			if len(v.Pred[a]) >= 2 {
				seen := make(map[int]bool, len(divergers))
				for _, s := range divergers {
					if seen[s] {
						continue
					}
					seen[s] = true
					between := intersectSorted(v.PredClosure[a], v.SuccClosure[s])
					if b := dist[s] + dur[s] + energyInterval(inst, dur, between); b > dist[a] {
						dist[a] = b
					}
				}
			}
			branch[a] = merged
		}

		for _, s := range v.Succ[a] {
			if !closed[s] && !queued[s] {
				queue = append(queue, s)
				queued[s] = true
			}
		}
	}
	return dist
}

// energyInterval is the resource-energy lower bound on the span the
// given activities occupy: max over resources of
// ceil(sum dur*req / capacity).
func energyInterval(inst *core.Instance, dur []int, activities []int) int {
	interval := 0
	for k := 0; k < inst.NumResources; k++ {
		c := inst.Capacities[k]
		if c <= 0 {
			continue
		}
		sum := 0
		for _, x := range activities {
			sum += dur[x] * inst.Requirements[x][k]
		}
		if e := (sum + c - 1) / c; e > interval {
			interval = e
		}
	}
	return interval
}

// LowerBoundOfMakespan computes a makespan lower bound through the
// concurrency-sort relaxation: activities are consumed in ascending
// (concurrency level, duration) order; consuming an activity adds its
// residual duration to an additive bound and discounts everything it
// could overlap with, while the energy-reasoned path bounds on the
// residual durations cap the envelope. Only a local duration copy is
// mutated.
func LowerBoundOfMakespan(inst *core.Instance) int {
	n := inst.NumActivities
	dur := append([]int(nil), inst.Durations...)

	level := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && !inst.Disjunctive[i][j] {
				level[i]++
			}
		}
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := order[x], order[y]
		if level[a] != level[b] {
			return level[a] < level[b]
		}
		return dur[a] < dur[b]
	})

	fwd := inst.Forward()
	bwd := fwd.Reversed()
	lb, envelope := 0, 0
	for idx, a := range order {
		d := dur[a]
		if d <= 0 {
			continue
		}
		fwdBound := ComputeBound(inst, fwd, dur, inst.Source(), true)
		bwdBound := ComputeBound(inst, bwd, dur, inst.Sink(), true)
		reach := fwdBound[inst.Sink()]
		if b := bwdBound[inst.Source()]; b > reach {
			reach = b
		}
		if e := lb + reach; e > envelope {
			envelope = e
		}
		for _, j := range order[idx+1:] {
			if !inst.Disjunctive[a][j] && dur[j] > 0 {
				dur[j] -= d
				if dur[j] < 0 {
					dur[j] = 0
				}
			}
		}
		dur[a] = 0
		lb += d
	}
	if envelope > lb {
		return envelope
	}
	return lb
}

// edgeIndex returns the position of target in succ, -1 if absent.
func edgeIndex(succ []int, target int) int {
	for i, s := range succ {
		if s == target {
			return i
		}
	}
	return -1
}

// intersectSorted intersects two ascending slices.
func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
