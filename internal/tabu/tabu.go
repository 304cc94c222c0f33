// Package tabu provides the host-side stand-in for the device tabu
// search: a swap-neighbourhood tabu search over the seed permutations
// carried by the payload. It consumes exactly what the device boundary
// specifies and reports the best permutation, its makespan and the
// number of schedules it evaluated.
package tabu

import (
	"context"
	"fmt"

	"github.com/UncleMehdi/RCPSPGpu/internal/algo"
	"github.com/UncleMehdi/RCPSPGpu/internal/core"
	"github.com/UncleMehdi/RCPSPGpu/internal/device"
)

// Search is a CPU tabu search over seed permutations.
type Search struct{}

// New creates the search.
func New() *Search { return &Search{} }

// Name identifies the implementation at the device boundary.
func (s *Search) Name() string { return "cpu-tabu" }

// move orders the unordered activity pair it swapped.
type move struct {
	a, b int
}

// Run searches from the payload's seeds. Each iteration picks the
// cheapest seed whose read counter has not hit the cap, scans its
// precedence-safe swap neighbourhood within SwapRange positions, and
// applies the best non-tabu move (tabu moves pass on aspiration). The
// resulting permutation is written back into its slot, also when it is
// worse than the one it replaces, so later reads continue from it.
func (s *Search) Run(ctx context.Context, p *device.Payload) (*device.Result, error) {
	if p == nil || p.Solutions == 0 {
		return nil, fmt.Errorf("%w: empty payload", device.ErrDeviceUnavailable)
	}
	inst, err := rebuildInstance(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", device.ErrDeviceUnavailable, err)
	}

	n := int(p.ActivityCount)
	seeds := int(p.Solutions)
	orders := make([][]int, seeds)
	costs := make([]int, seeds)
	counters := make([]int, seeds)
	for i := 0; i < seeds; i++ {
		orders[i] = p.Order(i)
		costs[i] = int(p.Costs[i])
	}

	best := append([]int(nil), orders[p.BestIndex]...)
	bestCost := costs[p.BestIndex]
	var evaluated uint64

	tabuList := make([]move, 0, p.TabuListSize)
	tabuHead := 0
	isTabu := func(m move) bool {
		for _, t := range tabuList {
			if t == m {
				return true
			}
		}
		return false
	}
	remember := func(m move) {
		if int(p.TabuListSize) == 0 {
			return
		}
		if len(tabuList) < int(p.TabuListSize) {
			tabuList = append(tabuList, m)
			return
		}
		tabuList[tabuHead] = m
		tabuHead = (tabuHead + 1) % len(tabuList)
	}

	cand := make([]int, n)
	sinceBest := 0
	for iter := 0; iter < int(p.MaxIter) && sinceBest < int(p.MaxIterSinceBest); iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		idx := pickSeed(costs, counters, int(p.MaxReadCounter))
		counters[idx]++
		order := orders[idx]

		bestMove := move{-1, -1}
		bestMoveCost := -1
		var bestMoveOrder []int
		for i := 1; i < n-1; i++ {
			hi := i + int(p.SwapRange)
			if hi > n-1 {
				hi = n - 1
			}
			for j := i + 1; j < hi; j++ {
				if !core.SwapFeasible(inst, order, i, j) {
					continue
				}
				copy(cand, order)
				cand[i], cand[j] = cand[j], cand[i]
				_, ms, err := algo.Evaluate(inst, cand, true)
				if err != nil {
					return nil, err
				}
				evaluated++
				m := normalise(order[i], order[j])
				if isTabu(m) && ms >= bestCost {
					continue
				}
				if bestMoveCost < 0 || ms < bestMoveCost {
					bestMoveCost = ms
					bestMove = m
					bestMoveOrder = append(bestMoveOrder[:0], cand...)
				}
			}
		}
		if bestMoveCost < 0 {
			// Entire neighbourhood is tabu; re-reading this seed again
			// would loop, so spend the read elsewhere.
			sinceBest++
			continue
		}

		copy(order, bestMoveOrder)
		remember(bestMove)
		if bestMoveCost < costs[idx] {
			costs[idx] = bestMoveCost
		}
		if bestMoveCost < bestCost {
			bestCost = bestMoveCost
			copy(best, order)
			sinceBest = 0
		} else {
			sinceBest++
		}
	}

	return &device.Result{
		BestOrder:          best,
		BestCost:           bestCost,
		EvaluatedSchedules: evaluated,
	}, nil
}

// pickSeed returns the cheapest seed still under the read cap; when
// every counter is exhausted they all reset, mirroring the device
// kernel's recycling of its solution set.
func pickSeed(costs, counters []int, maxRead int) int {
	pick := -1
	for i, c := range costs {
		if counters[i] >= maxRead {
			continue
		}
		if pick < 0 || c < costs[pick] {
			pick = i
		}
	}
	if pick >= 0 {
		return pick
	}
	for i := range counters {
		counters[i] = 0
	}
	pick = 0
	for i := range costs {
		if costs[i] < costs[pick] {
			pick = i
		}
	}
	return pick
}

func normalise(a, b int) move {
	if a > b {
		a, b = b, a
	}
	return move{a, b}
}

// rebuildInstance reconstructs the scheduling view of the payload: the
// bit matrix back into successor lists, then the full preprocessed
// instance.
func rebuildInstance(p *device.Payload) (*core.Instance, error) {
	n := int(p.ActivityCount)
	r := int(p.ResourceCount)
	dur := make([]int, n)
	for i, w := range p.Durations {
		dur[i] = int(w)
	}
	caps := make([]int, r)
	for i, w := range p.Capacities {
		caps[i] = int(w)
	}
	req := make([][]int, n)
	for a := 0; a < n; a++ {
		req[a] = make([]int, r)
		for k := 0; k < r; k++ {
			req[a][k] = int(p.Requirements[a*r+k])
		}
	}
	return core.NewInstance(dur, caps, req, p.SuccessorLists())
}
