package algo

import (
	"math"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// ShakeDown iteratively refines order in place by alternating forward
// and backward evaluations: activities are re-sorted by forward finish
// time, then by backward latest start, until the forward makespan
// stops improving. The returned start times belong to the best forward
// evaluation seen.
func ShakeDown(inst *core.Instance, order []int) (int, []int, error) {
	best := math.MaxInt
	var bestStart []int
	finish := make([]int, inst.NumActivities)
	late := make([]int, inst.NumActivities)

	for {
		start, msF, err := Evaluate(inst, order, true)
		if err != nil {
			return 0, nil, err
		}
		if msF >= best {
			return best, bestStart, nil
		}
		best = msF
		bestStart = start

		for a := 0; a < inst.NumActivities; a++ {
			finish[a] = start[a] + inst.Durations[a]
		}
		insertionSortByKey(order, finish)

		bstart, msB, err := Evaluate(inst, order, false)
		if err != nil {
			return 0, nil, err
		}
		shift := msF - msB
		for a := 0; a < inst.NumActivities; a++ {
			v := msB - bstart[a] - inst.Durations[a] + shift
			if v < 0 {
				v = 0
			}
			late[a] = v
		}
		insertionSortByKey(order, late)
	}
}

// insertionSortByKey stable-sorts order by ascending key[activity].
// Insertion sort is deliberate: relative order among equal keys must
// survive, and it materially affects the evaluator's resource
// decisions.
func insertionSortByKey(order []int, key []int) {
	for i := 1; i < len(order); i++ {
		a := order[i]
		j := i - 1
		for j >= 0 && key[order[j]] > key[a] {
			order[j+1] = order[j]
			j--
		}
		order[j+1] = a
	}
}
