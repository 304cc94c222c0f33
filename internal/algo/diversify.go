package algo

import (
	"math/rand"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// diversifySeeds produces the seed set by walking the permutation
// space instead of branching: each seed is obtained from the previous
// one by a burst of random precedence-safe swaps, evaluated
// alternately by a plain forward schedule and by shaking down.
func diversifySeeds(inst *core.Instance, count, swaps int, rng *rand.Rand) (*SeedSet, error) {
	order := core.LevelOrder(inst)
	set := &SeedSet{Seeds: make([]Seed, count)}
	for s := 0; s < count; s++ {
		applyRandomSwaps(inst, order, swaps, rng)
		var ms int
		var err error
		if s%2 == 0 {
			_, ms, err = Evaluate(inst, order, true)
		} else {
			ms, _, err = ShakeDown(inst, order)
		}
		if err != nil {
			return nil, err
		}
		set.Seeds[s] = Seed{
			Instance: inst,
			Order:    append([]int(nil), order...),
			Cost:     ms,
		}
		if ms < set.Seeds[set.Best].Cost {
			set.Best = s
		}
	}
	return set, nil
}

// applyRandomSwaps performs up to swaps feasible position swaps on
// order, leaving the source and sink positions untouched. Attempts are
// bounded so a fully serialised permutation cannot loop forever.
func applyRandomSwaps(inst *core.Instance, order []int, swaps int, rng *rand.Rand) {
	n := len(order)
	if n <= 3 || swaps <= 0 {
		return
	}
	done := 0
	for tries := 0; done < swaps && tries < swaps*32; tries++ {
		i := 1 + rng.Intn(n-2)
		j := 1 + rng.Intn(n-2)
		if i == j {
			continue
		}
		if core.SwapFeasible(inst, order, i, j) {
			order[i], order[j] = order[j], order[i]
			done++
		}
	}
}
