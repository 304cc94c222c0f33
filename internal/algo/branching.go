package algo

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// Seed is one starting point handed to the metaheuristic: a
// specialised instance (the root plus the precedences its branch
// imposed), a topological permutation and its makespan. Branching
// leaves carry their shaken-down makespan; diversification seeds
// alternate between a plain forward makespan and a shaken-down one.
type Seed struct {
	Instance *core.Instance
	Order    []int
	Cost     int
}

// SeedSet is the leaf set produced by the branching search.
type SeedSet struct {
	Seeds []Seed
	Best  int // index of the lowest-cost seed
}

// GenerateSeeds grows a tree of instance specialisations by imposing
// one disjunctive edge pair at a time until count leaves exist. Each
// split is chosen by minimum sum of child lower bounds over a shuffled
// candidate list, scanned in parallel; a candidate whose child-bound
// sum does not exceed twice the parent bound is accepted immediately.
// When the root cannot branch far enough the seed set falls back to a
// diversification walk of random precedence-safe swaps.
func GenerateSeeds(root *core.Instance, count, diversificationSwaps int, rng *rand.Rand) (*SeedSet, error) {
	if count < 1 {
		count = 1
	}
	fifo := []*core.Instance{root}
	var leaves []*core.Instance

	for len(fifo) > 0 && len(fifo)+len(leaves) < count {
		parent := fifo[0]
		fifo = fifo[1:]

		candidates := branchCandidates(parent)
		if len(candidates) == 0 {
			leaves = append(leaves, parent)
			continue
		}
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		child1, child2 := selectBranch(parent, candidates)
		fifo = append(fifo, child1, child2)
	}
	leaves = append(leaves, fifo...)

	if len(leaves) < count {
		return diversifySeeds(root, count, diversificationSwaps, rng)
	}
	leaves = leaves[:count]

	set := &SeedSet{Seeds: make([]Seed, len(leaves))}
	for i, leaf := range leaves {
		order := core.LevelOrder(leaf)
		ms, starts, err := ShakeDown(leaf, order)
		if err != nil {
			return nil, err
		}
		set.Seeds[i] = Seed{
			Instance: leaf,
			Order:    core.OrderByStartTime(starts),
			Cost:     ms,
		}
		if ms < set.Seeds[set.Best].Cost {
			set.Best = i
		}
	}
	return set, nil
}

// branchCandidates lists the unordered disjunctive pairs that are not
// yet ordered by the (possibly augmented) precedence closure.
func branchCandidates(inst *core.Instance) [][2]int {
	var out [][2]int
	for i := 0; i < inst.NumActivities; i++ {
		for j := i + 1; j < inst.NumActivities; j++ {
			if inst.Disjunctive[i][j] && !inst.Related(i, j) {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// selectBranch evaluates the shuffled candidates on a worker pool and
// returns the winning child pair. Workers share the running minimum,
// the best children and a stop flag under one mutex; the flag only
// stops candidates that have not started yet, so a worker already past
// the check still publishes its result if it beats the minimum.
func selectBranch(parent *core.Instance, candidates [][2]int) (*core.Instance, *core.Instance) {
	parentLB := LowerBoundOfMakespan(parent)

	var (
		mu       sync.Mutex
		stop     bool
		bestCost = math.MaxInt
		best1    *core.Instance
		best2    *core.Instance
	)

	work := make(chan [2]int)
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	if workers > len(candidates) {
		workers = len(candidates)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range work {
				mu.Lock()
				halted := stop
				mu.Unlock()
				if halted {
					continue
				}

				i, j := pair[0], pair[1]
				c1 := parent.Clone()
				c1.AddEdge(i, j)
				c2 := parent.Clone()
				c2.AddEdge(j, i)
				sum := LowerBoundOfMakespan(c1) + LowerBoundOfMakespan(c2)

				mu.Lock()
				if sum < bestCost {
					bestCost = sum
					best1, best2 = c1, c2
				}
				if sum <= 2*parentLB {
					stop = true
				}
				mu.Unlock()
			}
		}()
	}
	for _, pair := range candidates {
		work <- pair
	}
	close(work)
	wg.Wait()

	return best1, best2
}
