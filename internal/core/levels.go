package core

import "sort"

// LevelOrder returns the level-based initial permutation: the source,
// then repeated successor frontier expansion where a level contains
// every unplaced activity whose predecessors are all placed. Within a
// level activities appear in ascending id. The result is a topological
// linear extension of the (possibly augmented) DAG.
func LevelOrder(inst *Instance) []int {
	n := inst.NumActivities
	remaining := make([]int, n)
	for a := 0; a < n; a++ {
		remaining[a] = len(inst.Predecessors[a])
	}
	placed := make([]bool, n)
	order := make([]int, 0, n)
	level := []int{}
	for a := 0; a < n; a++ {
		if remaining[a] == 0 {
			level = append(level, a)
		}
	}
	for len(level) > 0 {
		sort.Ints(level)
		next := []int{}
		for _, a := range level {
			placed[a] = true
			order = append(order, a)
		}
		for _, a := range level {
			for _, s := range inst.Successors[a] {
				remaining[s]--
				if remaining[s] == 0 && !placed[s] {
					next = append(next, s)
				}
			}
		}
		level = next
	}
	return order
}

// SwapFeasible reports whether exchanging the activities at positions
// i and j of order preserves the topological property. Swapping is
// safe iff no activity between the two positions has a direct edge to
// order[j] and order[i] has no direct edge to any activity between
// them (the edge order[i] -> order[j] itself rules the swap out too).
func SwapFeasible(inst *Instance, order []int, i, j int) bool {
	if i == j {
		return false
	}
	if i > j {
		i, j = j, i
	}
	for k := i; k < j; k++ {
		if inst.HasEdge(order[k], order[j]) {
			return false
		}
	}
	for k := i + 1; k <= j; k++ {
		if inst.HasEdge(order[i], order[k]) {
			return false
		}
	}
	return true
}
