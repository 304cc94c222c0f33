package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertTopological fails if order places any activity before one of
// its (possibly added) direct predecessors.
func assertTopological(t *testing.T, inst *Instance, order []int) {
	t.Helper()
	pos := make([]int, inst.NumActivities)
	for i, a := range order {
		pos[a] = i
	}
	for u := 0; u < inst.NumActivities; u++ {
		for _, v := range inst.Successors[u] {
			assert.Less(t, pos[u], pos[v], "edge %d->%d out of order", u, v)
		}
	}
}

func TestLevelOrder_Fan(t *testing.T) {
	inst := fanInstance(t)
	order := LevelOrder(inst)
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assertTopological(t, inst, order)
}

func TestLevelOrder_AugmentedGraph(t *testing.T) {
	inst := fanInstance(t)
	child := inst.Clone()
	child.AddEdge(3, 1)
	child.AddEdge(1, 2)
	order := LevelOrder(child)
	require.Len(t, order, child.NumActivities)
	assertTopological(t, child, order)
}

func TestSwapFeasible(t *testing.T) {
	inst := fanInstance(t)
	order := []int{0, 1, 2, 3, 4}

	// Middle activities are mutually unordered: swapping any two keeps
	// the permutation topological.
	assert.True(t, SwapFeasible(inst, order, 1, 2))
	assert.True(t, SwapFeasible(inst, order, 1, 3))
	assert.True(t, SwapFeasible(inst, order, 3, 1))

	// Source and sink are pinned by their direct edges.
	assert.False(t, SwapFeasible(inst, order, 0, 1))
	assert.False(t, SwapFeasible(inst, order, 3, 4))
	assert.False(t, SwapFeasible(inst, order, 0, 4))
	assert.False(t, SwapFeasible(inst, order, 2, 2))
}

func TestSwapFeasible_PreservesTopology(t *testing.T) {
	inst := fanInstance(t)
	order := []int{0, 1, 2, 3, 4}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if !SwapFeasible(inst, order, i, j) {
				continue
			}
			swapped := append([]int(nil), order...)
			swapped[i], swapped[j] = swapped[j], swapped[i]
			assertTopological(t, inst, swapped)
		}
	}
}

func TestOrderByStartTime_StableOnTies(t *testing.T) {
	starts := []int{0, 4, 0, 2, 4}
	assert.Equal(t, []int{0, 2, 3, 1, 4}, OrderByStartTime(starts))
}
