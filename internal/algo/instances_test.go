package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// Shared instances for the scenario tests.

func chainInstance(t *testing.T) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance(
		[]int{0, 3, 0},
		[]int{1},
		[][]int{{0}, {1}, {0}},
		[][]int{{1}, {2}, {}},
	)
	require.NoError(t, err)
	return inst
}

func parallelPairInstance(t *testing.T, capacity int) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance(
		[]int{0, 2, 2, 0},
		[]int{capacity},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1, 2}, {3}, {3}, {}},
	)
	require.NoError(t, err)
	return inst
}

func fanInstance(t *testing.T) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance(
		[]int{0, 3, 2, 4, 0},
		[]int{1},
		[][]int{{0}, {1}, {1}, {1}, {0}},
		[][]int{{1, 2, 3}, {4}, {4}, {4}, {}},
	)
	require.NoError(t, err)
	return inst
}

// wideInstance has ten activities over two resources: short precedence
// chains (1->3, 2->3, 2->6, 4->7, 5->8) competing for the same
// capacities.
func wideInstance(t *testing.T) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance(
		[]int{0, 4, 2, 3, 3, 4, 2, 3, 1, 0},
		[]int{2, 1},
		[][]int{
			{0, 0},
			{1, 0},
			{1, 1},
			{2, 0},
			{0, 1},
			{1, 0},
			{1, 1},
			{1, 0},
			{0, 1},
			{0, 0},
		},
		[][]int{
			{1, 2, 4, 5},
			{3},
			{3, 6},
			{9},
			{7},
			{8},
			{9},
			{9},
			{9},
			{},
		},
	)
	require.NoError(t, err)
	return inst
}

// assertFeasible checks the resource and precedence feasibility of a
// schedule at every integer instant.
func assertFeasible(t *testing.T, inst *core.Instance, start []int, makespan int) {
	t.Helper()
	for u := 0; u < inst.NumActivities; u++ {
		for _, v := range inst.Successors[u] {
			assert.LessOrEqual(t, start[u]+inst.Durations[u], start[v],
				"edge %d->%d violated", u, v)
		}
	}
	for tt := 0; tt < makespan; tt++ {
		for k := 0; k < inst.NumResources; k++ {
			used := 0
			for a := 0; a < inst.NumActivities; a++ {
				if start[a] <= tt && tt < start[a]+inst.Durations[a] {
					used += inst.Requirements[a][k]
				}
			}
			assert.LessOrEqual(t, used, inst.Capacities[k],
				"resource %d over capacity at t=%d", k, tt)
		}
	}
}
