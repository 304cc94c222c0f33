package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainInstance is a three-activity chain 0 -> 1 -> 2 on one resource.
func chainInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(
		[]int{0, 3, 0},
		[]int{1},
		[][]int{{0}, {1}, {0}},
		[][]int{{1}, {2}, {}},
	)
	require.NoError(t, err)
	return inst
}

// parallelPairInstance is the diamond 0 -> {1,2} -> 3 with unit
// demands on a single resource of the given capacity.
func parallelPairInstance(t *testing.T, capacity int) *Instance {
	t.Helper()
	inst, err := NewInstance(
		[]int{0, 2, 2, 0},
		[]int{capacity},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1, 2}, {3}, {3}, {}},
	)
	require.NoError(t, err)
	return inst
}

// fanInstance is 0 -> {1,2,3} -> 4 on a unit-capacity resource, so the
// three middle activities are pairwise disjunctive.
func fanInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(
		[]int{0, 3, 2, 4, 0},
		[]int{1},
		[][]int{{0}, {1}, {1}, {1}, {0}},
		[][]int{{1, 2, 3}, {4}, {4}, {4}, {}},
	)
	require.NoError(t, err)
	return inst
}

func TestNewInstance_RejectsOverCapacity(t *testing.T) {
	_, err := NewInstance(
		[]int{0, 1, 0},
		[]int{1},
		[][]int{{0}, {2}, {0}},
		[][]int{{1}, {2}, {}},
	)
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestNewInstance_RejectsCycle(t *testing.T) {
	_, err := NewInstance(
		[]int{0, 1, 0},
		[]int{1},
		[][]int{{0}, {1}, {0}},
		[][]int{{1}, {2, 0}, {}},
	)
	require.ErrorIs(t, err, ErrCycle)
}

func TestNewInstance_RejectsShapeMismatch(t *testing.T) {
	_, err := NewInstance(
		[]int{0, 1, 0},
		[]int{1},
		[][]int{{0}, {1}},
		[][]int{{1}, {2}, {}},
	)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestChain_Preprocessing(t *testing.T) {
	inst := chainInstance(t)

	assert.Equal(t, [][]int{{1, 2}, {2}, {}}, inst.SuccClosure)
	assert.Equal(t, [][]int{{}, {0}, {0, 1}}, inst.PredClosure)
	assert.Equal(t, 3, inst.CriticalPathBound)
	assert.Equal(t, 3, inst.UpperBound)
	assert.True(t, inst.HasEdge(0, 1))
	assert.False(t, inst.HasEdge(0, 2))
}

func TestClosureConsistency(t *testing.T) {
	inst := fanInstance(t)
	for i := 0; i < inst.NumActivities; i++ {
		for _, j := range inst.SuccClosure[i] {
			assert.True(t, containsSorted(inst.PredClosure[j], i),
				"%d in succ*[%d] but %d not in pred*[%d]", j, i, i, j)
		}
		for _, j := range inst.PredClosure[i] {
			assert.True(t, containsSorted(inst.SuccClosure[j], i))
		}
	}
}

func TestDisjunctive_ParallelPair(t *testing.T) {
	wide := parallelPairInstance(t, 2)
	assert.False(t, wide.Disjunctive[1][2])
	assert.True(t, wide.CanRunConcurrently(1, 2))

	narrow := parallelPairInstance(t, 1)
	assert.True(t, narrow.Disjunctive[1][2])
	assert.False(t, narrow.CanRunConcurrently(1, 2))
}

func TestDisjunctive_ImpliedByPrecedence(t *testing.T) {
	inst := parallelPairInstance(t, 2)
	// Source and sink never run concurrently with anything they are
	// transitively related to, even with slack capacity.
	for i := 0; i < inst.NumActivities; i++ {
		for _, j := range inst.SuccClosure[i] {
			assert.True(t, inst.Disjunctive[i][j], "related pair (%d,%d) must be disjunctive", i, j)
		}
	}
	// Non-disjunctive pairs obey the capacity sum rule and are unrelated.
	for i := 0; i < inst.NumActivities; i++ {
		for j := i + 1; j < inst.NumActivities; j++ {
			if inst.Disjunctive[i][j] {
				continue
			}
			assert.False(t, inst.Related(i, j))
			for k := 0; k < inst.NumResources; k++ {
				assert.LessOrEqual(t,
					inst.Requirements[i][k]+inst.Requirements[j][k],
					inst.Capacities[k])
			}
		}
	}
}

func TestAddEdge_MatchesRebuiltClosures(t *testing.T) {
	inst := fanInstance(t)
	child := inst.Clone()
	child.AddEdge(1, 2)

	// Rebuild the augmented graph from scratch and compare closures.
	succ := [][]int{{1, 2, 3}, {4, 2}, {4}, {4}, {}}
	fresh, err := NewInstance(inst.Durations, inst.Capacities, inst.Requirements, succ)
	require.NoError(t, err)

	assert.Equal(t, fresh.SuccClosure, child.SuccClosure)
	assert.Equal(t, fresh.PredClosure, child.PredClosure)
	assert.Equal(t, fresh.Disjunctive, child.Disjunctive)
	assert.Equal(t, []Edge{{From: 1, To: 2}}, child.AddedEdges)
	assert.True(t, child.HasEdge(1, 2))

	// The parent is untouched.
	assert.False(t, inst.HasEdge(1, 2))
	assert.Empty(t, inst.AddedEdges)
}

func TestView_ReversalInvolution(t *testing.T) {
	inst := fanInstance(t)
	v := inst.Forward()
	rr := v.Reversed().Reversed()
	assert.Equal(t, v, rr)

	rv := v.Reversed()
	assert.Equal(t, v.Succ, rv.Pred)
	assert.Equal(t, v.SuccClosure, rv.PredClosure)
}

func TestClone_IsDeep(t *testing.T) {
	inst := fanInstance(t)
	c := inst.Clone()
	c.AddEdge(2, 1)
	assert.False(t, inst.HasEdge(2, 1))
	assert.NotContains(t, inst.SuccClosure[2], 1)
}
