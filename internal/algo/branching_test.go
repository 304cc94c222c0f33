package algo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

func assertTopological(t *testing.T, inst *core.Instance, order []int) {
	t.Helper()
	require.Len(t, order, inst.NumActivities)
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

func TestGenerateSeeds_FanBranches(t *testing.T) {
	inst := fanInstance(t)
	rng := rand.New(rand.NewSource(7))
	set, err := GenerateSeeds(inst, 4, 10, rng)
	require.NoError(t, err)
	require.Len(t, set.Seeds, 4)

	for _, seed := range set.Seeds {
		assert.NotEmpty(t, seed.Instance.AddedEdges)
		assertTopological(t, seed.Instance, seed.Order)
		// With unit capacity the three middle activities serialise.
		assert.GreaterOrEqual(t, seed.Cost, 9)
	}
	best := set.Seeds[set.Best].Cost
	for _, seed := range set.Seeds {
		assert.GreaterOrEqual(t, seed.Cost, best)
	}
}

func TestGenerateSeeds_AddedEdgesRespectDisjunction(t *testing.T) {
	inst := fanInstance(t)
	rng := rand.New(rand.NewSource(3))
	set, err := GenerateSeeds(inst, 4, 10, rng)
	require.NoError(t, err)

	for _, seed := range set.Seeds {
		for _, e := range seed.Instance.AddedEdges {
			assert.True(t, inst.Disjunctive[e.From][e.To],
				"branching may only order disjunctive pairs, got %d->%d", e.From, e.To)
			assert.False(t, inst.Related(e.From, e.To))
		}
	}
}

func TestGenerateSeeds_ChainFallsBackToDiversification(t *testing.T) {
	// A pure chain has no unordered disjunctive pair, so branching
	// cannot reach the requested leaf count.
	inst := chainInstance(t)
	rng := rand.New(rand.NewSource(1))
	set, err := GenerateSeeds(inst, 4, 5, rng)
	require.NoError(t, err)
	require.Len(t, set.Seeds, 4)

	for _, seed := range set.Seeds {
		assert.Empty(t, seed.Instance.AddedEdges)
		assertTopological(t, seed.Instance, seed.Order)
		assert.Equal(t, 3, seed.Cost)
	}
}

func TestGenerateSeeds_Deterministic(t *testing.T) {
	a, err := GenerateSeeds(fanInstance(t), 4, 10, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := GenerateSeeds(fanInstance(t), 4, 10, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.Len(t, b.Seeds, len(a.Seeds))
	for i := range a.Seeds {
		assert.Equal(t, a.Seeds[i].Cost, b.Seeds[i].Cost)
	}
}

func TestDiversify_SwapsStayTopological(t *testing.T) {
	inst := wideInstance(t)
	rng := rand.New(rand.NewSource(5))
	set, err := diversifySeeds(inst, 6, 15, rng)
	require.NoError(t, err)
	require.Len(t, set.Seeds, 6)
	for _, seed := range set.Seeds {
		assertTopological(t, inst, seed.Order)
		assert.GreaterOrEqual(t, seed.Cost, inst.CriticalPathBound)
	}
}
