package tabu

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UncleMehdi/RCPSPGpu/internal/algo"
	"github.com/UncleMehdi/RCPSPGpu/internal/config"
	"github.com/UncleMehdi/RCPSPGpu/internal/core"
	"github.com/UncleMehdi/RCPSPGpu/internal/device"
)

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

func buildPayload(t *testing.T, inst *core.Instance, params config.Params) *device.Payload {
	t.Helper()
	set, err := algo.GenerateSeeds(inst, params.Solutions, params.DiversificationSwaps, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	orders := make([][]int, len(set.Seeds))
	costs := make([]int, len(set.Seeds))
	edges := make([][]core.Edge, len(set.Seeds))
	for i, s := range set.Seeds {
		orders[i] = s.Order
		costs[i] = s.Cost
		edges[i] = s.Instance.AddedEdges
	}
	return device.Build(inst, orders, costs, edges, set.Best, params)
}

func TestRun_NeverWorseThanSeeds(t *testing.T) {
	inst := fanInstance(t)
	params := config.Default()
	params.Solutions = 4
	params.MaxIter = 50
	params.MaxIterSinceBest = 20
	p := buildPayload(t, inst, params)

	res, err := New().Run(context.Background(), p)
	require.NoError(t, err)

	seedBest := int(p.Costs[p.BestIndex])
	assert.LessOrEqual(t, res.BestCost, seedBest)
	assert.Positive(t, res.EvaluatedSchedules)

	// The reported permutation replays to the reported cost or better.
	_, ms, err := algo.Evaluate(inst, res.BestOrder, true)
	require.NoError(t, err)
	assert.LessOrEqual(t, ms, res.BestCost)
}

func TestRun_EmptyPayload(t *testing.T) {
	_, err := New().Run(context.Background(), nil)
	require.ErrorIs(t, err, device.ErrDeviceUnavailable)

	_, err = New().Run(context.Background(), &device.Payload{})
	require.ErrorIs(t, err, device.ErrDeviceUnavailable)
}

func TestRun_HonoursCancellation(t *testing.T) {
	inst := fanInstance(t)
	params := config.Default()
	params.Solutions = 2
	p := buildPayload(t, inst, params)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Run(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
}
