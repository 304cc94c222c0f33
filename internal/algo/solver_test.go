package algo

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UncleMehdi/RCPSPGpu/internal/config"
	"github.com/UncleMehdi/RCPSPGpu/internal/device"
)

// echoDevice returns the best seed unchanged, counting one evaluation
// per seed; failDevice refuses to start.
type echoDevice struct{}

func (echoDevice) Name() string { return "echo" }

func (echoDevice) Run(_ context.Context, p *device.Payload) (*device.Result, error) {
	return &device.Result{
		BestOrder:          p.Order(int(p.BestIndex)),
		BestCost:           int(p.Costs[p.BestIndex]),
		EvaluatedSchedules: uint64(p.Solutions),
	}, nil
}

type failDevice struct{}

func (failDevice) Name() string { return "broken" }

func (failDevice) Run(context.Context, *device.Payload) (*device.Result, error) {
	return nil, fmt.Errorf("%w: no device present", device.ErrDeviceUnavailable)
}

func TestSolver_EndToEnd(t *testing.T) {
	inst := fanInstance(t)
	params := config.Default()
	params.Solutions = 4

	s, err := NewSolver(inst, params, echoDevice{}, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	sol, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, sol.Makespan)
	assert.Equal(t, uint64(4), sol.EvaluatedSchedules)
	assert.Zero(t, sol.PrecedencePenalty(inst))
	assertFeasible(t, inst, sol.StartTimes, sol.Makespan)
	assert.Equal(t, "branch+echo", s.Name())
}

func TestSolver_DeviceFailureIsFatal(t *testing.T) {
	inst := fanInstance(t)
	s, err := NewSolver(inst, config.Default(), failDevice{}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = s.Solve(context.Background())
	require.ErrorIs(t, err, device.ErrDeviceUnavailable)
}

func TestNewSolver_Validates(t *testing.T) {
	inst := fanInstance(t)
	bad := config.Default()
	bad.Solutions = 0
	_, err := NewSolver(inst, bad, echoDevice{}, rand.New(rand.NewSource(1)))
	require.Error(t, err)

	_, err = NewSolver(inst, config.Default(), nil, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, device.ErrDeviceUnavailable)
}
