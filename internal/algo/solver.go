package algo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/UncleMehdi/RCPSPGpu/internal/config"
	"github.com/UncleMehdi/RCPSPGpu/internal/core"
	"github.com/UncleMehdi/RCPSPGpu/internal/device"
)

// Solver owns an instance, produces the seed set, hands the
// consolidated payload to the metaheuristic and converts the returned
// permutation into the final schedule.
type Solver struct {
	inst   *core.Instance
	params config.Params
	meta   device.Metaheuristic
	rng    *rand.Rand
}

// NewSolver wires a solver. The rng drives candidate shuffling and the
// diversification walk; pass a fixed seed for reproducible runs.
func NewSolver(inst *core.Instance, params config.Params, meta device.Metaheuristic, rng *rand.Rand) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: no metaheuristic wired", device.ErrDeviceUnavailable)
	}
	return &Solver{inst: inst, params: params, meta: meta, rng: rng}, nil
}

// Name identifies the solver and its device side.
func (s *Solver) Name() string {
	return "branch+" + s.meta.Name()
}

// Solve runs the full pipeline: branching seeds, the device search,
// and a final shake-down of the winner.
func (s *Solver) Solve(ctx context.Context) (*core.Solution, error) {
	started := time.Now()

	seeds, err := GenerateSeeds(s.inst, s.params.Solutions, s.params.DiversificationSwaps, s.rng)
	if err != nil {
		return nil, fmt.Errorf("seed generation: %w", err)
	}

	orders := make([][]int, len(seeds.Seeds))
	costs := make([]int, len(seeds.Seeds))
	edges := make([][]core.Edge, len(seeds.Seeds))
	for i, seed := range seeds.Seeds {
		orders[i] = seed.Order
		costs[i] = seed.Cost
		edges[i] = seed.Instance.AddedEdges
	}
	payload := device.Build(s.inst, orders, costs, edges, seeds.Best, s.params)

	res, err := s.meta.Run(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("metaheuristic %s: %w", s.meta.Name(), err)
	}

	order := append([]int(nil), res.BestOrder...)
	ms, starts, err := ShakeDown(s.inst, order)
	if err != nil {
		return nil, err
	}
	return &core.Solution{
		Order:              order,
		StartTimes:         starts,
		Makespan:           ms,
		EvaluatedSchedules: res.EvaluatedSchedules,
		Elapsed:            time.Since(started),
	}, nil
}
