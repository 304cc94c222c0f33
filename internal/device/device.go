// Package device defines the boundary to the external metaheuristic:
// the flattened payload handed across it and the interface the
// device-side search implements. The solver facade owns the payload;
// implementations must not retain it after Run returns.
package device

import (
	"context"
	"errors"
)

// ErrDeviceUnavailable indicates the metaheuristic refused to start or
// reported failure. The facade surfaces it as fatal; runs are not
// retried.
var ErrDeviceUnavailable = errors.New("device: metaheuristic unavailable")

// Result is what the metaheuristic hands back: the best permutation it
// found, its makespan, and how many schedules it evaluated.
type Result struct {
	BestOrder          []int
	BestCost           int
	EvaluatedSchedules uint64
}

// Metaheuristic consumes a payload and returns an improved result.
// Run blocks until the device finishes; it is the single suspension
// point the facade sees.
type Metaheuristic interface {
	Name() string
	Run(ctx context.Context, p *Payload) (*Result, error)
}
