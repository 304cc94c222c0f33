// Package config holds the solver and metaheuristic knobs. The core
// treats them as opaque positive integers and forwards them into the
// device payload.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Params mirrors the ConfigureRCPSP option block.
type Params struct {
	TabuListSize            int
	SwapRange               int
	MaxReadCounter          int
	DiversificationSwaps    int
	Solutions               int
	BlocksPerMultiprocessor int
	MaxIter                 int
	MaxIterSinceBest        int
}

// Default returns the stock parameter set.
func Default() Params {
	return Params{
		TabuListSize:            40,
		SwapRange:               30,
		MaxReadCounter:          35,
		DiversificationSwaps:    20,
		Solutions:               8,
		BlocksPerMultiprocessor: 2,
		MaxIter:                 1000,
		MaxIterSinceBest:        300,
	}
}

// Validate checks that every knob is a positive integer.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"TABU_LIST_SIZE", p.TabuListSize},
		{"SWAP_RANGE", p.SwapRange},
		{"MAXIMAL_VALUE_OF_READ_COUNTER", p.MaxReadCounter},
		{"DIVERSIFICATION_SWAPS", p.DiversificationSwaps},
		{"NUMBER_OF_SET_SOLUTIONS", p.Solutions},
		{"NUMBER_OF_BLOCKS_PER_MULTIPROCESSOR", p.BlocksPerMultiprocessor},
		{"MAXIMAL_NUMBER_OF_ITERATIONS", p.MaxIter},
		{"MAXIMAL_NUMBER_OF_ITERATIONS_SINCE_BEST", p.MaxIterSinceBest},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", f.name, f.value)
		}
	}
	return nil
}

// Load overlays base with any options present in the JSON file at
// path. Unknown keys are ignored so config files can carry options for
// other tools.
func Load(path string, base Params) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return base, fmt.Errorf("config: %s is not valid JSON", path)
	}
	p := base
	overlay := func(key string, dst *int) {
		if v := gjson.GetBytes(data, key); v.Exists() {
			*dst = int(v.Int())
		}
	}
	overlay("TABU_LIST_SIZE", &p.TabuListSize)
	overlay("SWAP_RANGE", &p.SwapRange)
	overlay("MAXIMAL_VALUE_OF_READ_COUNTER", &p.MaxReadCounter)
	overlay("DIVERSIFICATION_SWAPS", &p.DiversificationSwaps)
	overlay("NUMBER_OF_SET_SOLUTIONS", &p.Solutions)
	overlay("NUMBER_OF_BLOCKS_PER_MULTIPROCESSOR", &p.BlocksPerMultiprocessor)
	overlay("MAXIMAL_NUMBER_OF_ITERATIONS", &p.MaxIter)
	overlay("MAXIMAL_NUMBER_OF_ITERATIONS_SINCE_BEST", &p.MaxIterSinceBest)
	if err := p.Validate(); err != nil {
		return base, err
	}
	return p, nil
}
