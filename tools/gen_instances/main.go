// Package main generates random RCPSP instances for benchmarks.
// Instances are deterministic for a given seed and written in the JSON
// format internal/parse reads.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// InstanceParams defines the generation knobs.
type InstanceParams struct {
	Seed        int64   `json:"seed"`
	Activities  int     `json:"activities"` // Including source and sink
	Resources   int     `json:"resources"`
	MaxDuration int     `json:"max_duration"`
	MaxDemand   int     `json:"max_demand"`
	EdgeDensity float64 `json:"edge_density"` // Chance of an extra precedence per pair
}

// Activity mirrors the parse package's file schema.
type Activity struct {
	ID           int   `json:"id"`
	Duration     int   `json:"duration"`
	Requirements []int `json:"requirements"`
	Successors   []int `json:"successors"`
}

// Instance is the emitted file.
type Instance struct {
	Name       string         `json:"name"`
	Params     InstanceParams `json:"params"`
	Capacities []int          `json:"capacities"`
	Activities []Activity     `json:"activities"`
}

func main() {
	out := flag.String("out", "instances", "Output directory")
	count := flag.Int("count", 5, "Number of instances to generate")
	activities := flag.Int("activities", 32, "Activities per instance (including source and sink)")
	resources := flag.Int("resources", 4, "Resource kinds")
	maxDuration := flag.Int("max-duration", 10, "Maximum activity duration")
	maxDemand := flag.Int("max-demand", 5, "Maximum per-resource demand")
	density := flag.Float64("density", 0.1, "Extra precedence edge probability")
	seed := flag.Int64("seed", 42, "Base random seed")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		params := InstanceParams{
			Seed:        *seed + int64(i),
			Activities:  *activities,
			Resources:   *resources,
			MaxDuration: *maxDuration,
			MaxDemand:   *maxDemand,
			EdgeDensity: *density,
		}
		inst := generate(params)
		inst.Name = fmt.Sprintf("rcpsp_a%d_r%d_s%d", params.Activities, params.Resources, params.Seed)

		path := filepath.Join(*out, inst.Name+".json")
		if err := writeInstance(path, inst); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

// generate builds a random DAG over ids 1..n-2 with activity 0 as the
// source and n-1 as the sink. Edges only point from lower to higher
// ids, which keeps the graph acyclic by construction.
func generate(params InstanceParams) *Instance {
	rng := rand.New(rand.NewSource(params.Seed))
	n := params.Activities
	if n < 4 {
		n = 4
	}

	capacities := make([]int, params.Resources)
	for k := range capacities {
		capacities[k] = params.MaxDemand + rng.Intn(params.MaxDemand+1)
	}

	succ := make([][]int, n)
	hasPred := make([]bool, n)
	hasSucc := make([]bool, n)
	addEdge := func(u, v int) {
		for _, s := range succ[u] {
			if s == v {
				return
			}
		}
		succ[u] = append(succ[u], v)
		hasPred[v] = true
		hasSucc[u] = true
	}

	// A random chain skeleton plus density-controlled extra edges.
	for v := 2; v < n-1; v++ {
		addEdge(1+rng.Intn(v-1), v)
	}
	for u := 1; u < n-2; u++ {
		for v := u + 1; v < n-1; v++ {
			if rng.Float64() < params.EdgeDensity {
				addEdge(u, v)
			}
		}
	}
	// The source feeds every root, every leaf feeds the sink.
	for a := 1; a < n-1; a++ {
		if !hasPred[a] {
			addEdge(0, a)
		}
		if !hasSucc[a] {
			addEdge(a, n-1)
		}
	}
	if succ[0] == nil {
		addEdge(0, n-1)
	}

	inst := &Instance{Params: params, Capacities: capacities}
	for a := 0; a < n; a++ {
		act := Activity{ID: a, Requirements: make([]int, params.Resources), Successors: succ[a]}
		if act.Successors == nil {
			act.Successors = []int{}
		}
		if a != 0 && a != n-1 {
			act.Duration = 1 + rng.Intn(params.MaxDuration)
			for k := range act.Requirements {
				act.Requirements[k] = rng.Intn(params.MaxDemand + 1)
			}
		}
		inst.Activities = append(inst.Activities, act)
	}
	return inst
}

func writeInstance(path string, inst *Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(inst)
}
