// Package parse loads RCPSP instances from their JSON file format, the
// same format tools/gen_instances emits.
package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// Activity is one activity record of the instance file.
type Activity struct {
	ID           int    `json:"id"`
	Duration     int    `json:"duration"`
	Requirements []int  `json:"requirements"`
	Successors   []int  `json:"successors"`
	Name         string `json:"name,omitempty"`
}

// File is the on-disk instance representation.
type File struct {
	Name       string     `json:"name"`
	Capacities []int      `json:"capacities"`
	Activities []Activity `json:"activities"`
}

// Load reads and validates the instance at path.
func Load(path string) (*core.Instance, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("parse: open %s: %w", path, err)
	}
	defer f.Close()
	inst, name, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("parse: %s: %w", path, err)
	}
	return inst, name, nil
}

// Decode reads an instance file from r. Activities may appear in any
// order but their ids must cover 0..n-1; activity 0 is the project
// source, activity n-1 the sink.
func Decode(r io.Reader) (*core.Instance, string, error) {
	var file File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	n := len(file.Activities)
	if n == 0 {
		return nil, "", fmt.Errorf("no activities")
	}

	records := append([]Activity(nil), file.Activities...)
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	durations := make([]int, n)
	requirements := make([][]int, n)
	successors := make([][]int, n)
	for i, rec := range records {
		if rec.ID != i {
			return nil, "", fmt.Errorf("activity ids must cover 0..%d, missing %d", n-1, i)
		}
		durations[i] = rec.Duration
		requirements[i] = rec.Requirements
		if rec.Requirements == nil {
			requirements[i] = make([]int, len(file.Capacities))
		}
		successors[i] = rec.Successors
		if rec.Successors == nil {
			successors[i] = []int{}
		}
	}

	inst, err := core.NewInstance(durations, file.Capacities, requirements, successors)
	if err != nil {
		return nil, "", err
	}
	return inst, file.Name, nil
}

// Encode writes an instance back to its file format.
func Encode(w io.Writer, name string, inst *core.Instance) error {
	file := File{Name: name, Capacities: inst.Capacities}
	for a := 0; a < inst.NumActivities; a++ {
		file.Activities = append(file.Activities, Activity{
			ID:           a,
			Duration:     inst.Durations[a],
			Requirements: inst.Requirements[a],
			Successors:   inst.Successors[a],
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}
