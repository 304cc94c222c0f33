package device

import (
	"github.com/UncleMehdi/RCPSPGpu/internal/config"
	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// Payload is the consolidated, flat-array form of an instance plus its
// seed set, shaped for a device that prefers contiguous 32-bit words.
// Matrices are row-major; the successor matrix is bit-packed to limit
// shared-memory pressure on the device side.
type Payload struct {
	ActivityCount uint32
	ResourceCount uint32

	Durations    []uint32 // ActivityCount
	Capacities   []uint32 // ResourceCount
	Requirements []uint32 // ActivityCount*ResourceCount
	LongestPaths []uint32 // ActivityCount
	SuccBits     []uint32 // ActivityCount rows of WordsPerRow words

	CriticalPath uint32
	UpperBound   uint32

	Solutions    uint32
	Orders       []uint32 // Solutions*ActivityCount permutations
	Costs        []uint32 // Solutions
	ReadCounters []uint32 // Solutions, zeroed at build time
	EdgeCounts   []uint32 // Solutions
	Edges        []uint32 // flattened (from, to) pairs, grouped by solution
	BestIndex    uint32

	TabuListSize            uint32
	SwapRange               uint32
	MaxReadCounter          uint32
	DiversificationSwaps    uint32
	BlocksPerMultiprocessor uint32
	MaxIter                 uint32
	MaxIterSinceBest        uint32
}

// Build flattens the instance, the seed permutations with their costs
// and added-edge lists, and the configuration knobs into one payload.
func Build(inst *core.Instance, orders [][]int, costs []int, addedEdges [][]core.Edge, bestIndex int, params config.Params) *Payload {
	n := inst.NumActivities
	r := inst.NumResources
	p := &Payload{
		ActivityCount: uint32(n),
		ResourceCount: uint32(r),
		Durations:     toWords(inst.Durations),
		Capacities:    toWords(inst.Capacities),
		Requirements:  make([]uint32, 0, n*r),
		LongestPaths:  toWords(inst.LongestPaths),
		SuccBits:      PackSuccessorMatrix(inst),
		CriticalPath:  uint32(inst.CriticalPathBound),
		UpperBound:    uint32(inst.UpperBound),
		Solutions:     uint32(len(orders)),
		Costs:         toWords(costs),
		ReadCounters:  make([]uint32, len(orders)),
		BestIndex:     uint32(bestIndex),

		TabuListSize:            uint32(params.TabuListSize),
		SwapRange:               uint32(params.SwapRange),
		MaxReadCounter:          uint32(params.MaxReadCounter),
		DiversificationSwaps:    uint32(params.DiversificationSwaps),
		BlocksPerMultiprocessor: uint32(params.BlocksPerMultiprocessor),
		MaxIter:                 uint32(params.MaxIter),
		MaxIterSinceBest:        uint32(params.MaxIterSinceBest),
	}
	for a := 0; a < n; a++ {
		for k := 0; k < r; k++ {
			p.Requirements = append(p.Requirements, uint32(inst.Requirements[a][k]))
		}
	}
	p.Orders = make([]uint32, 0, len(orders)*n)
	for _, order := range orders {
		for _, a := range order {
			p.Orders = append(p.Orders, uint32(a))
		}
	}
	p.EdgeCounts = make([]uint32, len(addedEdges))
	for s, edges := range addedEdges {
		p.EdgeCounts[s] = uint32(len(edges))
		for _, e := range edges {
			p.Edges = append(p.Edges, uint32(e.From), uint32(e.To))
		}
	}
	return p
}

// PackSuccessorMatrix packs the dense direct-edge matrix row-major,
// one bit per edge, 32 edges per word.
func PackSuccessorMatrix(inst *core.Instance) []uint32 {
	n := inst.NumActivities
	wpr := (n + 31) / 32
	bits := make([]uint32, n*wpr)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if inst.HasEdge(i, j) {
				bits[i*wpr+j/32] |= 1 << uint(j%32)
			}
		}
	}
	return bits
}

// WordsPerRow is the stride of SuccBits.
func (p *Payload) WordsPerRow() int {
	return (int(p.ActivityCount) + 31) / 32
}

// HasEdge tests the packed successor matrix.
func (p *Payload) HasEdge(i, j int) bool {
	wpr := p.WordsPerRow()
	return p.SuccBits[i*wpr+j/32]&(1<<uint(j%32)) != 0
}

// Order returns the s-th seed permutation as ints.
func (p *Payload) Order(s int) []int {
	n := int(p.ActivityCount)
	out := make([]int, n)
	for i, w := range p.Orders[s*n : (s+1)*n] {
		out[i] = int(w)
	}
	return out
}

// SuccessorLists rebuilds direct successor lists from the bit matrix.
func (p *Payload) SuccessorLists() [][]int {
	n := int(p.ActivityCount)
	succ := make([][]int, n)
	for i := 0; i < n; i++ {
		succ[i] = []int{}
		for j := 0; j < n; j++ {
			if p.HasEdge(i, j) {
				succ[i] = append(succ[i], j)
			}
		}
	}
	return succ
}

func toWords(s []int) []uint32 {
	out := make([]uint32, len(s))
	for i, v := range s {
		out[i] = uint32(v)
	}
	return out
}
