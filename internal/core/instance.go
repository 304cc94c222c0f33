package core

import (
	"fmt"
	"sort"
)

// Instance is an RCPSP problem instance. Activity 0 is the project
// source and activity NumActivities-1 the sink. All derived fields
// (predecessors, closures, disjunctive matrix, longest paths) are
// computed once by NewInstance. When a branching step imposes an extra
// precedence, AddEdge keeps the predecessors, closures, successor
// matrix and disjunctive matrix consistent; LongestPaths and
// CriticalPathBound are not recomputed and keep the values of the
// graph the instance was built from.
type Instance struct {
	NumActivities int
	NumResources  int

	Durations    []int
	Capacities   []int
	Requirements [][]int // [activity][resource]

	Successors   [][]int // direct successors, input order
	Predecessors [][]int // derived inverse of Successors

	SuccClosure [][]int // transitive successors, ascending, excluding self
	PredClosure [][]int // transitive predecessors, ascending, excluding self
	SuccMatrix  []byte  // NumActivities*NumActivities, 1 = direct edge

	Disjunctive [][]bool // symmetric; true = cannot run concurrently

	LongestPaths      []int // duration-longest path from activity to sink
	CriticalPathBound int   // LongestPaths[source]
	UpperBound        int   // sum of all durations

	AddedEdges []Edge // precedences imposed by branching, empty on the root
}

// NewInstance validates the input arrays and builds all derived
// state. The successor lists must form a DAG over 0..len(durations)-1.
func NewInstance(durations, capacities []int, requirements [][]int, successors [][]int) (*Instance, error) {
	n := len(durations)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least source and sink, got %d activities", ErrMalformed, n)
	}
	if len(requirements) != n || len(successors) != n {
		return nil, fmt.Errorf("%w: got %d durations, %d requirement rows, %d successor rows",
			ErrMalformed, n, len(requirements), len(successors))
	}
	r := len(capacities)
	for a := 0; a < n; a++ {
		if len(requirements[a]) != r {
			return nil, fmt.Errorf("%w: activity %d has %d requirements, want %d",
				ErrMalformed, a, len(requirements[a]), r)
		}
		for k := 0; k < r; k++ {
			if requirements[a][k] > capacities[k] {
				return nil, fmt.Errorf("%w: activity %d needs %d of resource %d, capacity %d",
					ErrInfeasible, a, requirements[a][k], k, capacities[k])
			}
		}
		for _, s := range successors[a] {
			if s < 0 || s >= n {
				return nil, fmt.Errorf("%w: activity %d lists successor %d", ErrMalformed, a, s)
			}
		}
	}

	inst := &Instance{
		NumActivities: n,
		NumResources:  r,
		Durations:     copyInts(durations),
		Capacities:    copyInts(capacities),
		Requirements:  copyMatrix(requirements),
		Successors:    copyMatrix(successors),
	}
	inst.Predecessors = derivePredecessors(inst.Successors)

	topo, ok := topologicalOrder(inst.Successors, inst.Predecessors)
	if !ok {
		return nil, ErrCycle
	}

	inst.SuccClosure = transitiveClosure(inst.Successors)
	inst.PredClosure = transitiveClosure(inst.Predecessors)
	inst.SuccMatrix = buildSuccMatrix(inst.Successors, n)
	inst.Disjunctive = buildDisjunctive(inst)
	inst.LongestPaths = longestPathsToSink(inst, topo)
	inst.CriticalPathBound = inst.LongestPaths[0]
	for _, d := range inst.Durations {
		inst.UpperBound += d
	}
	return inst, nil
}

// Source returns the project start activity.
func (inst *Instance) Source() int { return 0 }

// Sink returns the terminal activity.
func (inst *Instance) Sink() int { return inst.NumActivities - 1 }

// HasEdge reports whether a direct precedence i -> j exists.
func (inst *Instance) HasEdge(i, j int) bool {
	return inst.SuccMatrix[i*inst.NumActivities+j] != 0
}

// Related reports whether one of i, j transitively precedes the other.
func (inst *Instance) Related(i, j int) bool {
	return containsSorted(inst.SuccClosure[i], j) || containsSorted(inst.PredClosure[i], j)
}

// Forward returns the natural orientation of the precedence graph.
func (inst *Instance) Forward() View {
	return View{
		Succ:        inst.Successors,
		Pred:        inst.Predecessors,
		SuccClosure: inst.SuccClosure,
		PredClosure: inst.PredClosure,
	}
}

// Clone deep-copies the instance so a branching step can augment it
// without touching the parent.
func (inst *Instance) Clone() *Instance {
	c := &Instance{
		NumActivities:     inst.NumActivities,
		NumResources:      inst.NumResources,
		Durations:         copyInts(inst.Durations),
		Capacities:        copyInts(inst.Capacities),
		Requirements:      copyMatrix(inst.Requirements),
		Successors:        copyMatrix(inst.Successors),
		Predecessors:      copyMatrix(inst.Predecessors),
		SuccClosure:       copyMatrix(inst.SuccClosure),
		PredClosure:       copyMatrix(inst.PredClosure),
		SuccMatrix:        make([]byte, len(inst.SuccMatrix)),
		Disjunctive:       make([][]bool, inst.NumActivities),
		LongestPaths:      copyInts(inst.LongestPaths),
		CriticalPathBound: inst.CriticalPathBound,
		UpperBound:        inst.UpperBound,
		AddedEdges:        make([]Edge, len(inst.AddedEdges)),
	}
	copy(c.SuccMatrix, inst.SuccMatrix)
	copy(c.AddedEdges, inst.AddedEdges)
	for a := range inst.Disjunctive {
		c.Disjunctive[a] = make([]bool, inst.NumActivities)
		copy(c.Disjunctive[a], inst.Disjunctive[a])
	}
	return c
}

// AddEdge imposes the precedence i -> j and updates the closures and
// the disjunctive matrix incrementally: every transitive predecessor
// of i becomes a transitive predecessor of every transitive successor
// of j, and all newly related pairs become disjunctive.
func (inst *Instance) AddEdge(i, j int) {
	inst.Successors[i] = append(inst.Successors[i], j)
	inst.Predecessors[j] = append(inst.Predecessors[j], i)
	inst.SuccMatrix[i*inst.NumActivities+j] = 1
	inst.AddedEdges = append(inst.AddedEdges, Edge{From: i, To: j})

	iPart := insertSorted(copyInts(inst.PredClosure[i]), i)
	jPart := insertSorted(copyInts(inst.SuccClosure[j]), j)

	for _, x := range iPart {
		inst.SuccClosure[x] = unionSorted(inst.SuccClosure[x], jPart)
	}
	for _, y := range jPart {
		inst.PredClosure[y] = unionSorted(inst.PredClosure[y], iPart)
	}
	for _, x := range iPart {
		for _, y := range jPart {
			if x != y {
				inst.Disjunctive[x][y] = true
				inst.Disjunctive[y][x] = true
			}
		}
	}
}

func derivePredecessors(successors [][]int) [][]int {
	pred := make([][]int, len(successors))
	for a := range pred {
		pred[a] = []int{}
	}
	for a, succ := range successors {
		for _, s := range succ {
			pred[s] = append(pred[s], a)
		}
	}
	return pred
}

// topologicalOrder runs Kahn's algorithm; ok is false on a cycle.
func topologicalOrder(successors, predecessors [][]int) ([]int, bool) {
	n := len(successors)
	inDegree := make([]int, n)
	for a := 0; a < n; a++ {
		inDegree[a] = len(predecessors[a])
	}
	queue := make([]int, 0, n)
	for a := 0; a < n; a++ {
		if inDegree[a] == 0 {
			queue = append(queue, a)
		}
	}
	order := make([]int, 0, n)
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		order = append(order, a)
		for _, s := range successors[a] {
			inDegree[s]--
			if inDegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return order, len(order) == n
}

// transitiveClosure enumerates every activity reachable from each node
// by depth-first search, then sorts the result ascending.
func transitiveClosure(adj [][]int) [][]int {
	n := len(adj)
	closure := make([][]int, n)
	mark := make([]int, n)
	stamp := 0
	var stack []int
	for a := 0; a < n; a++ {
		stamp++
		stack = append(stack[:0], adj[a]...)
		reach := []int{}
		for len(stack) > 0 {
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if mark[x] == stamp {
				continue
			}
			mark[x] = stamp
			reach = append(reach, x)
			stack = append(stack, adj[x]...)
		}
		sort.Ints(reach)
		closure[a] = reach
	}
	return closure
}

func buildSuccMatrix(successors [][]int, n int) []byte {
	m := make([]byte, n*n)
	for a, succ := range successors {
		for _, s := range succ {
			m[a*n+s] = 1
		}
	}
	return m
}

// longestPathsToSink computes, for every activity, the duration of the
// longest path from it to the sink (its own duration included).
func longestPathsToSink(inst *Instance, topo []int) []int {
	rl := make([]int, inst.NumActivities)
	for i := len(topo) - 1; i >= 0; i-- {
		a := topo[i]
		best := 0
		for _, s := range inst.Successors[a] {
			if rl[s] > best {
				best = rl[s]
			}
		}
		rl[a] = inst.Durations[a] + best
	}
	return rl
}

func copyInts(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}

func copyMatrix(m [][]int) [][]int {
	c := make([][]int, len(m))
	for i := range m {
		c[i] = copyInts(m[i])
	}
	return c
}

// containsSorted reports membership via binary search; closure rows
// are kept sorted so this is the only lookup primitive they need.
func containsSorted(s []int, x int) bool {
	i := sort.SearchInts(s, x)
	return i < len(s) && s[i] == x
}

// insertSorted inserts x into sorted s if absent.
func insertSorted(s []int, x int) []int {
	i := sort.SearchInts(s, x)
	if i < len(s) && s[i] == x {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = x
	return s
}

// unionSorted merges two ascending slices into a fresh ascending slice.
func unionSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
