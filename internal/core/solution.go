package core

import "time"

// Solution is a resource-feasible schedule for an instance: a
// permutation of the activities, the start times of the schedule, and
// run metadata from the metaheuristic. StartTimes need not be what a
// fresh evaluation of Order yields: the solver keeps the permutation
// as its last refinement pass left it and the start times of the best
// pass.
type Solution struct {
	Order      []int
	StartTimes []int
	Makespan   int

	EvaluatedSchedules uint64
	Elapsed            time.Duration
}

// PrecedencePenalty sums, over every direct edge (u,v), the amount by
// which u finishes after v starts. A feasible schedule yields zero.
func (s *Solution) PrecedencePenalty(inst *Instance) int {
	penalty := 0
	for u := 0; u < inst.NumActivities; u++ {
		for _, v := range inst.Successors[u] {
			if over := s.StartTimes[u] + inst.Durations[u] - s.StartTimes[v]; over > 0 {
				penalty += over
			}
		}
	}
	return penalty
}

// ResourceUsage returns, per resource, the total demand of activities
// running at instant t.
func (s *Solution) ResourceUsage(inst *Instance, t int) []int {
	usage := make([]int, inst.NumResources)
	for a := 0; a < inst.NumActivities; a++ {
		if s.StartTimes[a] <= t && t < s.StartTimes[a]+inst.Durations[a] {
			for k := 0; k < inst.NumResources; k++ {
				usage[k] += inst.Requirements[a][k]
			}
		}
	}
	return usage
}

// OrderByStartTime returns all activity ids stable-sorted by ascending
// start time; equal starts keep ascending id order.
func OrderByStartTime(startTimes []int) []int {
	order := make([]int, len(startTimes))
	for a := range order {
		order[a] = a
	}
	// Insertion sort: stability among equal start times matters for
	// how the evaluator replays the permutation.
	for i := 1; i < len(order); i++ {
		a := order[i]
		j := i - 1
		for j >= 0 && startTimes[order[j]] > startTimes[a] {
			order[j+1] = order[j]
			j--
		}
		order[j+1] = a
	}
	return order
}
