// Package core defines the RCPSP instance model: activities with
// integer durations, renewable resource requirements bounded by
// per-resource capacities, and a precedence DAG with its derived
// closures.
package core

// Edge is a directed precedence constraint between two activities.
type Edge struct {
	From, To int
}

// View is a read-only orientation of the precedence graph. Reversing
// a view swaps successor and predecessor lookups without copying any
// row; algorithms that walk the graph "backwards" take a reversed
// view instead of mutating the instance.
type View struct {
	Succ        [][]int
	Pred        [][]int
	SuccClosure [][]int
	PredClosure [][]int
}

// Reversed returns the transposed orientation.
func (v View) Reversed() View {
	return View{
		Succ:        v.Pred,
		Pred:        v.Succ,
		SuccClosure: v.PredClosure,
		PredClosure: v.SuccClosure,
	}
}
