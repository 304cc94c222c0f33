// Package algo implements the RCPSP solving pipeline: the serial
// schedule-generation evaluator with its resource-load tracker, the
// shaking-down refinement, the lower-bound engines, and the branching
// seed generator feeding the external metaheuristic.
package algo

import "errors"

// ErrInvalidLoad indicates a resource reservation drove free capacity
// negative. It never fires on a well-formed instance and a topological
// permutation; seeing it means a caller bug.
var ErrInvalidLoad = errors.New("algo: resource load exceeds capacity")
