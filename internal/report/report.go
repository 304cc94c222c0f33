// Package report renders solved schedules: the human-readable text
// forms and the binary snapshot consumed by downstream tooling.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Fprint writes the schedule report. The verbose form lists, per
// start instant, the activities starting there, followed by the
// summary block; the compact form is a single line of
// "<length>+<penalty> <cpBound>\t[<sec> s]\t<evaluated>".
func Fprint(w io.Writer, inst *core.Instance, sol *core.Solution, verbose bool) {
	penalty := sol.PrecedencePenalty(inst)
	seconds := sol.Elapsed.Seconds()

	if !verbose {
		fmt.Fprintf(w, "%d+%d %d\t[%.3f s]\t%d\n",
			sol.Makespan, penalty, inst.CriticalPathBound, seconds, sol.EvaluatedSchedules)
		return
	}

	fmt.Fprintf(w, "%s\n", bold("start\tactivities"))
	starts := make([]int, 0, inst.NumActivities)
	byStart := make(map[int][]int)
	for a := 0; a < inst.NumActivities; a++ {
		t := sol.StartTimes[a]
		if _, seen := byStart[t]; !seen {
			starts = append(starts, t)
		}
		byStart[t] = append(byStart[t], a)
	}
	sort.Ints(starts)
	for _, t := range starts {
		ids := byStart[t]
		sort.Ints(ids)
		parts := make([]string, len(ids))
		for i, a := range ids {
			parts[i] = fmt.Sprintf("%d", a)
		}
		fmt.Fprintf(w, "%d:\t%s\n", t, strings.Join(parts, " "))
	}

	fmt.Fprintf(w, "schedule length: %s\n", green(fmt.Sprintf("%d", sol.Makespan)))
	fmt.Fprintf(w, "precedence penalty: %d\n", penalty)
	fmt.Fprintf(w, "critical path makespan: %s\n", yellow(fmt.Sprintf("%d", inst.CriticalPathBound)))
	fmt.Fprintf(w, "total runtime: %.3f s\n", seconds)
	fmt.Fprintf(w, "evaluated schedules: %s\n", dim(fmt.Sprintf("%d", sol.EvaluatedSchedules)))
}
