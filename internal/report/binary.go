package report

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

// Snapshot is the decoded form of the binary result file: the full
// instance arrays plus the best schedule. The word layout is fixed
// little-endian 32-bit, in the order the fields appear below.
type Snapshot struct {
	ActivityCount uint32
	ResourceCount uint32
	Durations     []uint32
	Capacities    []uint32
	Requirements  [][]uint32
	Successors    [][]uint32
	Predecessors  [][]uint32

	ScheduleLength   uint32
	OrderByStartTime []uint32
	StartTimes       []uint32
}

// WriteBinary serialises the instance and its best schedule.
func WriteBinary(w io.Writer, inst *core.Instance, sol *core.Solution) error {
	bw := &wordWriter{w: w}
	bw.word(uint32(inst.NumActivities))
	bw.word(uint32(inst.NumResources))
	bw.ints(inst.Durations)
	bw.ints(inst.Capacities)
	for a := 0; a < inst.NumActivities; a++ {
		bw.ints(inst.Requirements[a])
	}
	for a := 0; a < inst.NumActivities; a++ {
		bw.word(uint32(len(inst.Successors[a])))
	}
	for a := 0; a < inst.NumActivities; a++ {
		bw.ints(inst.Successors[a])
	}
	for a := 0; a < inst.NumActivities; a++ {
		bw.word(uint32(len(inst.Predecessors[a])))
	}
	for a := 0; a < inst.NumActivities; a++ {
		bw.ints(inst.Predecessors[a])
	}
	bw.word(uint32(sol.Makespan))
	bw.ints(core.OrderByStartTime(sol.StartTimes))
	bw.ints(sol.StartTimes)
	if bw.err != nil {
		return fmt.Errorf("report: write binary: %w", bw.err)
	}
	return nil
}

// ReadBinary decodes a result file written by WriteBinary.
func ReadBinary(r io.Reader) (*Snapshot, error) {
	br := &wordReader{r: r}
	s := &Snapshot{}
	s.ActivityCount = br.word()
	s.ResourceCount = br.word()
	if br.err != nil {
		return nil, fmt.Errorf("report: read binary: %w", br.err)
	}
	n := int(s.ActivityCount)
	k := int(s.ResourceCount)

	s.Durations = br.words(n)
	s.Capacities = br.words(k)
	s.Requirements = make([][]uint32, n)
	for a := 0; a < n; a++ {
		s.Requirements[a] = br.words(k)
	}
	s.Successors = br.countedRows(n)
	s.Predecessors = br.countedRows(n)
	s.ScheduleLength = br.word()
	s.OrderByStartTime = br.words(n)
	s.StartTimes = br.words(n)
	if br.err != nil {
		return nil, fmt.Errorf("report: read binary: %w", br.err)
	}
	return s, nil
}

type wordWriter struct {
	w   io.Writer
	err error
}

func (bw *wordWriter) word(v uint32) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.LittleEndian, v)
}

func (bw *wordWriter) ints(s []int) {
	for _, v := range s {
		bw.word(uint32(v))
	}
}

type wordReader struct {
	r   io.Reader
	err error
}

func (br *wordReader) word() uint32 {
	if br.err != nil {
		return 0
	}
	var v uint32
	br.err = binary.Read(br.r, binary.LittleEndian, &v)
	return v
}

func (br *wordReader) words(n int) []uint32 {
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = br.word()
	}
	return out
}

// countedRows reads n row lengths followed by the rows themselves.
func (br *wordReader) countedRows(n int) [][]uint32 {
	counts := br.words(n)
	rows := make([][]uint32, n)
	for a := 0; a < n; a++ {
		rows[a] = br.words(int(counts[a]))
	}
	return rows
}
