package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UncleMehdi/RCPSPGpu/internal/core"
)

const sampleJSON = `{
  "name": "diamond",
  "capacities": [2],
  "activities": [
    {"id": 0, "duration": 0, "requirements": [0], "successors": [1, 2]},
    {"id": 2, "duration": 2, "requirements": [1], "successors": [3]},
    {"id": 1, "duration": 2, "requirements": [1], "successors": [3]},
    {"id": 3, "duration": 0, "requirements": [0], "successors": []}
  ]
}`

func TestDecode_SortsById(t *testing.T) {
	inst, name, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, "diamond", name)
	assert.Equal(t, 4, inst.NumActivities)
	assert.Equal(t, []int{0, 2, 2, 0}, inst.Durations)
	assert.Equal(t, [][]int{{1, 2}, {3}, {3}, {}}, inst.Successors)
	assert.Equal(t, 2, inst.CriticalPathBound)
}

func TestDecode_MissingId(t *testing.T) {
	bad := `{"capacities":[1],"activities":[
	  {"id":0,"duration":0,"requirements":[0],"successors":[2]},
	  {"id":2,"duration":0,"requirements":[0],"successors":[]}]}`
	_, _, err := Decode(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing 1")
}

func TestDecode_PropagatesInfeasibility(t *testing.T) {
	bad := `{"capacities":[1],"activities":[
	  {"id":0,"duration":0,"requirements":[0],"successors":[1]},
	  {"id":1,"duration":1,"requirements":[2],"successors":[2]},
	  {"id":2,"duration":0,"requirements":[0],"successors":[]}]}`
	_, _, err := Decode(strings.NewReader(bad))
	require.ErrorIs(t, err, core.ErrInfeasible)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	inst, name, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, name, inst))

	back, backName, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, name, backName)
	assert.Equal(t, inst.Durations, back.Durations)
	assert.Equal(t, inst.Capacities, back.Capacities)
	assert.Equal(t, inst.Requirements, back.Requirements)
	assert.Equal(t, inst.Successors, back.Successors)
}
