package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bson/filtergen/pkg/geom"
	"github.com/bson/filtergen/pkg/schematic"
)

var butterworth1k = Params{Frequency: 1000, Gain: 1, Q: 0.7071, R1: 1000}

func TestStagePins(t *testing.T) {
	s, err := NewStage(geom.Pt(2000, 2000), butterworth1k, StageOptions{})
	require.NoError(t, err)

	assert.Equal(t, geom.Pt(2650, 3000), s.Pin1())
	assert.Equal(t, geom.Pt(5050, 3000), s.Pin2())
	assert.Equal(t, "LM358", s.OpAmp().Value())
}

func TestStageRelocation(t *testing.T) {
	a, err := NewStage(geom.Point{}, butterworth1k, StageOptions{})
	require.NoError(t, err)
	b, err := NewStage(geom.Pt(500, 700), butterworth1k, StageOptions{})
	require.NoError(t, err)

	assert.Equal(t, a.Pin1().Add(geom.Pt(500, 700)), b.Pin1())
	assert.Equal(t, a.Pin2().Add(geom.Pt(500, 700)), b.Pin2())
}

func TestStageParts(t *testing.T) {
	s, err := NewStage(geom.Point{}, butterworth1k, StageOptions{})
	require.NoError(t, err)
	schematic.Annotate(s)

	parts := schematic.PartsList(s)
	require.Len(t, parts, 5)
	assert.Equal(t, []string{"C1", "C2", "R1", "R2", "R3"}, parts.Refs())
	assert.Len(t, parts.Filter("R"), 3)

	l := s.Values.Labels()
	values := map[string]bool{}
	for _, v := range parts {
		values[v] = true
	}
	for _, want := range []string{l.R1, l.R2, l.R3, l.C1, l.C2} {
		assert.True(t, values[want], "missing value %s", want)
	}
}

func TestStageOptions(t *testing.T) {
	opts := StageOptions{
		Annotation: butterworth1k.Annotation(),
		Box:        true,
		OpAmp:      "TL072",
		Sim:        true,
		SimLibrary: "tl072.lib",
	}
	s, err := NewStage(geom.Point{}, butterworth1k, opts)
	require.NoError(t, err)

	out := schematic.RenderItem(s, geom.Point{}, schematic.NewIDGen(1))
	assert.Contains(t, out, "Text Notes 350 150 0 50 ~ 0\nLow-pass filter: H=1")
	assert.Contains(t, out, "Wire Notes Line\n\t300 50 3400 50\n")
	assert.Contains(t, out, "\"TL072\"")
	assert.Contains(t, out, "\"tl072.lib\"")

	lib, ok := s.OpAmp().UserField(schematic.FieldSpiceLibFile)
	require.True(t, ok)
	assert.Equal(t, "tl072.lib", lib)
}

func TestStageWithoutOptionsHasNoNotes(t *testing.T) {
	s, err := NewStage(geom.Point{}, butterworth1k, StageOptions{})
	require.NoError(t, err)

	out := schematic.RenderItem(s, geom.Point{}, schematic.NewIDGen(1))
	assert.NotContains(t, out, "Notes")
	assert.Equal(t, 10, strings.Count(out, "$Comp\n"))
}

func TestStageRejectsBadParams(t *testing.T) {
	s, err := NewStage(geom.Point{}, Params{Frequency: 1000, Gain: 1, Q: -1, R1: 1000}, StageOptions{})
	assert.Error(t, err)
	assert.Nil(t, s)
}
