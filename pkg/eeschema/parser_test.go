package eeschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/geom"
	"github.com/bson/filtergen/pkg/schematic"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	return p
}

func stageSheet(t *testing.T) (*schematic.Schematic, *filter.Stage) {
	t.Helper()
	doc, err := schematic.New("A4", schematic.Landscape)
	require.NoError(t, err)
	doc.SetSeed(0x5000)
	doc.Title.Title = `MFB "low" pass`

	p := filter.Params{Frequency: 1000, Gain: 2, Q: 0.7071, R1: 1000}
	s, err := filter.NewStage(geom.Pt(2000, 2000), p, filter.StageOptions{Annotation: p.Annotation(), Box: true})
	require.NoError(t, err)
	doc.Add(s,
		schematic.NewGlobalLabel(s.Pin1().Sub(geom.Pt(550, 0)), "VIN", schematic.ShapeInput, 0),
		schematic.NewGlobalLabel(s.Pin2().Add(geom.Pt(550, 0)), "VOUT", schematic.ShapeOutput, 2),
	)
	schematic.Annotate(doc.Items()...)
	return doc, s
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := schematic.New("A4", schematic.Landscape)
	require.NoError(t, err)

	f, err := newParser(t).ParseString(doc.String())
	require.NoError(t, err)

	assert.Equal(t, 4, f.Header.Version)
	assert.Equal(t, 26, f.Header.Layers)
	assert.Equal(t, "A4", f.Descr.Page)
	assert.Equal(t, 11693, f.Descr.Width)
	assert.Equal(t, 8268, f.Descr.Height)
	assert.Equal(t, []int{1, 1}, f.Descr.Sheet)
	assert.Len(t, f.Descr.Meta, 8)
	assert.Empty(t, f.Records)
	assert.True(t, f.End)
}

func TestParseRoundTrip(t *testing.T) {
	doc, s := stageSheet(t)

	f, err := newParser(t).ParseString(doc.String())
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	sum := f.Summarize()
	assert.Equal(t, `MFB "low" pass`, sum.Title)
	assert.Equal(t, 10, sum.Components)
	assert.Equal(t, 4, sum.Lines)
	assert.Equal(t, 1, sum.Notes)
	assert.Equal(t, []string{"VIN", "VOUT"}, sum.Nets)
	assert.Equal(t, schematic.PartsList(doc.Items()...), sum.Parts)

	l := s.Values.Labels()
	assert.Equal(t, l.R3, sum.Parts["R3"])
	assert.Equal(t, l.C2, sum.Parts["C2"])
}

func TestParseComponentRecord(t *testing.T) {
	doc, err := schematic.New("A4", schematic.Landscape)
	require.NoError(t, err)
	doc.SetSeed(0x10)
	doc.Add(schematic.NewResistor("1k", geom.Pt(1100, 650), geom.Vertical))

	f, err := newParser(t).ParseString(doc.String())
	require.NoError(t, err)
	comps := f.Components()
	require.Len(t, comps, 1)

	c := comps[0]
	assert.Equal(t, "device:R_Small", c.Library)
	assert.Equal(t, "R?", c.Ref())
	assert.Equal(t, "1k", c.Value())
	assert.Equal(t, "00000011", c.UID)
	assert.Equal(t, 1100, c.X)
	assert.Equal(t, 650, c.Y)
	assert.Equal(t, []int{1, 1100, 650}, c.Position)
	assert.Equal(t, []int{1, 0, 0, -1}, c.Matrix)

	kind, ok := c.Kind()
	require.True(t, ok)
	assert.Equal(t, schematic.KindResistor, kind)

	prim, ok := c.Field(schematic.FieldSpicePrimitive)
	require.True(t, ok)
	assert.Equal(t, "Spice_Primitive", prim.Name)
	assert.True(t, prim.Hidden())
	ref, _ := c.Field(schematic.FieldReference)
	assert.False(t, ref.Hidden())
}

func TestParseTextRecords(t *testing.T) {
	doc, err := schematic.New("A4", schematic.Landscape)
	require.NoError(t, err)
	doc.Add(
		schematic.NewText(geom.Pt(10, 20), "two  spaces\nand a second line"),
		schematic.NewGlobalLabel(geom.Pt(30, 40), "VOUT", schematic.ShapeOutput, 2),
	)

	f, err := newParser(t).ParseString(doc.String())
	require.NoError(t, err)
	require.Len(t, f.Records, 2)

	note := f.Records[0].Text
	require.NotNil(t, note)
	assert.Equal(t, "Notes", note.Kind)
	assert.Equal(t, "two  spaces\nand a second line", note.Body)

	label := f.Records[1].Text
	require.NotNil(t, label)
	assert.Equal(t, "GLabel", label.Kind)
	assert.Equal(t, 30, label.X)
	assert.Equal(t, 40, label.Y)
	assert.Equal(t, 2, label.Orient)
	assert.Equal(t, schematic.ShapeOutput, label.Shape)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := newParser(t).ParseString("not a schematic\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestParseFile(t *testing.T) {
	doc, _ := stageSheet(t)
	path := filepath.Join(t.TempDir(), "stage.sch")
	require.NoError(t, os.WriteFile(path, []byte(doc.String()), 0o644))

	f, err := newParser(t).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, f.Summarize().Components)

	_, err = newParser(t).ParseFile(filepath.Join(t.TempDir(), "missing.sch"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestValidateDuplicates(t *testing.T) {
	doc, err := schematic.New("A4", schematic.Landscape)
	require.NoError(t, err)
	a := schematic.NewResistor("1k", geom.Pt(0, 0), geom.Vertical)
	b := schematic.NewResistor("2k", geom.Pt(500, 0), geom.Vertical)
	a.SetReference("R1")
	b.SetReference("R1")
	doc.Add(a, b)

	f, err := newParser(t).ParseString(doc.String())
	require.NoError(t, err)
	err = f.Validate()
	require.Error(t, err)
	assert.Contains(t, errors.UserMessage(err), "duplicate reference R1")
}
