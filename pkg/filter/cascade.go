package filter

import (
	"fmt"
	"math"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/filter/pole"
	"github.com/bson/filtergen/pkg/geom"
	"github.com/bson/filtergen/pkg/schematic"
)

// StagePitch is the horizontal distance between stage origins in a
// cascade. Stage outlines abut at this pitch.
const StagePitch = 3100

// GainPolicy decides how the overall gain is shared between stages.
type GainPolicy string

// Gain policies. With GainFirst the first stage carries all the gain and
// the rest run at unity; GainEven gives every stage the n-th root.
const (
	GainFirst GainPolicy = "first"
	GainEven  GainPolicy = "even"
)

// ParseGainPolicy maps a policy name to a GainPolicy. Empty selects
// GainFirst.
func ParseGainPolicy(s string) (GainPolicy, error) {
	switch GainPolicy(s) {
	case "", GainFirst:
		return GainFirst, nil
	case GainEven:
		return GainEven, nil
	}
	return "", errors.New(errors.ErrCodeInvalidParameter, "unknown gain policy %q (must be first or even)", s)
}

// Design describes a cascade.
type Design struct {
	Family     pole.Family
	Order      int
	Frequency  float64
	Gain       float64
	R1         float64
	GainPolicy GainPolicy
	Annotate   bool // add a note to every stage
}

// Cascade is a row of stages wired output to input. Pin1 is the first
// stage's input and Pin2 the last stage's output, in the parent frame.
type Cascade struct {
	schematic.Base
	Design Design
	Poles  []pole.Pole
	Stages []*Stage

	circuit *schematic.SubCircuit
}

// StageParams returns the per-stage parameters of d without building any
// geometry.
func (d Design) StageParams() ([]Params, []pole.Pole, error) {
	if d.Family == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidParameter, "filter family is required")
	}
	if err := (Params{Frequency: d.Frequency, Gain: d.Gain, Q: 1, R1: d.R1}).Validate(); err != nil {
		return nil, nil, err
	}
	policy, err := ParseGainPolicy(string(d.GainPolicy))
	if err != nil {
		return nil, nil, err
	}
	poles, err := d.Family.Poles(d.Order)
	if err != nil {
		return nil, nil, err
	}

	params := make([]Params, len(poles))
	for i, p := range poles {
		gain := 1.0
		switch {
		case policy == GainEven:
			gain = math.Pow(d.Gain, 1/float64(len(poles)))
		case i == 0:
			gain = d.Gain
		}
		params[i] = Params{
			Frequency: d.Frequency * p.Scale,
			Gain:      gain,
			Q:         p.Q,
			R1:        d.R1,
		}
		if err := params[i].Validate(); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "stage %d", i+1)
		}
	}
	return params, poles, nil
}

// NewCascade validates d, looks up its poles and lays out one stage per
// pole pair, left to right from pos. Nothing is built if any input is
// invalid.
func NewCascade(pos geom.Point, d Design, opts StageOptions) (*Cascade, error) {
	params, poles, err := d.StageParams()
	if err != nil {
		return nil, err
	}

	c := &Cascade{
		Base:    schematic.Base{At: pos},
		Design:  d,
		Poles:   poles,
		circuit: schematic.NewSubCircuit(geom.Point{}),
	}
	for i, p := range params {
		stageOpts := opts
		stageOpts.Annotation = ""
		if d.Annotate {
			stageOpts.Annotation = fmt.Sprintf("Stage %d/%d: %s", i+1, len(params), p.Annotation())
		}
		s, err := NewStage(geom.Pt(i*StagePitch, 0), p, stageOpts)
		if err != nil {
			return nil, err
		}
		c.circuit.Add(s)
		if i > 0 {
			c.circuit.Add(schematic.Connect(c.Stages[i-1], s))
		}
		c.Stages = append(c.Stages, s)
	}
	return c, nil
}

// Items returns the cascade subcircuit.
func (c *Cascade) Items() []schematic.Item {
	return []schematic.Item{c.circuit}
}

// Pin1 returns the cascade input in the parent frame.
func (c *Cascade) Pin1() geom.Point {
	return c.At.Add(c.Stages[0].Pin1())
}

// Pin2 returns the cascade output in the parent frame.
func (c *Cascade) Pin2() geom.Point {
	return c.At.Add(c.Stages[len(c.Stages)-1].Pin2())
}

// Extent returns the size of the area covered by the stage outlines,
// measured from the cascade origin.
func (c *Cascade) Extent() geom.Point {
	return geom.Pt((len(c.Stages)-1)*StagePitch+stageBoxBottomRight.X, stageBoxBottomRight.Y)
}

// Extent returns the size of the area covered by the stage outline,
// measured from the stage origin.
func (s *Stage) Extent() geom.Point {
	return stageBoxBottomRight
}

var _ schematic.Container = (*Cascade)(nil)
