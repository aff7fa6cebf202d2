package filter

import (
	"github.com/bson/filtergen/pkg/geom"
	"github.com/bson/filtergen/pkg/schematic"
)

// DefaultOpAmp is the amplifier part used when none is given.
const DefaultOpAmp = "LM358"

// Stage layout constants, in mils relative to the stage origin.
var (
	stageBoxTopLeft     = geom.Pt(300, 50)
	stageBoxBottomRight = geom.Pt(3400, 1800)
	stageNoteAt         = geom.Pt(350, 150)
)

// StageOptions control how a stage is drawn.
type StageOptions struct {
	Annotation string `json:"annotation,omitempty"` // note text; empty for none
	Box        bool   `json:"box,omitempty"`        // draw an outline around the stage
	OpAmp      string `json:"opamp,omitempty"`      // amplifier part, DefaultOpAmp if empty
	Sim        bool   `json:"sim,omitempty"`        // use the simulation op-amp symbol
	SimLibrary string `json:"sim_library,omitempty"`
}

// Stage is one MFB low-pass section placed as a unit. Pin1 is the input,
// at the free end of the input resistor; Pin2 is the output corner past
// the amplifier's output node. Both are reported in the parent frame.
type Stage struct {
	schematic.Base
	Params Params
	Values Values

	circuit *schematic.SubCircuit
	input   schematic.Item
	output  schematic.Item
	opamp   *schematic.Component
}

// NewStage derives the component values for p and lays the stage out with
// its origin at pos.
func NewStage(pos geom.Point, p Params, opts StageOptions) (*Stage, error) {
	v, err := Derive(p)
	if err != nil {
		return nil, err
	}
	if opts.OpAmp == "" {
		opts.OpAmp = DefaultOpAmp
	}
	s := &Stage{Base: schematic.Base{At: pos}, Params: p, Values: v}
	s.build(v.Labels(), opts)
	return s, nil
}

func (s *Stage) build(l Labels, opts StageOptions) {
	c := schematic.NewSubCircuit(geom.Point{})

	if opts.Annotation != "" {
		c.Add(schematic.NewText(stageNoteAt, opts.Annotation))
	}
	if opts.Box {
		c.Add(schematic.NewBox(stageBoxTopLeft, stageBoxBottomRight))
	}

	// Input network: R3 in, R1 feedback, R2 on to the inverting input.
	r1 := schematic.NewResistor(l.R1, geom.Pt(1100, 650), geom.Vertical)
	r2 := schematic.NewResistor(l.R2, geom.Pt(1400, 1000), geom.Horizontal)
	r3 := schematic.NewResistor(l.R3, geom.Pt(750, 1000), geom.Horizontal)
	node1 := schematic.NewConnection(geom.Pt(1100, 1000))
	c.Add(r1, r2, r3, node1,
		schematic.Connect(r1, node1),
		schematic.Connect(r3, node1),
		schematic.Connect(node1, r2))

	c1 := schematic.NewCapacitor(l.C1, geom.Pt(1100, 1300), geom.Vertical)
	c2 := schematic.NewCapacitor(l.C2, geom.Pt(1700, 650), geom.Vertical)
	gnd1 := schematic.NewGround(geom.Pt(1100, 1500))
	c.Add(c1, c2, gnd1,
		schematic.Connect(node1, c1),
		schematic.Connect(c1, gnd1))

	node2 := schematic.NewConnection(geom.Pt(1700, 1000))
	c.Add(node2,
		schematic.Connect(r2, node2),
		schematic.Connect(c2, node2))

	// Feedback rail along the top.
	node3 := schematic.NewConnection(geom.Pt(1700, 300))
	corner1 := schematic.NewCorner(geom.Pt(1100, 300))
	c.Add(node3, corner1,
		schematic.Connect(node3, c2),
		schematic.Connect(node3, corner1),
		schematic.Connect(corner1, r1))

	u := schematic.NewOpAmp(opts.OpAmp, geom.Pt(2450, 900), geom.Vertical, opts.Sim)
	if opts.SimLibrary != "" {
		u.SetUserField(schematic.FieldSpiceLibFile, "Spice_Lib_File", opts.SimLibrary)
	}
	out := schematic.NewConnection(geom.Pt(3050, 900))
	corner3 := schematic.NewCorner(geom.Pt(3050, 300))
	corner4 := schematic.NewCorner(geom.Pt(3050, 1000))
	c.Add(u, out, corner3, corner4,
		schematic.Connect(node2, u),
		schematic.Connect(u, out),
		schematic.Connect(out, corner3),
		schematic.Connect(corner3, node3),
		schematic.Connect(out, corner4))

	// Non-inverting input to ground, supplies.
	corner5 := schematic.NewCorner(geom.Pt(1950, 800))
	gnd2 := schematic.NewGround(geom.Pt(1950, 1200))
	vdd := schematic.NewSupply("VDD", geom.Pt(2350, 500), geom.Vertical)
	vss := schematic.NewSupply("VSS", geom.Pt(2350, 1300), geom.VerticalFlip)
	c.Add(corner5, gnd2,
		schematic.Connect(gnd2, corner5),
		schematic.Connect(corner5, u.Terminal(schematic.TerminalInP)),
		vdd, vss,
		schematic.Connect(vdd, u.Terminal(schematic.TerminalPwrP)),
		schematic.Connect(vss, u.Terminal(schematic.TerminalPwrM)))

	s.circuit = c
	s.input = r3
	s.output = corner4
	s.opamp = u
}

// Items returns the stage subcircuit.
func (s *Stage) Items() []schematic.Item {
	return []schematic.Item{s.circuit}
}

// Pin1 returns the stage input in the parent frame.
func (s *Stage) Pin1() geom.Point {
	return s.At.Add(s.input.Pin1())
}

// Pin2 returns the stage output in the parent frame.
func (s *Stage) Pin2() geom.Point {
	return s.At.Add(s.output.Pin2())
}

// Input returns the input resistor.
func (s *Stage) Input() schematic.Item { return s.input }

// Output returns the output corner.
func (s *Stage) Output() schematic.Item { return s.output }

// OpAmp returns the amplifier component.
func (s *Stage) OpAmp() *schematic.Component { return s.opamp }

var _ schematic.Container = (*Stage)(nil)
