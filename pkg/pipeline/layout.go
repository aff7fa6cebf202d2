package pipeline

import (
	"fmt"
	"strings"

	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/geom"
	"github.com/bson/filtergen/pkg/schematic"
	"github.com/bson/filtergen/pkg/siunit"
)

// =============================================================================
// Sheet Layout
// =============================================================================

// Sheet layout constants, in mils.
var (
	// Origin is where the stage or cascade is placed on the sheet.
	Origin = geom.Pt(2000, 2000)

	// labelGap is the distance from a circuit anchor to its net label.
	labelGap = 550

	// simOffset is the distance from the circuit origin down to the
	// simulation sources' label row.
	simOffset = 2400

	// pageMargin is kept free around the drawing when the page is chosen
	// automatically.
	pageMargin = 1000
)

// Circuit is the synthesized part of a sheet: a single stage or a cascade.
type Circuit interface {
	schematic.Container
	Summary() filter.Summary
	Extent() geom.Point
}

// Sheet is an assembled document.
type Sheet struct {
	Doc     *schematic.Schematic
	Circuit Circuit
	Summary filter.Summary
	Parts   schematic.Parts
	Output  *schematic.GlobalLabel
}

// Assemble synthesizes the circuit described by opts and lays out the
// complete sheet. opts must have been validated.
func Assemble(opts Options) (*Sheet, error) {
	circuit, err := buildCircuit(opts)
	if err != nil {
		return nil, err
	}

	page, err := choosePage(opts, circuit)
	if err != nil {
		return nil, err
	}
	orientation := schematic.Landscape
	if opts.Portrait {
		orientation = schematic.Portrait
	}
	doc, err := schematic.New(page, orientation)
	if err != nil {
		return nil, err
	}
	if opts.Seed != 0 {
		doc.SetSeed(opts.Seed)
	}
	doc.Title.Title = opts.Title
	doc.Title.Comments[0] = describe(opts)

	sheet := &Sheet{Doc: doc, Circuit: circuit}
	doc.Add(circuit)
	sheet.hookup()
	if opts.Sim {
		sheet.addSimulation(opts)
	}

	if !opts.NoAnnotate {
		schematic.Annotate(doc.Items()...)
	}
	sheet.Summary = circuit.Summary()
	sheet.Parts = schematic.PartsList(doc.Items()...)
	return sheet, nil
}

func buildCircuit(opts Options) (Circuit, error) {
	if opts.IsStage() {
		return filter.NewStage(Origin, opts.Params(), opts.StageOptions())
	}
	d, err := opts.Design()
	if err != nil {
		return nil, err
	}
	return filter.NewCascade(Origin, d, opts.StageOptions())
}

// choosePage resolves PageAuto against the drawing's bounding box.
func choosePage(opts Options, c Circuit) (string, error) {
	if opts.Page != PageAuto {
		return opts.Page, nil
	}
	ext := c.Extent()
	w := Origin.X + ext.X + labelGap + pageMargin
	h := Origin.Y + ext.Y + pageMargin
	if opts.Sim {
		h = Origin.Y + simOffset + 1000 + pageMargin
	}
	if opts.Portrait {
		w, h = h, w
	}
	return schematic.FitPage(w, h).Name, nil
}

func describe(opts Options) string {
	if opts.IsStage() {
		return opts.Params().Annotation()
	}
	return fmt.Sprintf("%s low-pass, order %d, f0=%sHz, H=%g", opts.Family, opts.Order, siunit.Format(opts.Frequency), opts.Gain)
}

// hookup adds the VIN and VOUT net labels and their wires.
func (s *Sheet) hookup() {
	in, out := s.Circuit.Pin1(), s.Circuit.Pin2()

	vin := schematic.NewGlobalLabel(in.Sub(geom.Pt(labelGap, 0)), "VIN", schematic.ShapeInput, 0)
	s.Output = schematic.NewGlobalLabel(out.Add(geom.Pt(labelGap, 0)), "VOUT", schematic.ShapeOutput, 2)
	s.Doc.Add(
		vin, schematic.NewWire(vin.Pos(), in),
		s.Output, schematic.NewWire(out, s.Output.Pos()),
	)
}

// addSimulation adds the input and supply sources, a load on the output
// and the analysis directives.
func (s *Sheet) addSimulation(opts Options) {
	in, out := s.Circuit.Pin1(), s.Circuit.Pin2()
	base := geom.Pt(in.X-labelGap, Origin.Y+simOffset)
	v := opts.SupplyVoltage

	sources := []struct {
		value, model string
		net          func(at geom.Point) schematic.Item
	}{
		{"AC 1", "dc 0 ac 1", func(at geom.Point) schematic.Item {
			return schematic.NewGlobalLabel(at, "VIN", schematic.ShapeInput, 1)
		}},
		{fmt.Sprintf("%gV", v), fmt.Sprintf("dc %g", v), func(at geom.Point) schematic.Item {
			return schematic.NewSupply("VDD", at, geom.Vertical)
		}},
		{fmt.Sprintf("%gV", -v), fmt.Sprintf("dc %g", -v), func(at geom.Point) schematic.Item {
			return schematic.NewSupply("VSS", at, geom.Vertical)
		}},
	}
	for i, src := range sources {
		at := base.Add(geom.Pt(i*800, 400))
		vs := schematic.NewVoltageSource(at, src.value, src.model)
		gnd := schematic.NewGround(vs.Pin1().Add(geom.Pt(0, 100)))
		net := src.net(at.Sub(geom.Pt(0, 400)))
		s.Doc.Add(vs, gnd, net,
			schematic.NewWire(vs.Pin1(), gnd.Pos()),
			schematic.NewWire(vs.Pin2(), net.Pos()))
	}

	// Load resistor hanging off the VOUT wire.
	tap := schematic.NewConnection(out.Add(geom.Pt(300, 0)))
	load := schematic.NewResistor("10k", tap.Pos().Add(geom.Pt(0, 400)), geom.Vertical)
	gnd := schematic.NewGround(load.Pin2().Add(geom.Pt(0, 100)))
	s.Doc.Add(tap, load, gnd,
		schematic.NewWire(tap.Pos(), load.Pin1()),
		schematic.NewWire(load.Pin2(), gnd.Pos()))

	at := base.Add(geom.Pt(2400, 0))
	for _, d := range directives(opts) {
		s.Doc.Add(schematic.NewText(at, d))
		at = at.Add(geom.Pt(0, 100))
	}
}

// directives returns the simulator control lines: an AC sweep two decades
// either side of the cutoff and the model library include.
func directives(opts Options) []string {
	f := opts.Frequency
	lines := []string{fmt.Sprintf(".ac dec 100 %s %s", spiceNumber(f/100), spiceNumber(f*100))}
	if opts.SimLibrary != "" {
		lines = append(lines, ".include "+opts.SimLibrary)
	}
	return lines
}

// spiceNumber formats n with SI suffixes the way SPICE reads them, where
// "M" means milli and mega is "Meg".
func spiceNumber(n float64) string {
	s := siunit.Format(n)
	if rest, ok := strings.CutSuffix(s, "M"); ok {
		return rest + "Meg"
	}
	return s
}
