package schematic

import "github.com/bson/filtergen/pkg/geom"

// Wire kinds as written in the record header.
const (
	WireKindWire  = "Wire"
	WireKindNotes = "Notes"
)

// Wire is a straight segment. Its position is the start point; Pin2 is the
// end point.
type Wire struct {
	Base
	End  geom.Point
	Kind string
}

// NewWire returns an electrical wire from start to end.
func NewWire(start, end geom.Point) *Wire {
	return &Wire{Base: Base{start}, End: end, Kind: WireKindWire}
}

// NewLine returns a graphical (non-electrical) line from start to end.
func NewLine(start, end geom.Point) *Wire {
	return &Wire{Base: Base{start}, End: end, Kind: WireKindNotes}
}

// Connect returns a wire from a's second pin to b's first pin. Both items
// must live in the same container frame.
func Connect(a, b Item) *Wire {
	return NewWire(a.Pin2(), b.Pin1())
}

// Pin2 returns the end point.
func (w *Wire) Pin2() geom.Point { return w.End }

func (w *Wire) emit(b *builder, p Placed) {
	start := p.SheetPosition()
	end := p.Origin.Add(w.End)
	b.printf("Wire %s Line\n\t%d %d %d %d\n", w.Kind, start.X, start.Y, end.X, end.Y)
}

// NewBox returns a rectangle of graphical lines between two corners. The
// corners are given in the frame the box is added to.
func NewBox(topLeft, bottomRight geom.Point) *SubCircuit {
	topRight := geom.Pt(bottomRight.X, topLeft.Y)
	bottomLeft := geom.Pt(topLeft.X, bottomRight.Y)

	box := NewSubCircuit(geom.Point{})
	box.Add(
		NewLine(topLeft, topRight),
		NewLine(topRight, bottomRight),
		NewLine(bottomRight, bottomLeft),
		NewLine(bottomLeft, topLeft),
	)
	return box
}
