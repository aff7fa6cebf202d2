package schematic

import "github.com/bson/filtergen/pkg/geom"

// Item is anything that can be placed on a sheet. Positions and pins are
// expressed in the frame of the item's container.
type Item interface {
	// Pos returns the local position of the item.
	Pos() geom.Point
	// Pin1 returns the first connection point, typically the input side.
	Pin1() geom.Point
	// Pin2 returns the second connection point, typically the output side.
	Pin2() geom.Point
}

// Container is an item whose children are placed relative to its
// position.
type Container interface {
	Item
	Items() []Item
}

// emitter is implemented by items that produce text. Items without it
// render to nothing.
type emitter interface {
	emit(b *builder, p Placed)
}

// Base carries a local position. Embedding it gives an item the default
// pin behavior: both pins sit on the item's own position.
type Base struct {
	At geom.Point
}

// Pos returns the local position.
func (b Base) Pos() geom.Point { return b.At }

// Position returns the local position translated by offset. The origin
// assigned by a container is not involved.
func (b Base) Position(offset geom.Point) geom.Point { return b.At.Add(offset) }

// Pin1 returns the local position.
func (b Base) Pin1() geom.Point { return b.At }

// Pin2 returns the local position.
func (b Base) Pin2() geom.Point { return b.At }

// Anchor is a named point with no visual representation.
type Anchor struct{ Base }

// NewAnchor returns an anchor at pos.
func NewAnchor(pos geom.Point) *Anchor {
	return &Anchor{Base{pos}}
}

// Corner marks a bend in a wire run. It renders nothing.
type Corner struct{ Base }

// NewCorner returns a corner at pos.
func NewCorner(pos geom.Point) *Corner {
	return &Corner{Base{pos}}
}

// Connection is a junction dot joining three or more wires.
type Connection struct{ Base }

// NewConnection returns a junction at pos.
func NewConnection(pos geom.Point) *Connection {
	return &Connection{Base{pos}}
}

func (c *Connection) emit(b *builder, p Placed) {
	at := p.SheetPosition()
	b.printf("Connection ~ %d %d\n", at.X, at.Y)
}
