package schematic

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bson/filtergen/pkg/geom"
)

// IDGen hands out the unique IDs written into component records. A
// generator is owned by one render; seeding it makes output reproducible.
type IDGen struct {
	seed uint32
	n    atomic.Uint32
}

// NewIDGen returns a generator whose first ID is seed+1.
func NewIDGen(seed uint32) *IDGen {
	return &IDGen{seed: seed}
}

// NewClockIDGen returns a generator seeded with the current Unix time.
func NewClockIDGen() *IDGen {
	return NewIDGen(uint32(time.Now().Unix()))
}

// Next returns the next ID. It is safe for concurrent use.
func (g *IDGen) Next() uint32 {
	return g.seed + g.n.Add(1)
}

// Placed is one item together with the origin its container assigned and,
// for components, the ID of this placement.
type Placed struct {
	Item   Item
	Origin geom.Point
	UID    uint32
}

// SheetPosition returns the absolute position of the placed item.
func (p Placed) SheetPosition() geom.Point {
	return p.Origin.Add(p.Item.Pos())
}

// Placement is the resolved form of an item tree, in emission order.
type Placement struct {
	entries []Placed
}

// Resolve places items at origin, descending into containers depth first
// in insertion order. A nil ids uses a clock-seeded generator. The tree
// must be acyclic.
func Resolve(origin geom.Point, ids *IDGen, items ...Item) *Placement {
	if ids == nil {
		ids = NewClockIDGen()
	}
	p := &Placement{}
	for _, it := range items {
		p.place(it, origin, ids)
	}
	return p
}

func (p *Placement) place(it Item, origin geom.Point, ids *IDGen) {
	entry := Placed{Item: it, Origin: origin}
	if _, ok := it.(*Component); ok {
		entry.UID = ids.Next()
	}
	p.entries = append(p.entries, entry)

	if c, ok := it.(Container); ok {
		inner := origin.Add(it.Pos())
		for _, child := range c.Items() {
			p.place(child, inner, ids)
		}
	}
}

// Entries returns every placed item, containers included.
func (p *Placement) Entries() []Placed {
	return p.entries
}

// Components returns the placed components.
func (p *Placement) Components() []Placed {
	var out []Placed
	for _, e := range p.entries {
		if _, ok := e.Item.(*Component); ok {
			out = append(out, e)
		}
	}
	return out
}

// SheetPosition returns the absolute position of the first placement of
// item.
func (p *Placement) SheetPosition(item Item) (geom.Point, bool) {
	for _, e := range p.entries {
		if e.Item == item {
			return e.SheetPosition(), true
		}
	}
	return geom.Point{}, false
}

// WriteTo writes the text of every placed item.
func (p *Placement) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}

// String returns the text of every placed item.
func (p *Placement) String() string {
	var b builder
	for _, e := range p.entries {
		if em, ok := e.Item.(emitter); ok {
			em.emit(&b, e)
		}
	}
	return b.String()
}

// RenderItem resolves and renders a single item at origin.
func RenderItem(item Item, origin geom.Point, ids *IDGen) string {
	return Resolve(origin, ids, item).String()
}

type builder struct {
	strings.Builder
}

func (b *builder) printf(format string, args ...any) {
	fmt.Fprintf(&b.Builder, format, args...)
}
