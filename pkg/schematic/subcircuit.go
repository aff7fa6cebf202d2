package schematic

import "github.com/bson/filtergen/pkg/geom"

// SubCircuit groups items under a common local origin. Its pins default
// to its own position; wrappers that expose real terminals override them.
type SubCircuit struct {
	Base
	items []Item
}

// NewSubCircuit returns an empty subcircuit at pos.
func NewSubCircuit(pos geom.Point) *SubCircuit {
	return &SubCircuit{Base: Base{pos}}
}

// Add appends items in order. Emission follows insertion order.
func (s *SubCircuit) Add(items ...Item) {
	s.items = append(s.items, items...)
}

// Items returns the children in insertion order.
func (s *SubCircuit) Items() []Item {
	return s.items
}

// Len returns the number of direct children.
func (s *SubCircuit) Len() int {
	return len(s.items)
}
