package schematic

import (
	"fmt"
	"sort"
	"strings"
)

// Walk calls fn for every item in the trees rooted at items, depth first
// in insertion order.
func Walk(fn func(Item), items ...Item) {
	for _, it := range items {
		fn(it)
		if c, ok := it.(Container); ok {
			Walk(fn, c.Items()...)
		}
	}
}

// Annotate replaces the trailing "?" of every component reference with a
// number, counting separately per prefix in traversal order. Power symbols
// get two-digit numbers ("#PWR01"). Already numbered references are left
// alone. It returns the number of references assigned.
func Annotate(items ...Item) int {
	var n numberer
	assigned := 0
	Walk(func(it Item) {
		c, ok := it.(*Component)
		if !ok {
			return
		}
		if ref, ok := n.number(c.Reference()); ok {
			c.SetReference(ref)
			assigned++
		}
	}, items...)
	return assigned
}

// numberer hands out per-prefix sequence numbers for pending references.
type numberer map[string]int

// number returns ref with its trailing "?" replaced by the next number for
// its prefix, and false when ref is already numbered.
func (n *numberer) number(ref string) (string, bool) {
	prefix, pending := strings.CutSuffix(ref, "?")
	if !pending {
		return ref, false
	}
	if *n == nil {
		*n = numberer{}
	}
	(*n)[prefix]++
	format := "%s%d"
	if strings.HasPrefix(prefix, "#") {
		format = "%s%02d"
	}
	return fmt.Sprintf(format, prefix, (*n)[prefix]), true
}

// Parts maps reference designators to part values.
type Parts map[string]string

// PartsList collects the value of every value-bearing component (resistors,
// capacitors, inductors, diodes) under items. It returns nil when nothing
// contributes. Unannotated references are keyed by the number Annotate
// would give them, so every part keeps its own entry; the components
// themselves are not changed.
func PartsList(items ...Item) Parts {
	var parts Parts
	var n numberer
	Walk(func(it Item) {
		c, ok := it.(*Component)
		if !ok {
			return
		}
		ref, _ := n.number(c.Reference())
		if !c.Kind.Valued() {
			return
		}
		if parts == nil {
			parts = Parts{}
		}
		parts[ref] = c.Value()
	}, items...)
	return parts
}

// Filter returns the entries whose reference starts with prefix.
func (p Parts) Filter(prefix string) Parts {
	out := Parts{}
	for ref, value := range p {
		if strings.HasPrefix(ref, prefix) {
			out[ref] = value
		}
	}
	return out
}

// Refs returns the references in natural order (R2 before R10).
func (p Parts) Refs() []string {
	refs := make([]string, 0, len(p))
	for ref := range p {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		return refLess(refs[i], refs[j])
	})
	return refs
}

func refLess(a, b string) bool {
	pa, na := splitRef(a)
	pb, nb := splitRef(b)
	if pa != pb {
		return pa < pb
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

func splitRef(ref string) (string, int) {
	i := len(ref)
	for i > 0 && ref[i-1] >= '0' && ref[i-1] <= '9' {
		i--
	}
	n := 0
	for _, r := range ref[i:] {
		n = n*10 + int(r-'0')
	}
	return ref[:i], n
}
