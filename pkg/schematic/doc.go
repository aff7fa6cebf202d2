// Package schematic models a legacy EESchema sheet as a tree of
// relocatable items and serializes it to the text format.
//
// Every item has a position in the frame of its container. Containers
// (SubCircuit, and any type implementing Container) translate their
// children by their own position, so a subcircuit built around (0, 0) can
// be dropped anywhere on a sheet or inside another subcircuit.
//
// # Rendering
//
// Rendering runs in two phases. Resolve walks the tree and records, for
// each item, the origin its container places it at, and hands every
// component placement a fresh unique ID from an IDGen. The resulting
// Placement is then written out without touching the items, so the same
// tree can be rendered any number of times, at any origin.
//
//	ids := schematic.NewIDGen(seed)
//	p := schematic.Resolve(geom.Pt(2000, 2000), ids, stage)
//	p.WriteTo(os.Stdout)
//
// A Schematic wraps this with the page header and trailer.
//
// # Components
//
// Components are a single struct tagged with a DeviceKind. A capability
// table keyed by kind supplies the reference prefix, library symbol,
// SPICE primitive and the rule that places the two connection pins.
package schematic
