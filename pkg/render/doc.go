// Package render groups the secondary outputs generated alongside a
// schematic.
//
// # Overview
//
// The schematic itself is written by the schematic package. The
// subpackages here present the same design in other forms:
//
//   - Block diagrams of the stage chain (in [blockdiagram] subpackage)
//   - PDF data sheets with values and parts (in [report] subpackage)
//
// Both take a [filter.Summary], so they do not depend on geometry.
//
//	sum := cascade.Summary()
//	dot := blockdiagram.ToDOT(sum, blockdiagram.Options{})
//	svg, err := blockdiagram.RenderSVG(ctx, dot)
//	pdf, err := report.Render(report.Input{Summary: sum})
//
// [blockdiagram]: github.com/bson/filtergen/pkg/render/blockdiagram
// [report]: github.com/bson/filtergen/pkg/render/report
// [filter.Summary]: github.com/bson/filtergen/pkg/filter.Summary
package render
