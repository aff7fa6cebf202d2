// Package blockdiagram draws a filter cascade as a signal-flow diagram.
//
// # Overview
//
// Each stage becomes a box labeled with its cutoff, Q and gain, chained
// left to right between the VIN and VOUT nets. The diagram complements
// the schematic: it shows how the response is split across stages
// without the wiring detail.
//
// # Usage
//
//	dot := blockdiagram.ToDOT(cascade.Summary(), blockdiagram.Options{Detailed: true})
//	svg, err := blockdiagram.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package blockdiagram
