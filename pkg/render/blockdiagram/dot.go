package blockdiagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/siunit"
)

// Options configures block diagram rendering.
type Options struct {
	// Detailed adds the component values to each stage label.
	// When false, only the stage response is shown.
	Detailed bool
}

// ToDOT converts a filter summary to Graphviz DOT: an input node, one box
// per stage in signal order, and an output node.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(sum filter.Summary, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	buf.WriteString("  \"VIN\" [shape=circle, fillcolor=lightgrey];\n")
	for _, s := range sum.Stages {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", stageID(s), fmtLabel(s, opts.Detailed))
	}
	buf.WriteString("  \"VOUT\" [shape=circle, fillcolor=lightgrey];\n")

	buf.WriteString("\n")
	prev := "VIN"
	for _, s := range sum.Stages {
		fmt.Fprintf(&buf, "  %q -> %q;\n", prev, stageID(s))
		prev = stageID(s)
	}
	fmt.Fprintf(&buf, "  %q -> %q", prev, "VOUT")
	if sum.Family != "" {
		fmt.Fprintf(&buf, " [label=%q]", fmt.Sprintf("%s, order %d", sum.Family, sum.Order))
	}
	buf.WriteString(";\n")

	buf.WriteString("}\n")
	return buf.String()
}

func stageID(s filter.StageSummary) string {
	return "stage" + strconv.Itoa(s.Index)
}

func fmtLabel(s filter.StageSummary, detailed bool) string {
	lines := []string{
		fmt.Sprintf("Stage %d", s.Index),
		fmt.Sprintf("f0=%sHz Q=%.4g H=%g", siunit.Format(s.Params.Frequency), s.Params.Q, s.Params.Gain),
	}
	if detailed {
		l := s.Labels
		lines = append(lines,
			fmt.Sprintf("R1=%s R2=%s R3=%s", l.R1, l.R2, l.R3),
			fmt.Sprintf("C1=%s C2=%s", l.C1, l.C2))
	}
	return strings.Join(lines, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return fitChain(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="[0-9.]+\s+[0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitChain rewrites the root element of a rendered stage chain. Graphviz
// sizes the drawing in points with an offset origin; the chain is wide
// and short, so it is pinned to the left edge when a page scales it.
func fitChain(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[1]), 64)
	h, _ := strconv.ParseFloat(string(m[2]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" role="img" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f" preserveAspectRatio="xMinYMid meet">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
