package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/render/blockdiagram"
	"github.com/bson/filtergen/pkg/render/report"
	"github.com/bson/filtergen/pkg/schematic"
)

// Document is the JSON artifact: everything about the design except its
// geometry.
type Document struct {
	Title   string          `json:"title,omitempty"`
	Seed    uint32          `json:"seed"`
	Page    schematic.Page  `json:"page"`
	Summary filter.Summary  `json:"summary"`
	Parts   schematic.Parts `json:"parts,omitempty"`
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s *Sheet, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var dot string
	for _, format := range FormatOrder {
		if !opts.HasFormat(format) {
			continue
		}

		var data []byte
		var err error

		switch format {
		case FormatSch:
			data = []byte(s.Doc.String())
		case FormatJSON:
			data, err = json.MarshalIndent(s.Document(opts.Title), "", "  ")
		case FormatPDF:
			data, err = report.Render(report.Input{
				Title:   opts.Title,
				Summary: s.Summary,
				Parts:   s.Parts,
				Created: time.Unix(int64(s.Doc.Seed()), 0).UTC(),
			})
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = blockdiagram.ToDOT(s.Summary, blockdiagram.Options{Detailed: opts.Detailed})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = blockdiagram.RenderSVG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// Document returns the JSON artifact contents.
func (s *Sheet) Document(title string) Document {
	return Document{
		Title:   title,
		Seed:    s.Doc.Seed(),
		Page:    s.Doc.Page,
		Summary: s.Summary,
		Parts:   s.Parts,
	}
}

// Components counts the components on the sheet.
func (s *Sheet) Components() int {
	n := 0
	schematic.Walk(func(it schematic.Item) {
		if _, ok := it.(*schematic.Component); ok {
			n++
		}
	}, s.Doc.Items()...)
	return n
}
