// Package report renders a filter design as a one-page PDF data sheet.
//
// The sheet lists the design targets, one row per stage with its
// component values and the response those values realize, and the parts
// list of the generated schematic.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/schematic"
	"github.com/bson/filtergen/pkg/siunit"
)

// Input is what the report shows.
type Input struct {
	Title   string
	Summary filter.Summary
	Parts   schematic.Parts
	Created time.Time // fixes the document dates; output is then byte-stable
}

const (
	margin     = 15.0
	lineHeight = 6.0
	font       = "Helvetica"
)

// Render produces the PDF bytes.
func Render(in Input) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	if !in.Created.IsZero() {
		pdf.SetCatalogSort(true)
		pdf.SetCreationDate(in.Created)
		pdf.SetModificationDate(in.Created)
	}
	title := in.Title
	if title == "" {
		title = "Low-pass filter"
	}
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeTargets(pdf, in.Summary)
	writeStages(pdf, in.Summary)
	writeParts(pdf, in.Parts)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(3)
	pdf.SetFont(font, "B", 12)
	pdf.CellFormat(0, 8, text, "B", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 10)
}

func writeTargets(pdf *gofpdf.Fpdf, sum filter.Summary) {
	heading(pdf, "Design")
	rows := [][2]string{
		{"Cutoff frequency", siunit.FormatUnit(sum.Frequency, "Hz")},
		{"DC gain", fmt.Sprintf("%g", sum.Gain)},
		{"Scale resistor R1", siunit.FormatUnit(sum.R1, "ohm")},
		{"Order", fmt.Sprintf("%d", sum.Order)},
	}
	if sum.Family != "" {
		rows = append(rows, [2]string{"Approximation", sum.Family})
	}
	for _, r := range rows {
		pdf.CellFormat(50, lineHeight, r[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, r[1], "", 1, "L", false, 0, "")
	}
}

func writeStages(pdf *gofpdf.Fpdf, sum filter.Summary) {
	heading(pdf, "Stages")
	cols := []struct {
		name  string
		width float64
	}{
		{"#", 8}, {"f0", 20}, {"Q", 18}, {"H", 14},
		{"R1", 18}, {"R2", 18}, {"R3", 18}, {"C1", 20}, {"C2", 20}, {"Realized Q", 26},
	}
	pdf.SetFont(font, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, lineHeight, c.name, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 9)
	for _, s := range sum.Stages {
		l := s.Labels
		cells := []string{
			fmt.Sprintf("%d", s.Index),
			siunit.FormatUnit(s.Params.Frequency, "Hz"),
			fmt.Sprintf("%.4g", s.Params.Q),
			fmt.Sprintf("%.4g", s.Params.Gain),
			l.R1, l.R2, l.R3, l.C1, l.C2,
			fmt.Sprintf("%.4g", s.Response.Q),
		}
		for i, text := range cells {
			pdf.CellFormat(cols[i].width, lineHeight, text, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeParts(pdf *gofpdf.Fpdf, parts schematic.Parts) {
	if len(parts) == 0 {
		return
	}
	heading(pdf, "Parts")
	for _, ref := range parts.Refs() {
		pdf.CellFormat(20, lineHeight, ref, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, parts[ref], "", 1, "L", false, 0, "")
	}
}
