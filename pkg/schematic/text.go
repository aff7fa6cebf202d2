package schematic

import (
	"strings"

	"github.com/bson/filtergen/pkg/geom"
)

// Global label shapes.
const (
	ShapeInput         = "Input"
	ShapeOutput        = "Output"
	ShapeBidirectional = "BiDi"
	ShapeTriState      = "3State"
	ShapePassive       = "UnSpc"
)

// GlobalLabel names a net across the whole design.
type GlobalLabel struct {
	Base
	Text   string
	Shape  string
	Orient int // 0..3, quarter turns
}

// NewGlobalLabel returns a global label with the given shape and
// orientation.
func NewGlobalLabel(pos geom.Point, text, shape string, orient int) *GlobalLabel {
	if shape == "" {
		shape = ShapeInput
	}
	return &GlobalLabel{Base: Base{pos}, Text: text, Shape: shape, Orient: orient}
}

func (l *GlobalLabel) emit(b *builder, p Placed) {
	at := p.SheetPosition()
	b.printf("Text GLabel %d %d %d 50 %s ~ 0\n%s\n", at.X, at.Y, l.Orient, l.Shape, escapeLine(l.Text))
}

// Label names a net locally.
type Label struct {
	Base
	Text string
}

// NewLabel returns a local net label.
func NewLabel(pos geom.Point, text string) *Label {
	return &Label{Base: Base{pos}, Text: text}
}

func (l *Label) emit(b *builder, p Placed) {
	at := p.SheetPosition()
	b.printf("Text Label %d %d 0 50 ~ 0\n%s\n", at.X, at.Y, escapeLine(l.Text))
}

// Text is a free-standing note.
type Text struct {
	Base
	Text string
}

// NewText returns a note at pos.
func NewText(pos geom.Point, text string) *Text {
	return &Text{Base: Base{pos}, Text: text}
}

func (t *Text) emit(b *builder, p Placed) {
	at := p.SheetPosition()
	b.printf("Text Notes %d %d 0 50 ~ 0\n%s\n", at.X, at.Y, escapeLine(t.Text))
}

// escapeLine keeps a text record on one line.
func escapeLine(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// escapeQuoted escapes text written between double quotes.
func escapeQuoted(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")
	return r.Replace(s)
}
