package eeschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bson/filtergen/pkg/schematic"
)

// File is a parsed schematic sheet.
type File struct {
	Header  Header    `@@`
	Descr   Descr     `@@`
	Records []*Record `@@*`
	End     bool      `@"$EndSCHEMATC" EOL*`
}

// Header is the version preamble.
type Header struct {
	Version int `"EESchema" "Schematic" "File" "Version" @Word EOL`
	Layers  int `"EELAYER" @Word Word EOL "EELAYER" "END" EOL`
}

// Descr is the page description and title block.
type Descr struct {
	Page     string  `"$Descr" @Word`
	Width    int     `@Word`
	Height   int     `@Word EOL`
	Encoding string  `"encoding" @Word EOL`
	Sheet    []int   `"Sheet" @Word @Word EOL`
	Meta     []*Meta `@@* "$EndDescr" EOL`
}

// Meta is one title block line.
type Meta struct {
	Key   string `@("Title" | "Date" | "Rev" | "Comp" | "Comment1" | "Comment2" | "Comment3" | "Comment4")`
	Value string `@String EOL`
}

// Record is one top-level item.
type Record struct {
	Comp       *Comp       `  @@`
	Wire       *Wire       `| @@`
	Connection *Connection `| @@`
	Text       *Text       `| @TextBlock EOL`
}

// Comp is a component block.
type Comp struct {
	Library   string   `"$Comp" EOL "L" @Word`
	Reference string   `@Word EOL`
	Unit      int      `"U" @Word`
	Convert   int      `@Word`
	UID       string   `@Word EOL`
	X         int      `"P" @Word`
	Y         int      `@Word EOL`
	Fields    []*Field `@@*`
	Position  []int    `@Word @Word @Word EOL`
	Matrix    []int    `@Word @Word @Word @Word EOL "$EndComp" EOL`
}

// Field is one attribute line of a component.
type Field struct {
	Index    int    `"F" @Word`
	Text     string `@String`
	Rotation string `@Word`
	X        int    `@Word`
	Y        int    `@Word`
	Size     int    `@Word`
	Flags    string `@Word`
	Align    string `@Word`
	Style    string `@Word`
	Name     string `@String? EOL`
}

// Hidden reports whether the field's visibility flag is set.
func (f *Field) Hidden() bool {
	return len(f.Flags) > schematic.FlagHidden && f.Flags[schematic.FlagHidden] == '1'
}

// Wire is a wire or graphic line segment.
type Wire struct {
	Kind  string `"Wire" @Word`
	Style string `@Word EOL`
	X1    int    `@Word`
	Y1    int    `@Word`
	X2    int    `@Word`
	Y2    int    `@Word EOL`
}

// Notes reports whether the segment is a graphic line rather than a wire.
func (w *Wire) Notes() bool { return w.Kind == schematic.WireKindNotes }

// Connection is a junction dot.
type Connection struct {
	X int `"Connection" "~" @Word`
	Y int `@Word EOL`
}

// Text is a label or note. The header line is split into its fields and
// the body line is unescaped.
type Text struct {
	Kind   string // GLabel, Label or Notes
	X, Y   int
	Orient int
	Size   int
	Shape  string // global labels only
	Body   string
}

// Capture implements participle.Capture.
func (t *Text) Capture(values []string) error {
	if len(values) != 1 {
		return fmt.Errorf("text record: expected one token, got %d", len(values))
	}
	header, body, ok := strings.Cut(values[0], "\n")
	if !ok {
		return fmt.Errorf("text record: missing body line")
	}
	f := strings.Fields(header)
	if len(f) < 6 {
		return fmt.Errorf("text record: short header %q", header)
	}
	t.Kind = f[1]
	ints := []*int{&t.X, &t.Y, &t.Orient, &t.Size}
	for i, p := range ints {
		n, err := strconv.Atoi(f[2+i])
		if err != nil {
			return fmt.Errorf("text record: %w", err)
		}
		*p = n
	}
	if (t.Kind == "GLabel" || t.Kind == "HLabel") && len(f) > 6 {
		t.Shape = f[6]
	}
	t.Body = strings.ReplaceAll(body, `\n`, "\n")
	return nil
}

// Field returns the field with the given index.
func (c *Comp) Field(index int) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Index == index {
			return f, true
		}
	}
	return nil, false
}

// Ref returns the reference field text, falling back to the L line.
func (c *Comp) Ref() string {
	if f, ok := c.Field(schematic.FieldReference); ok {
		return f.Text
	}
	return c.Reference
}

// Value returns the value field text.
func (c *Comp) Value() string {
	if f, ok := c.Field(schematic.FieldValue); ok {
		return f.Text
	}
	return ""
}

// Kind maps the component's library symbol back to a device kind.
func (c *Comp) Kind() (schematic.DeviceKind, bool) {
	return schematic.KindOfLibrary(c.Library)
}

// Title returns the title block entry for key, or "".
func (d *Descr) Title(key string) string {
	for _, m := range d.Meta {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}
