package schematic

import (
	"sort"

	"github.com/bson/filtergen/pkg/geom"
)

// Field indices. The first four are always written; user fields use 4 and
// up.
const (
	FieldReference = 0
	FieldValue     = 1
	FieldFootprint = 2
	FieldDoc       = 3

	FieldSpicePrimitive = 4
	FieldSpiceModel     = 5
	FieldSpiceNetlist   = 6
	FieldSpiceLibFile   = 7
	FieldSpiceNodes     = 8
)

// FlagHidden is the index of the visibility flag.
const FlagHidden = 3

// Field alignments and the default style.
const (
	AlignCenter = "C"
	AlignLeft   = "L"
	AlignRight  = "R"

	StyleDefault = "CNN"
)

const defaultFieldSize = 50

// Field is one attribute line of a component.
type Field struct {
	Index    int
	Name     string // user fields only
	Text     string
	Rotation string // "H" or "V"
	Offset   geom.Point
	Size     int
	Flags    [4]bool
	Align    string
	Style    string
}

// newField builds a field with the defaults shared by every component.
// Text on vertical components is laid out horizontally.
func newField(index int, text string, offset geom.Point, o geom.Orientation) Field {
	rot := "V"
	if o.IsVertical() {
		rot = "H"
	}
	return Field{
		Index:    index,
		Text:     text,
		Rotation: rot,
		Offset:   offset,
		Size:     defaultFieldSize,
		Align:    AlignCenter,
		Style:    StyleDefault,
	}
}

// Hidden reports whether the field is invisible on the sheet.
func (f Field) Hidden() bool {
	return f.Flags[FlagHidden]
}

func (f Field) flagString() string {
	b := make([]byte, len(f.Flags))
	for i, set := range f.Flags {
		b[i] = '0'
		if set {
			b[i] = '1'
		}
	}
	return string(b)
}

// Fields holds the four standard fields by name plus the user fields
// ordered by index.
type Fields struct {
	Reference Field
	Value     Field
	Footprint Field
	Doc       Field
	User      []Field
}

// All returns every field in serialization order.
func (fs *Fields) All() []Field {
	all := make([]Field, 0, 4+len(fs.User))
	all = append(all, fs.Reference, fs.Value, fs.Footprint, fs.Doc)
	return append(all, fs.User...)
}

// Get returns the field with the given index.
func (fs *Fields) Get(index int) (*Field, bool) {
	switch index {
	case FieldReference:
		return &fs.Reference, true
	case FieldValue:
		return &fs.Value, true
	case FieldFootprint:
		return &fs.Footprint, true
	case FieldDoc:
		return &fs.Doc, true
	}
	for i := range fs.User {
		if fs.User[i].Index == index {
			return &fs.User[i], true
		}
	}
	return nil, false
}

// setUser inserts or replaces a user field, keeping the list sorted.
func (fs *Fields) setUser(f Field) {
	for i := range fs.User {
		if fs.User[i].Index == f.Index {
			fs.User[i] = f
			return
		}
	}
	fs.User = append(fs.User, f)
	sort.SliceStable(fs.User, func(i, j int) bool {
		return fs.User[i].Index < fs.User[j].Index
	})
}
