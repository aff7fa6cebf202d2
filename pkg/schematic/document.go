package schematic

import (
	"io"
	"strings"
	"time"

	"github.com/bson/filtergen/pkg/geom"
)

// TitleBlock holds the sheet metadata. Empty fields are written as "".
type TitleBlock struct {
	Title    string    `json:"title,omitempty"`
	Date     string    `json:"date,omitempty"`
	Rev      string    `json:"rev,omitempty"`
	Company  string    `json:"company,omitempty"`
	Comments [4]string `json:"comments,omitempty"`
}

// Schematic is a complete sheet: page, title block and top-level items.
type Schematic struct {
	Page  Page
	Title TitleBlock

	items []Item
	seed  uint32
}

// New returns an empty schematic on the named page. Unknown page names
// fail with UNKNOWN_PAGE_SIZE.
func New(pageName string, o PageOrientation) (*Schematic, error) {
	if pageName == "" {
		pageName = DefaultPage
	}
	page, err := LookupPage(pageName, o)
	if err != nil {
		return nil, err
	}
	return &Schematic{Page: page, seed: uint32(time.Now().Unix())}, nil
}

// SetSeed sets the first value of the unique ID sequence. Every render
// starts the sequence afresh, so output is stable for a given seed.
func (s *Schematic) SetSeed(seed uint32) {
	s.seed = seed
}

// Seed returns the unique ID seed.
func (s *Schematic) Seed() uint32 {
	return s.seed
}

// Add appends top-level items.
func (s *Schematic) Add(items ...Item) {
	s.items = append(s.items, items...)
}

// Items returns the top-level items in insertion order.
func (s *Schematic) Items() []Item {
	return s.items
}

// Size returns the page width and height in mils.
func (s *Schematic) Size() (int, int) {
	return s.Page.Width, s.Page.Height
}

// Resolve places every item on the sheet.
func (s *Schematic) Resolve() *Placement {
	return Resolve(geom.Point{}, NewIDGen(s.seed), s.items...)
}

// WriteTo writes the complete document.
func (s *Schematic) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// String returns the complete document.
func (s *Schematic) String() string {
	var b builder
	s.writeHeader(&b)
	b.WriteString(s.Resolve().String())
	b.WriteString("$EndSCHEMATC\n")
	return b.String()
}

func (s *Schematic) writeHeader(b *builder) {
	b.WriteString("EESchema Schematic File Version 4\nEELAYER 26 0\nEELAYER END\n")
	b.printf("$Descr %s %d %d\n", s.Page.Name, s.Page.Width, s.Page.Height)
	b.WriteString("encoding utf-8\nSheet 1 1\n")

	t := s.Title
	meta := []struct{ key, value string }{
		{"Title", t.Title},
		{"Date", t.Date},
		{"Rev", t.Rev},
		{"Comp", t.Company},
		{"Comment1", t.Comments[0]},
		{"Comment2", t.Comments[1]},
		{"Comment3", t.Comments[2]},
		{"Comment4", t.Comments[3]},
	}
	for _, m := range meta {
		b.printf("%s \"%s\"\n", m.key, escapeQuoted(strings.TrimSpace(m.value)))
	}
	b.WriteString("$EndDescr\n")
}
