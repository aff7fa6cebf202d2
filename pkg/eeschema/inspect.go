package eeschema

import (
	"sort"
	"strings"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/schematic"
)

// Summary counts what a sheet contains.
type Summary struct {
	Page       string          `json:"page"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Title      string          `json:"title,omitempty"`
	Components int             `json:"components"`
	Wires      int             `json:"wires"`
	Lines      int             `json:"lines"`
	Junctions  int             `json:"junctions"`
	Notes      int             `json:"notes"`
	Nets       []string        `json:"nets,omitempty"`
	Parts      schematic.Parts `json:"parts,omitempty"`
}

// Components returns every component block in file order.
func (f *File) Components() []*Comp {
	var out []*Comp
	for _, r := range f.Records {
		if r.Comp != nil {
			out = append(out, r.Comp)
		}
	}
	return out
}

// Summarize counts the records of f and collects its parts list and the
// names of its global labels.
func (f *File) Summarize() Summary {
	s := Summary{
		Page:   f.Descr.Page,
		Width:  f.Descr.Width,
		Height: f.Descr.Height,
		Title:  f.Descr.Title("Title"),
	}
	nets := map[string]bool{}
	for _, r := range f.Records {
		switch {
		case r.Comp != nil:
			s.Components++
			if k, ok := r.Comp.Kind(); ok && k.Valued() {
				if s.Parts == nil {
					s.Parts = schematic.Parts{}
				}
				s.Parts[r.Comp.Ref()] = r.Comp.Value()
			}
		case r.Wire != nil && r.Wire.Notes():
			s.Lines++
		case r.Wire != nil:
			s.Wires++
		case r.Connection != nil:
			s.Junctions++
		case r.Text != nil && r.Text.Kind == "Notes":
			s.Notes++
		case r.Text != nil:
			nets[r.Text.Body] = true
		}
	}
	for n := range nets {
		s.Nets = append(s.Nets, n)
	}
	sort.Strings(s.Nets)
	return s
}

// Validate checks that component unique IDs are distinct and that no two
// annotated components share a reference.
func (f *File) Validate() error {
	uids := map[string]bool{}
	refs := map[string]bool{}
	for _, c := range f.Components() {
		if uids[c.UID] {
			return errors.New(errors.ErrCodeInvalidDesign, "duplicate unique id %s", c.UID)
		}
		uids[c.UID] = true

		ref := c.Ref()
		if strings.HasSuffix(ref, "?") {
			continue
		}
		if refs[ref] {
			return errors.New(errors.ErrCodeInvalidDesign, "duplicate reference %s", ref)
		}
		refs[ref] = true
	}
	return nil
}
