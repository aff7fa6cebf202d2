package schematic

import (
	"sort"

	"github.com/bson/filtergen/pkg/errors"
)

// PageOrientation selects how the page table dimensions are applied.
type PageOrientation int

// Page orientations. Landscape swaps the table's width and height.
const (
	Landscape PageOrientation = iota
	Portrait
)

// Page is a named sheet size in mils.
type Page struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// pageSizes lists the supported sizes in portrait order (width, height).
// Ax are metric sizes, ArchX the ANSI/ASME Y14.1 drafting sizes.
var pageSizes = map[string][2]int{
	"A4":        {8268, 11693},
	"A3":        {11692, 16535},
	"A2":        {16535, 23385},
	"A1":        {23385, 33110},
	"A0":        {33110, 46811},
	"US-Letter": {8500, 11000},
	"US-Legal":  {8500, 14000},
	"US-Ledger": {11000, 17000},
	"ArchA":     {9000, 12000},
	"ArchB":     {12000, 18000},
	"ArchC":     {18000, 24000},
	"ArchD":     {24000, 36000},
	"ArchE1":    {30000, 42000},
	"ArchE":     {36000, 48000},
}

// DefaultPage is the page used when none is named.
const DefaultPage = "A4"

// LookupPage returns the named page in the given orientation.
func LookupPage(name string, o PageOrientation) (Page, error) {
	size, ok := pageSizes[name]
	if !ok {
		return Page{}, errors.New(errors.ErrCodeUnknownPageSize, "unknown page size %q", name)
	}
	p := Page{Name: name, Width: size[0], Height: size[1]}
	if o == Landscape {
		p.Width, p.Height = p.Height, p.Width
	}
	return p, nil
}

// PageNames returns the supported page names, smallest area first.
func PageNames() []string {
	names := make([]string, 0, len(pageSizes))
	for name := range pageSizes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := area(names[i]), area(names[j])
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return names
}

func area(name string) int {
	s := pageSizes[name]
	return s[0] * s[1]
}

// FitPage returns the smallest landscape page that holds a width x height
// drawing. Drawings larger than every page get the largest one.
func FitPage(width, height int) Page {
	names := PageNames()
	for _, name := range names {
		p, _ := LookupPage(name, Landscape)
		if width <= p.Width && height <= p.Height {
			return p
		}
	}
	p, _ := LookupPage(names[len(names)-1], Landscape)
	return p
}
