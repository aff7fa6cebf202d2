// Package geom holds the coordinate primitives shared by the schematic
// model: integer points in mils and the fixed set of component
// orientation transforms.
package geom

import "fmt"

// Point is a position in mils. Points are values; every operation returns
// a new Point.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Flip swaps the axes of p.
func (p Point) Flip() Point {
	return Point{X: p.Y, Y: p.X}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Orientation is the 2x2 transform matrix written into a component
// record, stored row-major.
type Orientation [4]int

// The three orientations used by the schematic model.
var (
	Horizontal   = Orientation{0, 1, 1, 0}
	Vertical     = Orientation{1, 0, 0, -1}
	VerticalFlip = Orientation{-1, 0, 0, 1}
)

// IsVertical reports whether o is one of the vertical transforms. Field
// text on vertical components is laid out horizontally and vice versa.
func (o Orientation) IsVertical() bool {
	return o == Vertical || o == VerticalFlip
}

// Axis is the unit direction, scaled by step, from a two-terminal
// component's anchor to its second pin.
func (o Orientation) Axis(step int) Point {
	return Point{X: o[1] * step, Y: o[0] * step}
}

// String returns the orientation name, or the raw matrix for transforms
// outside the named set.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case VerticalFlip:
		return "vertical-flip"
	}
	return fmt.Sprintf("%v", [4]int(o))
}
