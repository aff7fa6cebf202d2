package geom

import "testing"

func TestPointArithmetic(t *testing.T) {
	p := Pt(100, -50)
	q := Pt(25, 75)

	if got := p.Add(q); got != Pt(125, 25) {
		t.Errorf("Add = %v, want (125, 25)", got)
	}
	if got := p.Sub(q); got != Pt(75, -125) {
		t.Errorf("Sub = %v, want (75, -125)", got)
	}
	if got := p.Flip(); got != Pt(-50, 100) {
		t.Errorf("Flip = %v, want (-50, 100)", got)
	}
	if p != Pt(100, -50) {
		t.Error("operations must not modify the receiver")
	}
}

func TestOrientationAxis(t *testing.T) {
	tests := []struct {
		name     string
		o        Orientation
		want     Point
		vertical bool
	}{
		{"horizontal", Horizontal, Pt(100, 0), false},
		{"vertical", Vertical, Pt(0, 100), true},
		{"vertical-flip", VerticalFlip, Pt(0, -100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.Axis(100); got != tt.want {
				t.Errorf("Axis(100) = %v, want %v", got, tt.want)
			}
			if got := tt.o.IsVertical(); got != tt.vertical {
				t.Errorf("IsVertical() = %v, want %v", got, tt.vertical)
			}
			if got := tt.o.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}
