// Package filter synthesizes multiple-feedback (Rauch) low-pass stages and
// chains them into cascades.
//
// Derive turns a cutoff frequency, DC gain, Q and a scale resistor into
// the five passive values of one stage. NewStage lays those values out as
// a relocatable schematic subcircuit, and NewCascade builds a row of
// stages from a pole table.
package filter

import (
	"fmt"
	"math"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/siunit"
)

// DefaultR1 is the scale resistor used when none is given.
const DefaultR1 = 1000.0

// Params are the inputs of one stage.
type Params struct {
	Frequency float64 `json:"frequency"` // cutoff in Hz
	Gain      float64 `json:"gain"`      // DC gain magnitude H0
	Q         float64 `json:"q"`
	R1        float64 `json:"r1"` // feedback resistor in ohms
}

// Validate rejects non-positive or non-finite parameters.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"frequency", p.Frequency},
		{"gain", p.Gain},
		{"Q", p.Q},
		{"R1", p.R1},
	}
	for _, c := range checks {
		if err := errors.ValidatePositive(c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Values are the passive component values of a stage. R1 is the feedback
// resistor, R3 the input resistor, R2 the resistor into the inverting
// input, C1 the shunt capacitor and C2 the feedback capacitor.
type Values struct {
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	R3 float64 `json:"r3"`
	C1 float64 `json:"c1"`
	C2 float64 `json:"c2"`
}

// Derive computes the component values for p.
//
//	R3 = R1/H0, R2 = R1/(1+H0)
//	C1·C2 = 1/(w0²·R1·R2)
//	C1/C2 = Q²·(sqrt(R2/R1)·(1+H0) + sqrt(R1/R2))²
func Derive(p Params) (Values, error) {
	if err := p.Validate(); err != nil {
		return Values{}, err
	}

	r1 := p.R1
	r3 := r1 / p.Gain
	r2 := r1 / (1 + p.Gain)
	w0 := 2 * math.Pi * p.Frequency

	product := 1 / (w0 * w0 * r1 * r2)
	k := math.Sqrt(r2/r1)*(1+p.Gain) + math.Sqrt(r1/r2)
	ratio := p.Q * p.Q * k * k

	c1 := math.Sqrt(product * ratio)
	c2 := product / c1

	v := Values{R1: r1, R2: r2, R3: r3, C1: c1, C2: c2}
	if err := v.check(); err != nil {
		return Values{}, err
	}
	return v, nil
}

// check rejects values that over- or underflowed for extreme inputs.
func (v Values) check() error {
	for _, c := range []struct {
		name string
		x    float64
	}{{"R2", v.R2}, {"R3", v.R3}, {"C1", v.C1}, {"C2", v.C2}} {
		if math.IsNaN(c.x) || math.IsInf(c.x, 0) || c.x <= 0 {
			return errors.New(errors.ErrCodeInvalidParameter,
				"derived %s is %v: frequency, gain, Q and R1 are out of range", c.name, c.x)
		}
	}
	return nil
}

// Response recomputes the cutoff frequency, DC gain and Q realized by v.
func (v Values) Response() (frequency, gain, q float64) {
	w0 := 1 / math.Sqrt(v.R1*v.R2*v.C1*v.C2)
	gain = v.R1 / v.R3
	q = w0 * v.C1 / (1/v.R1 + 1/v.R2 + 1/v.R3)
	return w0 / (2 * math.Pi), gain, q
}

// Labels are the value strings printed on the schematic.
type Labels struct {
	R1 string `json:"r1"`
	R2 string `json:"r2"`
	R3 string `json:"r3"`
	C1 string `json:"c1"`
	C2 string `json:"c2"`
}

// Labels formats v with SI suffixes. Capacitors carry an "F" unit,
// resistors none.
func (v Values) Labels() Labels {
	return Labels{
		R1: siunit.Format(v.R1),
		R2: siunit.Format(v.R2),
		R3: siunit.Format(v.R3),
		C1: siunit.FormatUnit(v.C1, "F"),
		C2: siunit.FormatUnit(v.C2, "F"),
	}
}

// Annotation returns the default note text describing p.
func (p Params) Annotation() string {
	return fmt.Sprintf("Low-pass filter: H=%g, Q=%.4g, f0=%sHz", p.Gain, p.Q, siunit.Format(p.Frequency))
}
