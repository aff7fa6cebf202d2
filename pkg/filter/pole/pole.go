// Package pole provides the classical pole tables used to split a
// higher-order low-pass response into second-order stages.
//
// Orders are filter orders (number of poles). A stage realizes one
// conjugate pair, so only even orders are accepted and Poles returns
// order/2 entries, lowest Q first. Each entry gives the stage Q and the
// factor by which the stage's natural frequency differs from the overall
// cutoff.
package pole

import (
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/bson/filtergen/pkg/errors"
)

// MaxOrder is the largest order accepted by the closed-form families.
const MaxOrder = 20

// DefaultRippleDB is the passband ripple used for Chebyshev when none is
// given.
const DefaultRippleDB = 1.0

// Pole describes one second-order stage.
type Pole struct {
	Q     float64 `json:"q"`
	Scale float64 `json:"scale"`
}

// Family is a filter approximation.
type Family interface {
	Name() string
	MaxOrder() int
	Poles(order int) ([]Pole, error)
}

// Family names accepted by Lookup.
const (
	NameButterworth = "butterworth"
	NameBessel      = "bessel"
	NameChebyshev   = "chebyshev"
)

// Names returns the supported family names.
func Names() []string {
	return []string{NameButterworth, NameBessel, NameChebyshev}
}

// Lookup returns the family with the given name, ignoring case. rippleDB
// only applies to Chebyshev; zero selects DefaultRippleDB.
func Lookup(name string, rippleDB float64) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameButterworth:
		return Butterworth{}, nil
	case NameBessel:
		return Bessel{}, nil
	case NameChebyshev, "cheby", "chebyshev1":
		if rippleDB == 0 {
			rippleDB = DefaultRippleDB
		}
		if err := errors.ValidatePositive("ripple", rippleDB); err != nil {
			return nil, err
		}
		return Chebyshev{RippleDB: rippleDB}, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownFamily,
		"unknown filter family %q (must be one of: %s)", name, strings.Join(Names(), ", "))
}

// Magnitude returns the gain at normalized frequency w of a cascade of
// unity-DC-gain stages built from poles.
func Magnitude(poles []Pole, w float64) float64 {
	m := 1.0
	for _, p := range poles {
		w0 := p.Scale
		re := w0*w0 - w*w
		im := w * w0 / p.Q
		m *= w0 * w0 / math.Hypot(re, im)
	}
	return m
}

// fromRoot converts a left-half-plane root into stage parameters.
func fromRoot(p complex128) Pole {
	mag := cmplx.Abs(p)
	return Pole{Q: mag / (-2 * real(p)), Scale: mag}
}

func byQ(poles []Pole) []Pole {
	sort.SliceStable(poles, func(i, j int) bool { return poles[i].Q < poles[j].Q })
	return poles
}

// Butterworth is the maximally flat magnitude response. All stages share
// the cutoff frequency.
type Butterworth struct{}

// Name returns "butterworth".
func (Butterworth) Name() string { return NameButterworth }

// MaxOrder returns MaxOrder.
func (Butterworth) MaxOrder() int { return MaxOrder }

// Poles returns the stage Q values 1/(2 cos θ) for pole angles spaced
// π/(2n) apart starting at π/(4n).
func (b Butterworth) Poles(order int) ([]Pole, error) {
	if err := errors.ValidateOrder(order, b.MaxOrder()); err != nil {
		return nil, err
	}
	n := order / 2
	step := math.Pi / float64(2*n)
	poles := make([]Pole, n)
	for k := range poles {
		theta := step/2 + float64(k)*step
		poles[k] = Pole{Q: 1 / (2 * math.Cos(theta)), Scale: 1}
	}
	return poles, nil
}

// Chebyshev is the type I equal-ripple response. The cutoff is the edge of
// the ripple band.
type Chebyshev struct {
	RippleDB float64
}

// Name returns "chebyshev".
func (Chebyshev) Name() string { return NameChebyshev }

// MaxOrder returns MaxOrder.
func (Chebyshev) MaxOrder() int { return MaxOrder }

// Poles returns the stages of the ripple-band-normalized prototype.
func (c Chebyshev) Poles(order int) ([]Pole, error) {
	if err := errors.ValidateOrder(order, c.MaxOrder()); err != nil {
		return nil, err
	}
	if err := errors.ValidatePositive("ripple", c.RippleDB); err != nil {
		return nil, err
	}
	eps := math.Sqrt(math.Pow(10, c.RippleDB/10) - 1)
	a := math.Asinh(1/eps) / float64(order)

	poles := make([]Pole, 0, order/2)
	for k := 1; k <= order/2; k++ {
		theta := math.Pi * float64(2*k-1) / float64(2*order)
		root := complex(-math.Sinh(a)*math.Sin(theta), math.Cosh(a)*math.Cos(theta))
		poles = append(poles, fromRoot(root))
	}
	return byQ(poles), nil
}
