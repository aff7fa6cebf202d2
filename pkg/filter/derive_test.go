package filter

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bson/filtergen/pkg/errors"
)

func TestDeriveResistors(t *testing.T) {
	v, err := Derive(Params{Frequency: 1000, Gain: 4, Q: 0.7071, R1: 10000})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, v.R1)
	assert.Equal(t, 2500.0, v.R3)
	assert.Equal(t, 2000.0, v.R2)
}

func TestDeriveButterworthUnity(t *testing.T) {
	v, err := Derive(Params{Frequency: 1000, Gain: 1, Q: math.Sqrt2 / 2, R1: 1000})
	require.NoError(t, err)

	assert.InDelta(t, 500, v.R2, 1e-9)
	assert.InDelta(t, 450.16e-9, v.C1, 0.01e-9)
	assert.InDelta(t, 112.54e-9, v.C2, 0.01e-9)
	assert.InDelta(t, 4.0, v.C1/v.C2, 1e-9)
}

func TestDeriveRoundTrip(t *testing.T) {
	tests := []Params{
		{Frequency: 1000, Gain: 1, Q: 0.7071, R1: 1000},
		{Frequency: 10, Gain: 10, Q: 0.5, R1: 47000},
		{Frequency: 20000, Gain: 0.5, Q: 2.5, R1: 2200},
		{Frequency: 1e6, Gain: 100, Q: 0.9565, R1: 1e5},
	}
	for _, p := range tests {
		t.Run(fmt.Sprintf("f=%g,H=%g,Q=%g", p.Frequency, p.Gain, p.Q), func(t *testing.T) {
			v, err := Derive(p)
			require.NoError(t, err)

			f, h, q := v.Response()
			assert.InEpsilon(t, p.Frequency, f, 1e-9)
			assert.InEpsilon(t, p.Gain, h, 1e-9)
			assert.InEpsilon(t, p.Q, q, 1e-9)
			for _, x := range []float64{v.R1, v.R2, v.R3, v.C1, v.C2} {
				assert.Greater(t, x, 0.0)
			}
		})
	}
}

func TestDeriveRejectsBadParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero frequency", Params{Frequency: 0, Gain: 1, Q: 1, R1: 1000}},
		{"negative gain", Params{Frequency: 1000, Gain: -1, Q: 1, R1: 1000}},
		{"zero Q", Params{Frequency: 1000, Gain: 1, Q: 0, R1: 1000}},
		{"zero R1", Params{Frequency: 1000, Gain: 1, Q: 1, R1: 0}},
		{"NaN Q", Params{Frequency: 1000, Gain: 1, Q: math.NaN(), R1: 1000}},
		{"infinite frequency", Params{Frequency: math.Inf(1), Gain: 1, Q: 1, R1: 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
		})
	}
}

func TestLabels(t *testing.T) {
	l := Values{R1: 1000, R2: 500, R3: 4700, C1: 4.7525e-6, C2: 22.75e-12}.Labels()
	assert.Equal(t, Labels{R1: "1000", R2: "500", R3: "4.7k", C1: "4.75uF", C2: "22.7pF"}, l)
}

func TestAnnotation(t *testing.T) {
	p := Params{Frequency: 1000, Gain: 2, Q: 0.70710678}
	assert.Equal(t, "Low-pass filter: H=2, Q=0.7071, f0=1000Hz", p.Annotation())
}

func TestDeriveRejectsOverflow(t *testing.T) {
	tests := []Params{
		{Frequency: 1e160, Gain: 1, Q: 0.7071, R1: 1000},
		{Frequency: 1000, Gain: 1, Q: 1e200, R1: 1000},
		{Frequency: 1000, Gain: 1e-320, Q: 0.7071, R1: 1000},
	}
	for _, p := range tests {
		t.Run(fmt.Sprintf("f=%g,Q=%g,H0=%g", p.Frequency, p.Q, p.Gain), func(t *testing.T) {
			_, err := Derive(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
		})
	}
}
