package pole

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bson/filtergen/pkg/errors"
)

func qs(poles []Pole) []float64 {
	out := make([]float64, len(poles))
	for i, p := range poles {
		out[i] = p.Q
	}
	return out
}

func TestButterworth(t *testing.T) {
	tests := []struct {
		order int
		want  []float64
	}{
		{2, []float64{0.7071}},
		{4, []float64{0.5412, 1.3066}},
		{6, []float64{0.5176, 0.7071, 1.9319}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("order-%d", tt.order), func(t *testing.T) {
			poles, err := Butterworth{}.Poles(tt.order)
			require.NoError(t, err)
			require.Len(t, poles, tt.order/2)
			assert.InDeltaSlice(t, tt.want, qs(poles), 1e-4)
			for _, p := range poles {
				assert.Equal(t, 1.0, p.Scale)
			}
		})
	}
}

func TestBessel(t *testing.T) {
	poles, err := Bessel{}.Poles(2)
	require.NoError(t, err)
	require.Len(t, poles, 1)
	assert.InDelta(t, 0.5774, poles[0].Q, 1e-3)
	assert.InDelta(t, 1.2720, poles[0].Scale, 1e-3)

	poles, err = Bessel{}.Poles(4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5219, 0.8055}, qs(poles), 1e-3)
}

func TestChebyshevSecondOrder(t *testing.T) {
	// 1 dB ripple, second order: Q = 0.9565, natural frequency 1.0500.
	poles, err := Chebyshev{RippleDB: 1}.Poles(2)
	require.NoError(t, err)
	require.Len(t, poles, 1)
	assert.InDelta(t, 0.9565, poles[0].Q, 1e-3)
	assert.InDelta(t, 1.0500, poles[0].Scale, 1e-3)
}

func TestCutoffMagnitude(t *testing.T) {
	for _, name := range []string{NameButterworth, NameBessel} {
		fam, err := Lookup(name, 0)
		require.NoError(t, err)
		for order := 2; order <= fam.MaxOrder() && order <= 10; order += 2 {
			poles, err := fam.Poles(order)
			require.NoError(t, err)
			assert.InDelta(t, 1/math.Sqrt2, Magnitude(poles, 1), 1e-4, "%s order %d", name, order)
		}
	}

	// Even-order Chebyshev stages with unity DC gain sit at 0 dB on the
	// ripple band edge.
	for order := 2; order <= 8; order += 2 {
		poles, err := Chebyshev{RippleDB: 0.5}.Poles(order)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, Magnitude(poles, 1), 1e-9, "chebyshev order %d", order)
	}
}

func TestPolesSortedByQ(t *testing.T) {
	for _, fam := range []Family{Butterworth{}, Bessel{}, Chebyshev{RippleDB: 1}} {
		poles, err := fam.Poles(8)
		require.NoError(t, err)
		for i := 1; i < len(poles); i++ {
			assert.Less(t, poles[i-1].Q, poles[i].Q, "%s", fam.Name())
		}
	}
}

func TestInvalidOrders(t *testing.T) {
	for _, fam := range []Family{Butterworth{}, Bessel{}, Chebyshev{RippleDB: 1}} {
		for _, order := range []int{0, -2, 3, fam.MaxOrder() + 2} {
			_, err := fam.Poles(order)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidOrder), "%s order %d: %v", fam.Name(), order, err)
		}
	}
}

func TestLookup(t *testing.T) {
	fam, err := Lookup("Butterworth", 0)
	require.NoError(t, err)
	assert.Equal(t, NameButterworth, fam.Name())

	fam, err = Lookup("chebyshev", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultRippleDB, fam.(Chebyshev).RippleDB)

	_, err = Lookup("elliptic", 0)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownFamily))

	_, err = Lookup("chebyshev", -1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
}

func ExampleButterworth_Poles() {
	poles, _ := Butterworth{}.Poles(4)
	for _, p := range poles {
		fmt.Printf("Q=%.4f scale=%.1f\n", p.Q, p.Scale)
	}
	// Output:
	// Q=0.5412 scale=1.0
	// Q=1.3066 scale=1.0
}
