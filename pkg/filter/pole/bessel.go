package pole

import "github.com/bson/filtergen/pkg/errors"

// Bessel is the maximally flat group delay response, normalized so the
// whole cascade is 3 dB down at the cutoff.
type Bessel struct{}

// Name returns "bessel".
func (Bessel) Name() string { return NameBessel }

// MaxOrder returns the largest tabulated order.
func (Bessel) MaxOrder() int { return maxBesselOrder }

// Poles returns the tabulated stages for order.
func (b Bessel) Poles(order int) ([]Pole, error) {
	if err := errors.ValidateOrder(order, b.MaxOrder()); err != nil {
		return nil, err
	}
	scale := besselScaleFactors[order]
	roots := besselDelayPoles[order]
	poles := make([]Pole, len(roots))
	for i, r := range roots {
		poles[i] = fromRoot(complex(real(r)/scale, imag(r)/scale))
	}
	return byQ(poles), nil
}

const maxBesselOrder = 10

// besselDelayPoles holds the delay-normalized poles of the even orders,
// one per conjugate pair (C. R. Bond, "Bessel Filter Constants").
var besselDelayPoles = map[int][]complex128{
	2: {complex(-1.5, 0.8660254038)},
	4: {complex(-2.1037893972, 2.6574180419), complex(-2.8962106028, 0.8672341289)},
	6: {
		complex(-2.5159322478, 4.4926729537),
		complex(-3.7357083563, 2.6262723114),
		complex(-4.2483593959, 0.8675096732),
	},
	8: {
		complex(-2.8389839177, 6.3539112470),
		complex(-4.3682892668, 4.4144425006),
		complex(-5.2048407906, 2.6161751538),
		complex(-5.5878860022, 0.8676144454),
	},
	10: {
		complex(-3.1088931555, 8.2324678728),
		complex(-4.8862195924, 6.2249854825),
		complex(-5.9675283089, 4.3849471924),
		complex(-6.6152909655, 2.6115679208),
		complex(-6.9220449048, 0.8676594792),
	},
}

// besselScaleFactors converts delay-normalized poles to -3 dB normalized
// ones.
var besselScaleFactors = map[int]float64{
	2:  1.36165412871613,
	4:  2.11391767490422,
	6:  2.70339506120292,
	8:  3.17961723751065,
	10: 3.59098059456916,
}
