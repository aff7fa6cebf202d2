// Package siunit converts between numbers and the short engineering
// strings printed on schematic parts, such as "4.7k" or "15.9n".
//
// Format truncates rather than rounds: the scaled value is printed with
// twelve significant digits, cut to four characters, and a dangling decimal
// point is dropped. Values between 0.3 and 1300 are written without a
// suffix.
// Parse accepts what Format produces plus plain decimal numbers.
package siunit

import (
	"math"
	"strconv"
	"strings"

	"github.com/bson/filtergen/pkg/errors"
)

// Suffixes lists the recognized multipliers from 1e6 down to 1e-12. The
// empty entry stands for 1.
var Suffixes = []string{"M", "k", "", "m", "u", "n", "p"}

const (
	// width is the number of characters kept from the mantissa.
	width = 4

	biasLow  = 0.3
	biasHigh = 1300.0
)

// Format renders n with an SI suffix. Negative values carry a leading
// minus sign on the magnitude's rendering; zero is "0".
func Format(n float64) string {
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0):
		return general(n)
	case n == 0:
		return "0"
	case n < 0:
		return "-" + Format(-n)
	}

	if n >= biasLow && n <= biasHigh {
		return truncate(general(n), width)
	}

	wt := 1e6
	for _, suffix := range Suffixes {
		if n >= wt/10 {
			return truncate(general(n/wt), width) + suffix
		}
		wt /= 1000
	}

	// Anything below 0.1p stays in pico with three decimals.
	return general(math.Round(n*1e12*1000)/1000) + "p"
}

// FormatUnit renders n with an SI suffix followed by unit, as in "10.5nF".
func FormatUnit(n float64, unit string) string {
	return Format(n) + unit
}

// Parse reads a number with an optional trailing SI suffix. "µ" is
// accepted as an alias for "u".
func Parse(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if strings.HasSuffix(t, "µ") && len(t) > len("µ") {
		t = strings.TrimSuffix(t, "µ") + "u"
	}

	mult := 1.0
	if len(t) >= 2 {
		if i := suffixIndex(t[len(t)-1:]); i >= 0 {
			mult = math.Pow(1e3, float64(2-i))
			t = t[:len(t)-1]
		}
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidValue, err, "malformed value %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeInvalidValue, "value %q is not finite", s)
	}
	return v * mult, nil
}

// ParseWithUnit strips a trailing unit (such as "F", "Hz" or "ohm") before
// parsing. Text without the unit is parsed as is.
func ParseWithUnit(s, unit string) (float64, error) {
	t := strings.TrimSpace(s)
	if unit != "" && strings.HasSuffix(t, unit) && len(t) > len(unit) {
		t = strings.TrimSpace(strings.TrimSuffix(t, unit))
	}
	return Parse(t)
}

// ParsePercentOf parses s as a value, or, when it ends in "%", as that
// percentage of ref.
func ParsePercentOf(s string, ref float64) (float64, error) {
	t := strings.TrimSpace(s)
	if strings.HasSuffix(t, "%") {
		v, err := Parse(strings.TrimSuffix(t, "%"))
		if err != nil {
			return 0, err
		}
		return v / 100.0 * ref, nil
	}
	return Parse(t)
}

func suffixIndex(s string) int {
	for i, suffix := range Suffixes {
		if suffix != "" && suffix == s {
			return i
		}
	}
	return -1
}

// general renders x with twelve significant digits in %g style. Integral
// results gain a trailing ".0" so that 10 reads "10.0".
func general(x float64) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(x, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return strings.TrimSuffix(s, ".")
}
