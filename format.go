package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Round post-processes a result for display. A non-integer whose magnitude
// is below 1e-10 becomes exactly 0, which cancels noise like sin(π); then the
// value is rounded to 12 significant digits. Negative zero becomes zero.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if v != math.Trunc(v) && math.Abs(v) < 1e-10 {
		return 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		return 0
	}
	return r
}

// Format rounds v with Round and formats it as the shortest decimal that
// parses back to the rounded value. Magnitudes from 1e-6 up to but excluding
// 1e21 are written without an exponent; others use exponent notation like
// "1e+21" and "1e-7". The result is valid input to Parse.
func Format(v float64) string {
	v = Round(v)
	a := math.Abs(v)
	if a == 0 || (a >= 1e-6 && a < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	// Go pads exponents to two digits.
	s = strings.Replace(s, "e+0", "e+", 1)
	s = strings.Replace(s, "e-0", "e-", 1)
	return s
}

// Message returns the text a calculator display shows for an error:
// "No solution found" when the equation solver does not converge and "Error"
// for everything else.
func Message(err error) string {
	if errors.As(err, new(*NoSolutionError)) {
		return "No solution found"
	}
	return "Error"
}
