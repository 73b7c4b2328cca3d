package calc_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{-7, -7},
		{1.2246467991473532e-16, 0},
		{-1e-11, 0},
		{9e-11, 0},
		{1e-10, 1e-10},
		{0.1 + 0.2, 0.3},
		{1 - 0.9, 0.1},
		{123.4567890123456, 123.456789012},
		{2.0000000000004, 2},
		{1e300 * 1.0000000000001, 1e300},
		{123456789012345, 123456789012000},
	}
	for _, c := range cases {
		if r := calc.Round(c.in); r != c.want {
			t.Errorf("Round(%v) should be %v but is %v", c.in, c.want, r)
		}
	}
	if r := calc.Round(math.Copysign(0, -1)); math.Signbit(r) {
		t.Errorf("Round(-0) gave %v", r)
	}
	if r := calc.Round(-1e-12); math.Signbit(r) {
		t.Errorf("Round(-1e-12) gave %v", r)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{14, "14"},
		{-2, "-2"},
		{0.5, "0.5"},
		{0.1 + 0.2, "0.3"},
		{1.0 / 3, "0.333333333333"},
		{-2.0 / 3, "-0.666666666667"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-1e21, "-1e+21"},
		{1.5e22, "1.5e+22"},
		{1e100, "1e+100"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-8, "1.5e-8"},
		{2.5e-10, "2.5e-10"},
		{1e-11, "0"},
		{123456789012, "123456789012"},
		{1234567890123, "1234567890120"},
		{math.Pi, "3.14159265359"},
	}
	for _, c := range cases {
		if s := calc.Format(c.in); s != c.want {
			t.Errorf("Format(%v) should be %q but is %q", c.in, c.want, s)
		}
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&calc.NoSolutionError{Iterations: 100}, "No solution found"},
		{fmt.Errorf("solving: %w", &calc.NoSolutionError{}), "No solution found"},
		{&calc.DivisionByZeroError{X: 1}, "Error"},
		{&calc.DomainError{Func: "sqrt", X: -1}, "Error"},
		{&calc.ParseError{Col: 1, Msg: "no expression"}, "Error"},
		{errors.New("anything"), "Error"},
	}
	for _, c := range cases {
		if m := calc.Message(c.err); m != c.want {
			t.Errorf("Message(%v) should be %q but is %q", c.err, c.want, m)
		}
	}
}
