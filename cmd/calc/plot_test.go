package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestWritePlot(t *testing.T) {
	cases := []struct {
		name     string
		srcs     []string
		min, max float64
		lines    int
		dots     int
	}{
		{"square", []string{"x^2"}, -1, 1, 1, 0},
		{"recip", []string{"1/x"}, -1, 1, 2, 0},
		{"sqrt", []string{"sqrt(x)"}, -1, 1, 1, 0},
		{"two", []string{"x", "-x"}, -2, 2, 2, 0},
		{"const", []string{"3"}, 0, 1, 1, 0},
		{"nowhere", []string{"sqrt(x)"}, -2, -1, 0, 0},
		{"isolated", []string{"sqrt(x)+sqrt(-x)"}, -1, 1, 0, 1},
	}
	ctx := calc.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b bytes.Buffer
			if err := writePlot(&b, ctx, c.srcs, c.min, c.max); err != nil {
				t.Fatal(err)
			}
			out := b.String()
			if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
				t.Errorf("not an svg document:\n%s", out)
			}
			if n := strings.Count(out, "<polyline"); n != c.lines {
				t.Errorf("wrong number of polylines: want %d, got %d", c.lines, n)
			}
			if n := strings.Count(out, "<circle"); n != c.dots {
				t.Errorf("wrong number of dots: want %d, got %d", c.dots, n)
			}
		})
	}
}

func TestWritePlotErrors(t *testing.T) {
	cases := []struct {
		name     string
		srcs     []string
		min, max float64
	}{
		{"none", nil, -1, 1},
		{"empty", []string{"x"}, 1, 1},
		{"backward", []string{"x"}, 1, -1},
		{"malformed", []string{"x^"}, -1, 1},
		{"huge", []string{"x"}, 0, 1e12},
	}
	ctx := calc.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b bytes.Buffer
			if err := writePlot(&b, ctx, c.srcs, c.min, c.max); err == nil {
				t.Error("no error")
			}
		})
	}
}

func TestRuns(t *testing.T) {
	pts := func(xs ...float64) []calc.Point {
		r := make([]calc.Point, len(xs))
		for i, x := range xs {
			r[i] = calc.Point{X: x}
		}
		return r
	}
	cases := []struct {
		name string
		pts  []calc.Point
		want []int
	}{
		{"none", nil, nil},
		{"one", pts(0), []int{1}},
		{"contiguous", pts(0, 0.1, 0.2, 0.3), []int{4}},
		{"gap", pts(-0.2, -0.1, 0.1, 0.2), []int{2, 2}},
		{"gaps", pts(0, 0.2, 0.3, 0.5), []int{1, 2, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := runs(c.pts)
			if len(r) != len(c.want) {
				t.Fatalf("wrong number of runs: want %v, got %v", c.want, r)
			}
			for i, run := range r {
				if len(run) != c.want[i] {
					t.Errorf("wrong run lengths: want %v, got %v", c.want, r)
				}
			}
		})
	}
}
