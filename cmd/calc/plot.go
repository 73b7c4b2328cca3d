package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/zephyrtronium/calc"
)

const (
	plotWidth  = 640
	plotHeight = 480
	plotMargin = 40
)

var plotColors = []string{"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e"}

// writePlot samples each expression in x over [min, max] and draws all of
// them on one set of axes as an SVG document.
func writePlot(w io.Writer, ctx *calc.Context, srcs []string, min, max float64) error {
	if len(srcs) == 0 {
		return errors.New("nothing to plot")
	}
	if !(min < max) {
		return fmt.Errorf("empty plot range [%v, %v]", min, max)
	}
	curves := make([][]calc.Point, len(srcs))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, src := range srcs {
		pts, err := ctx.Sample(src, min, max)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", strings.TrimSpace(src), err)
		}
		curves[i] = pts
		for _, p := range pts {
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
	}
	switch {
	case lo > hi:
		// Nothing was defined anywhere.
		lo, hi = -1, 1
	case hi-lo < 1e-9:
		lo--
		hi++
	}
	sx := func(x float64) int {
		return plotMargin + int(math.Round((x-min)/(max-min)*(plotWidth-2*plotMargin)))
	}
	sy := func(y float64) int {
		return plotHeight - plotMargin - int(math.Round((y-lo)/(hi-lo)*(plotHeight-2*plotMargin)))
	}

	b := bufio.NewWriter(w)
	canvas := svg.New(b)
	canvas.Start(plotWidth, plotHeight)
	canvas.Title(strings.Join(srcs, "; "))
	canvas.Rect(0, 0, plotWidth, plotHeight, "fill:white")
	canvas.Gstyle("stroke:gray;stroke-width:1")
	if min <= 0 && 0 <= max {
		canvas.Line(sx(0), plotMargin, sx(0), plotHeight-plotMargin)
	}
	if lo <= 0 && 0 <= hi {
		canvas.Line(plotMargin, sy(0), plotWidth-plotMargin, sy(0))
	}
	canvas.Gend()
	label := "font-family:sans-serif;font-size:12px;fill:black"
	canvas.Text(plotMargin, plotHeight-plotMargin/3, calc.Format(min), label)
	canvas.Text(plotWidth-plotMargin, plotHeight-plotMargin/3, calc.Format(max), label+";text-anchor:end")
	canvas.Text(plotMargin/4, plotMargin, calc.Format(hi), label)
	canvas.Text(plotMargin/4, plotHeight-plotMargin, calc.Format(lo), label)
	for i, pts := range curves {
		color := plotColors[i%len(plotColors)]
		for _, run := range runs(pts) {
			if len(run) == 1 {
				canvas.Circle(sx(run[0].X), sy(run[0].Y), 2, "fill:"+color)
				continue
			}
			xs := make([]int, len(run))
			ys := make([]int, len(run))
			for k, p := range run {
				xs[k], ys[k] = sx(p.X), sy(p.Y)
			}
			canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+color)
		}
	}
	canvas.End()
	return b.Flush()
}

// runs splits sampled points where the sampler skipped x values, so that a
// curve is not drawn across the places where it is undefined.
func runs(pts []calc.Point) [][]calc.Point {
	var r [][]calc.Point
	start := 0
	for i := 1; i <= len(pts); i++ {
		if i == len(pts) || pts[i].X-pts[i-1].X > 1.5*calc.SampleStep {
			r = append(r, pts[start:i])
			start = i
		}
	}
	return r
}
