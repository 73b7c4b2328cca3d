package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, angle, plot  string
		with                 [][2]string
		nl, echo, solve, rpn bool
		interactive          bool
		min, max             float64
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&angle, "angle", "deg", "angle unit for trigonometric functions, deg or rad")
	flag.StringVar(&plot, "plot", "", "write an SVG plot of the expressions in x to this file")
	flag.Float64Var(&min, "min", -10, "least x to plot")
	flag.Float64Var(&max, "max", 10, "greatest x to plot")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&solve, "solve", false, "solve each input as an equation in x")
	flag.BoolVar(&rpn, "rpn", false, "treat arguments as RPN words")
	flag.BoolVar(&interactive, "i", false, "start an interactive session")
	flag.Parse()

	unit, err := calc.ParseAngleUnit(angle)
	if err != nil {
		log.Fatal(err)
	}
	ctx := calc.NewContext(calc.Angle(unit))
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		var r float64
		a, err := calc.Parse(vl)
		if err == nil {
			r, err = ctx.Eval(a)
		}
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		ctx.Set(nm, r)
	}

	switch {
	case interactive:
		s := newSession(ctx, os.Stdout)
		if err := s.run(os.Stdin); err != nil {
			log.Fatal(err)
		}
		return
	case rpn:
		stack, err := rpnwords(ctx, nil, flag.Args())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(fmtstack(stack))
		return
	}

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		srcs, err = readexprs(f, nl)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}
	srcs = append(srcs, flag.Args()...)

	if plot != "" {
		out, err := os.Create(plot)
		if err != nil {
			log.Fatal(err)
		}
		if err := writePlot(out, ctx, srcs, min, max); err != nil {
			log.Fatal(err)
		}
		if err := out.Close(); err != nil {
			log.Fatal(err)
		}
		return
	}

	for _, src := range srcs {
		if solve {
			v, err := ctx.Solve(src)
			report(os.Stdout, src, v, err)
			continue
		}
		a, err := calc.Parse(src)
		if err != nil {
			report(os.Stdout, src, 0, err)
			continue
		}
		if echo {
			fmt.Printf("%v : ", a)
		}
		v, err := ctx.Eval(a)
		report(os.Stdout, src, v, err)
	}
}

// report prints a result, or the display message for an error with the
// detail going to the log.
func report(w io.Writer, src string, v float64, err error) {
	if err != nil {
		log.Printf("%s: %v", strings.TrimSpace(src), err)
		fmt.Fprintln(w, calc.Message(err))
		return
	}
	fmt.Fprintln(w, calc.Format(v))
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

// readexprs reads the whole input as one expression, or each non-blank line
// as its own expression if nl is true.
func readexprs(r io.Reader, nl bool) ([]string, error) {
	if !nl {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			srcs = append(srcs, sc.Text())
		}
	}
	return srcs, sc.Err()
}
