package calc

import (
	"math"
	"strconv"
	"strings"
)

// Var is the name of the free variable in equations and plotted expressions.
const Var = "x"

const (
	// SolveTolerance is the magnitude below which a function value counts as
	// a root.
	SolveTolerance = 1e-7
	// SolveIterations is the maximum number of secant steps Solve takes.
	SolveIterations = 100
)

// NoSolutionError is returned from Solve when the secant method does not find
// a root.
type NoSolutionError struct {
	// Iterations is the number of steps taken before giving up.
	Iterations int
}

func (err *NoSolutionError) Error() string {
	return "no solution found after " + strconv.Itoa(err.Iterations) + " iterations"
}

// Solve finds a value of x satisfying an equation by the secant method,
// starting from x = 0 and x = 1. An equation "lhs = rhs" is solved as
// lhs - (rhs) = 0; an expression without "=" is solved as expr = 0.
// Evaluation errors at any iterate are returned as they are. If no root is
// found within SolveIterations steps, or the secant becomes horizontal, the
// error is *NoSolutionError.
func Solve(equation string, opts ...ContextOption) (float64, error) {
	return NewContext(opts...).Solve(equation)
}

// Solve solves an equation like the package-level Solve, using the names and
// angle unit of ctx. ctx itself is not modified.
func (ctx *Context) Solve(equation string) (float64, error) {
	lsrc := equation
	k := strings.IndexByte(equation, '=')
	if k >= 0 {
		lsrc = equation[:k]
	}
	lhs, err := Parse(lsrc)
	if err != nil {
		return 0, err
	}
	var rhs *Expr
	if k >= 0 {
		// A second = fails to lex here.
		rhs, err = Parse(equation[k+1:])
		if err != nil {
			return 0, err
		}
	}
	ctx = ctx.Clone()
	f := func(x float64) (float64, error) {
		ctx.Set(Var, x)
		l, err := ctx.eval(lhs)
		if err != nil || rhs == nil {
			return l, err
		}
		r, err := ctx.eval(rhs)
		if err != nil {
			return 0, err
		}
		return arith(nodeSub, l, r)
	}

	x0, x1 := 0.0, 1.0
	for i := 0; i < SolveIterations; i++ {
		fx0, err := f(x0)
		if err != nil {
			return 0, err
		}
		if math.Abs(fx0) < SolveTolerance {
			return x0, nil
		}
		fx1, err := f(x1)
		if err != nil {
			return 0, err
		}
		if fx1 == fx0 {
			return 0, &NoSolutionError{Iterations: i + 1}
		}
		x2 := x1 - fx1*(x1-x0)/(fx1-fx0)
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, &NoSolutionError{Iterations: i + 1}
		}
		x0, x1 = x1, x2
	}
	return 0, &NoSolutionError{Iterations: SolveIterations}
}
