package calc

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function. The function arguments are passed in
	// invoc, which has a length for which CanCall returned true. The context
	// supplies configuration such as the angle unit; functions may but
	// generally should not look up variables. Call may modify the elements of
	// invoc. An argument outside the function's domain should produce a
	// *DomainError. A NaN result is reported as a domain error on the first
	// argument, and an infinite result as an overflow.
	Call(ctx *Context, invoc []float64) (float64, error)

	// CanCall returns whether the function can be called with n arguments.
	// This controls how the expression parser handles instances of this
	// function:
	//
	// 	1.	If a bracketed list of n expressions follows a function, the
	//		parser treats it as an argument list if CanCall(n) and rejects
	//		it otherwise.
	//
	// 	2.	If a bare term follows a function and CanCall(1), then the parser
	//		treats the term as an argument to the function. E.g., "sqrt 2" is
	//		parsed as "sqrt(2)".
	CanCall(n int) bool
}

var globalfuncs = map[string]Func{
	"sin":   angular{total(math.Sin)},
	"cos":   angular{total(math.Cos)},
	"tan":   angular{tan},
	"asin":  inverse{restrict("asin", math.Asin, unit)},
	"acos":  inverse{restrict("acos", math.Acos, unit)},
	"atan":  inverse{total(math.Atan)},
	"sinh":  Monadic(total(math.Sinh)),
	"cosh":  Monadic(total(math.Cosh)),
	"tanh":  Monadic(total(math.Tanh)),
	"asinh": Monadic(total(math.Asinh)),
	"acosh": Monadic(restrict("acosh", math.Acosh, func(x float64) bool { return x >= 1 })),
	"atanh": Monadic(restrict("atanh", math.Atanh, func(x float64) bool { return -1 < x && x < 1 })),

	"exp":  Monadic(total(math.Exp)),
	"ln":   Monadic(restrict("ln", math.Log, positive)),
	"log":  logarithm{},
	"sqrt": Monadic(restrict("sqrt", math.Sqrt, nonnegative)),
	"√":    Monadic(restrict("√", math.Sqrt, nonnegative)),
	"cbrt": Monadic(total(math.Cbrt)),

	"abs":   Monadic(total(math.Abs)),
	"floor": Monadic(total(math.Floor)),
	"ceil":  Monadic(total(math.Ceil)),
	"round": Monadic(total(roundHalfUp)),
	"fact":  Monadic(factorial),
}

// globalconsts holds the named constants every new Context starts with.
var globalconsts = map[string]float64{
	"π":  constant(bigfloat.Pi),
	"pi": constant(bigfloat.Pi),
	"e":  constant(euler),
}

// DefaultFuncs returns a copy of the builtin function table.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// DefaultConstants returns a copy of the builtin constant table.
func DefaultConstants() map[string]float64 {
	m := make(map[string]float64, len(globalconsts))
	for k, v := range globalconsts {
		m[k] = v
	}
	return m
}

// constant computes a constant to 64 bits and rounds it to a float64.
func constant(f func(out *big.Float) *big.Float) float64 {
	r := new(big.Float).SetPrec(64)
	f(r)
	v, _ := r.Float64()
	return v
}

func euler(out *big.Float) *big.Float {
	var one big.Float
	one.SetFloat64(1)
	return bigfloat.Exp(out, &one)
}

type monadic struct {
	f func(x float64) (float64, error)
}

func (m monadic) Call(ctx *Context, invoc []float64) (float64, error) {
	return m.f(invoc[0])
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f should return a
// *DomainError for arguments outside its domain.
func Monadic(f func(x float64) (float64, error)) Func {
	return monadic{f}
}

// angular is a function of an angle. The argument is converted from the
// context's angle unit to radians.
type angular struct {
	f func(rad float64) (float64, error)
}

func (a angular) Call(ctx *Context, invoc []float64) (float64, error) {
	x := invoc[0]
	r := x
	if ctx.angle == Deg {
		r = x * (math.Pi / 180)
	}
	v, err := a.f(r)
	var de *DomainError
	if errors.As(err, &de) {
		// Report the argument as the caller wrote it.
		de.X = x
	}
	return v, err
}

func (a angular) CanCall(n int) bool {
	return n == 1
}

// inverse is a function producing an angle in radians. The result is
// converted to the context's angle unit.
type inverse struct {
	f func(x float64) (float64, error)
}

func (i inverse) Call(ctx *Context, invoc []float64) (float64, error) {
	v, err := i.f(invoc[0])
	if err != nil {
		return 0, err
	}
	if ctx.angle == Deg {
		v *= 180 / math.Pi
	}
	return v, nil
}

func (i inverse) CanCall(n int) bool {
	return n == 1
}

// logarithm is log(x) in base 10 or log(x, b) in base b.
type logarithm struct{}

func (logarithm) Call(ctx *Context, invoc []float64) (float64, error) {
	x := invoc[0]
	if !positive(x) {
		return 0, &DomainError{Func: "log", X: x}
	}
	if len(invoc) == 1 {
		return math.Log10(x), nil
	}
	b := invoc[1]
	if !positive(b) || b == 1 {
		return 0, &DomainError{Func: "log", X: b}
	}
	return math.Log(x) / math.Log(b), nil
}

func (logarithm) CanCall(n int) bool {
	return n == 1 || n == 2
}

// total adapts a function defined on every real.
func total(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// restrict adapts a function defined where ok holds.
func restrict(name string, f func(float64) float64, ok func(float64) bool) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if !ok(x) {
			return 0, &DomainError{Func: name, X: x}
		}
		return f(x), nil
	}
}

func positive(x float64) bool    { return x > 0 }
func nonnegative(x float64) bool { return x >= 0 }
func unit(x float64) bool        { return -1 <= x && x <= 1 }

// tan is undefined where the cosine vanishes, i.e. odd multiples of a right
// angle.
func tan(r float64) (float64, error) {
	if math.Abs(math.Cos(r)) < 1e-12 {
		return 0, &DomainError{Func: "tan", X: r}
	}
	return math.Tan(r), nil
}

// roundHalfUp rounds to the nearest integer with halves going toward +∞.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// factorial computes n! for non-negative integers n by iterating up from 1.
// The loop ends as soon as the product leaves the range of float64, so it
// runs at most 170 times.
func factorial(n float64) (float64, error) {
	if n < 0 || n != math.Trunc(n) || math.IsInf(n, 0) {
		return 0, &DomainError{Func: "fact", X: n}
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
		if math.IsInf(r, 0) {
			return 0, &OverflowError{Op: "fact"}
		}
	}
	return r, nil
}
