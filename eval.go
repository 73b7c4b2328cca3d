package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// AngleUnit is the unit in which trigonometric functions take their
// arguments and inverse trigonometric functions produce their results.
type AngleUnit int8

const (
	// Deg measures angles in degrees. It is the zero value.
	Deg AngleUnit = iota
	// Rad measures angles in radians.
	Rad
)

func (u AngleUnit) String() string {
	switch u {
	case Deg:
		return "deg"
	case Rad:
		return "rad"
	default:
		return "AngleUnit(" + strconv.Itoa(int(u)) + ")"
	}
}

// ParseAngleUnit parses "deg" or "rad", or the long forms "degrees" and
// "radians", ignoring case.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToLower(s) {
	case "deg", "degrees":
		return Deg, nil
	case "rad", "radians":
		return Rad, nil
	default:
		return Deg, errors.New("calc: unknown angle unit " + strconv.Quote(s))
	}
}

// Context is a context for evaluating expressions. It holds the values of
// constants and variables and the angle unit. A Context may be used by
// several goroutines at once as long as none of them calls Set.
type Context struct {
	names map[string]float64
	angle AngleUnit
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt  map[string]float64
	angleopt AngleUnit
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (angleopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// Angle sets the angle unit of the context.
func Angle(u AngleUnit) ContextOption {
	return angleopt(u)
}

// NewContext creates a new evaluation context holding the default constants.
// If no angle unit is given, the default is Deg.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{names: globalconsts, angle: Deg}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]float64, len(ctx.names)),
		angle: ctx.angle,
	}
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case angleopt:
			n.angle = AngleUnit(opt)
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float64) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]float64)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable or constant and whether it is
// defined in the context.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Unit returns the angle unit of the context.
func (ctx *Context) Unit() AngleUnit {
	return ctx.angle
}

// Eval evaluates an expression and returns its result after Round. If an
// error occurs, e.g. a missing variable definition or an argument to a
// function is outside the function's domain, then the result is 0 with the
// error; there are no partial results.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	v, err := ctx.eval(e)
	if err != nil {
		return 0, err
	}
	return Round(v), nil
}

// eval evaluates an expression without rounding the result.
func (ctx *Context) eval(e *Expr) (float64, error) {
	return e.n.eval(ctx)
}

// eval computes the node's value.
func (n *node) eval(ctx *Context) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := ctx.names[n.name]
		if !ok {
			return 0, &UnknownIdentifierError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		invoc := make([]float64, len(n.args))
		for i, arg := range n.args {
			v, err := arg.eval(ctx)
			if err != nil {
				return 0, err
			}
			invoc[i] = v
		}
		// Keep the first argument for error reports, since Call may modify
		// invoc.
		var x float64
		if len(invoc) > 0 {
			x = invoc[0]
		}
		r, err := n.fn.Call(ctx, invoc)
		if err != nil {
			return 0, err
		}
		switch {
		case math.IsNaN(r):
			return 0, &DomainError{Func: n.name, X: x}
		case math.IsInf(r, 0):
			return 0, &OverflowError{Op: n.name}
		}
		return r, nil
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeNop:
		return n.left.eval(ctx)
	case nodePct:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return arith(n.kind, l, r)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// arith applies a binary operator. Results that would be NaN or infinite
// become errors.
func arith(op nodeKind, l, r float64) (float64, error) {
	var v float64
	switch op {
	case nodeAdd:
		v = l + r
	case nodeSub:
		v = l - r
	case nodeMul:
		v = l * r
	case nodeDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{X: l}
		}
		v = l / r
	case nodePow:
		if l == 0 && r < 0 {
			// 0^-n = 1/0^n
			return 0, &DivisionByZeroError{X: 1}
		}
		v = math.Pow(l, r)
	default:
		panic("calc: invalid binary operator " + op.String())
	}
	switch {
	case math.IsNaN(v):
		return 0, &DomainError{Func: opname(op), X: l}
	case math.IsInf(v, 0):
		return 0, &OverflowError{Op: opname(op)}
	}
	return v, nil
}

func opname(op nodeKind) string {
	switch op {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "^"
	default:
		return op.String()
	}
}

// Evaluate parses and evaluates a token sequence using exactly the given
// function and constant tables, e.g. DefaultFuncs() and DefaultConstants(),
// with trigonometric functions using the given angle unit.
func Evaluate(tokens []Token, funcs map[string]Func, consts map[string]float64, angle AngleUnit) (float64, error) {
	e, err := ParseTokens(tokens, DisableDefaultFuncs(), ParseFuncs(funcs))
	if err != nil {
		return 0, err
	}
	ctx := Context{names: consts, angle: angle}
	return ctx.Clone().Eval(e)
}

// EvalString is a shortcut to parse an expression and return its result using the
// default functions.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(a)
}
