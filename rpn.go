package calc

import "strconv"

// EvalRPN applies a binary operator to the top two values of an RPN stack.
// The top of the stack is the right operand b, and the value below it is the
// left operand a. The result is a new stack with a op b in place of the two
// operands, along with a op b itself. The input stack is never modified; on
// error, the returned stack is nil and the caller's stack remains valid.
//
// The operators are + - * / ^ and the aliases × ÷. A stack with fewer than
// two values produces *InsufficientOperandsError, and an unknown operator
// produces *ParseError. Arithmetic errors are the same as for expressions.
func EvalRPN(stack []float64, op string) ([]float64, float64, error) {
	if len(stack) < 2 {
		return nil, 0, &InsufficientOperandsError{Have: len(stack), Need: 2}
	}
	prec := binop(op)
	if prec.op == nodeNone {
		return nil, 0, &ParseError{Token: op, Msg: "unknown binary operator " + strconv.Quote(op)}
	}
	k := len(stack) - 2
	v, err := arith(prec.op, stack[k], stack[k+1])
	if err != nil {
		return nil, 0, err
	}
	r := make([]float64, k+1)
	copy(r, stack[:k])
	r[k] = v
	return r, v, nil
}

// ApplyRPN replaces the top of an RPN stack with the result of calling a
// default function of one argument on it, using the context's angle unit.
// The input stack is never modified; on error, the returned stack is nil.
func (ctx *Context) ApplyRPN(stack []float64, name string) ([]float64, float64, error) {
	fn := globalfuncs[name]
	if fn == nil {
		return nil, 0, &UnknownIdentifierError{Name: name}
	}
	if !fn.CanCall(1) {
		return nil, 0, callError(0, name, 1)
	}
	if len(stack) < 1 {
		return nil, 0, &InsufficientOperandsError{Have: 0, Need: 1}
	}
	k := len(stack) - 1
	n := node{
		kind: nodeCall,
		name: name,
		fn:   fn,
		args: []*node{{kind: nodeNum, name: fmtnum(stack[k]), num: stack[k]}},
	}
	v, err := n.eval(ctx)
	if err != nil {
		return nil, 0, err
	}
	r := make([]float64, k+1)
	copy(r, stack[:k])
	r[k] = v
	return r, v, nil
}
