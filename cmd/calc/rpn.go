package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/calc"
)

var rpnfuncs = calc.DefaultFuncs()

// rpnword applies one RPN word to a stack. An operator combines the top two
// values, the name of a builtin function replaces the top value, and anything
// else is evaluated as an expression and pushed. stack is not modified.
func rpnword(ctx *calc.Context, stack []float64, w string) ([]float64, error) {
	if utf8.RuneCountInString(w) == 1 && strings.Contains(calc.Operators, w) {
		r, _, err := calc.EvalRPN(stack, w)
		return r, err
	}
	if _, ok := rpnfuncs[w]; ok {
		r, _, err := ctx.ApplyRPN(stack, w)
		return r, err
	}
	a, err := calc.Parse(w)
	if err != nil {
		return nil, err
	}
	v, err := ctx.Eval(a)
	if err != nil {
		return nil, err
	}
	return append(stack[:len(stack):len(stack)], v), nil
}

// rpnwords applies a sequence of RPN words. On error, the result is nil and
// stack is unchanged.
func rpnwords(ctx *calc.Context, stack []float64, words []string) ([]float64, error) {
	for _, w := range words {
		r, err := rpnword(ctx, stack, w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w, err)
		}
		stack = r
	}
	return stack, nil
}

// fmtstack formats a stack bottom to top.
func fmtstack(stack []float64) string {
	s := make([]string, len(stack))
	for i, v := range stack {
		s[i] = calc.Format(v)
	}
	return "[" + strings.Join(s, " ") + "]"
}
