// Package calc implements the evaluation engine of a scientific calculator.
//
// Expressions are written the way they appear on a calculator display:
// "2+3*4", "-5+3", "2^3^2", "sin(90)", "√16", "50*10%". Parsing never
// executes the input; it produces a tree which a Context evaluates to a
// float64 with explicit errors for division by zero, domain violations, and
// overflow instead of Inf and NaN.
//
// A Context carries the caller's configuration, i.e. the angle unit used by
// trigonometric functions and any variable bindings. The engine itself keeps
// no state between calls, so evaluations on separate contexts are
// independent.
//
// Results meant for display go through Round or Format, which cancel
// floating-point noise below 1e-10 and keep 12 significant digits.
package calc
