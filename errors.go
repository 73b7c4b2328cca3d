package calc

import (
	"strconv"
)

// DivisionByZeroError is an error from dividing by zero, including raising
// zero to a negative power.
type DivisionByZeroError struct {
	// X is the dividend.
	X float64
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero: " + fmtnum(err.X) + " / 0"
}

// DomainError is an error returned when a function or operator is applied to
// an argument outside its domain, e.g. the square root of a negative number.
type DomainError struct {
	// Func is a name identifying the function or operator.
	Func string
	// X is the out-of-domain argument.
	X float64
}

func (err *DomainError) Error() string {
	r := fmtnum(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// OverflowError is an error indicating a result too large in magnitude to
// represent as a float64.
type OverflowError struct {
	// Op is the operator, function, or literal whose result overflowed.
	Op string
}

func (err *OverflowError) Error() string {
	return "overflow in " + err.Op
}

// UnknownIdentifierError is an error from a name that is neither a function
// known to the parser nor a variable or constant in the evaluation context.
type UnknownIdentifierError struct {
	// Name is the unknown identifier.
	Name string
	// Col is the position of the identifier, or 0 if the identifier was
	// found missing during evaluation rather than parsing.
	Col int
}

func (err *UnknownIdentifierError) Error() string {
	msg := "unknown identifier " + strconv.Quote(err.Name)
	if err.Col > 0 {
		return errpos(err.Col, msg)
	}
	return msg
}

// InsufficientOperandsError is an error from applying an RPN operation to a
// stack without enough values.
type InsufficientOperandsError struct {
	// Have is the number of values that were on the stack.
	Have int
	// Need is the number of values the operation requires.
	Need int
}

func (err *InsufficientOperandsError) Error() string {
	return "insufficient operands: need " + strconv.Itoa(err.Need) + ", have " + strconv.Itoa(err.Have)
}

// fmtnum formats a number for an error message.
func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
