package calc

import "strconv"

// ParseError is an error indicating a token that cannot appear where it does,
// such as a missing operand, a trailing operator, mismatched brackets, or a
// function call with the wrong number of arguments. It implements InputError.
type ParseError struct {
	// Col is the position of the offending token.
	Col int
	// Token is the offending token's text. It is empty when the input ended
	// unexpectedly.
	Token string
	// Msg describes the problem.
	Msg string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// operatorError reports an operator token that is not understood in its
// position.
func operatorError(tok Token, unary bool) *ParseError {
	s := "binary"
	if unary {
		s = "unary"
	}
	return &ParseError{Col: tok.Pos, Token: tok.Text, Msg: "unknown " + s + " operator " + strconv.Quote(tok.Text)}
}

// bracketError reports mismatched brackets. Either left or right may be empty
// to indicate a missing bracket.
func bracketError(col int, left, right string) *ParseError {
	err := ParseError{Col: col, Token: right}
	switch {
	case left == "":
		err.Msg = "close bracket " + right + " with no open bracket"
	case right == "":
		err.Msg = "open bracket " + left + " with no close bracket"
	default:
		err.Msg = "mismatched bracket: " + left + "expr" + right
	}
	return &err
}

// separatorError reports a comma outside a function argument list.
func separatorError(tok Token) *ParseError {
	return &ParseError{Col: tok.Pos, Token: tok.Text, Msg: "invalid occurrence of separator " + strconv.Quote(tok.Text)}
}

// callError reports a function call with the wrong number of arguments.
func callError(col int, name string, n int) *ParseError {
	return &ParseError{Col: col, Token: name, Msg: "cannot call " + name + " with " + strconv.Itoa(n) + " arguments"}
}

// emptyError reports an empty subexpression ending at tok.
func emptyError(tok Token) *ParseError {
	err := ParseError{Col: tok.Pos, Token: tok.Text}
	switch {
	case tok.Kind != TokenEOF:
		err.Msg = "no expression up to " + strconv.Quote(tok.Text)
	case tok.Pos <= 1:
		err.Msg = "no expression"
	default:
		err.Msg = "no expression at end"
	}
	return &err
}

// unexpectedError reports an operand where an operator was expected.
func unexpectedError(tok Token) *ParseError {
	return &ParseError{Col: tok.Pos, Token: tok.Text, Msg: "unexpected " + strconv.Quote(tok.Text) + " after complete operand (missing operator?)"}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*LexError)(nil)
)
