package calc

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | name | Call | Neg | Plus | Pct | Add | Sub | Mul | Div | Pow | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = funcname ArgList | funcname Expr
// ArgList = '(' [ Expr { ',' Expr } ] ')' | '[' ... ']' | '{' ... '}'
// Neg = '-' Expr
// Plus = '+' Expr
// Pct = Expr '%'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// scanner feeds tokens to the parser.
type scanner struct {
	toks []Token
	p    Token
	// end is the position reported for the EOF token.
	end int
}

func newScanner(toks []Token) *scanner {
	end := 1
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		end = last.Pos + utf8.RuneCountInString(last.Text)
	}
	return &scanner{toks: toks, end: end}
}

// next returns the next token, or an EOF token once the input is exhausted.
func (s *scanner) next() Token {
	if s.p.Kind != TokenNone {
		tok := s.p
		s.p = Token{}
		return tok
	}
	if len(s.toks) == 0 {
		return Token{Kind: TokenEOF, Pos: s.end}
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (s *scanner) push(tok Token) {
	if s.p.Kind != TokenNone {
		panic("calc: double push")
	}
	s.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (s *scanner) must() Token {
	tok := s.p
	if tok.Kind == TokenNone {
		panic("calc: no pushed token")
	}
	s.p = Token{}
	return tok
}

// Parse tokenizes and parses an expression so it can be evaluated with a
// context. The given options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks, opts...)
}

// ParseTokens parses a token sequence, as produced by Tokenize, so it can be
// evaluated with a context. The given options are applied in order.
func ParseTokens(tokens []Token, opts ...ParseOption) (*Expr, error) {
	if err := validate(tokens); err != nil {
		return nil, err
	}
	scan := newScanner(tokens)
	p := parsectx{
		names: make(map[string]bool),
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if p.funcs == nil {
		p.funcs = globalfuncs
	} else {
		// Only set default functions that aren't already set.
		for k, v := range globalfuncs {
			if _, ok := p.funcs[k]; !ok {
				p.funcs[k] = v
			}
		}
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.Kind != TokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	if n == nil {
		return nil, emptyError(tok)
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// validate checks that caller-supplied tokens are well-formed.
func validate(tokens []Token) error {
	for _, tok := range tokens {
		ok := false
		switch tok.Kind {
		case TokenNum, TokenOp:
			ok = true
		case TokenIdent:
			ok = tok.Text != ""
		case TokenOpen:
			ok = utf8.RuneCountInString(tok.Text) == 1 && strings.Contains(OpenBrackets, tok.Text)
		case TokenClose:
			ok = utf8.RuneCountInString(tok.Text) == 1 && strings.Contains(CloseBrackets, tok.Text)
		case TokenSep:
			ok = tok.Text == ","
		}
		if !ok {
			return &ParseError{Col: tok.Pos, Token: tok.Text, Msg: "invalid token " + tok.String()}
		}
	}
	return nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *scanner, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok := scan.next()
		switch tok.Kind {
		case TokenNum, TokenIdent, TokenOpen:
			// There is no implicit multiplication, so an operand here is
			// missing the operator before it.
			return nil, unexpectedError(tok)
		case TokenOp:
			if tok.Text == "%" {
				// Postfix. Applies to everything parsed so far at this level.
				if !pctprec.moreBinding(until) {
					scan.push(tok)
					return n, nil
				}
				n = &node{kind: nodePct, left: n}
				continue
			}
			prec := binop(tok.Text)
			if prec.op == nodeNone {
				return nil, operatorError(tok, false)
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyError(scan.must())
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case TokenClose, TokenSep, TokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *scanner, p *parsectx, until operator) (*node, error) {
	tok := scan.next()
	var n *node
	switch tok.Kind {
	case TokenNum:
		name := tok.Text
		if name == "" {
			name = fmtnum(tok.Num)
		}
		n = &node{kind: nodeNum, name: name, num: tok.Num}
	case TokenIdent:
		fn := p.funcs[tok.Text]
		if fn == nil {
			// A name followed by brackets can only be a call.
			nt := scan.next()
			if nt.Kind == TokenOpen {
				return nil, &UnknownIdentifierError{Name: tok.Text, Col: tok.Pos}
			}
			scan.push(nt)
			p.names[tok.Text] = true
			n = &node{kind: nodeName, name: tok.Text}
		} else {
			args, err := parsecall(scan, p, until, fn, tok.Text)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeCall, name: tok.Text, fn: fn, args: args}
		}
	case TokenOp:
		// unary operator
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, operatorError(tok, true)
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyError(scan.must())
		}
		n = &node{kind: prec.op, left: rhs}
	case TokenOpen:
		match := rightbracket(tok.Text)
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.Kind != TokenClose || end.Text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if rhs == nil {
			return nil, emptyError(end)
		}
		n = rhs
	case TokenClose:
		// This might be part of an empty argument list, so just let the
		// caller decide what to do.
		scan.push(tok)
		return nil, nil
	case TokenSep:
		return nil, separatorError(tok)
	case TokenEOF:
		return nil, emptyError(tok)
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the arguments to a call of a given Func.
func parsecall(scan *scanner, p *parsectx, until operator, fn Func, name string) ([]*node, error) {
	tok := scan.next()
	switch tok.Kind {
	case TokenOpen:
		match := rightbracket(tok.Text)
		args, err := parsearglist(scan, p, tok.Text)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.Kind != TokenClose {
			panic("calc: parsearglist ended on " + end.String() + " instead of close bracket")
		}
		if end.Text != closebrackets[match] {
			return nil, bracketError(end.Pos, tok.Text, end.Text)
		}
		if !fn.CanCall(len(args)) {
			return nil, callError(tok.Pos, name, len(args))
		}
		return args, nil
	case TokenNum, TokenIdent, TokenOp:
		// Bare operand. sqrt 2 -> sqrt(2), sin 30^2 -> sin(30^2)
		operand := tok.Kind != TokenOp || unop(tok.Text).op != nodeNone
		if !operand || !fn.CanCall(1) {
			if fn.CanCall(0) {
				// zero * 2 -> zero() * 2
				scan.push(tok)
				return nil, nil
			}
			if !operand {
				return nil, callError(tok.Pos, name, 0)
			}
			return nil, callError(tok.Pos, name, 1)
		}
		scan.push(tok)
		if termprec.moreBinding(until) {
			until = termprec
		}
		rhs, err := parseterm(scan, p, until)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyError(scan.must())
		}
		return []*node{rhs}, nil
	case TokenClose, TokenSep, TokenEOF:
		if !fn.CanCall(0) {
			return nil, callError(tok.Pos, name, 0)
		}
		scan.push(tok)
		return nil, nil
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parsearglist parses a bracketed list of zero or more args. It pushes the
// close bracket that ends the list.
func parsearglist(scan *scanner, p *parsectx, open string) ([]*node, error) {
	var args []*node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			var pe *ParseError
			if errors.As(err, &pe) && pe.Token == "" {
				err = bracketError(pe.Col, open, "")
			}
			return nil, err
		}
		end := scan.must()
		switch end.Kind {
		case TokenClose:
			// Caller checks that brackets match.
			scan.push(end)
			if rhs == nil {
				// func() is allowed, but func(a,) isn't.
				if len(args) != 0 {
					return nil, emptyError(end)
				}
				return nil, nil
			}
			return append(args, rhs), nil
		case TokenSep:
			args = append(args, rhs)
		case TokenEOF:
			return nil, bracketError(end.Pos, open, "")
		default:
			panic("calc: parseterm ended on non-end token " + end.String())
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("calc: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok Token, match int) error {
	switch tok.Kind {
	case TokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return bracketError(tok.Pos, leftbracket(match), "")
	case TokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return bracketError(tok.Pos, leftbracket(match), tok.Text)
	case TokenSep:
		// Separator outside a function call.
		return separatorError(tok)
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the variable and constant names used when evaluating the
// expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false, true)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Lower is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	case "×":
		return operator{5, false, nodeMul}
	case "÷":
		return operator{5, false, nodeDiv}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence of a bare function argument. Its prec
	// should match that of multiplication.
	termprec = operator{5, true, nodeMul}
	// pctprec is the precedence of postfix percent, between multiplication
	// and unary operators.
	pctprec = operator{8, false, nodePct}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
