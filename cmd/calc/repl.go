package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"

	"github.com/zephyrtronium/calc"
)

// session is an interactive calculator session. Each line is an expression
// to evaluate, a sequence of RPN words in RPN mode, or a command beginning
// with a colon.
type session struct {
	ctx     *calc.Context
	out     io.Writer
	history []entry
	// mem is the memory register, bound as M.
	mem float64
	// ans is the last result, bound as ans.
	ans   float64
	rpn   bool
	stack []float64
	done  bool
}

type entry struct {
	src, result string
}

func newSession(ctx *calc.Context, out io.Writer) *session {
	s := session{ctx: ctx.Clone(), out: out}
	s.bind()
	return &s
}

// bind updates the session's names in its context.
func (s *session) bind() {
	s.ctx.Set("ans", s.ans).Set("M", s.mem)
}

// run processes lines from in until it ends or a :quit command.
func (s *session) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for !s.done && sc.Scan() {
		s.line(sc.Text())
	}
	return sc.Err()
}

func (s *session) line(text string) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
	case strings.HasPrefix(text, ":"):
		args, err := shlex.Split(text[1:])
		if err != nil {
			s.fail(err)
			return
		}
		if len(args) == 0 {
			s.fail(errors.New("missing command"))
			return
		}
		s.command(args[0], args[1:])
	case s.rpn:
		stack, err := rpnwords(s.ctx, s.stack, strings.Fields(text))
		if err != nil {
			s.fail(err)
			return
		}
		s.stack = stack
		if len(stack) > 0 {
			s.ans = stack[len(stack)-1]
			s.bind()
		}
		s.history = append(s.history, entry{text, fmtstack(stack)})
		fmt.Fprintln(s.out, fmtstack(stack))
	default:
		var v float64
		a, err := calc.Parse(text)
		if err == nil {
			v, err = s.ctx.Eval(a)
		}
		s.result(text, v, err)
	}
}

// result records and prints a result.
func (s *session) result(src string, v float64, err error) {
	if err != nil {
		s.fail(err)
		return
	}
	v = calc.Round(v)
	r := calc.Format(v)
	s.history = append(s.history, entry{src, r})
	s.ans = v
	s.bind()
	fmt.Fprintln(s.out, r)
}

func (s *session) fail(err error) {
	fmt.Fprintf(s.out, "%s: %v\n", calc.Message(err), err)
}

func (s *session) command(cmd string, args []string) {
	switch cmd {
	case "deg", "rad":
		u, _ := calc.ParseAngleUnit(cmd)
		s.ctx = s.ctx.Clone(calc.Angle(u))
		fmt.Fprintln(s.out, u)
	case "rpn":
		s.rpn = !s.rpn
		s.stack = nil
		if s.rpn {
			fmt.Fprintln(s.out, "rpn on")
		} else {
			fmt.Fprintln(s.out, "rpn off")
		}
	case "solve":
		eq := strings.Join(args, " ")
		v, err := s.ctx.Solve(eq)
		s.result(eq, v, err)
	case "plot":
		if err := s.plot(args); err != nil {
			s.fail(err)
		}
	case "m+":
		s.mem += s.ans
		s.bind()
		fmt.Fprintln(s.out, calc.Format(s.mem))
	case "m-":
		s.mem -= s.ans
		s.bind()
		fmt.Fprintln(s.out, calc.Format(s.mem))
	case "mr":
		s.ans = s.mem
		s.bind()
		fmt.Fprintln(s.out, calc.Format(s.mem))
	case "mc":
		s.mem = 0
		s.bind()
		fmt.Fprintln(s.out, calc.Format(s.mem))
	case "history":
		for i, e := range s.history {
			fmt.Fprintf(s.out, "%d: %s = %s\n", i+1, e.src, e.result)
		}
	case "clear":
		s.history = nil
		s.stack = nil
		s.ans = 0
		s.bind()
	case "quit", "q":
		s.done = true
	default:
		s.fail(fmt.Errorf("unknown command %q", cmd))
	}
}

// plot handles :plot FILE MIN MAX EXPR.
func (s *session) plot(args []string) error {
	if len(args) < 4 {
		return errors.New("usage: :plot FILE MIN MAX EXPR")
	}
	bounds := [2]float64{}
	for i, src := range args[1:3] {
		a, err := calc.Parse(src)
		if err != nil {
			return err
		}
		if bounds[i], err = s.ctx.Eval(a); err != nil {
			return err
		}
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	err = writePlot(f, s.ctx, []string{strings.Join(args[3:], " ")}, bounds[0], bounds[1])
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "wrote", args[0])
	return nil
}
