package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/exptree"
)

// Session reads expressions and reports their trees and values.
type Session struct {
	config *Config
	ctx    *exptree.Context
	opts   []exptree.ParseOption
	out    io.Writer
	log    *slog.Logger

	value *color.Color
	fail  *color.Color
}

// NewSession creates a session writing to out.
func NewSession(config *Config, out io.Writer, log *slog.Logger) (*Session, error) {
	ctx, err := config.NewContext()
	if err != nil {
		return nil, err
	}
	opts := config.ParseOptions()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, exptree.Trace(log))
	}
	return &Session{
		config: config,
		ctx:    ctx,
		opts:   opts,
		out:    out,
		log:    log,
		value:  color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
	}, nil
}

// Run prompts for and handles lines from in until the sentinel line or the
// end of input.
func (s *Session) Run(in io.Reader) error {
	scan := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.config.Prompt)
		if !scan.Scan() {
			// End the prompt's line.
			fmt.Fprintln(s.out)
			break
		}
		line := scan.Text()
		if strings.TrimSpace(line) == s.config.Sentinel {
			break
		}
		s.Line(line)
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out, "good bye")
	if err := scan.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// EvalAll handles each of srcs as a line and returns the number that were
// rejected.
func (s *Session) EvalAll(srcs []string) int {
	rejected := 0
	for i, src := range srcs {
		if i > 0 {
			fmt.Fprintln(s.out)
		}
		if !s.Line(src) {
			rejected++
		}
	}
	return rejected
}

// Line handles a single expression. It reports false if the line is not an
// expression or has no value.
func (s *Session) Line(line string) bool {
	toks, err := exptree.LexString(line)
	if err != nil {
		fmt.Fprintln(s.out, "this is not an expression")
		s.fail.Fprintf(s.out, "  %v\n", err)
		return false
	}
	fmt.Fprintf(s.out, "the token list is %v\n", toks)
	n, err := exptree.ParseAll(toks, s.opts...)
	if err != nil {
		fmt.Fprintln(s.out, "this is not an expression")
		s.fail.Fprintf(s.out, "  %v\n", err)
		return false
	}
	defer func() {
		k := n.Release()
		s.log.Debug("released tree", slog.Int("nodes", k))
	}()
	fmt.Fprintf(s.out, "in infix notation: %v\n", n)
	if !n.IsNumerical() && !s.ctx.Bound(n) {
		fmt.Fprintln(s.out, "this is not a numerical expression")
		s.log.Debug("unbound identifiers", slog.Any("vars", n.Vars()))
		return true
	}
	r, err := evaluate(s.ctx, n)
	if err != nil {
		fmt.Fprintln(s.out, "this expression has no value")
		s.fail.Fprintf(s.out, "  %v\n", err)
		return false
	}
	if s.config.Digits < 0 {
		s.value.Fprintf(s.out, "the value is %g\n", r)
	} else {
		s.value.Fprintf(s.out, "the value is %.*g\n", s.config.Digits, r)
	}
	return true
}

// evaluate evaluates n in ctx, turning division by zero into an error. Any
// other panic is left alone.
func evaluate(ctx *exptree.Context, n *exptree.Node) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if p != exptree.ErrDivisionByZero {
			panic(p)
		}
		r, err = nil, exptree.ErrDivisionByZero
	}()
	return ctx.Eval(n)
}
