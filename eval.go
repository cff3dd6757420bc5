package exptree

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// ErrDivisionByZero is the value with which evaluation panics when a divisor
// is zero. Division by zero is not an evaluation result; a caller that wants
// to survive it must recover.
var ErrDivisionByZero = errors.New("exptree: division by zero")

// IsNumerical returns whether every leaf of the tree is a number, i.e. the
// tree can be evaluated without variable bindings. Panics on a nil tree.
func (n *Node) IsNumerical() bool {
	if n == nil {
		panic("exptree: IsNumerical on nil tree")
	}
	switch n.kind {
	case KindNumber:
		return true
	case KindIdent:
		return false
	}
	return n.left.IsNumerical() && n.right.IsNumerical()
}

// Eval computes the value of a numerical tree with 64 bits of precision. The
// tree must be numerical; Eval panics on an identifier. Division by zero
// panics with ErrDivisionByZero.
func (n *Node) Eval() *big.Float {
	r, err := NewContext().Eval(n)
	if err != nil {
		panic("exptree: Eval on non-numerical tree: " + err.Error())
	}
	return r
}

// Context is a context for evaluating expression trees, holding the precision
// of calculations and values for identifiers. Evaluations may run
// concurrently, but not alongside Set.
type Context struct {
	names map[string]*big.Float
	prec  uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt  map[string]*big.Float
	precopt  uint
	constopt struct{}
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (precopt) ctxOption()  {}
func (constopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates a tree, looking up identifiers in the context. If the tree
// contains an identifier with no value, the error is a *NameError. Division
// by zero panics with ErrDivisionByZero, and arithmetic with no defined
// result, such as subtracting infinities, panics with big.ErrNaN.
func (ctx *Context) Eval(n *Node) (*big.Float, error) {
	if n == nil {
		panic("exptree: Eval on nil tree")
	}
	return n.eval(ctx)
}

// Bound returns whether every identifier in the tree has a value in the
// context, i.e. whether Eval can succeed.
func (ctx *Context) Bound(n *Node) bool {
	for _, name := range n.Vars() {
		if ctx.names[name] == nil {
			return false
		}
	}
	return true
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = ctx.float().Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. Variables
// are rounded to the precision of the copy.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
	}
	for _, opt := range opts {
		if p, ok := opt.(precopt); ok {
			n.prec = uint(p)
		}
	}
	for name, val := range ctx.names {
		n.names[name] = n.float().Set(val)
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil, precopt:
			// nothing to bind
		case varopt:
			n.names[opt.name] = n.float().Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = n.float().Set(v)
			}
		case constopt:
			for k, f := range constants {
				n.names[k] = f(n.float())
			}
		default:
			panic("exptree: unknown option type")
		}
	}
	return &n
}

// float returns a new zero value at the context's precision.
func (ctx *Context) float() *big.Float {
	return new(big.Float).SetPrec(ctx.prec)
}

// num returns the value of a canonical number literal.
func (ctx *Context) num(lit string) *big.Float {
	r, _, err := ctx.float().Parse(lit, 10)
	if err != nil {
		// Literals are unsigned and well-formed, so only the exponent can be
		// out of range.
		r = ctx.float()
		if !strings.Contains(strings.ToLower(lit), "e-") {
			r.SetInf(false)
		}
	}
	return r
}

// eval computes the node's value as a new float.
func (n *Node) eval(ctx *Context) (*big.Float, error) {
	switch n.kind {
	case KindNumber:
		return ctx.num(n.text), nil
	case KindIdent:
		v := ctx.names[n.text]
		if v == nil {
			return nil, &NameError{Name: n.text}
		}
		return ctx.float().Set(v), nil
	case KindSymbol:
		// handled below
	default:
		panic("exptree: invalid tree node " + n.kind.String())
	}
	l, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case '+':
		l.Add(l, r)
	case '-':
		l.Sub(l, r)
	case '*':
		l.Mul(l, r)
	case '/':
		if r.Sign() == 0 {
			panic(ErrDivisionByZero)
		}
		l.Quo(l, r)
	default:
		panic("exptree: invalid operator " + strconv.QuoteRune(rune(n.op)))
	}
	return l, nil
}

// EvalString is a shortcut to parse a string and evaluate it in a new context
// with the given options.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	n, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Eval(n)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
