package exptree

import "log/slog"

// expression := term [ ('+' | '-') expression ]
// term       := factor [ ('*' | '/') factor ]
// factor     := number | identifier | '(' expression ')'
//
// A term applies at most one multiplication or division, so 2*3*4 is not an
// expression. Additive operators chain to the right, so 1-2-3 is 1-(2-3).

// parser holds the state of a single parse.
type parser struct {
	parsectx
	// live is the number of nodes built and not yet released.
	live int
	// depth is the current nesting of expressions.
	depth int
	// far is the farthest position at which any alternative failed.
	far Cursor
	// err is a failure that ends the parse regardless of alternatives.
	err error
}

func newParser(opts []ParseOption) *parser {
	var p parser
	for _, opt := range opts {
		p.parsectx = opt.parseOption(p.parsectx)
	}
	return &p
}

// Parse parses the longest expression at the start of toks. The result is the
// tree and a cursor past the tokens that form it, which need not be at the end
// of toks. If no expression starts toks, the error is a *SyntaxError.
func Parse(toks Tokens, opts ...ParseOption) (*Node, Cursor, error) {
	p := newParser(opts)
	c := toks.Cursor()
	n, err := p.parse(&c)
	if err != nil {
		return nil, toks.Cursor(), err
	}
	return n, c, nil
}

// ParseAll parses toks as exactly one expression. If tokens remain after the
// expression, the tree is released and the error is a *TrailingError, or a
// *SyntaxError if the parser got farther than that on an abandoned
// alternative.
func ParseAll(toks Tokens, opts ...ParseOption) (*Node, error) {
	return newParser(opts).parseAll(toks)
}

// ParseString is a shortcut to scan and parse a string as one expression.
func ParseString(src string, opts ...ParseOption) (*Node, error) {
	toks, err := LexString(src)
	if err != nil {
		return nil, err
	}
	return ParseAll(toks, opts...)
}

func (p *parser) parse(c *Cursor) (*Node, error) {
	p.far = *c
	n, ok := p.expression(c)
	if p.err != nil {
		// Every layer gives up as soon as err is set, so there is no tree.
		return nil, p.err
	}
	if !ok {
		return nil, p.syntaxError()
	}
	return n, nil
}

func (p *parser) parseAll(toks Tokens) (*Node, error) {
	c := toks.Cursor()
	n, err := p.parse(&c)
	if err != nil {
		return nil, err
	}
	if !c.AtEnd() {
		p.release(n)
		if p.far.Index() > c.Index() {
			return nil, p.syntaxError()
		}
		tok, _ := c.Peek()
		return nil, &TrailingError{Col: tok.Pos, Text: tok.Text}
	}
	return n, nil
}

// expression parses a term optionally followed by an additive operator and
// another expression. On failure, lp is unchanged.
func (p *parser) expression(lp *Cursor) (*Node, bool) {
	if !p.enter(*lp) {
		return nil, false
	}
	defer p.leave()
	c := *lp
	left, ok := p.term(&c)
	if !ok {
		return nil, false
	}
	if op, ok := c.AddOp(); ok {
		if right, ok := p.expression(&c); ok {
			*lp = c
			return p.operator(op, left, right, c), true
		}
	}
	if p.err != nil {
		p.release(left)
		return nil, false
	}
	p.backtrack("expression", left, *lp)
	c = *lp
	n, ok := p.term(&c)
	if !ok {
		return nil, false
	}
	*lp = c
	return n, true
}

// term parses a factor optionally followed by a multiplicative operator and
// another factor. On failure, lp is unchanged.
func (p *parser) term(lp *Cursor) (*Node, bool) {
	c := *lp
	left, ok := p.factor(&c)
	if !ok {
		return nil, false
	}
	if op, ok := c.MulOp(); ok {
		if right, ok := p.factor(&c); ok {
			*lp = c
			return p.operator(op, left, right, c), true
		}
	}
	if p.err != nil {
		p.release(left)
		return nil, false
	}
	p.backtrack("term", left, *lp)
	c = *lp
	n, ok := p.factor(&c)
	if !ok {
		return nil, false
	}
	*lp = c
	return n, true
}

// factor parses a number, an identifier, or a parenthesized expression. On
// failure, lp is unchanged.
func (p *parser) factor(lp *Cursor) (*Node, bool) {
	c := *lp
	if lit, ok := c.Number(); ok {
		*lp = c
		return p.leaf(NewNumber(lit)), true
	}
	if name, ok := c.Ident(); ok {
		*lp = c
		return p.leaf(NewIdent(name)), true
	}
	if c.Accept('(') {
		if n, ok := p.expression(&c); ok {
			if c.Accept(')') {
				*lp = c
				return n, true
			}
			p.fail(c)
			p.backtrack("factor", n, *lp)
			return nil, false
		}
	}
	p.fail(*lp)
	return nil, false
}

// enter opens a level of expression nesting. It reports false if the parse
// must stop.
func (p *parser) enter(at Cursor) bool {
	if p.err != nil {
		return false
	}
	if p.maxdepth > 0 && p.depth >= p.maxdepth {
		p.err = &DepthError{Col: at.Pos(), Max: p.maxdepth}
		return false
	}
	p.depth++
	return true
}

func (p *parser) leave() {
	p.depth--
}

// fail records a position at which an alternative failed.
func (p *parser) fail(at Cursor) {
	if at.Index() > p.far.Index() {
		p.far = at
	}
}

func (p *parser) syntaxError() error {
	tok, _ := p.far.Peek()
	return &SyntaxError{Col: p.far.Pos(), Text: tok.Text}
}

func (p *parser) leaf(n *Node) *Node {
	p.live++
	return n
}

func (p *parser) operator(op byte, left, right *Node, at Cursor) *Node {
	p.live++
	if p.log != nil {
		p.log.Debug("operator", slog.String("op", string(op)), slog.Int("end", at.Index()))
	}
	return NewOp(op, left, right)
}

func (p *parser) release(n *Node) {
	p.live -= n.Release()
}

// backtrack releases the partial result of an abandoned alternative that
// started at from.
func (p *parser) backtrack(layer string, partial *Node, from Cursor) {
	if p.log != nil {
		p.log.Debug("backtrack", slog.String("layer", layer), slog.Int("pos", from.Pos()), slog.Int("discard", partial.Size()))
	}
	p.release(partial)
}
