package exptree

// The recognizers below each examine the single token under the cursor. On a
// match they advance the cursor past it; otherwise the cursor is unchanged.

// Number recognizes a number literal.
func (c *Cursor) Number() (string, bool) {
	return c.kind(TokenNumber)
}

// Ident recognizes an identifier.
func (c *Cursor) Ident() (string, bool) {
	return c.kind(TokenIdent)
}

// MulOp recognizes a multiplicative operator, * or /.
func (c *Cursor) MulOp() (byte, bool) {
	return c.symbol("*/")
}

// AddOp recognizes an additive operator, + or -.
func (c *Cursor) AddOp() (byte, bool) {
	return c.symbol("+-")
}

// Accept recognizes the symbol r.
func (c *Cursor) Accept(r rune) bool {
	tok, ok := c.Peek()
	if !ok || tok.Kind != TokenSymbol || tok.Text != string(r) {
		return false
	}
	c.advance()
	return true
}

func (c *Cursor) kind(k TokenKind) (string, bool) {
	tok, ok := c.Peek()
	if !ok || tok.Kind != k {
		return "", false
	}
	c.advance()
	return tok.Text, true
}

// symbol recognizes any one-byte symbol in ops.
func (c *Cursor) symbol(ops string) (byte, bool) {
	tok, ok := c.Peek()
	if !ok || tok.Kind != TokenSymbol || len(tok.Text) != 1 {
		return 0, false
	}
	for i := 0; i < len(ops); i++ {
		if tok.Text[0] == ops[i] {
			c.advance()
			return ops[i], true
		}
	}
	return 0, false
}
