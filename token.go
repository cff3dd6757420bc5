package exptree

import (
	"strconv"
	"strings"
)

// Token is a single lexical token of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Text is the numeric literal for numbers, the name for identifiers, or
	// the single character for symbols.
	Text string
	// Pos is the number of runes up to and including the start of the token.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNumber is a decimal number literal.
	TokenNumber
	// TokenIdent is an identifier.
	TokenIdent
	// TokenSymbol is any single character that is neither part of a number nor
	// part of an identifier, e.g. an operator or a bracket.
	TokenSymbol
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenIdent:
		return "Ident"
	case TokenSymbol:
		return "Symbol"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Tokens is an immutable sequence of tokens.
type Tokens struct {
	toks []Token
}

// NewTokens creates a token sequence holding a copy of toks.
func NewTokens(toks ...Token) Tokens {
	return Tokens{toks: append([]Token(nil), toks...)}
}

// Len returns the number of tokens in the sequence.
func (t Tokens) Len() int {
	return len(t.toks)
}

// At returns the token at index i.
func (t Tokens) At(i int) Token {
	return t.toks[i]
}

// Cursor returns a cursor positioned at the first token.
func (t Tokens) Cursor() Cursor {
	return Cursor{toks: t.toks}
}

// String returns the token texts separated by spaces.
func (t Tokens) String() string {
	var b strings.Builder
	for i, tok := range t.toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Cursor is a position in a token sequence. Cursors are values: copying one
// creates an independent position, so saving and restoring a cursor is just
// assignment.
type Cursor struct {
	toks []Token
	i    int
}

// AtEnd returns whether the cursor is past the last token.
func (c Cursor) AtEnd() bool {
	return c.i >= len(c.toks)
}

// Peek returns the token under the cursor, or false at the end.
func (c Cursor) Peek() (Token, bool) {
	if c.AtEnd() {
		return Token{}, false
	}
	return c.toks[c.i], true
}

// Index returns the number of tokens before the cursor.
func (c Cursor) Index() int {
	return c.i
}

// Pos returns the rune position of the token under the cursor. At the end of
// a sequence, it is the position just past the last token.
func (c Cursor) Pos() int {
	if c.AtEnd() {
		if len(c.toks) == 0 {
			return 1
		}
		last := c.toks[len(c.toks)-1]
		return last.Pos + len([]rune(last.Text))
	}
	return c.toks[c.i].Pos
}

// Rest returns the tokens from the cursor to the end of the sequence.
func (c Cursor) Rest() Tokens {
	if c.AtEnd() {
		return Tokens{}
	}
	return NewTokens(c.toks[c.i:]...)
}

// advance moves the cursor past the current token.
func (c *Cursor) advance() {
	c.i++
}
