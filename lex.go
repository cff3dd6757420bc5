package exptree

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

// Lex scans the entire input into a token sequence. Numbers are decimal
// literals with an optional fraction and exponent, identifiers are a letter or
// underscore followed by letters, digits, and underscores, and every other
// non-space character is a symbol of its own.
func Lex(src io.RuneScanner) (Tokens, error) {
	l := lexer{src: src, rune: 1}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Tokens{toks: toks}, nil
			}
			return Tokens{}, err
		}
		toks = append(toks, tok)
	}
}

// LexString is a shortcut to scan a string.
func LexString(src string) (Tokens, error) {
	return Lex(strings.NewReader(src))
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// error is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNumber
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, nil
		default:
			tok.Text = string(r)
			tok.Kind = TokenSymbol
			return tok, nil
		}
	}
}

func (l *lexer) scanNum() error {
	var dig, dot, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker is an operator.
			if !le {
				l.unreadRune()
				break
			}
			le = false
			l.buf.WriteRune(r)
			continue
		}
		switch r {
		case '.':
			l.buf.WriteRune(r)
			if dot || e {
				return l.error("number")
			}
			dot = true
			le = false
			continue
		case 'e', 'E':
			l.buf.WriteRune(r)
			if !dig || e {
				return l.error("number")
			}
			e = true
			le = true
			continue
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			l.buf.WriteRune(r)
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
			continue
		}
		l.unreadRune()
		break
	}
	if (!dig && !ed) || (e && !ed) {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, including the invalid rune if there was one.
	Text string
	// Kind is the type of token the lexer was scanning.
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
