package exptree

import "strconv"

// SyntaxError is an error indicating input that matches no alternative of the
// grammar. It implements InputError.
type SyntaxError struct {
	// Col is the position of the farthest token the parser examined.
	Col int
	// Text is that token, or the empty string at the end of the input.
	Text string
}

func (err *SyntaxError) Error() string {
	if err.Text == "" {
		return errpos(err.Col, "unexpected end of expression")
	}
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating that only a prefix of the input forms
// an expression. It implements InputError.
type TrailingError struct {
	// Col is the position of the first token not consumed.
	Col int
	// Text is the first token not consumed.
	Text string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after expression")
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// DepthError is an error indicating expressions nested more deeply than the
// limit set with MaxDepth. It implements InputError.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Max is the limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
