// Package exptree builds binary expression trees from arithmetic token
// sequences, prints them in fully parenthesized infix notation, and evaluates
// them to arbitrary-precision numbers.
//
// The grammar is deliberately small:
//
//	expression := term [ ('+' | '-') expression ]
//	term       := factor [ ('*' | '/') factor ]
//	factor     := number | identifier | '(' expression ')'
//
// The parser is a backtracking recursive descent over an immutable token
// sequence. Two properties of the grammar are easy to miss: a term holds at
// most one multiplication or division, so "2*3*4" must be written "(2*3)*4",
// and additive operators group to the right, so "1-2-3" means "1-(2-3)".
//
// A tree with identifiers is not numerical. It can still be evaluated in a
// Context that binds every identifier.
//
package exptree
