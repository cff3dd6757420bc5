package exptree

import (
	"strconv"
	"strings"
)

// Decimal exponents outside [minFixed, maxFixed] render in exponent notation.
const (
	minFixed = -6
	maxFixed = 20
)

// maxExp bounds exponents that decimal rewrites. Literals beyond it keep their
// text, since they are infinite or zero at any precision anyway.
const maxExp = 1 << 30

// decimal returns the canonical form of a number literal: the same value
// without leading or trailing zeros, in exponent notation only when the
// magnitude is very large or very small. It reports false if lit is not a
// number literal.
func decimal(lit string) (string, bool) {
	mant, exp := lit, 0
	if i := strings.IndexAny(lit, "eE"); i >= 0 {
		mant = lit[:i]
		x, err := strconv.Atoi(lit[i+1:])
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange && validMant(mant) {
				return lit, true
			}
			return "", false
		}
		if x > maxExp || x < -maxExp {
			if !validMant(mant) {
				return "", false
			}
			return lit, true
		}
		exp = x
	}
	if !validMant(mant) {
		return "", false
	}
	digits, dp := mant, len(mant)
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		digits, dp = mant[:i]+mant[i+1:], i
	}
	dp += exp
	// Leading zeros move the decimal point; trailing zeros don't.
	for len(digits) > 0 && digits[0] == '0' {
		digits = digits[1:]
		dp--
	}
	digits = strings.TrimRight(digits, "0")
	switch {
	case digits == "":
		return "0", true
	case dp-1 < minFixed || dp-1 > maxFixed:
		s := digits[:1]
		if len(digits) > 1 {
			s += "." + digits[1:]
		}
		return s + "e" + strconv.Itoa(dp-1), true
	case dp <= 0:
		return "0." + strings.Repeat("0", -dp) + digits, true
	case dp >= len(digits):
		return digits + strings.Repeat("0", dp-len(digits)), true
	default:
		return digits[:dp] + "." + digits[dp:], true
	}
}

// validMant reports whether s is digits with at most one decimal point and at
// least one digit.
func validMant(s string) bool {
	dig, dot := false, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9':
			dig = true
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return dig
}
