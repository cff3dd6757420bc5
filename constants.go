package exptree

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// constants are the values bound by Constants, computed to the precision of
// the float passed in.
var constants = map[string]func(out *big.Float) *big.Float{
	"pi": bigfloat.Pi,
	"e": func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	},
}

// Constants binds the identifiers pi and e to their values at the context's
// precision. Options after Constants may rebind them.
func Constants() ContextOption {
	return constopt{}
}
