package ir

import (
	"math"
	"strconv"

	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// Expr is a node of the symbolic expression tree.  Nodes are immutable once
// constructed, and every node carries the shape determined for it when it was
// built.  Lisp is the encoding used on the exchange boundary with the rewrite
// engine; since it is an interface method, every variant must provide an
// encoding or the package does not compile.
type Expr interface {
	// Shape returns the shape of the value this expression evaluates to.
	Shape() Shape
	// Lisp converts this expression into an S-Expression, with fully explicit
	// parenthesisation.
	Lisp() sexp.SExp
	// expr limits implementations of this interface to this package.
	expr()
}

// FormatValue renders a numeric constant in the decimal form used on the
// exchange boundary and in generated source text.  Integral values print
// without a decimal point.
func FormatValue(value float64) string {
	if math.IsInf(value, 1) {
		return "inf"
	} else if math.IsInf(value, -1) {
		return "-inf"
	}

	return strconv.FormatFloat(value, 'g', -1, 64)
}
