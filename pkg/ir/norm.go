package ir

import (
	"fmt"

	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// Norm represents the vector norm of a given order applied to a vector
// operand.  Only the Euclidean norm (order 2) is currently supported by the
// normaliser, and hence by the exchange encoding.
type Norm struct {
	Order uint
	Arg   Expr
}

var _ Expr = (*Norm)(nil)

// NewNorm constructs a norm application of a given order.
func NewNorm(order uint, arg Expr) *Norm {
	return &Norm{order, arg}
}

// Shape of a norm is always scalar.
func (p *Norm) Shape() Shape { return ScalarShape() }

// Lisp encodes this application as "(norm2 arg)".
func (p *Norm) Lisp() sexp.SExp {
	if p.Order != 2 {
		panic(fmt.Sprintf("no exchange encoding for norm of order %d", p.Order))
	}

	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol("norm2"),
		p.Arg.Lisp(),
	})
}

func (p *Norm) expr() {}
