package ir

import (
	"fmt"

	"github.com/convexlab/go-cvxlean/pkg/sexp"
)

// ReduceKind identifies a reduction operator, which collapses a vector or
// matrix operand down to a scalar.
type ReduceKind int

const (
	// Sum reduces a vector by summing its components.
	Sum ReduceKind = iota
	// Trace reduces a square matrix by summing its diagonal.
	Trace
)

// Token returns the exchange-format token for this operator.
func (k ReduceKind) Token() string {
	switch k {
	case Sum:
		return "sum"
	case Trace:
		return "tr"
	default:
		panic(fmt.Sprintf("unknown reduction operator: %d", k))
	}
}

// Reduce represents the application of a reduction operator.  Reductions
// always produce a scalar.
type Reduce struct {
	Kind ReduceKind
	Arg  Expr
}

var _ Expr = (*Reduce)(nil)

// NewReduce constructs a reduction application.
func NewReduce(kind ReduceKind, arg Expr) *Reduce {
	return &Reduce{kind, arg}
}

// Shape of a reduction is always scalar.
func (p *Reduce) Shape() Shape { return ScalarShape() }

// Lisp encodes this application as "(op arg)".
func (p *Reduce) Lisp() sexp.SExp {
	return sexp.NewList([]sexp.SExp{
		sexp.NewSymbol(p.Kind.Token()),
		p.Arg.Lisp(),
	})
}

func (p *Reduce) expr() {}
